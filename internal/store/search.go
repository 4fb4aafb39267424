// internal/store/search.go
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"mission-analyzer/internal/common/errors"
	"mission-analyzer/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
)

// AnalysisMapping is the index mapping for analysis documents.
const AnalysisMapping = `{
  "mappings": {
    "properties": {
      "id":           {"type": "keyword"},
      "userId":       {"type": "keyword"},
      "missionText":  {"type": "text"},
      "industry":     {"type": "keyword"},
      "wordCount":    {"type": "integer"},
      "overallScore": {"type": "integer"},
      "category":     {"type": "keyword"},
      "createdAt":    {"type": "date"}
    }
  }
}`

const maxSearchResults = 50

// AnalysisIndex is the full-text view over saved analyses.
type AnalysisIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewAnalysisIndex(es *elasticsearch.Client, index string) *AnalysisIndex {
	return &AnalysisIndex{es: es, index: index}
}

func (i *AnalysisIndex) Index(ctx context.Context, doc models.AnalysisDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return errors.NewSearchIndexFailedError(i.index, err)
	}

	res, err := i.es.Index(i.index, bytes.NewReader(body),
		i.es.Index.WithContext(ctx),
		i.es.Index.WithDocumentID(doc.ID),
	)
	if err != nil {
		return errors.NewSearchIndexFailedError(i.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.NewSearchIndexFailedError(i.index, fmt.Errorf("%s", res.Status()))
	}
	return nil
}

// SearchQuery filters saved analyses. Empty fields match everything.
type SearchQuery struct {
	Text     string
	Industry string
	Limit    int
}

func (q SearchQuery) body() map[string]interface{} {
	var must, filter []interface{}
	if t := strings.TrimSpace(q.Text); t != "" {
		must = append(must, map[string]interface{}{
			"match": map[string]interface{}{"missionText": t},
		})
	}
	if q.Industry != "" {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"industry": q.Industry},
		})
	}

	boolQuery := map[string]interface{}{}
	if len(must) > 0 {
		boolQuery["must"] = must
	} else {
		boolQuery["must"] = []interface{}{map[string]interface{}{"match_all": map[string]interface{}{}}}
	}
	if len(filter) > 0 {
		boolQuery["filter"] = filter
	}

	size := q.Limit
	if size <= 0 || size > maxSearchResults {
		size = DefaultListLimit
	}
	return map[string]interface{}{
		"size":  size,
		"query": map[string]interface{}{"bool": boolQuery},
		"sort": []interface{}{
			map[string]interface{}{"_score": "desc"},
			map[string]interface{}{"createdAt": "desc"},
		},
	}
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source models.AnalysisDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search returns matching documents and the total hit count.
func (i *AnalysisIndex) Search(ctx context.Context, q SearchQuery) ([]models.AnalysisDocument, int, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(q.body()); err != nil {
		return nil, 0, errors.NewSearchQueryFailedError(i.index, err)
	}

	res, err := i.es.Search(
		i.es.Search.WithContext(ctx),
		i.es.Search.WithIndex(i.index),
		i.es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, 0, errors.NewSearchQueryFailedError(i.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, 0, errors.NewSearchQueryFailedError(i.index, fmt.Errorf("%s", res.Status()))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, 0, errors.NewSearchQueryFailedError(i.index, err)
	}

	docs := make([]models.AnalysisDocument, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		docs = append(docs, hit.Source)
	}
	return docs, parsed.Hits.Total.Value, nil
}
