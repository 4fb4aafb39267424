// internal/common/validation/schema.go
package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Error joins the individual failures. It is empty for a valid result.
func (r *ValidationResult) Error() string {
	if r == nil || r.Valid {
		return ""
	}
	parts := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		parts[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return strings.Join(parts, "; ")
}

// ValidateDocument checks doc against a JSON schema held as a decoded map.
// An empty schema accepts everything.
func ValidateDocument(schema map[string]interface{}, doc interface{}) (*ValidationResult, error) {
	if len(schema) == 0 {
		return &ValidationResult{Valid: true}, nil
	}
	return validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(doc))
}

// ValidateJSON checks raw JSON bytes, as delivered in job variables.
func ValidateJSON(schema map[string]interface{}, raw []byte) (*ValidationResult, error) {
	if len(schema) == 0 {
		return &ValidationResult{Valid: true}, nil
	}
	if !json.Valid(raw) {
		return &ValidationResult{
			Errors: []ValidationError{{Field: "(root)", Message: "document is not valid JSON", Code: "INVALID_JSON"}},
		}, nil
	}
	return validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewBytesLoader(raw))
}

func validate(schema, doc gojsonschema.JSONLoader) (*ValidationResult, error) {
	result, err := gojsonschema.Validate(schema, doc)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   fieldName(desc),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return out, nil
}

// fieldName reports the missing property for "required" errors, since
// gojsonschema attributes those to the parent object.
func fieldName(desc gojsonschema.ResultError) string {
	if desc.Type() == "required" {
		if prop, ok := desc.Details()["property"].(string); ok {
			if desc.Field() == "(root)" {
				return prop
			}
			return desc.Field() + "." + prop
		}
	}
	return desc.Field()
}

// IsValidEmail applies the same loose check the web forms use.
func IsValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}

// NormalizeEmail lower-cases and trims an address for use as a key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
