package scoring

import "strings"

// WorkshopAnswers are the guided-workshop fields a mission is assembled from.
type WorkshopAnswers struct {
	Purpose     string `json:"purpose"`
	Audience    string `json:"audience"`
	Impact      string `json:"impact"`
	UniqueValue string `json:"uniqueValue"`
	Timeframe   string `json:"timeframe"`
	ActionVerb  string `json:"actionVerb"`
}

// Complete reports whether the answers carry purpose, audience and verb.
func (a WorkshopAnswers) Complete() bool {
	return a.Purpose != "" && a.Audience != "" && a.ActionVerb != ""
}

func optional(prefix, value string) string {
	if value == "" {
		return ""
	}
	return prefix + value
}

// GenerateMission fills the industry's template with the answers. It returns
// "" unless the answers are complete.
func GenerateMission(a WorkshopAnswers, ind Industry) string {
	if !a.Complete() {
		return ""
	}
	var mission string
	if ind == IndustryTechnology {
		mission = a.ActionVerb + " " + a.Audience + " through " + a.Purpose +
			optional(" ", a.UniqueValue) + optional(" to ", a.Impact) + optional(" ", a.Timeframe) + "."
	} else {
		mission = "To " + lowerText(a.ActionVerb) + " " + a.Audience + " by " + a.Purpose +
			optional(" ", a.UniqueValue) + optional(", ", a.Impact) + optional(" ", a.Timeframe) + "."
	}
	return collapse(mission)
}

// PreviewMission renders partially filled answers with placeholders for the
// missing verb and audience.
func PreviewMission(a WorkshopAnswers, ind Industry) string {
	switch {
	case a.Purpose == "" && a.Audience == "":
		return ""
	case a.Complete():
		return GenerateMission(a, ind)
	case a.Purpose != "" && a.Audience != "":
		return collapse("To [ACTION VERB] " + a.Audience + " by " + a.Purpose +
			optional(", ", a.Impact) + optional(" ", a.UniqueValue) + optional(" ", a.Timeframe) + ".")
	case a.Purpose != "":
		return collapse("To [ACTION VERB] [TARGET AUDIENCE] by " + a.Purpose + ".")
	}
	return ""
}

// collapse folds whitespace runs to one space and trims the ends.
func collapse(s string) string {
	return strings.Join(words(s), " ")
}
