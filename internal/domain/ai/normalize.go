package ai

import (
	"github.com/yanqian/pairhealth/pkg/coerce"
)

// Field-name candidates, in priority order.
var (
	answerKeys              = []string{"answer", "content", "reply"}
	recommendationListKeys  = []string{"recommendations", "recommendedServices", "recommendList"}
	recommendationTitleKeys = []string{"name", "title", "question", "text"}
	recommendationWhyKeys   = []string{"reason", "description"}
	quickQuestionKeys       = []string{"question", "title", "content", "text"}
)

// NormalizeConsult maps any consult payload to ConsultResult. Answer is
// never missing and recommendations hold only non-empty strings.
func NormalizeConsult(data any) ConsultResult {
	obj := coerce.AsObject(data)

	raw := coerce.Array(coerce.FirstTruthy(obj, recommendationListKeys...))
	recommendations := make([]string, 0, len(raw))
	for _, item := range raw {
		if text := normalizeRecommendation(item); text != "" {
			recommendations = append(recommendations, text)
		}
	}

	return ConsultResult{
		Answer:              coerce.String(obj, answerKeys...),
		Recommendations:     recommendations,
		RecommendedServices: coerce.Array(obj["recommendedServices"]),
		Extra:               coerce.Without(obj, "answer", "recommendations", "recommendedServices"),
	}
}

// normalizeRecommendation flattens a string or {title, reason} entry.
func normalizeRecommendation(item any) string {
	if s, ok := item.(string); ok {
		return s
	}
	obj := coerce.ObjectOrNil(item)
	if obj == nil {
		return ""
	}
	title := coerce.String(obj, recommendationTitleKeys...)
	reason := coerce.String(obj, recommendationWhyKeys...)
	switch {
	case title == "":
		return reason
	case reason == "":
		return title
	default:
		return title + "：" + reason
	}
}

// NormalizePage maps a paginated payload whose records pass through as is.
func NormalizePage(data any) coerce.Page[any] {
	return coerce.PageOf(data, coerce.Identity)
}

// NormalizeQuickQuestions keeps the non-empty question texts.
func NormalizeQuickQuestions(data any) []string {
	raw := coerce.Array(data)
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if q := normalizeQuickQuestion(item); q != "" {
			out = append(out, q)
		}
	}
	return out
}

func normalizeQuickQuestion(item any) string {
	if s, ok := item.(string); ok {
		return s
	}
	return coerce.String(coerce.ObjectOrNil(item), quickQuestionKeys...)
}
