package ai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/pairhealth/pkg/coerce"
)

func TestNormalizeConsultEmpty(t *testing.T) {
	got := NormalizeConsult(coerce.Object{})
	require.Equal(t, "", got.Answer)
	require.Equal(t, []string{}, got.Recommendations)
	require.Equal(t, []any{}, got.RecommendedServices)

	payload, err := json.Marshal(got)
	require.NoError(t, err)
	require.JSONEq(t, `{"answer":"","recommendations":[],"recommendedServices":[]}`, string(payload))

	require.Equal(t, got.Recommendations, NormalizeConsult(nil).Recommendations)
}

func TestNormalizeConsultContentAndServices(t *testing.T) {
	got := NormalizeConsult(coerce.Object{
		"content":             "hi",
		"recommendedServices": []any{"a", "b"},
	})
	require.Equal(t, "hi", got.Answer)
	require.Equal(t, []string{"a", "b"}, got.Recommendations)
	require.Equal(t, []any{"a", "b"}, got.RecommendedServices)
}

func TestNormalizeConsultFlattensObjects(t *testing.T) {
	got := NormalizeConsult(coerce.Object{
		"answer": "",
		"reply":  "fallback reply",
		"recommendList": coerce.Object{"items": []any{
			coerce.Object{"title": "Sleep", "reason": "rest more"},
			coerce.Object{"name": "Walk"},
			coerce.Object{"description": "only reason"},
			coerce.Object{},
			"plain",
			"",
			json.Number("3"),
		}},
		"sessionId": "s-1",
	})
	require.Equal(t, "fallback reply", got.Answer)
	require.Equal(t, []string{"Sleep：rest more", "Walk", "only reason", "plain"}, got.Recommendations)
	require.Equal(t, []any{}, got.RecommendedServices)

	payload, err := json.Marshal(got)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	require.Equal(t, "s-1", decoded["sessionId"])
	require.Equal(t, "fallback reply", decoded["answer"])
}

func TestNormalizePage(t *testing.T) {
	page := NormalizePage([]any{1, 2, 3})
	require.Equal(t, []any{1, 2, 3}, page.Records)
	require.Equal(t, 3, page.Total)
	require.Equal(t, 3, page.Size)
	require.Equal(t, 1, page.Current)
	require.Equal(t, 1, page.Pages)

	page = NormalizePage(coerce.Object{"records": []any{"x"}, "total": "12", "pages": json.Number("6")})
	require.Equal(t, 12, page.Total)
	require.Equal(t, 1, page.Size)
	require.Equal(t, 6, page.Pages)
}

func TestNormalizeQuickQuestions(t *testing.T) {
	got := NormalizeQuickQuestions(coerce.Object{"list": []any{
		"How to sleep better?",
		coerce.Object{"question": "q1"},
		coerce.Object{"title": "q2"},
		coerce.Object{"content": "q3"},
		coerce.Object{"text": "q4"},
		coerce.Object{"other": "ignored"},
		nil,
	}})
	require.Equal(t, []string{"How to sleep better?", "q1", "q2", "q3", "q4"}, got)
	require.Equal(t, []string{}, NormalizeQuickQuestions("nope"))
}
