package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-eligibility/domain"
)

func TestParseValuationReply(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"plain", `{"estimated_value": 452000, "rationale": "popular"}`, "452000"},
		{"fenced", "```json\n{\"estimated_value\": \"398500.50\", \"rationale\": \"ok\"}\n```", "398500.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := parseValuationReply(tt.content)
			require.NoError(t, err)
			assertDecimal(t, tt.want, reply.EstimatedValue)
		})
	}

	_, err := parseValuationReply("about four lakh rupees")
	assert.Error(t, err)
}

func TestOpenAIValuer_Disabled(t *testing.T) {
	v := NewOpenAIValuer("", "", "")
	assert.False(t, v.Enabled())

	_, err := v.EstimateValue(context.Background(), vehicle("MARUTI", 2021), domain.MarketValuation{})
	assert.ErrorIs(t, err, domain.ErrExternalEstimateUnavailable)
}

func TestOpenAIValuer_EstimateValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": `{"estimated_value": 431000, "rationale": "strong resale demand"}`,
				},
			}},
		})
	}))
	defer srv.Close()

	v := NewOpenAIValuer("test-key", "", srv.URL+"/v1")
	require.True(t, v.Enabled())

	baseline, err := newTestValuation(nil, nil).Estimate(vehicle("MARUTI", 2021), asOf2025)
	require.NoError(t, err)

	est, err := v.EstimateValue(context.Background(), baseline.Vehicle, baseline)
	require.NoError(t, err)
	assertDecimal(t, "431000", est.Value)
	assert.Equal(t, "strong resale demand", est.Rationale)
}

func TestOpenAIValuer_UpstreamErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := newTestValuation(NewOpenAIValuer("test-key", "", srv.URL+"/v1"), nil)

	v, err := s.EstimateWithOverride(context.Background(), vehicle("MARUTI", 2021), asOf2025)
	require.NoError(t, err)
	assert.Equal(t, domain.ValuationSourceDepreciation, v.Source)
}
