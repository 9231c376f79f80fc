package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/shopspring/decimal"

	"loan-eligibility/domain"
)

const valuationSystemPrompt = "You are a used-vehicle pricing analyst for the Indian market. " +
	"You estimate the current resale value of a registered vehicle in Indian rupees. " +
	"Respond only with a JSON object of the form " +
	`{"estimated_value": <number>, "rationale": "<one or two sentences>"}.`

// OpenAIValuer implements ExternalValuer with a chat completion model.
type OpenAIValuer struct {
	client  *openai.Client
	model   string
	enabled bool
}

type valuationReply struct {
	EstimatedValue decimal.Decimal `json:"estimated_value"`
	Rationale      string          `json:"rationale"`
}

// NewOpenAIValuer returns a valuer that reports every call as unavailable
// when apiKey is empty. baseURL overrides the API endpoint when set.
func NewOpenAIValuer(apiKey, model, baseURL string) *OpenAIValuer {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIValuer{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		enabled: apiKey != "",
	}
}

func (v *OpenAIValuer) Enabled() bool {
	return v.enabled
}

func (v *OpenAIValuer) EstimateValue(
	ctx context.Context,
	vehicle domain.VehicleProfile,
	baseline domain.MarketValuation,
) (domain.ExternalEstimate, error) {
	if !v.enabled {
		return domain.ExternalEstimate{}, fmt.Errorf("%w: no api key configured", domain.ErrExternalEstimateUnavailable)
	}

	prompt := fmt.Sprintf(`Estimate the current market value of this vehicle.

VEHICLE:
- Make: %s
- Model: %s
- Registration date: %s (%d years old)
- Fuel: %s
- Colour: %s

REFERENCE:
- Depreciation model estimate: Rs %s (base value Rs %s, depreciation %s%%)

Adjust for model popularity, fuel type and typical resale demand.`,
		vehicle.Make, vehicle.Model,
		vehicle.RegistrationDate.Format("2006-01-02"), baseline.AgeYears,
		vehicle.FuelType, vehicle.Color,
		baseline.DeterministicValue.StringFixed(0),
		baseline.BaseValue.StringFixed(0),
		baseline.DepreciationRate.Mul(hundred).String())

	content, err := v.complete(ctx, prompt)
	if err != nil {
		return domain.ExternalEstimate{}, err
	}

	reply, err := parseValuationReply(content)
	if err != nil {
		return domain.ExternalEstimate{}, err
	}
	return domain.ExternalEstimate{
		Value:     reply.EstimatedValue,
		Rationale: reply.Rationale,
	}, nil
}

func (v *OpenAIValuer) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := v.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: v.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: valuationSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: 200,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}
	return resp.Choices[0].Message.Content, nil
}

// parseValuationReply tolerates replies wrapped in a markdown code fence.
func parseValuationReply(content string) (valuationReply, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var reply valuationReply
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &reply); err != nil {
		return valuationReply{}, fmt.Errorf("decode valuation reply: %w", err)
	}
	return reply, nil
}
