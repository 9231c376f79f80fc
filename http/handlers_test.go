package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-eligibility/repository"
	"loan-eligibility/service"
)

const evaluateBody = `{
	"identity": {"id_number": "ABCDE1234F", "name": "ASHA RAO", "date_of_birth": "1990-04-12"},
	"credit_report": {
		"score": 780,
		"accounts": [
			{"accountType": 1, "currentBalance": 300000, "highCreditAmount": 500000, "repaymentTenure": 60},
			{"accountType": 5, "currentBalance": 150000, "highCreditAmount": 200000, "repaymentTenure": 36, "emiAmount": 5000}
		]
	},
	"vehicle": {"make": "MARUTI SUZUKI", "model": "SWIFT", "registrationDate": "2021-03-15", "fuelType": "PETROL"},
	"economics": {"monthly_income": 85000, "employment_type": "salaried", "loan_purpose": "purchase"}
}`

func newTestRouter(t *testing.T, capacity int) http.Handler {
	t.Helper()

	policies := repository.NewPolicyRepositoryMemory()
	require.NoError(t, policies.Seed(context.Background(), repository.DefaultPolicies()))

	logger := zerolog.Nop()
	eligibility := service.NewEligibilityService(
		service.NewTradelineClassifier(nil),
		service.NewValuationService(service.DefaultValuationConfig(), nil, nil, logger),
		service.NewPolicyMatcher(),
		service.NewReportAssembler(),
		service.DefaultRateCard(),
		logger,
	).WithClock(func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) })

	limiter := NewRateLimiter(capacity, time.Minute)
	t.Cleanup(limiter.Stop)

	return NewRouter(Handlers{
		Loan:        NewLoanHandler(service.NewLoanService(), logger),
		Eligibility: NewEligibilityHandler(eligibility, policies, logger),
	}, limiter, logger)
}

func do(h http.Handler, method, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestEvaluateHandler(t *testing.T) {
	h := newTestRouter(t, 100)

	rec := do(h, http.MethodPost, "/eligibility/evaluate", "application/json", evaluateBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report struct {
		ReportID string `json:"report_id"`
		Eligible bool   `json:"eligible"`
		Offers   []struct {
			LenderName string `json:"lender_name"`
		} `json:"offers"`
		Vehicle struct {
			EstimatedValue string `json:"estimated_value"`
		} `json:"vehicle"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.NotEmpty(t, report.ReportID)
	assert.True(t, report.Eligible)
	assert.Equal(t, "HDFC Bank", report.Offers[0].LenderName)
	assert.Equal(t, "₹4.1L", report.Vehicle.EstimatedValue)
}

func TestEvaluateHandler_Errors(t *testing.T) {
	h := newTestRouter(t, 100)

	tests := []struct {
		name        string
		method      string
		contentType string
		body        string
		wantStatus  int
	}{
		{"wrong method", http.MethodGet, "", "", http.StatusMethodNotAllowed},
		{"wrong content type", http.MethodPost, "text/plain", evaluateBody, http.StatusUnsupportedMediaType},
		{"malformed json", http.MethodPost, "application/json", `{"identity":`, http.StatusBadRequest},
		{"unknown purpose", http.MethodPost, "application/json",
			strings.Replace(evaluateBody, `"purchase"`, `"lease"`, 1), http.StatusBadRequest},
		{"missing score", http.MethodPost, "application/json",
			strings.Replace(evaluateBody, `"score": 780,`, ``, 1), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(h, tt.method, "/eligibility/evaluate", tt.contentType, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestPrequalifyHandler(t *testing.T) {
	h := newTestRouter(t, 100)

	body := `{"credit_score": 600, "monthly_income": 16000, "employment_type": "salaried", "fuel_type": "diesel", "loan_purpose": "refinance"}`
	rec := do(h, http.MethodPost, "/eligibility/prequalify", "application/json", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Eligible bool `json:"eligible"`
		Offers   []struct {
			LenderName string `json:"lender_name"`
		} `json:"offers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Eligible)
	require.Len(t, resp.Offers, 1)
	assert.Equal(t, "Mahindra Finance", resp.Offers[0].LenderName)

	rec = do(h, http.MethodPost, "/eligibility/prequalify", "application/json",
		`{"credit_score": 300, "monthly_income": 1000, "employment_type": "salaried", "fuel_type": "diesel", "loan_purpose": "refinance"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"eligible": false, "offers": []}`, rec.Body.String())
}

func TestLoanHandler(t *testing.T) {
	h := newTestRouter(t, 100)

	rec := do(h, http.MethodPost, "/loan/emi", "application/json", `{"amount": 500000, "interest_rate": 12, "term_months": 60}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"monthly_payment":"11122.22"`)

	rec = do(h, http.MethodPost, "/loan/emi", "application/json", `{"amount": 500000, "interest_rate": 12, "term_months": 0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid argument")
}

func TestListPoliciesAndHealth(t *testing.T) {
	h := newTestRouter(t, 100)

	rec := do(h, http.MethodGet, "/policies", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var policies []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &policies))
	assert.Len(t, policies, len(repository.DefaultPolicies()))

	rec = do(h, http.MethodPost, "/policies", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = do(h, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RateLimitsPostEndpoints(t *testing.T) {
	h := newTestRouter(t, 2)
	body := `{"amount": 1000, "interest_rate": 10, "term_months": 12}`

	assert.Equal(t, http.StatusOK, do(h, http.MethodPost, "/loan/emi", "application/json", body).Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodPost, "/loan/emi", "application/json", body).Code)

	rec := do(h, http.MethodPost, "/loan/emi", "application/json", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "30", rec.Header().Get("Retry-After"))

	prequalify := `{"credit_score": 700, "monthly_income": 30000, "employment_type": "salaried", "fuel_type": "petrol", "loan_purpose": "purchase"}`
	assert.Equal(t, http.StatusOK, do(h, http.MethodPost, "/eligibility/prequalify", "application/json", prequalify).Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/policies", "", "").Code)
}

func TestPostRoutesRequireJSON(t *testing.T) {
	h := newTestRouter(t, 100)

	routes := map[string]string{
		"/eligibility/evaluate":   evaluateBody,
		"/eligibility/prequalify": `{"credit_score": 700, "monthly_income": 30000, "employment_type": "salaried", "fuel_type": "petrol", "loan_purpose": "purchase"}`,
		"/loan/emi":               `{"amount": 1000, "interest_rate": 10, "term_months": 12}`,
	}
	for route, body := range routes {
		t.Run(route, func(t *testing.T) {
			rec := do(h, http.MethodPost, route, "text/plain", body)
			assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

			rec = do(h, http.MethodPost, route, "", body)
			assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

			rec = do(h, http.MethodPost, route, "application/json; charset=utf-8", body)
			assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		})
	}
}
