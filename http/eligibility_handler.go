package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"loan-eligibility/domain"
	"loan-eligibility/repository"
	"loan-eligibility/service"
)

type EligibilityHandler struct {
	service  *service.EligibilityService
	policies repository.PolicyRepository
	logger   zerolog.Logger
}

func NewEligibilityHandler(
	service *service.EligibilityService,
	policies repository.PolicyRepository,
	logger zerolog.Logger,
) *EligibilityHandler {
	return &EligibilityHandler{service: service, policies: policies, logger: logger}
}

type prequalificationResponse struct {
	Eligible bool                  `json:"eligible"`
	Offers   []domain.LenderPolicy `json:"offers"`
}

// Evaluate runs the full pipeline for one applicant.
func (h *EligibilityHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !requireJSON(w, r) {
		return
	}

	var req domain.EvaluationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Debug().Err(err).Msg("Error decoding request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	policies, err := h.policies.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	report, err := h.service.Evaluate(r.Context(), req, policies)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, report)
}

// Prequalify matches a declared profile against the policy table only.
func (h *EligibilityHandler) Prequalify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !requireJSON(w, r) {
		return
	}

	var input domain.PrequalificationInput
	if err := decodeJSON(w, r, &input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	policies, err := h.policies.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	matches, err := h.service.Prequalify(input, policies)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, prequalificationResponse{
		Eligible: len(matches) > 0,
		Offers:   matches,
	})
}

// ListPolicies returns the current lender policy snapshot.
func (h *EligibilityHandler) ListPolicies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	policies, err := h.policies.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, policies)
}
