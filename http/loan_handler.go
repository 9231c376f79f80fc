package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"loan-eligibility/domain"
	"loan-eligibility/service"
)

type LoanHandler struct {
	service *service.LoanService
	logger  zerolog.Logger
}

func NewLoanHandler(service *service.LoanService, logger zerolog.Logger) *LoanHandler {
	return &LoanHandler{service: service, logger: logger}
}

// CalculateLoan quotes the EMI of a prospective loan.
func (h *LoanHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !requireJSON(w, r) {
		return
	}

	var input domain.LoanInput
	if err := decodeJSON(w, r, &input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.CalculateLoan(input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}
