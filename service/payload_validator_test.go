package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-eligibility/domain"
)

func TestPayloadValidator(t *testing.T) {
	v := NewPayloadValidator()

	require.NoError(t, v.Validate(sampleRequest()))

	req := sampleRequest()
	req.Credit.Score = nil
	err := v.Validate(req)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "credit_report.score: is required")

	req = sampleRequest()
	req.Identity.DateOfBirth = "12-04-1990"
	err = v.Validate(req)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "identity.date_of_birth")

	req = sampleRequest()
	req.Credit.Score = intPtr(950)
	err = v.Validate(req)
	assert.Contains(t, err.Error(), "must be at most 900")
}

func TestFieldPath(t *testing.T) {
	assert.Equal(t, "credit_report.accounts[0].accountType", fieldPath("EvaluationRequest.credit_report.accounts[0].accountType"))
	assert.Equal(t, "score", fieldPath("score"))
}
