package repository

import (
	"context"

	"loan-eligibility/domain"
)

// PolicyRepository is the data-access collaborator for the lender policy
// table. The pipeline only ever reads a List snapshot.
type PolicyRepository interface {
	List(ctx context.Context) ([]domain.LenderPolicy, error)
	Seed(ctx context.Context, policies []domain.LenderPolicy) error
}
