package repository

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyRepositoryPostgres_SeedAndList(t *testing.T) {
	dsn := strings.TrimSpace(os.Getenv("LOANELIG_TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("set LOANELIG_TEST_POSTGRES_DSN to run postgres integration tests")
	}

	ctx := context.Background()
	pool, err := NewPool(ctx, dsn, 2)
	require.NoError(t, err)
	defer pool.Close()

	_, err = pool.Exec(ctx, `DROP TABLE IF EXISTS lender_policies`)
	require.NoError(t, err)

	repo := NewPolicyRepositoryPostgres(pool)
	require.NoError(t, repo.EnsureSchema(ctx))

	require.NoError(t, repo.Seed(ctx, DefaultPolicies()))
	require.NoError(t, repo.Seed(ctx, DefaultPolicies()))

	policies, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, policies, len(DefaultPolicies()))

	want := DefaultPolicies()[1]
	got := policies[1]
	assert.Equal(t, want.LenderName, got.LenderName)
	assert.Equal(t, want.ElectricAllowed, got.ElectricAllowed)
	assert.Equal(t, want.MinCibilScore, got.MinCibilScore)
	assert.True(t, want.RoiMin.Equal(got.RoiMin), "roi_min %s", got.RoiMin)
	assert.True(t, want.MinIncome.Equal(got.MinIncome), "min_income %s", got.MinIncome)
}
