package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-eligibility/domain"
	"loan-eligibility/repository"
)

type fakeValuer struct {
	mu       sync.Mutex
	estimate domain.ExternalEstimate
	err      error
	block    bool
	calls    int
}

func (f *fakeValuer) EstimateValue(
	ctx context.Context,
	_ domain.VehicleProfile,
	_ domain.MarketValuation,
) (domain.ExternalEstimate, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return domain.ExternalEstimate{}, ctx.Err()
	}
	return f.estimate, f.err
}

func (f *fakeValuer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var asOf2025 = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

func vehicle(vehicleMake string, year int) domain.VehicleProfile {
	return domain.VehicleProfile{
		Make:             vehicleMake,
		Model:            "SWIFT VXI",
		RegistrationDate: time.Date(year, time.March, 15, 0, 0, 0, 0, time.UTC),
		FuelType:         "PETROL",
	}
}

func newTestValuation(valuer ExternalValuer, cache repository.CacheRepository) *ValuationService {
	return NewValuationService(DefaultValuationConfig(), valuer, cache, zerolog.Nop())
}

func TestEstimate_Depreciation(t *testing.T) {
	s := newTestValuation(nil, nil)

	v, err := s.Estimate(vehicle("MARUTI SUZUKI INDIA LTD", 2021), asOf2025)
	require.NoError(t, err)

	assert.Equal(t, 4, v.AgeYears)
	assertDecimal(t, "600000", v.BaseValue)
	assertDecimal(t, "0.32", v.DepreciationRate)
	assertDecimal(t, "408000", v.MarketValue)
	assertDecimal(t, "408000", v.DeterministicValue)
	assert.Equal(t, domain.ValuationSourceDepreciation, v.Source)
}

func TestEstimate_DepreciationIsCapped(t *testing.T) {
	s := newTestValuation(nil, nil)

	for _, year := range []int{2018, 2010, 1995} {
		v, err := s.Estimate(vehicle("Hyundai Motor", year), asOf2025)
		require.NoError(t, err)
		assertDecimal(t, "0.5", v.DepreciationRate)
		assertDecimal(t, "400000", v.MarketValue)
	}
}

func TestEstimate_FutureRegistrationIsNew(t *testing.T) {
	s := newTestValuation(nil, nil)

	v, err := s.Estimate(vehicle("TATA MOTORS", 2027), asOf2025)
	require.NoError(t, err)
	assert.Equal(t, 0, v.AgeYears)
	assertDecimal(t, "750000", v.MarketValue)
}

func TestEstimate_UnknownMakeUsesDefaultBase(t *testing.T) {
	s := newTestValuation(nil, nil)

	v, err := s.Estimate(vehicle("BAJAJ AUTO", 2025), asOf2025)
	require.NoError(t, err)
	assertDecimal(t, "500000", v.BaseValue)
	assertDecimal(t, "500000", v.MarketValue)
}

func TestEstimate_FirstListedMatchWins(t *testing.T) {
	cfg := DefaultValuationConfig()
	cfg.BaseValues = []BaseValueEntry{
		{MakeSubstring: "tata", BaseValue: dec("100")},
		{MakeSubstring: "mahindra", BaseValue: dec("200")},
	}
	s := NewValuationService(cfg, nil, nil, zerolog.Nop())

	v, err := s.Estimate(vehicle("Mahindra & Tata Joint", 2025), asOf2025)
	require.NoError(t, err)
	assertDecimal(t, "100", v.BaseValue)
}

func TestEstimate_Validation(t *testing.T) {
	s := newTestValuation(nil, nil)

	_, err := s.Estimate(domain.VehicleProfile{Make: "  ", RegistrationDate: asOf2025}, asOf2025)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = s.Estimate(domain.VehicleProfile{Make: "HONDA"}, asOf2025)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestEstimateWithOverride_UsesExternalEstimate(t *testing.T) {
	valuer := &fakeValuer{estimate: domain.ExternalEstimate{Value: dec("452000.4"), Rationale: "popular model"}}
	s := newTestValuation(valuer, repository.NewMemoryCache())

	v, err := s.EstimateWithOverride(context.Background(), vehicle("MARUTI", 2021), asOf2025)
	require.NoError(t, err)

	assert.Equal(t, domain.ValuationSourceExternal, v.Source)
	assertDecimal(t, "452000", v.MarketValue)
	assertDecimal(t, "408000", v.DeterministicValue)
	assert.Equal(t, "popular model", v.Rationale)
	assert.Equal(t, 1, valuer.callCount())
}

func TestEstimateWithOverride_FallsBackOnFailure(t *testing.T) {
	tests := []struct {
		name   string
		valuer *fakeValuer
	}{
		{"error", &fakeValuer{err: errors.New("connection refused")}},
		{"non-positive value", &fakeValuer{estimate: domain.ExternalEstimate{Value: dec("0")}}},
		{"unavailable", &fakeValuer{err: domain.ErrExternalEstimateUnavailable}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestValuation(tt.valuer, nil)

			v, err := s.EstimateWithOverride(context.Background(), vehicle("MARUTI", 2021), asOf2025)
			require.NoError(t, err)
			assert.Equal(t, domain.ValuationSourceDepreciation, v.Source)
			assertDecimal(t, "408000", v.MarketValue)
			assert.Equal(t, 1, tt.valuer.callCount())
		})
	}
}

func TestEstimateWithOverride_TimesOut(t *testing.T) {
	valuer := &fakeValuer{block: true}
	cfg := DefaultValuationConfig()
	cfg.EstimateTimeout = 20 * time.Millisecond
	s := NewValuationService(cfg, valuer, nil, zerolog.Nop())

	v, err := s.EstimateWithOverride(context.Background(), vehicle("MARUTI", 2021), asOf2025)
	require.NoError(t, err)
	assert.Equal(t, domain.ValuationSourceDepreciation, v.Source)
	assertDecimal(t, "408000", v.MarketValue)
}

func TestEstimateWithOverride_CachesEstimate(t *testing.T) {
	valuer := &fakeValuer{estimate: domain.ExternalEstimate{Value: dec("450000"), Rationale: "cached"}}
	cache := repository.NewMemoryCache()
	s := newTestValuation(valuer, cache)

	for i := 0; i < 3; i++ {
		v, err := s.EstimateWithOverride(context.Background(), vehicle("MARUTI", 2021), asOf2025)
		require.NoError(t, err)
		assertDecimal(t, "450000", v.MarketValue)
	}
	assert.Equal(t, 1, valuer.callCount())

	_, ok := cache.Get(context.Background(), "valuation:maruti:swift vxi:2021")
	assert.True(t, ok)
}

func TestEstimateWithOverride_InvalidVehicleStillFails(t *testing.T) {
	valuer := &fakeValuer{estimate: domain.ExternalEstimate{Value: dec("450000")}}
	s := newTestValuation(valuer, nil)

	_, err := s.EstimateWithOverride(context.Background(), domain.VehicleProfile{}, asOf2025)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, valuer.callCount())
}

func TestNewValuationService_ClampsTimeout(t *testing.T) {
	cfg := DefaultValuationConfig()
	cfg.EstimateTimeout = time.Hour
	s := NewValuationService(cfg, nil, nil, zerolog.Nop())
	assert.Equal(t, MaxEstimateTimeout, s.cfg.EstimateTimeout)
}
