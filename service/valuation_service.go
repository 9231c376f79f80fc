package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"loan-eligibility/domain"
	"loan-eligibility/repository"
)

// MaxEstimateTimeout bounds the single external estimate call.
const MaxEstimateTimeout = 30 * time.Second

// BaseValueEntry maps a make substring to a new-vehicle base value.
type BaseValueEntry struct {
	MakeSubstring string
	BaseValue     decimal.Decimal
}

// DefaultBaseValues is ordered: the first case-insensitive substring match
// wins, so more specific keys must come before keys they contain.
func DefaultBaseValues() []BaseValueEntry {
	return []BaseValueEntry{
		{MakeSubstring: "MARUTI", BaseValue: decimal.NewFromInt(600_000)},
		{MakeSubstring: "HYUNDAI", BaseValue: decimal.NewFromInt(800_000)},
		{MakeSubstring: "TATA", BaseValue: decimal.NewFromInt(750_000)},
		{MakeSubstring: "MAHINDRA", BaseValue: decimal.NewFromInt(1_000_000)},
		{MakeSubstring: "HONDA", BaseValue: decimal.NewFromInt(900_000)},
		{MakeSubstring: "TOYOTA", BaseValue: decimal.NewFromInt(1_200_000)},
		{MakeSubstring: "KIA", BaseValue: decimal.NewFromInt(1_000_000)},
		{MakeSubstring: "RENAULT", BaseValue: decimal.NewFromInt(550_000)},
		{MakeSubstring: "NISSAN", BaseValue: decimal.NewFromInt(650_000)},
		{MakeSubstring: "VOLKSWAGEN", BaseValue: decimal.NewFromInt(900_000)},
		{MakeSubstring: "SKODA", BaseValue: decimal.NewFromInt(1_100_000)},
		{MakeSubstring: "MG", BaseValue: decimal.NewFromInt(1_200_000)},
		{MakeSubstring: "FORD", BaseValue: decimal.NewFromInt(800_000)},
	}
}

// ExternalValuer supplies an override estimate, e.g. from a generative model
// or a third-party pricing service.
type ExternalValuer interface {
	EstimateValue(
		ctx context.Context,
		vehicle domain.VehicleProfile,
		baseline domain.MarketValuation,
	) (domain.ExternalEstimate, error)
}

type ValuationConfig struct {
	BaseValues       []BaseValueEntry
	DefaultBaseValue decimal.Decimal
	EstimateTimeout  time.Duration
	CacheTTL         time.Duration
}

func DefaultValuationConfig() ValuationConfig {
	return ValuationConfig{
		BaseValues:       DefaultBaseValues(),
		DefaultBaseValue: DefaultBaseValue,
		EstimateTimeout:  15 * time.Second,
		CacheTTL:         24 * time.Hour,
	}
}

type ValuationService struct {
	cfg    ValuationConfig
	valuer ExternalValuer
	cache  repository.CacheRepository
	logger zerolog.Logger
}

// NewValuationService builds the estimator. valuer and cache may be nil, in
// which case only the depreciation model is used.
func NewValuationService(
	cfg ValuationConfig,
	valuer ExternalValuer,
	cache repository.CacheRepository,
	logger zerolog.Logger,
) *ValuationService {
	if cfg.EstimateTimeout <= 0 || cfg.EstimateTimeout > MaxEstimateTimeout {
		cfg.EstimateTimeout = MaxEstimateTimeout
	}
	return &ValuationService{
		cfg:    cfg,
		valuer: valuer,
		cache:  cache,
		logger: logger.With().Str("component", "valuation").Logger(),
	}
}

// Estimate applies the deterministic depreciation model:
// marketValue = baseValue * (1 - min(age*0.08, 0.5)).
func (s *ValuationService) Estimate(
	vehicle domain.VehicleProfile,
	asOf time.Time,
) (domain.MarketValuation, error) {
	if strings.TrimSpace(vehicle.Make) == "" {
		return domain.MarketValuation{}, domain.NewValidationError("make", "is required")
	}
	if vehicle.RegistrationDate.IsZero() {
		return domain.MarketValuation{}, domain.NewValidationError("registrationDate", "is required")
	}

	age := vehicle.AgeYears(asOf)
	base := s.baseValue(vehicle.Make)

	rate := DepreciationPerYear.Mul(decimal.NewFromInt(int64(age)))
	if rate.GreaterThan(MaxDepreciation) {
		rate = MaxDepreciation
	}
	value := base.Mul(decimal.NewFromInt(1).Sub(rate)).Round(0)

	return domain.MarketValuation{
		Vehicle:            vehicle,
		AgeYears:           age,
		BaseValue:          base,
		DepreciationRate:   rate,
		DeterministicValue: value,
		MarketValue:        value,
		Source:             domain.ValuationSourceDepreciation,
	}, nil
}

// EstimateWithOverride computes the deterministic estimate and, when an
// external valuer is configured, replaces the market value with at most one
// external estimate. Any external failure degrades to the deterministic value.
func (s *ValuationService) EstimateWithOverride(
	ctx context.Context,
	vehicle domain.VehicleProfile,
	asOf time.Time,
) (domain.MarketValuation, error) {
	valuation, err := s.Estimate(vehicle, asOf)
	if err != nil {
		return domain.MarketValuation{}, err
	}
	if s.valuer == nil {
		valuationSourceTotal.WithLabelValues(string(valuation.Source)).Inc()
		return valuation, nil
	}

	key := estimateCacheKey(vehicle)
	if est, ok := s.cachedEstimate(ctx, key); ok {
		return s.applyOverride(valuation, est), nil
	}

	est, err := s.fetchEstimate(ctx, vehicle, valuation)
	if err != nil {
		externalEstimateFailuresTotal.Inc()
		s.logger.Warn().Err(err).
			Str("make", vehicle.Make).
			Str("model", vehicle.Model).
			Msg("Falling back to depreciation model")
		valuationSourceTotal.WithLabelValues(string(valuation.Source)).Inc()
		return valuation, nil
	}

	s.storeEstimate(ctx, key, est)
	return s.applyOverride(valuation, est), nil
}

func (s *ValuationService) fetchEstimate(
	ctx context.Context,
	vehicle domain.VehicleProfile,
	baseline domain.MarketValuation,
) (domain.ExternalEstimate, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.EstimateTimeout)
	defer cancel()

	est, err := s.valuer.EstimateValue(callCtx, vehicle, baseline)
	if err != nil {
		if errors.Is(err, domain.ErrExternalEstimateUnavailable) {
			return domain.ExternalEstimate{}, err
		}
		return domain.ExternalEstimate{}, fmt.Errorf("%w: %v", domain.ErrExternalEstimateUnavailable, err)
	}
	if !est.Value.IsPositive() {
		return domain.ExternalEstimate{}, fmt.Errorf("%w: non-positive estimate %s", domain.ErrExternalEstimateUnavailable, est.Value)
	}
	return est, nil
}

func (s *ValuationService) applyOverride(
	valuation domain.MarketValuation,
	est domain.ExternalEstimate,
) domain.MarketValuation {
	valuation.MarketValue = est.Value.Round(0)
	valuation.Source = domain.ValuationSourceExternal
	valuation.Rationale = est.Rationale
	valuationSourceTotal.WithLabelValues(string(valuation.Source)).Inc()
	return valuation
}

func (s *ValuationService) baseValue(vehicleMake string) decimal.Decimal {
	normalized := strings.ToUpper(vehicleMake)
	for _, entry := range s.cfg.BaseValues {
		if strings.Contains(normalized, strings.ToUpper(entry.MakeSubstring)) {
			return entry.BaseValue
		}
	}
	return s.cfg.DefaultBaseValue
}

func (s *ValuationService) cachedEstimate(ctx context.Context, key string) (domain.ExternalEstimate, bool) {
	if s.cache == nil {
		return domain.ExternalEstimate{}, false
	}
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return domain.ExternalEstimate{}, false
	}
	var est domain.ExternalEstimate
	if err := json.Unmarshal([]byte(raw), &est); err != nil || !est.Value.IsPositive() {
		return domain.ExternalEstimate{}, false
	}
	return est, true
}

func (s *ValuationService) storeEstimate(ctx context.Context, key string, est domain.ExternalEstimate) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(est)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.cfg.CacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Failed to cache external estimate")
	}
}

func estimateCacheKey(v domain.VehicleProfile) string {
	return fmt.Sprintf("valuation:%s:%s:%d",
		strings.ToLower(strings.TrimSpace(v.Make)),
		strings.ToLower(strings.TrimSpace(v.Model)),
		v.RegistrationDate.Year())
}
