package service

import (
	"sort"

	"loan-eligibility/domain"
)

type PolicyMatcher struct{}

func NewPolicyMatcher() *PolicyMatcher {
	return &PolicyMatcher{}
}

// Match returns the policies the applicant qualifies for, ordered by ascending
// roiMin. An empty result is a valid outcome. Categorical profile values are
// checked against their closed enumerations before any policy is read.
func (m *PolicyMatcher) Match(
	profile domain.ApplicantProfile,
	policies []domain.LenderPolicy,
) ([]domain.LenderPolicy, error) {

	if !profile.LoanPurpose.Valid() {
		return nil, &domain.UnknownEnumValueError{Kind: "loan purpose", Value: string(profile.LoanPurpose)}
	}
	if !profile.EmploymentType.Valid() {
		return nil, &domain.UnknownEnumValueError{Kind: "employment type", Value: string(profile.EmploymentType)}
	}
	if !profile.FuelTypePreference.Valid() {
		return nil, &domain.UnknownEnumValueError{Kind: "fuel type", Value: string(profile.FuelTypePreference)}
	}

	matches := []domain.LenderPolicy{}
	for _, p := range policies {
		ok, err := eligible(profile, p)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, p)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].RoiMin.LessThan(matches[j].RoiMin)
	})
	return matches, nil
}

func eligible(profile domain.ApplicantProfile, p domain.LenderPolicy) (bool, error) {
	if p.MinCibilScore > profile.CreditScore {
		return false, nil
	}
	if p.MinIncome.GreaterThan(profile.MonthlyIncome) {
		return false, nil
	}

	purposeOK, err := p.PurposeAllowed(profile.LoanPurpose)
	if err != nil || !purposeOK {
		return false, err
	}
	employmentOK, err := p.EmploymentAllowed(profile.EmploymentType)
	if err != nil || !employmentOK {
		return false, err
	}
	return p.FuelAllowed(profile.FuelTypePreference)
}
