package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Insurance policy names accepted by ParseInsurancePolicy.
const (
	PolicyThreeTier = "three-tier"
	PolicyTwoTier   = "two-tier"
)

// InsuranceTier applies Rate to every cost per kilogram at or above Threshold
// and below the next tier's threshold.
type InsuranceTier struct {
	Threshold decimal.Decimal `json:"threshold"`
	Rate      decimal.Decimal `json:"rate"`
}

// InsurancePolicy maps a cost per kilogram to an insurance rate.
// Tiers are sorted by ascending threshold and the first threshold is zero.
type InsurancePolicy struct {
	Name  string          `json:"name"`
	Tiers []InsuranceTier `json:"tiers"`
}

// ThreeTierPolicy charges 1% below 20, 2% from 20 to 30 and 3% from 30.
func ThreeTierPolicy() InsurancePolicy {
	return InsurancePolicy{
		Name: PolicyThreeTier,
		Tiers: []InsuranceTier{
			{Threshold: decimal.Zero, Rate: decimal.RequireFromString("0.01")},
			{Threshold: decimal.NewFromInt(20), Rate: decimal.RequireFromString("0.02")},
			{Threshold: decimal.NewFromInt(30), Rate: decimal.RequireFromString("0.03")},
		},
	}
}

// TwoTierPolicy charges 1% below 20 and 2% from 20.
func TwoTierPolicy() InsurancePolicy {
	return InsurancePolicy{
		Name: PolicyTwoTier,
		Tiers: []InsuranceTier{
			{Threshold: decimal.Zero, Rate: decimal.RequireFromString("0.01")},
			{Threshold: decimal.NewFromInt(20), Rate: decimal.RequireFromString("0.02")},
		},
	}
}

// NewInsurancePolicy builds a policy from explicit tiers.
func NewInsurancePolicy(name string, tiers []InsuranceTier) (InsurancePolicy, error) {
	p := InsurancePolicy{Name: name, Tiers: append([]InsuranceTier(nil), tiers...)}
	return p, p.Validate()
}

// Validate checks tier ordering and rate bounds.
func (p InsurancePolicy) Validate() error {
	if len(p.Tiers) == 0 {
		return errors.New("insurance policy has no tiers")
	}
	if !p.Tiers[0].Threshold.IsZero() {
		return errors.New("first insurance tier must start at zero")
	}
	one := decimal.NewFromInt(1)
	for i, t := range p.Tiers {
		if t.Rate.IsNegative() || t.Rate.GreaterThan(one) {
			return fmt.Errorf("insurance tier %d: rate must be between 0 and 1", i)
		}
		if i > 0 && !p.Tiers[i-1].Threshold.LessThan(t.Threshold) {
			return fmt.Errorf("insurance tier %d: thresholds must be strictly ascending", i)
		}
	}
	return nil
}

// Resolve returns the rate of the highest tier whose threshold is at or
// below costPerKg. A value exactly on a threshold belongs to the higher tier.
func (p InsurancePolicy) Resolve(costPerKg decimal.Decimal) decimal.Decimal {
	if len(p.Tiers) == 0 {
		return decimal.Zero
	}
	rate := p.Tiers[0].Rate
	for _, t := range p.Tiers[1:] {
		if costPerKg.LessThan(t.Threshold) {
			break
		}
		rate = t.Rate
	}
	return rate
}

// ParseInsurancePolicy returns a preset policy by name.
func ParseInsurancePolicy(name string) (InsurancePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case PolicyThreeTier, "":
		return ThreeTierPolicy(), nil
	case PolicyTwoTier:
		return TwoTierPolicy(), nil
	default:
		return InsurancePolicy{}, fmt.Errorf("unknown insurance policy %q", name)
	}
}

// ParseInsuranceTiers parses "0:0.01,20:0.02,30:0.03" into a policy.
func ParseInsuranceTiers(name, spec string) (InsurancePolicy, error) {
	parts := strings.Split(spec, ",")
	tiers := make([]InsuranceTier, 0, len(parts))
	for _, part := range parts {
		pair := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(pair) != 2 {
			return InsurancePolicy{}, fmt.Errorf("invalid insurance tier %q", part)
		}
		threshold, err := decimal.NewFromString(strings.TrimSpace(pair[0]))
		if err != nil {
			return InsurancePolicy{}, fmt.Errorf("invalid insurance threshold %q: %w", pair[0], err)
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(pair[1]))
		if err != nil {
			return InsurancePolicy{}, fmt.Errorf("invalid insurance rate %q: %w", pair[1], err)
		}
		tiers = append(tiers, InsuranceTier{Threshold: threshold, Rate: rate})
	}
	return NewInsurancePolicy(name, tiers)
}
