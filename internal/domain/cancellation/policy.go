package cancellation

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidPolicy   = errors.New("invalid cancellation policy")
	ErrPolicyInactive  = errors.New("cancellation policy is inactive")
	ErrPolicyOwnership = errors.New("cancellation policy belongs to another provider")
)

type PolicyType string

const (
	PolicyTypeFlexible PolicyType = "flexible"
	PolicyTypeModerate PolicyType = "moderate"
	PolicyTypeStrict   PolicyType = "strict"
	PolicyTypeCustom   PolicyType = "custom"
)

func (t PolicyType) String() string { return string(t) }

func ParsePolicyType(s string) (PolicyType, error) {
	switch t := PolicyType(s); t {
	case PolicyTypeFlexible, PolicyTypeModerate, PolicyTypeStrict, PolicyTypeCustom:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown policy type %q", ErrInvalidPolicy, s)
	}
}

// RefundRule grants RefundPercentage when at least HoursBefore hours remain.
type RefundRule struct {
	HoursBefore      float64 `json:"hours_before" yaml:"hours_before"`
	RefundPercentage float64 `json:"refund_percentage" yaml:"refund_percentage"`
}

// Fee is charged on client cancellations only.
type Fee struct {
	Percentage float64 `json:"percentage" yaml:"percentage"`
	FixedCents int64   `json:"fixed_cents" yaml:"fixed_cents"`
}

func (f Fee) AmountCents(totalCents int64) int64 {
	return int64(math.Round(float64(totalCents)*f.Percentage/100)) + f.FixedCents
}

type PolicySpec struct {
	ProviderID uuid.UUID
	Name       string
	Type       PolicyType
	Rules      []RefundRule
	Fee        Fee
}

type Policy struct {
	id               uuid.UUID
	providerID       uuid.UUID
	name             string
	policyType       PolicyType
	rules            []RefundRule
	fee              Fee
	isDefault        bool
	isActive         bool
	replacesPolicyID *uuid.UUID
	createdAt        time.Time
	updatedAt        time.Time
}

func NewPolicy(spec PolicySpec, now time.Time) (*Policy, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	return &Policy{
		id:         uuid.New(),
		providerID: spec.ProviderID,
		name:       strings.TrimSpace(spec.Name),
		policyType: spec.Type,
		rules:      append([]RefundRule(nil), spec.Rules...),
		fee:        spec.Fee,
		isActive:   true,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func (s PolicySpec) validate() error {
	if s.ProviderID == uuid.Nil {
		return fmt.Errorf("%w: provider is required", ErrInvalidPolicy)
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPolicy)
	}
	if _, err := ParsePolicyType(string(s.Type)); err != nil {
		return err
	}
	if s.Type != PolicyTypeStrict && len(s.Rules) == 0 {
		return fmt.Errorf("%w: at least one refund rule is required", ErrInvalidPolicy)
	}
	seen := make(map[float64]struct{}, len(s.Rules))
	for _, r := range s.Rules {
		if math.IsNaN(r.HoursBefore) || math.IsInf(r.HoursBefore, 0) {
			return fmt.Errorf("%w: hours_before must be finite", ErrInvalidPolicy)
		}
		if r.RefundPercentage < 0 || r.RefundPercentage > 100 {
			return fmt.Errorf("%w: refund percentage must be between 0 and 100", ErrInvalidPolicy)
		}
		if _, dup := seen[r.HoursBefore]; dup {
			return fmt.Errorf("%w: duplicate hours_before %v", ErrInvalidPolicy, r.HoursBefore)
		}
		seen[r.HoursBefore] = struct{}{}
	}
	if s.Fee.Percentage < 0 || s.Fee.Percentage > 100 {
		return fmt.Errorf("%w: fee percentage must be between 0 and 100", ErrInvalidPolicy)
	}
	if s.Fee.FixedCents < 0 {
		return fmt.Errorf("%w: fixed fee cannot be negative", ErrInvalidPolicy)
	}
	return nil
}

type ReconstructParams struct {
	ID               uuid.UUID
	ProviderID       uuid.UUID
	Name             string
	Type             PolicyType
	Rules            []RefundRule
	Fee              Fee
	IsDefault        bool
	IsActive         bool
	ReplacesPolicyID *uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func ReconstructPolicy(p ReconstructParams) *Policy {
	return &Policy{
		id:               p.ID,
		providerID:       p.ProviderID,
		name:             p.Name,
		policyType:       p.Type,
		rules:            p.Rules,
		fee:              p.Fee,
		isDefault:        p.IsDefault,
		isActive:         p.IsActive,
		replacesPolicyID: p.ReplacesPolicyID,
		createdAt:        p.CreatedAt,
		updatedAt:        p.UpdatedAt,
	}
}

// Revise returns a new revision carrying the default flag, and deactivates p.
// Reservations keep pointing at p, so their terms do not change.
func (p *Policy) Revise(spec PolicySpec, now time.Time) (*Policy, error) {
	if !p.isActive {
		return nil, ErrPolicyInactive
	}
	if spec.ProviderID != p.providerID {
		return nil, ErrPolicyOwnership
	}
	next, err := NewPolicy(spec, now)
	if err != nil {
		return nil, err
	}
	id := p.id
	next.replacesPolicyID = &id
	next.isDefault = p.isDefault

	p.isActive = false
	p.isDefault = false
	p.updatedAt = now
	return next, nil
}

func (p *Policy) MarkDefault(now time.Time) error {
	if !p.isActive {
		return ErrPolicyInactive
	}
	p.isDefault = true
	p.updatedAt = now
	return nil
}

func (p *Policy) UnmarkDefault(now time.Time) {
	p.isDefault = false
	p.updatedAt = now
}

func (p *Policy) Deactivate(now time.Time) {
	p.isActive = false
	p.isDefault = false
	p.updatedAt = now
}

func (p *Policy) OwnedBy(providerID uuid.UUID) bool { return p.providerID == providerID }

func (p *Policy) ID() uuid.UUID                { return p.id }
func (p *Policy) ProviderID() uuid.UUID        { return p.providerID }
func (p *Policy) Name() string                 { return p.name }
func (p *Policy) Type() PolicyType             { return p.policyType }
func (p *Policy) Rules() []RefundRule          { return append([]RefundRule(nil), p.rules...) }
func (p *Policy) Fee() Fee                     { return p.fee }
func (p *Policy) IsDefault() bool              { return p.isDefault }
func (p *Policy) IsActive() bool               { return p.isActive }
func (p *Policy) ReplacesPolicyID() *uuid.UUID { return p.replacesPolicyID }
func (p *Policy) CreatedAt() time.Time         { return p.createdAt }
func (p *Policy) UpdatedAt() time.Time         { return p.updatedAt }
