package importer

import (
	"fmt"
	"strings"

	"github.com/expensebud/backend/internal/category"
)

// Policy decides what happens to transactions whose upstream category
// label cannot be mapped to a category.
type Policy struct {
	fallback category.ID // zero rejects the transaction
}

// Reject records transactions with an unmappable category as failed.
func Reject() Policy {
	return Policy{}
}

// FallbackTo imports transactions with an unmappable category into
// the given category.
func FallbackTo(id category.ID) Policy {
	return Policy{fallback: id}
}

// ParsePolicy parses a policy from its configuration value.
// "reject" selects Reject, "other" falls back to the Other category.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reject":
		return Reject(), nil
	case "", "other":
		return FallbackTo(category.Other), nil
	default:
		return Policy{}, fmt.Errorf("unknown unmappable category policy %q, must be one of 'reject', 'other'", s)
	}
}

func (p Policy) String() string {
	if p.fallback == 0 {
		return "reject"
	}

	return fmt.Sprintf("fallback to %d", p.fallback)
}

// resolve maps an upstream label to a category according to the policy.
func (p Policy) resolve(label string) (category.ID, error) {
	id, err := category.Map(label)
	if err == nil {
		return id, nil
	}

	if p.fallback == 0 {
		return 0, err
	}

	return p.fallback, nil
}
