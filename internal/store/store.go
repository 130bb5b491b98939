// Package store implements the persistence boundaries of expensebud on top of gorm.
//
// Every read and write of a user owned resource is scoped by the owning user.
// A resource owned by another user is reported as not found.
package store

import (
	"fmt"
	"strings"

	"github.com/expensebud/backend/internal/models"
	"gorm.io/gorm"
)

// DefaultLimit is the number of resources returned by list operations
// when no limit is set.
const DefaultLimit = 50

// Page restricts a list operation to a window of resources.
type Page struct {
	Offset int
	Limit  int // Zero selects DefaultLimit, negative values disable the limit
}

func (p Page) apply(q *gorm.DB) *gorm.DB {
	limit := p.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	return q.Offset(p.Offset).Limit(limit)
}

// notFound returns the not found error for a resource when a scoped
// write operation did not affect any row.
func notFound(m interface{ Self() string }) error {
	return fmt.Errorf("%w %s matching your query", models.ErrResourceNotFound, strings.ToLower(m.Self()))
}
