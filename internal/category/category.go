// Package category maps upstream category labels to the fixed set of
// expense categories.
package category

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/exp/slices"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ID identifies one of the seven expense categories.
type ID int

const (
	Entertainment ID = iota + 1
	FoodAndDrink
	Medical
	RentAndUtilities
	Transportation
	Travel
	Other
)

var ErrUnmappableCategory = errors.New("category does not exist")

// Category is a category with its display name and the phrase
// that normalized labels are compared against.
type Category struct {
	ID     ID
	Name   string
	Phrase string
}

var categories = []Category{
	{Entertainment, "Entertainment", "entertainment"},
	{FoodAndDrink, "Food & Drink", "food and drink"},
	{Medical, "Medical", "medical"},
	{RentAndUtilities, "Rent & Utilities", "rent and utilities"},
	{Transportation, "Transportation", "transportation"},
	{Travel, "Travel", "travel"},
	{Other, "Other", "other"},
}

var separators = regexp.MustCompile(`[\s_]+`)

var lower = cases.Lower(language.Und)

// All returns all categories ordered by their ID.
func All() []Category {
	return slices.Clone(categories)
}

// Valid reports if id is one of the known categories.
func Valid(id ID) bool {
	return slices.ContainsFunc(categories, func(c Category) bool {
		return c.ID == id
	})
}

// Normalize collapses runs of whitespace and underscores to a single
// space and lowercases the label.
func Normalize(label string) string {
	return lower.String(strings.TrimSpace(separators.ReplaceAllString(label, " ")))
}

// Map returns the category for an upstream label such as "FOOD_AND_DRINK".
//
// Labels that do not match any category fail with ErrUnmappableCategory.
// Callers decide whether to fall back to a default category.
func Map(label string) (ID, error) {
	phrase := Normalize(label)

	i := slices.IndexFunc(categories, func(c Category) bool {
		return c.Phrase == phrase
	})
	if i < 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnmappableCategory, label)
	}

	return categories[i].ID, nil
}
