package importer

import (
	"github.com/expensebud/backend/internal/models"
	"github.com/ryanuber/go-glob"
	"golang.org/x/text/unicode/norm"
)

// match returns the category of the first rule matching the vendor.
//
// Rules must be sorted by priority. If no rule matches, the category
// is returned unchanged.
func match(rules []models.MatchRule, vendor string, categoryID int) int {
	vendor = norm.NFKC.String(vendor)

	for _, rule := range rules {
		if glob.Glob(norm.NFKC.String(rule.Match), vendor) {
			return rule.CategoryID
		}
	}

	return categoryID
}
