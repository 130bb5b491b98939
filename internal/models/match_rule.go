package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MatchRule assigns a category to imported expenses whose vendor
// matches a glob pattern.
type MatchRule struct {
	DefaultModel
	UserID     uuid.UUID `json:"userId" gorm:"type:uuid;not null;index" example:"9b5b2b3f-5a55-4a4b-9d4f-0c8f2dc5a17e"`
	User       User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Priority   uint      `json:"priority" example:"3"`                 // Rules with a lower priority are evaluated first
	Match      string    `json:"match" example:"Uber*"`                // Glob pattern matched against the vendor
	CategoryID int       `json:"categoryId" gorm:"not null" example:"5"` // Category assigned to matching expenses
	Category   Category  `json:"-"`
}

func (r MatchRule) Self() string {
	return "Match Rule"
}

func (r *MatchRule) BeforeSave(_ *gorm.DB) error {
	r.Match = strings.TrimSpace(r.Match)
	return nil
}
