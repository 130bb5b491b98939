package store

import (
	"context"

	"github.com/expensebud/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchRuleUpdate contains the editable fields of a match rule.
// Nil fields are left unchanged.
type MatchRuleUpdate struct {
	Priority   *uint
	Match      *string
	CategoryID *int
}

// MatchRules persists match rules.
type MatchRules struct {
	db *gorm.DB
}

func NewMatchRules(db *gorm.DB) *MatchRules {
	return &MatchRules{db: db}
}

func (s *MatchRules) Create(ctx context.Context, rule *models.MatchRule) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(rule).Error
}

func (s *MatchRules) Get(ctx context.Context, userID, id uuid.UUID) (models.MatchRule, error) {
	var rule models.MatchRule
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&rule, "id = ?", id).Error
	return rule, err
}

// List returns the user's match rules in the order they are evaluated in.
func (s *MatchRules) List(ctx context.Context, userID uuid.UUID) ([]models.MatchRule, error) {
	rules := make([]models.MatchRule, 0)
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("priority ASC, match ASC").Find(&rules).Error
	return rules, err
}

func (s *MatchRules) Update(ctx context.Context, userID, id uuid.UUID, update MatchRuleUpdate) (models.MatchRule, error) {
	rule, err := s.Get(ctx, userID, id)
	if err != nil {
		return models.MatchRule{}, err
	}

	if update.Priority != nil {
		rule.Priority = *update.Priority
	}

	if update.Match != nil {
		rule.Match = *update.Match
	}

	if update.CategoryID != nil {
		rule.CategoryID = *update.CategoryID
	}

	err = s.db.WithContext(ctx).Omit(clause.Associations).Save(&rule).Error
	if err != nil {
		return models.MatchRule{}, err
	}

	return rule, nil
}

func (s *MatchRules) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tx := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.MatchRule{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return notFound(models.MatchRule{})
	}

	return nil
}
