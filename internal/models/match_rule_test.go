package models_test

import (
	"github.com/expensebud/backend/internal/category"
	"github.com/expensebud/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestMatchRuleSelf() {
	assert.Equal(suite.T(), "Match Rule", models.MatchRule{}.Self())
}

func (suite *TestSuiteStandard) TestMatchRuleTrimWhitespace() {
	user := suite.createTestUser("rules")

	rule := models.MatchRule{UserID: user.ID, Match: "  Uber*\t", CategoryID: int(category.Transportation)}
	suite.Require().Nil(suite.db.Create(&rule).Error)

	var saved models.MatchRule
	suite.Require().Nil(suite.db.First(&saved, "id = ?", rule.ID).Error)
	suite.Assert().Equal("Uber*", saved.Match)
}

func (suite *TestSuiteStandard) TestMatchRuleInvalidCategory() {
	user := suite.createTestUser("rules")

	err := suite.db.Create(&models.MatchRule{UserID: user.ID, Match: "Uber*", CategoryID: 12}).Error
	suite.Assert().ErrorIs(err, models.ErrInvalidReference)
}

func (suite *TestSuiteStandard) TestMatchRuleDeletedWithUser() {
	user := suite.createTestUser("rules")
	rule := models.MatchRule{UserID: user.ID, Match: "Uber*", CategoryID: int(category.Transportation)}
	suite.Require().Nil(suite.db.Create(&rule).Error)

	suite.Require().Nil(suite.db.Delete(&user).Error)

	var count int64
	suite.Require().Nil(suite.db.Model(&models.MatchRule{}).Where("id = ?", rule.ID).Count(&count).Error)
	suite.Assert().Equal(int64(0), count)
}
