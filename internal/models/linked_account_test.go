package models_test

import (
	"encoding/json"

	"github.com/expensebud/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestLinkedAccountSelf() {
	assert.Equal(suite.T(), "Linked Account", models.LinkedAccount{}.Self())
}

func (suite *TestSuiteStandard) TestLinkedAccountUnique() {
	user := suite.createTestUser("linker")
	_ = suite.createTestLinkedAccount(user.ID, "acc-1")

	err := suite.db.Create(&models.LinkedAccount{UserID: user.ID, AccountID: "acc-1", AccessToken: "another"}).Error
	suite.Assert().ErrorIs(err, models.ErrDuplicateAccount)

	// The same upstream account may be linked by another user
	other := suite.createTestUser("other-linker")
	suite.Assert().Nil(suite.db.Create(&models.LinkedAccount{UserID: other.ID, AccountID: "acc-1"}).Error)
}

func (suite *TestSuiteStandard) TestLinkedAccountCredentialsNotSerialized() {
	user := suite.createTestUser("secretive")
	account := suite.createTestLinkedAccount(user.ID, "acc-secret")
	account.Cursor = "cursor-value"

	out, err := json.Marshal(account)
	suite.Require().Nil(err)
	assert.NotContains(suite.T(), string(out), "access-sandbox-token")
	assert.NotContains(suite.T(), string(out), "cursor-value")
	assert.Contains(suite.T(), string(out), "acc-secret")
}

func (suite *TestSuiteStandard) TestUserUnique() {
	_ = suite.createTestUser("unique")

	err := suite.db.Create(&models.User{Username: " unique "}).Error
	suite.Assert().ErrorIs(err, models.ErrUsernameNotUnique)

	err = suite.db.Create(&models.User{Username: ""}).Error
	suite.Assert().ErrorIs(err, models.ErrUsernameEmpty)
}

func (suite *TestSuiteStandard) TestUserCascade() {
	user := suite.createTestUser("cascade")
	_ = suite.createTestLinkedAccount(user.ID, "acc-cascade")

	suite.Require().Nil(suite.db.Delete(&user).Error)

	var count int64
	suite.Require().Nil(suite.db.Model(&models.LinkedAccount{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(suite.T(), int64(0), count)
}
