package controllers_test

import (
	"net/http"
	"testing"

	"github.com/expensebud/backend/internal/category"
	"github.com/expensebud/backend/internal/controllers"
	"github.com/expensebud/backend/test"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) createMatchRule(user registered, data controllers.MatchRuleEditable) controllers.MatchRule {
	r := suite.request(http.MethodPost, user.path("/match-rules"), data, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusCreated, &r)

	var response controllers.MatchRuleResponse
	test.DecodeResponse(suite.T(), &r, &response)

	return response.Data
}

func (suite *TestSuiteStandard) TestMatchRulesOrder() {
	user := suite.register("moss")

	suite.createMatchRule(user, controllers.MatchRuleEditable{Priority: 2, Match: "Uber*", CategoryID: int(category.Transportation)})
	suite.createMatchRule(user, controllers.MatchRuleEditable{Priority: 1, Match: "Uber Eats*", CategoryID: int(category.FoodAndDrink)})
	suite.createMatchRule(user, controllers.MatchRuleEditable{Priority: 2, Match: "Airbnb*", CategoryID: int(category.Travel)})

	r := suite.request(http.MethodGet, user.path("/match-rules"), nil, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response controllers.MatchRuleListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 3)
	suite.Assert().Equal("Uber Eats*", response.Data[0].Match)
	suite.Assert().Equal("Airbnb*", response.Data[1].Match)
	suite.Assert().Equal("Uber*", response.Data[2].Match)
}

func (suite *TestSuiteStandard) TestCreateMatchRuleFails() {
	user := suite.register("moss")

	tests := []struct {
		name string
		body any
	}{
		{"Empty match", controllers.MatchRuleEditable{Match: " ", CategoryID: int(category.Travel)}},
		{"Unknown category", controllers.MatchRuleEditable{Match: "Hotel*", CategoryID: 99}},
		{"No category", controllers.MatchRuleEditable{Match: "Hotel*"}},
		{"Broken body", `{ "priority": -1 }`},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(http.MethodPost, user.path("/match-rules"), tt.body, user.Token)
			test.AssertHTTPStatus(t, http.StatusBadRequest, &r)
		})
	}
}

func (suite *TestSuiteStandard) TestUpdateMatchRule() {
	user := suite.register("moss")
	rule := suite.createMatchRule(user, controllers.MatchRuleEditable{Priority: 1, Match: "Uber*", CategoryID: int(category.Transportation)})

	r := suite.request(http.MethodPatch, user.path("/match-rules/%s", rule.ID), map[string]any{"match": "Lyft*"}, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response controllers.MatchRuleResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Lyft*", response.Data.Match)
	suite.Assert().Equal(uint(1), response.Data.Priority)
	suite.Assert().Equal(int(category.Transportation), response.Data.CategoryID)

	r = suite.request(http.MethodPatch, user.path("/match-rules/%s", rule.ID), map[string]any{"match": ""}, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)

	r = suite.request(http.MethodPatch, user.path("/match-rules/%s", rule.ID), map[string]any{"categoryId": 8}, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)

	r = suite.request(http.MethodPatch, user.path("/match-rules/%s", uuid.New()), map[string]any{"priority": 3}, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)
}

func (suite *TestSuiteStandard) TestGetAndDeleteMatchRule() {
	user := suite.register("moss")
	other := suite.register("roy")
	rule := suite.createMatchRule(user, controllers.MatchRuleEditable{Match: "Uber*", CategoryID: int(category.Transportation)})

	r := suite.request(http.MethodGet, user.path("/match-rules/%s", rule.ID), nil, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	r = suite.request(http.MethodGet, other.path("/match-rules/%s", rule.ID), nil, other.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)

	r = suite.request(http.MethodDelete, user.path("/match-rules/%s", rule.ID), nil, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)

	r = suite.request(http.MethodGet, user.path("/match-rules/%s", rule.ID), nil, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)
}
