package controllers_test

import (
	"net/http"
	"testing"

	"github.com/expensebud/backend/internal/auth"
	"github.com/expensebud/backend/internal/controllers"
	"github.com/expensebud/backend/test"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestRegister() {
	r := suite.request(http.MethodPost, "/v1/auth/register", controllers.UserCreate{
		Username:  "moss",
		Password:  "hunter2",
		FirstName: "Maurice",
		Email:     "moss@example.com",
	}, "")
	test.AssertHTTPStatus(suite.T(), http.StatusCreated, &r)

	var response controllers.TokenResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().NotEqual(uuid.Nil, response.Data.User.ID)
	suite.Assert().Equal("moss", response.Data.User.Username)
	suite.Assert().Equal("Maurice", response.Data.User.FirstName)
	suite.Assert().NotEmpty(response.Data.Token)
	suite.Assert().Equal(apiURL+"/v1/users/"+response.Data.User.ID.String(), response.Data.User.Links.Self)
	suite.Assert().NotContains(r.Body.String(), "hunter2", "The password must never be returned")
}

func (suite *TestSuiteStandard) TestRegisterFails() {
	suite.register("roy")

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Broken body", `{ "username": 2 }`, http.StatusBadRequest},
		{"Empty password", controllers.UserCreate{Username: "jen"}, http.StatusBadRequest},
		{"Empty username", controllers.UserCreate{Password: "pw"}, http.StatusBadRequest},
		{"Duplicate username", controllers.UserCreate{Username: "roy", Password: "pw"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(http.MethodPost, "/v1/auth/register", tt.body, "")
			test.AssertHTTPStatus(t, tt.status, &r)
		})
	}
}

func (suite *TestSuiteStandard) TestCreateToken() {
	user := suite.register("douglas")

	r := suite.request(http.MethodPost, "/v1/auth/token", controllers.TokenRequest{
		Username: "douglas",
		Password: "correct horse battery staple",
	}, "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response controllers.TokenResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(user.ID, response.Data.User.ID)

	// The token authenticates as the user
	r = suite.request(http.MethodGet, user.path(""), nil, response.Data.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)
}

func (suite *TestSuiteStandard) TestCreateTokenInvalidCredentials() {
	suite.register("richmond")

	wrongPassword := suite.request(http.MethodPost, "/v1/auth/token", controllers.TokenRequest{
		Username: "richmond",
		Password: "goth",
	}, "")
	test.AssertHTTPStatus(suite.T(), http.StatusUnauthorized, &wrongPassword)

	unknownUser := suite.request(http.MethodPost, "/v1/auth/token", controllers.TokenRequest{
		Username: "noone",
		Password: "goth",
	}, "")
	test.AssertHTTPStatus(suite.T(), http.StatusUnauthorized, &unknownUser)

	suite.Assert().Equal(
		test.DecodeError(suite.T(), wrongPassword.Body.Bytes()),
		test.DecodeError(suite.T(), unknownUser.Body.Bytes()),
		"Unknown users must not be distinguishable from wrong passwords",
	)
	suite.Assert().Equal(auth.ErrInvalidCredentials.Error(), test.DecodeError(suite.T(), unknownUser.Body.Bytes()))
}

func (suite *TestSuiteStandard) TestAuthOptions() {
	for _, path := range []string{"/v1/auth/register", "/v1/auth/token"} {
		r := suite.request(http.MethodOptions, path, nil, "")
		test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)
		suite.Assert().Equal("POST", r.Header().Get("allow"), path)
	}
}
