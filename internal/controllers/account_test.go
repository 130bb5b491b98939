package controllers_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/expensebud/backend/internal/category"
	"github.com/expensebud/backend/internal/controllers"
	"github.com/expensebud/backend/internal/upstream"
	"github.com/expensebud/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestCreateLinkToken() {
	user := suite.register("moss")

	r := suite.request(http.MethodPost, user.path("/link/token"), nil, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusCreated, &r)

	var response controllers.LinkTokenResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("link-sandbox-"+user.ID.String(), response.Data.Token)
}

func (suite *TestSuiteStandard) TestCreateLinkTokenUpstreamFailure() {
	user := suite.register("moss")
	suite.provider.err = fmt.Errorf("%w: INVALID_API_KEYS", upstream.ErrUnavailable)

	r := suite.request(http.MethodPost, user.path("/link/token"), nil, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusBadGateway, &r)
}

func (suite *TestSuiteStandard) TestExchangePublicToken() {
	user := suite.register("moss")

	account := suite.linkAccount(user, "public-sandbox-1", "acc-1")
	suite.Assert().Equal("acc-1", account.AccountID)
	suite.Assert().Equal("item-public-sandbox-1", account.ItemID)
	suite.Assert().Equal("First Platypus Bank", account.InstitutionName)
	suite.Assert().Equal(apiURL+user.path("/accounts/%s/sync", account.ID), account.Links.Sync)
	suite.Assert().Equal(apiURL+user.path("/expenses?account=%s", account.ID), account.Links.Expenses)

	// The access token is never exposed
	r := suite.request(http.MethodGet, user.path("/accounts/%s", account.ID), nil, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)
	suite.Assert().NotContains(r.Body.String(), "access-public-sandbox-1")
}

func (suite *TestSuiteStandard) TestExchangePublicTokenFails() {
	user := suite.register("moss")
	suite.linkAccount(user, "public-sandbox-1", "acc-1")

	r := suite.request(http.MethodPost, user.path("/link/exchange"), controllers.LinkExchange{
		PublicToken: "public-sandbox-2",
		Account:     upstream.Account{ID: "acc-1"},
	}, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusConflict, &r)
	suite.Assert().Len(suite.provider.exchanged, 1, "Already linked accounts must not be exchanged again")

	r = suite.request(http.MethodPost, user.path("/link/exchange"), controllers.LinkExchange{Account: upstream.Account{ID: "acc-2"}}, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)

	r = suite.request(http.MethodPost, user.path("/link/exchange"), controllers.LinkExchange{PublicToken: "public-sandbox-3"}, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)

	suite.provider.err = fmt.Errorf("%w: ITEM_LOGIN_REQUIRED", upstream.ErrUnavailable)
	r = suite.request(http.MethodPost, user.path("/link/exchange"), controllers.LinkExchange{
		PublicToken: "public-sandbox-4",
		Account:     upstream.Account{ID: "acc-4"},
	}, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusBadGateway, &r)

	// Another user can link the same upstream account
	other := suite.register("roy")
	suite.provider.err = nil
	suite.linkAccount(other, "public-sandbox-5", "acc-1")
}

func (suite *TestSuiteStandard) TestGetLinkedAccounts() {
	user := suite.register("moss")
	other := suite.register("roy")
	suite.linkAccount(user, "public-1", "acc-1")
	suite.linkAccount(user, "public-2", "acc-2")
	theirs := suite.linkAccount(other, "public-3", "acc-3")

	r := suite.request(http.MethodGet, user.path("/accounts"), nil, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response controllers.LinkedAccountListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Data, 2)

	r = suite.request(http.MethodGet, user.path("/accounts/%s", theirs.ID), nil, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)

	r = suite.request(http.MethodGet, user.path("/accounts/nope"), nil, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)
}

func (suite *TestSuiteStandard) TestSyncLinkedAccount() {
	user := suite.register("moss")
	account := suite.linkAccount(user, "public-1", "acc-1")
	suite.createMatchRule(user, controllers.MatchRuleEditable{Match: "Uber*", CategoryID: int(category.Transportation)})

	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	suite.provider.transactions = []upstream.Transaction{
		{ID: "txn-1", Amount: decimal.NewFromFloat(18.2), Date: date, MerchantName: "Uber", Category: "TRAVEL", AccountID: "acc-1"},
		{ID: "txn-2", Amount: decimal.NewFromFloat(4.5), Date: date, MerchantName: "Cafe", Category: "FOOD_AND_DRINK", AccountID: "acc-1"},
		{ID: "txn-3", Amount: decimal.NewFromFloat(9.99), Date: date, Name: "Hardware store", Category: "GENERAL_MERCHANDISE", AccountID: "acc-1"},
		{ID: "txn-4", Amount: decimal.Zero, Date: date, MerchantName: "Bank", Category: "OTHER", AccountID: "acc-1"},
		{ID: "txn-5", Amount: decimal.NewFromInt(50), Date: date, MerchantName: "Savings", Category: "OTHER", AccountID: "acc-other"},
	}

	r := suite.request(http.MethodPost, user.path("/accounts/%s/sync", account.ID), nil, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response controllers.ImportResultResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Len(response.Data.Created, 2)
	suite.Assert().Equal(0, response.Data.SkippedDuplicate)
	suite.Require().Len(response.Data.FailedUnmapped, 1)
	suite.Assert().Equal("txn-3", response.Data.FailedUnmapped[0].TransactionID)
	suite.Assert().Equal("GENERAL_MERCHANDISE", response.Data.FailedUnmapped[0].RawCategory)
	suite.Require().Len(response.Data.FailedInvalid, 1)
	suite.Assert().Equal("txn-4", response.Data.FailedInvalid[0].TransactionID)

	r = suite.request(http.MethodGet, user.path("/expenses?account=%s", account.ID), nil, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var expenses controllers.ExpenseListResponse
	test.DecodeResponse(suite.T(), &r, &expenses)
	suite.Require().Len(expenses.Data, 2)

	categories := map[string]int{}
	for _, e := range expenses.Data {
		categories[e.Vendor] = e.CategoryID
		suite.Require().NotNil(e.TransactionID)
		suite.Assert().Equal(account.ID, *e.LinkedAccountID)
	}
	suite.Assert().Equal(int(category.Transportation), categories["Uber"], "Match rules override the mapped category")
	suite.Assert().Equal(int(category.FoodAndDrink), categories["Cafe"])
}

func (suite *TestSuiteStandard) TestSyncLinkedAccountTwice() {
	user := suite.register("moss")
	account := suite.linkAccount(user, "public-1", "acc-1")
	suite.provider.transactions = []upstream.Transaction{
		{ID: "txn-1", Amount: decimal.NewFromInt(3), MerchantName: "Cafe", Category: "FOOD_AND_DRINK", AccountID: "acc-1"},
	}

	r := suite.request(http.MethodPost, user.path("/accounts/%s/sync", account.ID), nil, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	// Unlinking and linking the account again resets the cursor, the
	// transaction is served again and must not be imported twice
	r = suite.request(http.MethodDelete, user.path("/accounts/%s", account.ID), nil, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)
	account = suite.linkAccount(user, "public-2", "acc-1")

	r = suite.request(http.MethodPost, user.path("/accounts/%s/sync", account.ID), nil, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response controllers.ImportResultResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Empty(response.Data.Created)
	suite.Assert().Equal(1, response.Data.SkippedDuplicate)

	// A sync without new transactions imports nothing
	r = suite.request(http.MethodPost, user.path("/accounts/%s/sync", account.ID), nil, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Empty(response.Data.Created)
	suite.Assert().Equal(0, response.Data.SkippedDuplicate)
}

func (suite *TestSuiteStandard) TestSyncLinkedAccountFails() {
	user := suite.register("moss")
	other := suite.register("roy")
	account := suite.linkAccount(user, "public-1", "acc-1")

	r := suite.request(http.MethodPost, other.path("/accounts/%s/sync", account.ID), nil, other.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)

	r = suite.request(http.MethodPost, user.path("/accounts/%s/sync", uuid.New()), nil, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)

	suite.provider.err = fmt.Errorf("%w: PRODUCT_NOT_READY", upstream.ErrUnavailable)
	r = suite.request(http.MethodPost, user.path("/accounts/%s/sync", account.ID), nil, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusBadGateway, &r)
}

func (suite *TestSuiteStandard) TestDeleteLinkedAccount() {
	user := suite.register("moss")
	account := suite.linkAccount(user, "public-1", "acc-1")
	suite.provider.transactions = []upstream.Transaction{
		{ID: "txn-1", Amount: decimal.NewFromInt(3), MerchantName: "Cafe", Category: "FOOD_AND_DRINK", AccountID: "acc-1"},
	}

	r := suite.request(http.MethodPost, user.path("/accounts/%s/sync", account.ID), nil, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	r = suite.request(http.MethodDelete, user.path("/accounts/%s", account.ID), nil, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)
	suite.Assert().Equal([]string{"access-public-1"}, suite.revoker.queued())

	r = suite.request(http.MethodDelete, user.path("/accounts/%s", account.ID), nil, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)
	suite.Assert().Len(suite.revoker.queued(), 1)

	// Imported expenses are kept
	r = suite.request(http.MethodGet, user.path("/expenses"), nil, user.Token)
	var expenses controllers.ExpenseListResponse
	test.DecodeResponse(suite.T(), &r, &expenses)
	suite.Require().Len(expenses.Data, 1)
	suite.Assert().Nil(expenses.Data[0].LinkedAccountID)
	suite.Assert().Equal("txn-1", *expenses.Data[0].TransactionID)
}

func (suite *TestSuiteStandard) TestAccountOptions() {
	user := suite.register("moss")

	r := suite.request(http.MethodOptions, user.path("/accounts/%s", uuid.New()), nil, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)
	suite.Assert().Equal("GET, DELETE", r.Header().Get("allow"))

	r = suite.request(http.MethodOptions, user.path("/link/exchange"), nil, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)
	suite.Assert().Equal("POST", r.Header().Get("allow"))
}
