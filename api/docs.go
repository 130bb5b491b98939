// Package api contains the generated OpenAPI documentation.
//
// Regenerate with "swag init --output ./api".
package api

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "Bearer": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/": {
            "get": {"tags": ["General"], "summary": "API root", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/router.RootResponse"}}}},
            "options": {"tags": ["General"], "summary": "Allowed HTTP verbs", "responses": {"204": {"description": "No Content"}}}
        },
        "/version": {
            "get": {"tags": ["General"], "summary": "API version", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/router.VersionResponse"}}}},
            "options": {"tags": ["General"], "summary": "Allowed HTTP verbs", "responses": {"204": {"description": "No Content"}}}
        },
        "/v1": {
            "get": {"tags": ["v1"], "summary": "v1 API", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/router.V1Response"}}}},
            "options": {"tags": ["v1"], "summary": "Allowed HTTP verbs", "responses": {"204": {"description": "No Content"}}}
        },
        "/v1/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register",
                "parameters": [{"name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.UserCreate"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/controllers.TokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httputil.HTTPError"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/httputil.HTTPError"}}
                }
            }
        },
        "/v1/auth/token": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Token",
                "parameters": [{"name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.TokenRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.TokenResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httputil.HTTPError"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/httputil.HTTPError"}}
                }
            }
        },
        "/v1/categories": {
            "get": {"tags": ["Categories"], "summary": "Get categories", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.CategoryListResponse"}}}}
        },
        "/v1/users/{userId}": {
            "get": {"security": [{"Bearer": []}], "tags": ["Users"], "summary": "Get user", "parameters": [{"$ref": "#/parameters/userId"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.UserResponse"}}}},
            "patch": {"security": [{"Bearer": []}], "tags": ["Users"], "summary": "Update user", "parameters": [{"$ref": "#/parameters/userId"}, {"name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.UserEditable"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.UserResponse"}}}},
            "delete": {"security": [{"Bearer": []}], "tags": ["Users"], "summary": "Delete user", "parameters": [{"$ref": "#/parameters/userId"}], "responses": {"204": {"description": "No Content"}}}
        },
        "/v1/users/{userId}/expenses": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["Expenses"],
                "summary": "Get expenses",
                "parameters": [
                    {"$ref": "#/parameters/userId"},
                    {"type": "integer", "description": "Filter by category ID", "name": "category", "in": "query"},
                    {"type": "string", "description": "Filter by month, formatted as YYYY-MM", "name": "month", "in": "query"},
                    {"type": "string", "description": "Filter by vendor substring", "name": "vendor", "in": "query"},
                    {"type": "string", "description": "Filter by linked account ID", "name": "account", "in": "query"},
                    {"type": "integer", "description": "The offset of the first expense returned. Defaults to 0.", "name": "offset", "in": "query"},
                    {"type": "integer", "description": "Maximum number of expenses to return. Defaults to 50.", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.ExpenseListResponse"}}}
            },
            "post": {"security": [{"Bearer": []}], "tags": ["Expenses"], "summary": "Create expense", "parameters": [{"$ref": "#/parameters/userId"}, {"name": "expense", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.ExpenseEditable"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/controllers.ExpenseResponse"}}}}
        },
        "/v1/users/{userId}/expenses/{expenseId}": {
            "get": {"security": [{"Bearer": []}], "tags": ["Expenses"], "summary": "Get expense", "parameters": [{"$ref": "#/parameters/userId"}, {"type": "string", "name": "expenseId", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.ExpenseResponse"}}}},
            "patch": {"security": [{"Bearer": []}], "tags": ["Expenses"], "summary": "Update expense", "parameters": [{"$ref": "#/parameters/userId"}, {"type": "string", "name": "expenseId", "in": "path", "required": true}, {"name": "expense", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.ExpensePatch"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.ExpenseResponse"}}}},
            "delete": {"security": [{"Bearer": []}], "tags": ["Expenses"], "summary": "Delete expense", "parameters": [{"$ref": "#/parameters/userId"}, {"type": "string", "name": "expenseId", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/v1/users/{userId}/budgets": {
            "get": {"security": [{"Bearer": []}], "tags": ["Budgets"], "summary": "Get budgets", "parameters": [{"$ref": "#/parameters/userId"}, {"type": "string", "description": "Restrict the spend to a month, formatted as YYYY-MM", "name": "month", "in": "query"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.BudgetListResponse"}}}},
            "post": {"security": [{"Bearer": []}], "tags": ["Budgets"], "summary": "Create budget", "parameters": [{"$ref": "#/parameters/userId"}, {"name": "budget", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.BudgetEditable"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/controllers.BudgetResponse"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httputil.HTTPError"}}}}
        },
        "/v1/users/{userId}/budgets/{budgetId}": {
            "get": {"security": [{"Bearer": []}], "tags": ["Budgets"], "summary": "Get budget", "parameters": [{"$ref": "#/parameters/userId"}, {"type": "string", "name": "budgetId", "in": "path", "required": true}, {"type": "string", "name": "month", "in": "query"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.BudgetResponse"}}}},
            "patch": {"security": [{"Bearer": []}], "tags": ["Budgets"], "summary": "Update budget", "parameters": [{"$ref": "#/parameters/userId"}, {"type": "string", "name": "budgetId", "in": "path", "required": true}, {"name": "budget", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.BudgetPatch"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.BudgetResponse"}}}},
            "delete": {"security": [{"Bearer": []}], "tags": ["Budgets"], "summary": "Delete budget", "parameters": [{"$ref": "#/parameters/userId"}, {"type": "string", "name": "budgetId", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/v1/users/{userId}/match-rules": {
            "get": {"security": [{"Bearer": []}], "tags": ["MatchRules"], "summary": "Get matchRules", "parameters": [{"$ref": "#/parameters/userId"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.MatchRuleListResponse"}}}},
            "post": {"security": [{"Bearer": []}], "tags": ["MatchRules"], "summary": "Create matchRule", "parameters": [{"$ref": "#/parameters/userId"}, {"name": "matchRule", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.MatchRuleEditable"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/controllers.MatchRuleResponse"}}}}
        },
        "/v1/users/{userId}/match-rules/{matchRuleId}": {
            "get": {"security": [{"Bearer": []}], "tags": ["MatchRules"], "summary": "Get matchRule", "parameters": [{"$ref": "#/parameters/userId"}, {"type": "string", "name": "matchRuleId", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.MatchRuleResponse"}}}},
            "patch": {"security": [{"Bearer": []}], "tags": ["MatchRules"], "summary": "Update matchRule", "parameters": [{"$ref": "#/parameters/userId"}, {"type": "string", "name": "matchRuleId", "in": "path", "required": true}, {"name": "matchRule", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.MatchRulePatch"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.MatchRuleResponse"}}}},
            "delete": {"security": [{"Bearer": []}], "tags": ["MatchRules"], "summary": "Delete matchRule", "parameters": [{"$ref": "#/parameters/userId"}, {"type": "string", "name": "matchRuleId", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/v1/users/{userId}/accounts": {
            "get": {"security": [{"Bearer": []}], "tags": ["Accounts"], "summary": "Get linked accounts", "parameters": [{"$ref": "#/parameters/userId"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.LinkedAccountListResponse"}}}}
        },
        "/v1/users/{userId}/accounts/{accountId}": {
            "get": {"security": [{"Bearer": []}], "tags": ["Accounts"], "summary": "Get linked account", "parameters": [{"$ref": "#/parameters/userId"}, {"type": "string", "name": "accountId", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.LinkedAccountResponse"}}}},
            "delete": {"security": [{"Bearer": []}], "tags": ["Accounts"], "summary": "Delete linked account", "parameters": [{"$ref": "#/parameters/userId"}, {"type": "string", "name": "accountId", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/v1/users/{userId}/accounts/{accountId}/sync": {
            "post": {"security": [{"Bearer": []}], "tags": ["Accounts"], "summary": "Sync linked account", "parameters": [{"$ref": "#/parameters/userId"}, {"type": "string", "name": "accountId", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.ImportResultResponse"}}, "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/httputil.HTTPError"}}}}
        },
        "/v1/users/{userId}/link/token": {
            "post": {"security": [{"Bearer": []}], "tags": ["Link"], "summary": "Create link token", "parameters": [{"$ref": "#/parameters/userId"}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/controllers.LinkTokenResponse"}}, "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/httputil.HTTPError"}}}}
        },
        "/v1/users/{userId}/link/exchange": {
            "post": {"security": [{"Bearer": []}], "tags": ["Link"], "summary": "Exchange public token", "parameters": [{"$ref": "#/parameters/userId"}, {"name": "exchange", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.LinkExchange"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/controllers.LinkedAccountResponse"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httputil.HTTPError"}}, "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/httputil.HTTPError"}}}}
        }
    },
    "parameters": {
        "userId": {"type": "string", "description": "ID formatted as string", "name": "userId", "in": "path", "required": true}
    },
    "definitions": {
        "httputil.HTTPError": {"type": "object", "properties": {"error": {"type": "string", "example": "the specified resource ID is not a valid UUID"}}},
        "router.RootResponse": {"type": "object", "properties": {"links": {"type": "object"}}},
        "router.VersionResponse": {"type": "object", "properties": {"data": {"type": "object", "properties": {"version": {"type": "string", "example": "1.1.0"}}}}},
        "router.V1Response": {"type": "object", "properties": {"links": {"type": "object"}}},
        "controllers.UserCreate": {"type": "object", "properties": {"username": {"type": "string"}, "password": {"type": "string"}, "firstName": {"type": "string"}, "lastName": {"type": "string"}, "email": {"type": "string"}}},
        "controllers.UserEditable": {"type": "object", "properties": {"username": {"type": "string"}, "password": {"type": "string"}, "firstName": {"type": "string"}, "lastName": {"type": "string"}, "email": {"type": "string"}}},
        "controllers.TokenRequest": {"type": "object", "properties": {"username": {"type": "string"}, "password": {"type": "string"}}},
        "controllers.TokenResponse": {"type": "object", "properties": {"data": {"type": "object", "properties": {"token": {"type": "string"}, "user": {"type": "object"}}}}},
        "controllers.UserResponse": {"type": "object", "properties": {"data": {"type": "object"}}},
        "controllers.CategoryListResponse": {"type": "object", "properties": {"data": {"type": "array", "items": {"type": "object", "properties": {"id": {"type": "integer", "example": 2}, "name": {"type": "string", "example": "Food & Drink"}}}}}},
        "controllers.ExpenseEditable": {"type": "object", "properties": {"amount": {"type": "number", "example": 12.5}, "date": {"type": "string", "example": "2024-03-01T00:00:00Z"}, "vendor": {"type": "string", "example": "Cafe"}, "description": {"type": "string"}, "categoryId": {"type": "integer", "example": 2}}},
        "controllers.ExpensePatch": {"type": "object", "properties": {"amount": {"type": "number"}, "date": {"type": "string"}, "vendor": {"type": "string"}, "description": {"type": "string"}, "categoryId": {"type": "integer"}, "transactionId": {"type": "string"}}},
        "controllers.ExpenseResponse": {"type": "object", "properties": {"data": {"type": "object"}}},
        "controllers.ExpenseListResponse": {"type": "object", "properties": {"data": {"type": "array", "items": {"type": "object"}}, "pagination": {"type": "object"}}},
        "controllers.BudgetEditable": {"type": "object", "properties": {"categoryId": {"type": "integer", "example": 2}, "amount": {"type": "number", "example": 250}}},
        "controllers.BudgetPatch": {"type": "object", "properties": {"amount": {"type": "number", "example": 300}}},
        "controllers.BudgetResponse": {"type": "object", "properties": {"data": {"type": "object"}}},
        "controllers.BudgetListResponse": {"type": "object", "properties": {"data": {"type": "array", "items": {"type": "object"}}}},
        "controllers.MatchRuleEditable": {"type": "object", "properties": {"priority": {"type": "integer", "example": 3}, "match": {"type": "string", "example": "Uber*"}, "categoryId": {"type": "integer", "example": 5}}},
        "controllers.MatchRulePatch": {"type": "object", "properties": {"priority": {"type": "integer"}, "match": {"type": "string"}, "categoryId": {"type": "integer"}}},
        "controllers.MatchRuleResponse": {"type": "object", "properties": {"data": {"type": "object"}}},
        "controllers.MatchRuleListResponse": {"type": "object", "properties": {"data": {"type": "array", "items": {"type": "object"}}}},
        "controllers.LinkedAccountResponse": {"type": "object", "properties": {"data": {"type": "object"}}},
        "controllers.LinkedAccountListResponse": {"type": "object", "properties": {"data": {"type": "array", "items": {"type": "object"}}}},
        "controllers.LinkTokenResponse": {"type": "object", "properties": {"data": {"type": "object", "properties": {"linkToken": {"type": "string"}, "expiration": {"type": "string"}}}}},
        "controllers.LinkExchange": {"type": "object", "properties": {"publicToken": {"type": "string"}, "institution": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}}}, "account": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}}}}},
        "controllers.ImportResultResponse": {"type": "object", "properties": {"data": {"type": "object", "properties": {"created": {"type": "array", "items": {"type": "string"}}, "skippedDuplicate": {"type": "integer"}, "failedUnmapped": {"type": "array", "items": {"type": "object"}}, "failedInvalid": {"type": "array", "items": {"type": "object"}}}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "",
	Description:      "",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
