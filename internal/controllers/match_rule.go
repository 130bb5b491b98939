package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/expensebud/backend/internal/httputil"
	"github.com/expensebud/backend/internal/models"
	"github.com/expensebud/backend/internal/store"
	"github.com/gin-gonic/gin"
)

type MatchRuleLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/users/3b1e2a6e-5b9b-4c51-a5b2-6f2a4e7a3d09/match-rules/95685c82-53c6-455d-b235-f49960b73b21"` // The match rule itself
}

// MatchRule is the API representation of a Match Rule.
type MatchRule struct {
	models.MatchRule
	Links MatchRuleLinks `json:"links"`
}

func newMatchRule(c *gin.Context, model models.MatchRule) MatchRule {
	return MatchRule{
		MatchRule: model,
		Links: MatchRuleLinks{
			Self: fmt.Sprintf("%s/%s", userURL(c, model.UserID, "match-rules"), model.ID),
		},
	}
}

type MatchRuleEditable struct {
	Priority   uint   `json:"priority" example:"3"`   // The priority of the match rule, lower priorities are evaluated first
	Match      string `json:"match" example:"Uber*"`  // Glob pattern matched against the vendor of imported expenses
	CategoryID int    `json:"categoryId" example:"5"` // The category to assign to matching expenses
}

type MatchRulePatch struct {
	Priority   *uint   `json:"priority" example:"3"`
	Match      *string `json:"match" example:"Uber*"`
	CategoryID *int    `json:"categoryId" example:"5"`
}

type MatchRuleResponse struct {
	Data MatchRule `json:"data"`
}

type MatchRuleListResponse struct {
	Data []MatchRule `json:"data"` // List of Match Rules in evaluation order
}

// RegisterMatchRuleRoutes registers the routes for matchRules with
// the RouterGroup that is passed.
func (co *Controller) RegisterMatchRuleRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetMatchRules)
		r.POST("", co.CreateMatchRule)
	}

	// MatchRule with ID
	{
		r.OPTIONS("/:matchRuleId", httputil.OptionsGetPatchDelete)
		r.GET("/:matchRuleId", co.GetMatchRule)
		r.PATCH("/:matchRuleId", co.UpdateMatchRule)
		r.DELETE("/:matchRuleId", co.DeleteMatchRule)
	}
}

// GetMatchRules returns the user's match rules
//
//	@Summary		Get matchRules
//	@Description	Returns all match rules in the order they are evaluated in
//	@Tags			MatchRules
//	@Produce		json
//	@Success		200		{object}	MatchRuleListResponse
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			userId	path		string	true	"ID formatted as string"
//	@Router			/v1/users/{userId}/match-rules [get]
func (co *Controller) GetMatchRules(c *gin.Context) {
	rules, err := co.MatchRules.List(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	data := make([]MatchRule, 0, len(rules))
	for _, rule := range rules {
		data = append(data, newMatchRule(c, rule))
	}

	c.JSON(http.StatusOK, MatchRuleListResponse{Data: data})
}

// CreateMatchRule creates a match rule
//
//	@Summary		Create matchRule
//	@Description	Creates a match rule
//	@Tags			MatchRules
//	@Accept			json
//	@Produce		json
//	@Success		201			{object}	MatchRuleResponse
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Param			userId		path		string				true	"ID formatted as string"
//	@Param			matchRule	body		MatchRuleEditable	true	"MatchRule"
//	@Router			/v1/users/{userId}/match-rules [post]
func (co *Controller) CreateMatchRule(c *gin.Context) {
	var data MatchRuleEditable
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	if strings.TrimSpace(data.Match) == "" {
		httputil.NewError(c, http.StatusBadRequest, errMatchEmpty)
		return
	}

	if err := validCategory(data.CategoryID); err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}

	rule := models.MatchRule{
		UserID:     currentUser(c),
		Priority:   data.Priority,
		Match:      data.Match,
		CategoryID: data.CategoryID,
	}

	err := co.MatchRules.Create(c.Request.Context(), &rule)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MatchRuleResponse{Data: newMatchRule(c, rule)})
}

// GetMatchRule returns a specific match rule
//
//	@Summary		Get matchRule
//	@Description	Returns a specific match rule
//	@Tags			MatchRules
//	@Produce		json
//	@Success		200			{object}	MatchRuleResponse
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		404			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Param			userId		path		string	true	"ID formatted as string"
//	@Param			matchRuleId	path		string	true	"ID formatted as string"
//	@Router			/v1/users/{userId}/match-rules/{matchRuleId} [get]
func (co *Controller) GetMatchRule(c *gin.Context) {
	id, ok := pathID(c, "matchRuleId")
	if !ok {
		return
	}

	rule, err := co.MatchRules.Get(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MatchRuleResponse{Data: newMatchRule(c, rule)})
}

// UpdateMatchRule updates a specific match rule
//
//	@Summary		Update matchRule
//	@Description	Update a match rule. Only values to be updated need to be specified.
//	@Tags			MatchRules
//	@Accept			json
//	@Produce		json
//	@Success		200			{object}	MatchRuleResponse
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		404			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Param			userId		path		string			true	"ID formatted as string"
//	@Param			matchRuleId	path		string			true	"ID formatted as string"
//	@Param			matchRule	body		MatchRulePatch	true	"MatchRule"
//	@Router			/v1/users/{userId}/match-rules/{matchRuleId} [patch]
func (co *Controller) UpdateMatchRule(c *gin.Context) {
	id, ok := pathID(c, "matchRuleId")
	if !ok {
		return
	}

	var data MatchRulePatch
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	if data.Match != nil && strings.TrimSpace(*data.Match) == "" {
		httputil.NewError(c, http.StatusBadRequest, errMatchEmpty)
		return
	}

	if data.CategoryID != nil {
		if err := validCategory(*data.CategoryID); err != nil {
			httputil.NewError(c, http.StatusBadRequest, err)
			return
		}
	}

	rule, err := co.MatchRules.Update(c.Request.Context(), currentUser(c), id, store.MatchRuleUpdate{
		Priority:   data.Priority,
		Match:      data.Match,
		CategoryID: data.CategoryID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MatchRuleResponse{Data: newMatchRule(c, rule)})
}

// DeleteMatchRule deletes a specific match rule
//
//	@Summary		Delete matchRule
//	@Description	Deletes a match rule
//	@Tags			MatchRules
//	@Success		204
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		404			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Param			userId		path		string	true	"ID formatted as string"
//	@Param			matchRuleId	path		string	true	"ID formatted as string"
//	@Router			/v1/users/{userId}/match-rules/{matchRuleId} [delete]
func (co *Controller) DeleteMatchRule(c *gin.Context) {
	id, ok := pathID(c, "matchRuleId")
	if !ok {
		return
	}

	err := co.MatchRules.Delete(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
