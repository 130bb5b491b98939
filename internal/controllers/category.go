package controllers

import (
	"net/http"

	"github.com/expensebud/backend/internal/category"
	"github.com/expensebud/backend/internal/httputil"
	"github.com/expensebud/backend/internal/models"
	"github.com/gin-gonic/gin"
)

type CategoryListResponse struct {
	Data []models.Category `json:"data"` // List of categories
}

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func (co *Controller) RegisterCategoryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", co.GetCategories)
}

// GetCategories returns all categories
//
//	@Summary		Get categories
//	@Description	Returns the fixed list of expense categories
//	@Tags			Categories
//	@Produce		json
//	@Success		200	{object}	CategoryListResponse
//	@Router			/v1/categories [get]
func (co *Controller) GetCategories(c *gin.Context) {
	all := category.All()

	data := make([]models.Category, 0, len(all))
	for _, cat := range all {
		data = append(data, models.Category{ID: int(cat.ID), Name: cat.Name})
	}

	c.JSON(http.StatusOK, CategoryListResponse{Data: data})
}
