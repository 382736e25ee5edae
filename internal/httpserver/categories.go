package httpserver

import (
	"net/http"

	"azharstore/internal/domain"
	categorysvc "azharstore/internal/service/category"
	"github.com/gin-gonic/gin"
)

func listCategoriesHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := deps.CategorySvc.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if categories == nil {
			categories = []domain.Category{}
		}
		c.JSON(http.StatusOK, categories)
	}
}

func getCategoryHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		cat, err := deps.CategorySvc.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cat)
	}
}

func createCategoryHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in categorysvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid category payload")
			return
		}
		cat, err := deps.CategorySvc.Create(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, cat)
	}
}

func updateCategoryHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		var in categorysvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid category payload")
			return
		}
		cat, err := deps.CategorySvc.Update(c.Request.Context(), id, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cat)
	}
}

func deleteCategoryHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		if err := deps.CategorySvc.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
