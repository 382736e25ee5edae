package httpserver

import (
	"net/http"
	"strconv"

	"azharstore/internal/domain"
	productrepo "azharstore/internal/repository/product"
	productsvc "azharstore/internal/service/product"
	"github.com/gin-gonic/gin"
)

func listProductsHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter productrepo.ListFilter
		if raw := c.Query("category_id"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				badRequest(c, "invalid category_id")
				return
			}
			filter.CategoryID = &id
		}
		filter.Search = c.Query("search")

		products, err := deps.ProductSvc.List(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, products)
	}
}

func getProductHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		p, err := deps.ProductSvc.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func createProductHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in productsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid product payload")
			return
		}
		p, err := deps.ProductSvc.Create(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

func updateProductHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		var in productsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid product payload")
			return
		}
		p, err := deps.ProductSvc.Update(c.Request.Context(), id, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func deleteProductHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		if err := deps.ProductSvc.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
