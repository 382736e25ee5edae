package httpserver

import (
	"net/http"

	"azharstore/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type areaInput struct {
	Name  string `json:"name" binding:"required"`
	Price string `json:"price" binding:"required"`
}

func (in areaInput) toDomain() (domain.DeliveryArea, bool) {
	price, err := decimal.NewFromString(in.Price)
	if err != nil || price.IsNegative() {
		return domain.DeliveryArea{}, false
	}
	return domain.DeliveryArea{Name: in.Name, Price: price}, true
}

func listAreasHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		areas, err := deps.Areas.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if areas == nil {
			areas = []domain.DeliveryArea{}
		}
		c.JSON(http.StatusOK, areas)
	}
}

func createAreaHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in areaInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid delivery area payload")
			return
		}
		area, ok := in.toDomain()
		if !ok {
			badRequest(c, "price must be a non-negative number")
			return
		}
		created, err := deps.Areas.Create(c.Request.Context(), area)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func updateAreaHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		var in areaInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid delivery area payload")
			return
		}
		area, valid := in.toDomain()
		if !valid {
			badRequest(c, "price must be a non-negative number")
			return
		}
		area.ID = id
		updated, err := deps.Areas.Update(c.Request.Context(), area)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func deleteAreaHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		if err := deps.Areas.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
