package httpserver

import (
	"net/http"
	"strconv"

	"azharstore/internal/checkout"
	"azharstore/internal/domain"
	orderrepo "azharstore/internal/repository/order"
	"github.com/gin-gonic/gin"
)

func listOrdersHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter orderrepo.ListFilter
		filter.Status = c.Query("status")
		if raw := c.Query("customer_id"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				badRequest(c, "invalid customer_id")
				return
			}
			filter.CustomerID = &id
		}

		orders, err := deps.OrderSvc.List(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

func getOrderHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		order, err := deps.OrderSvc.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// createOrderHandler places an order from a raw payload, bypassing the
// checkout wizard. Prices and totals still come from the catalog.
func createOrderHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload checkout.OrderPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			badRequest(c, "invalid order payload")
			return
		}
		order, err := deps.OrderSvc.SubmitOrder(c.Request.Context(), payload)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

type statusRequest struct {
	Status   string  `json:"status" binding:"required"`
	Comments *string `json:"comments"`
}

func updateOrderStatusHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		var req statusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "status required")
			return
		}
		order, err := deps.OrderSvc.UpdateStatus(c.Request.Context(), id, req.Status, req.Comments)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func deleteOrderHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		if err := deps.OrderSvc.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
