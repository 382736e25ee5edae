package httpserver

import (
	"errors"
	"net/http"

	"azharstore/internal/domain"
	customersvc "azharstore/internal/service/customer"
	"github.com/gin-gonic/gin"
)

func listCustomersHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		// an exact phone lookup yields at most one customer
		if phone := c.Query("phone"); phone != "" {
			cust, err := deps.CustomerSvc.GetByPhone(c.Request.Context(), phone)
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusOK, []domain.Customer{})
				return
			}
			if err != nil {
				respondError(c, err)
				return
			}
			c.JSON(http.StatusOK, []domain.Customer{*cust})
			return
		}

		customers, err := deps.CustomerSvc.List(c.Request.Context(), c.Query("search"))
		if err != nil {
			respondError(c, err)
			return
		}
		if customers == nil {
			customers = []domain.Customer{}
		}
		c.JSON(http.StatusOK, customers)
	}
}

func createCustomerHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in customersvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid customer payload")
			return
		}
		cust, err := deps.CustomerSvc.Create(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, cust)
	}
}

func getCustomerHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		cust, err := deps.CustomerSvc.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cust)
	}
}

func updateCustomerHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		var in customersvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid customer payload")
			return
		}
		cust, err := deps.CustomerSvc.Update(c.Request.Context(), id, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cust)
	}
}

func deleteCustomerHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		if err := deps.CustomerSvc.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
