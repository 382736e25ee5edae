package httpserver

import (
	"net/http"

	"azharstore/internal/checkout"
	"azharstore/internal/domain"
	"github.com/gin-gonic/gin"
)

func openCheckoutHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := cartOwner(c)
		if !ok {
			return
		}
		flow, err := deps.Checkout.Open(c.Request.Context(), owner)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, flow.State())
	}
}

func checkoutFlow(deps Deps, c *gin.Context) (*checkout.Flow, bool) {
	flow, ok := deps.Checkout.Get(c.Param("id"))
	if !ok {
		respondError(c, domain.ErrNotFound)
		return nil, false
	}
	return flow, true
}

func getCheckoutHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		flow, ok := checkoutFlow(deps, c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, flow.State())
	}
}

func closeCheckoutHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		deps.Checkout.Close(c.Param("id"))
		c.Status(http.StatusNoContent)
	}
}

func checkoutCustomerHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		flow, ok := checkoutFlow(deps, c)
		if !ok {
			return
		}
		var details checkout.CustomerDetails
		if err := c.ShouldBindJSON(&details); err != nil {
			badRequest(c, "invalid customer payload")
			return
		}
		if err := flow.SetCustomer(details); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, flow.State())
	}
}

type methodRequest struct {
	DeliveryMethod string `json:"delivery_method" binding:"required"`
}

func checkoutMethodHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		flow, ok := checkoutFlow(deps, c)
		if !ok {
			return
		}
		var req methodRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "delivery_method required")
			return
		}
		if err := flow.SelectMethod(req.DeliveryMethod); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, flow.State())
	}
}

type areaRequest struct {
	DeliveryAreaID int64 `json:"delivery_area_id" binding:"required"`
}

func checkoutAreaHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		flow, ok := checkoutFlow(deps, c)
		if !ok {
			return
		}
		var req areaRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "delivery_area_id required")
			return
		}
		if err := flow.SelectArea(req.DeliveryAreaID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, flow.State())
	}
}

func checkoutNextHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		flow, ok := checkoutFlow(deps, c)
		if !ok {
			return
		}
		if _, err := flow.Next(); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, flow.State())
	}
}

func checkoutBackHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		flow, ok := checkoutFlow(deps, c)
		if !ok {
			return
		}
		if _, err := flow.Back(); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, flow.State())
	}
}

func checkoutSubmitHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		flow, ok := checkoutFlow(deps, c)
		if !ok {
			return
		}
		order, err := flow.Submit(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order, "state": flow.State()})
	}
}
