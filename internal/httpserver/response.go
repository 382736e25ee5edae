package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"azharstore/internal/checkout"
	"azharstore/internal/domain"
	ordersvc "azharstore/internal/service/order"
	"github.com/gin-gonic/gin"
)

// errorBody is the error envelope for every endpoint.
type errorBody struct {
	Detail string `json:"detail"`
	Field  string `json:"field,omitempty"`
}

func respondError(c *gin.Context, err error) {
	var fieldErr *domain.ValidationError
	switch {
	case errors.As(err, &fieldErr):
		c.JSON(http.StatusUnprocessableEntity, errorBody{Detail: fieldErr.Message, Field: fieldErr.Field})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, errorBody{Detail: "not found"})
	case errors.Is(err, checkout.ErrSubmitInFlight):
		c.JSON(http.StatusConflict, errorBody{Detail: err.Error()})
	case errors.Is(err, checkout.ErrFlowClosed),
		errors.Is(err, checkout.ErrNotAtSummary),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrUnknownArea),
		errors.Is(err, checkout.ErrUnknownMethod),
		errors.Is(err, ordersvc.ErrNoItems),
		errors.Is(err, ordersvc.ErrAreaRequired),
		errors.Is(err, ordersvc.ErrBadStatus),
		errors.Is(err, ordersvc.ErrBadMethod),
		errors.Is(err, ordersvc.ErrBadItem),
		errors.Is(err, ordersvc.ErrBadQuantity),
		errors.Is(err, ordersvc.ErrTotalMismatch):
		c.JSON(http.StatusBadRequest, errorBody{Detail: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, errorBody{Detail: "internal error"})
	}
}

func badRequest(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, errorBody{Detail: detail})
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		badRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}
