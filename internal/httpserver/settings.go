package httpserver

import (
	"net/http"

	"azharstore/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type settingsPayload struct {
	FreeDeliveryThreshold string `json:"free_delivery_threshold"`
	DeliveryMessage       string `json:"delivery_message"`
	PickupMessage         string `json:"pickup_message"`
}

func getSettingsHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := deps.Settings.Get(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, settingsPayload{
			FreeDeliveryThreshold: s.FreeDeliveryThreshold.String(),
			DeliveryMessage:       s.DeliveryMessage,
			PickupMessage:         s.PickupMessage,
		})
	}
}

func updateSettingsHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in settingsPayload
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid settings payload")
			return
		}
		threshold, err := decimal.NewFromString(in.FreeDeliveryThreshold)
		if err != nil || threshold.IsNegative() {
			badRequest(c, "free_delivery_threshold must be a non-negative number")
			return
		}
		updated, err := deps.Settings.Update(c.Request.Context(), domain.AppSettings{
			FreeDeliveryThreshold: threshold,
			DeliveryMessage:       in.DeliveryMessage,
			PickupMessage:         in.PickupMessage,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, settingsPayload{
			FreeDeliveryThreshold: updated.FreeDeliveryThreshold.String(),
			DeliveryMessage:       updated.DeliveryMessage,
			PickupMessage:         updated.PickupMessage,
		})
	}
}
