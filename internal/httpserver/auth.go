package httpserver

import (
	"crypto/subtle"
	"net/http"

	"azharstore/internal/auth"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func loginHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "username and password required")
			return
		}

		var subject string
		var authorized bool
		switch req.Username {
		case "admin":
			subject = auth.SubjectAdmin
			authorized = subtle.ConstantTimeCompare([]byte(req.Password), []byte(deps.AdminPassword)) == 1
		case "delivery":
			subject = auth.SubjectDelivery
			// a hash stored by the admin wins over the configured default
			hash, err := deps.Settings.DeliveryPasswordHash(c.Request.Context())
			if err != nil {
				respondError(c, err)
				return
			}
			if hash != "" {
				authorized = auth.CheckPassword(hash, req.Password)
			} else {
				authorized = subtle.ConstantTimeCompare([]byte(req.Password), []byte(deps.DeliveryPassword)) == 1
			}
		default:
			c.JSON(http.StatusUnauthorized, errorBody{Detail: "invalid credentials"})
			return
		}
		if !authorized {
			c.JSON(http.StatusUnauthorized, errorBody{Detail: "invalid credentials"})
			return
		}

		token, err := deps.Auth.Issue(subject)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, loginResponse{AccessToken: token, TokenType: "bearer"})
	}
}

type deliveryPasswordRequest struct {
	Password string `json:"password" binding:"required,min=4"`
}

func updateDeliveryPasswordHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req deliveryPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "password of at least 4 characters required")
			return
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := deps.Settings.SetDeliveryPasswordHash(c.Request.Context(), hash); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "updated"})
	}
}
