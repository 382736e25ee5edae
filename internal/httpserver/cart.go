package httpserver

import (
	"net/http"

	"azharstore/internal/cart"
	"azharstore/internal/domain"
	"github.com/gin-gonic/gin"
)

// ownerHeader identifies the anonymous storefront session owning a cart.
const ownerHeader = "X-Cart-Owner"

func cartOwner(c *gin.Context) (string, bool) {
	owner := c.GetHeader(ownerHeader)
	if owner == "" {
		badRequest(c, ownerHeader+" header required")
		return "", false
	}
	return owner, true
}

type cartResponse struct {
	Lines []cart.Line `json:"lines"`
	Count int         `json:"count"`
	Total string      `json:"total"`
}

func cartBody(deps Deps, owner string) cartResponse {
	lines := deps.Carts.Lines(owner)
	if lines == nil {
		lines = []cart.Line{}
	}
	return cartResponse{
		Lines: lines,
		Count: deps.Carts.Count(owner),
		Total: deps.Carts.TotalPrice(owner).String(),
	}
}

func getCartHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := cartOwner(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, cartBody(deps, owner))
	}
}

func clearCartHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := cartOwner(c)
		if !ok {
			return
		}
		deps.Carts.Clear(owner)
		c.JSON(http.StatusOK, cartBody(deps, owner))
	}
}

type cartItemRequest struct {
	ProductID int64  `json:"product_id" binding:"required"`
	VariantID *int64 `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

func findVariant(p *domain.Product, id int64) *domain.ProductVariant {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i]
		}
	}
	return nil
}

func addCartItemHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := cartOwner(c)
		if !ok {
			return
		}
		var req cartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid cart item payload")
			return
		}
		if req.Quantity < 1 {
			req.Quantity = 1
		}

		product, err := deps.ProductSvc.Get(c.Request.Context(), req.ProductID)
		if err != nil {
			respondError(c, err)
			return
		}
		var variant *domain.ProductVariant
		if req.VariantID != nil {
			if variant = findVariant(product, *req.VariantID); variant == nil {
				respondError(c, domain.ErrNotFound)
				return
			}
		}

		if err := deps.Carts.Add(owner, *product, variant, req.Quantity); err != nil {
			badRequest(c, err.Error())
			return
		}
		c.JSON(http.StatusOK, cartBody(deps, owner))
	}
}

func updateCartItemHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := cartOwner(c)
		if !ok {
			return
		}
		var req cartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid cart item payload")
			return
		}
		deps.Carts.UpdateQuantity(owner, req.ProductID, req.VariantID, req.Quantity)
		c.JSON(http.StatusOK, cartBody(deps, owner))
	}
}

func removeCartItemHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := cartOwner(c)
		if !ok {
			return
		}
		var req cartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid cart item payload")
			return
		}
		deps.Carts.Remove(owner, req.ProductID, req.VariantID)
		c.JSON(http.StatusOK, cartBody(deps, owner))
	}
}
