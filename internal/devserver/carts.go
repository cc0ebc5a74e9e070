package devserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pkannaiyan/sk-organic-farms/internal/domain"
)

type priceResponse struct {
	CurrencyCode   string `json:"currencyCode"`
	CentAmount     int64  `json:"centAmount"`
	FractionDigits int    `json:"fractionDigits"`
}

type lineItemResponse struct {
	ID           string        `json:"id"`
	VariantID    string        `json:"variantId"`
	Name         string        `json:"name"`
	VariantTitle string        `json:"variantTitle,omitempty"`
	Quantity     int           `json:"quantity"`
	Price        priceResponse `json:"price"`
	TotalPrice   priceResponse `json:"totalPrice"`
	ImageURL     string        `json:"imageUrl,omitempty"`
}

type cartResponse struct {
	ID                    string             `json:"id"`
	Version               int                `json:"version"`
	Currency              string             `json:"currency"`
	CartState             string             `json:"cartState"`
	TotalPrice            priceResponse      `json:"totalPrice"`
	LineItems             []lineItemResponse `json:"lineItems"`
	TotalLineItemQuantity int                `json:"totalLineItemQuantity,omitempty"`
}

func toCartResponse(cart *domain.Cart) cartResponse {
	out := cartResponse{
		ID:        cart.ID,
		Version:   1,
		Currency:  cart.Currency,
		CartState: "Active",
		TotalPrice: priceResponse{
			CurrencyCode:   cart.Currency,
			CentAmount:     cart.TotalCents,
			FractionDigits: 2,
		},
		LineItems: make([]lineItemResponse, 0, len(cart.Lines)),
	}
	for _, line := range cart.Lines {
		out.LineItems = append(out.LineItems, lineItemResponse{
			ID:           line.ID,
			VariantID:    line.VariantID,
			Name:         line.Title,
			VariantTitle: line.VariantTitle,
			Quantity:     line.Quantity,
			Price: priceResponse{
				CurrencyCode:   cart.Currency,
				CentAmount:     line.UnitPriceCents,
				FractionDigits: 2,
			},
			TotalPrice: priceResponse{
				CurrencyCode:   cart.Currency,
				CentAmount:     line.UnitPriceCents * int64(line.Quantity),
				FractionDigits: 2,
			},
			ImageURL: line.ImageURL,
		})
		out.TotalLineItemQuantity += line.Quantity
	}
	return out
}

type createCartRequest struct {
	Currency string `json:"currency"`
}

type updateCartRequest struct {
	Actions []cartAction `json:"actions"`
}

func (h *handlers) createCart(c *gin.Context) {
	var req createCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
		return
	}
	cart, err := h.backend.createCart(req.Currency)
	if err != nil {
		writeError(c, err)
		return
	}
	h.logger.Info("cart created", zap.String("cartId", cart.ID))
	c.JSON(http.StatusCreated, toCartResponse(cart))
}

func (h *handlers) getCart(c *gin.Context) {
	cart, err := h.backend.getCart(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

func (h *handlers) updateCart(c *gin.Context) {
	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
		return
	}
	cart, err := h.backend.updateCart(c.Param("id"), req.Actions)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}
