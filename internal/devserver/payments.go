package devserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pkannaiyan/sk-organic-farms/internal/payment"
)

// authorizePayment stands in for the payment gateway. Card numbers ending in
// 0000 are declined so checkout failure paths can be exercised locally.
func (h *handlers) authorizePayment(c *gin.Context) {
	var req payment.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "invalid_request", "message": "invalid body"})
		return
	}
	if req.AmountCents <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"code": "invalid_amount", "message": "amount must be positive"})
		return
	}
	number := strings.ReplaceAll(req.Card.Number, " ", "")
	if len(number) < 12 || len(number) > 19 {
		c.JSON(http.StatusPaymentRequired, gin.H{"code": "invalid_card", "message": "card number is malformed"})
		return
	}
	if strings.HasSuffix(number, "0000") {
		c.JSON(http.StatusPaymentRequired, gin.H{"code": "card_declined", "message": "card was declined"})
		return
	}
	paymentID := uuid.NewString()
	h.logger.Info("payment authorized",
		zap.String("paymentId", paymentID),
		zap.String("cartId", req.CartID),
		zap.Int64("amountCents", req.AmountCents))
	c.JSON(http.StatusOK, gin.H{"paymentId": paymentID, "status": "authorized"})
}
