package devserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pkannaiyan/sk-organic-farms/internal/commerce"
	"github.com/pkannaiyan/sk-organic-farms/internal/domain"
)

type tokenRequest struct {
	GrantType string `form:"grant_type" binding:"required"`
	Username  string `form:"username" binding:"required"`
	Password  string `form:"password" binding:"required"`
	Scope     string `form:"scope"`
}

type customerResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

func toCustomerResponse(c domain.Customer) customerResponse {
	return customerResponse{ID: c.ID, Email: c.Email, FirstName: c.FirstName, LastName: c.LastName}
}

func (h *handlers) token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid token request"})
		return
	}
	if req.GrantType != "password" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "unsupported grant_type"})
		return
	}
	token, err := h.backend.issueToken(req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	h.logger.Info("token issued", zap.String("email", req.Username))
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   int(accessTokenTTL.Seconds()),
	})
}

func (h *handlers) signup(c *gin.Context) {
	var req commerce.SignupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
		return
	}
	customer, err := h.backend.signup(req)
	if err != nil {
		writeError(c, err)
		return
	}
	h.logger.Info("customer created", zap.String("customerId", customer.ID))
	c.JSON(http.StatusCreated, toCustomerResponse(*customer))
}

func (h *handlers) me(c *gin.Context) {
	token := bearerToken(c.GetHeader("Authorization"))
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
		return
	}
	customer, err := h.backend.customerByToken(token)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCustomerResponse(*customer))
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
