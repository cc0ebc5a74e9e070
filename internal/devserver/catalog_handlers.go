package devserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlers) collections(c *gin.Context) {
	collections := h.backend.catalog.Collections
	c.JSON(http.StatusOK, gin.H{"results": collections, "total": len(collections)})
}

func (h *handlers) products(c *gin.Context) {
	products := h.backend.catalog.ProductsByCollection(c.Query("collection"))
	c.JSON(http.StatusOK, gin.H{"results": products, "total": len(products)})
}

func (h *handlers) productByKey(c *gin.Context) {
	product, ok := h.backend.catalog.ProductByKey(c.Param("key"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}
