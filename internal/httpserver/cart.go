package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"chefmarket-storefront/internal/domain"
	cartsvc "chefmarket-storefront/internal/service/cart"
)

func getCartHandler(carts *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, toWireCart(carts.Get(cartIDFrom(c))))
	}
}

func addItemHandler(carts *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var w wireItem
		if err := c.ShouldBindJSON(&w); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item payload"})
			return
		}
		item, err := itemFromWire(w)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		added, err := carts.AddItem(cartIDFrom(c), w.ChefUsername, item)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not add item"})
			return
		}
		c.JSON(http.StatusCreated, toWireItem(added))
	}
}

func updateItemHandler(carts *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, ok := itemIndex(c)
		if !ok {
			return
		}
		var w wireItemUpdate
		if err := c.ShouldBindJSON(&w); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update payload"})
			return
		}
		item, err := carts.UpdateItem(cartIDFrom(c), index, updateFromWire(w))
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "no cart item at that index"})
			return
		case errors.Is(err, cartsvc.ErrKindMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "update fields do not match item type"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update item"})
			return
		}
		c.JSON(http.StatusOK, toWireItem(item))
	}
}

func removeItemHandler(carts *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, ok := itemIndex(c)
		if !ok {
			return
		}
		if err := carts.RemoveItem(cartIDFrom(c), index); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no cart item at that index"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func clearCartHandler(carts *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		carts.Clear(cartIDFrom(c))
		c.Status(http.StatusNoContent)
	}
}

func cartTotalHandler(carts *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"total_cents": carts.TotalCents(cartIDFrom(c))})
	}
}

func itemIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item index"})
		return 0, false
	}
	return index, true
}
