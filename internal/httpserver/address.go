package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"chefmarket-storefront/internal/domain"
	addresssvc "chefmarket-storefront/internal/service/address"
	cartsvc "chefmarket-storefront/internal/service/cart"
)

func listAddressesHandler(addresses *addresssvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		force := c.Query("force") == "1" || c.Query("force") == "true"
		list, err := addresses.Fetch(c.Request.Context(), cartIDFrom(c), force)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		if list == nil {
			// Keep the JSON an array, not null.
			list = []domain.Address{}
		}
		c.JSON(http.StatusOK, gin.H{"addresses": list})
	}
}

type createAddressRequest struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	// ItemIndex optionally assigns the new address to a pending cart item.
	ItemIndex *int `json:"item_index"`
}

func createAddressHandler(addresses *addresssvc.Service, carts *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in createAddressRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address payload"})
			return
		}

		created, list, err := addresses.Create(c.Request.Context(), cartIDFrom(c), addresssvc.CreateInput{
			Street:     in.Street,
			City:       in.City,
			State:      in.State,
			PostalCode: in.PostalCode,
			Country:    in.Country,
		})
		var validationErr *addresssvc.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"fields": validationErr.Fields})
			return
		}
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		if list == nil {
			list = []domain.Address{}
		}

		assigned := false
		if in.ItemIndex != nil {
			addressID := created.ID
			_, updErr := carts.UpdateItem(cartIDFrom(c), *in.ItemIndex, cartsvc.ItemUpdate{
				ServiceTier: &cartsvc.ServiceTierUpdate{AddressID: &addressID},
			})
			assigned = updErr == nil
		}

		c.JSON(http.StatusCreated, gin.H{
			"address":   created,
			"addresses": list,
			"assigned":  assigned,
		})
	}
}
