package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"chefmarket-storefront/internal/domain"
	"chefmarket-storefront/internal/notify"
	sessionrepo "chefmarket-storefront/internal/repository/session"
	checkoutsvc "chefmarket-storefront/internal/service/checkout"
)

func checkoutHandler(checkout *checkoutsvc.Service, notifier *notify.Queue) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID := cartIDFrom(c)
		result, err := checkout.Checkout(c.Request.Context(), cartID)

		switch {
		case errors.Is(err, checkoutsvc.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case errors.Is(err, checkoutsvc.ErrUnsupportedItems):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case err != nil:
			// Transport or backend failure mid-commit: surface the banner
			// message plus whatever is known about already-committed items.
			body := gin.H{"error": err.Error()}
			if result != nil && len(result.Committed) > 0 {
				body["committed_order_ids"] = result.Committed
			}
			if notifier != nil {
				notifier.Notify(cartID, domain.Notification{Text: err.Error(), Tone: domain.ToneError})
			}
			c.JSON(http.StatusBadGateway, body)
			return
		}

		if len(result.ItemErrors) > 0 {
			body := gin.H{"item_errors": result.ItemErrors}
			if len(result.Committed) > 0 {
				body["committed_order_ids"] = result.Committed
			}
			c.JSON(http.StatusUnprocessableEntity, body)
			return
		}

		if notifier != nil {
			notifier.Notify(cartID, domain.Notification{Text: "Redirecting to payment", Tone: domain.ToneInfo})
		}
		c.JSON(http.StatusOK, gin.H{
			"redirect_url":        result.RedirectURL,
			"committed_order_ids": result.Committed,
		})
	}
}

func listCheckoutSessionsHandler(ledger sessionrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ledger == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "session ledger not configured"})
			return
		}
		sessions, err := ledger.ListRecent(c.Request.Context(), 20)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list checkout sessions"})
			return
		}
		if sessions == nil {
			sessions = []domain.CheckoutSession{}
		}
		c.JSON(http.StatusOK, gin.H{"sessions": sessions})
	}
}
