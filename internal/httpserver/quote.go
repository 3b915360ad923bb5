package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chefmarket-storefront/internal/backend"
	"chefmarket-storefront/internal/domain"
	"chefmarket-storefront/internal/notify"
)

func submitQuoteHandler(quotes QuoteSender, notifier *notify.Queue) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			ChefUsername string `json:"chef_username" binding:"required"`
			Description  string `json:"description" binding:"required"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chef_username and description required"})
			return
		}
		err := quotes.SubmitQuoteRequest(c.Request.Context(), backend.QuoteRequestInput{
			ChefUsername: in.ChefUsername,
			Description:  in.Description,
		})
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		if notifier != nil {
			notifier.Notify(cartIDFrom(c), domain.Notification{
				Text: "Quote request sent",
				Tone: domain.ToneSuccess,
			})
		}
		c.JSON(http.StatusAccepted, gin.H{"status": "submitted"})
	}
}

func notificationsHandler(notifier *notify.Queue) gin.HandlerFunc {
	return func(c *gin.Context) {
		notifications := []domain.Notification{}
		if notifier != nil {
			if drained := notifier.Drain(cartIDFrom(c)); drained != nil {
				notifications = drained
			}
		}
		c.JSON(http.StatusOK, gin.H{"notifications": notifications})
	}
}
