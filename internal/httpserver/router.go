package httpserver

import (
	"context"
	"errors"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"chefmarket-storefront/internal/backend"
	"chefmarket-storefront/internal/notify"
	sessionrepo "chefmarket-storefront/internal/repository/session"
	addresssvc "chefmarket-storefront/internal/service/address"
	cartsvc "chefmarket-storefront/internal/service/cart"
	checkoutsvc "chefmarket-storefront/internal/service/checkout"
	sessionsvc "chefmarket-storefront/internal/service/session"
)

// QuoteSender is the slice of the backend client the quote handler needs.
type QuoteSender interface {
	SubmitQuoteRequest(ctx context.Context, in backend.QuoteRequestInput) error
}

// Deps carries the wired services handlers depend on.
type Deps struct {
	Sessions  *sessionsvc.Service
	Carts     *cartsvc.Service
	Addresses *addresssvc.Service
	Checkout  *checkoutsvc.Service
	Ledger    sessionrepo.Repository
	Notifier  *notify.Queue
	Quotes    QuoteSender
}

// buildRouter wires routes for the storefront gateway.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, allowedOrigins []string) (*gin.Engine, error) {
	if deps.Sessions == nil || deps.Carts == nil || deps.Addresses == nil || deps.Checkout == nil {
		return nil, errors.New("missing service dependencies")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = allowedOrigins
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", sessionTokenHeader)
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	router.POST("/session", createSessionHandler(deps.Sessions))

	api := router.Group("/", sessionMiddleware(deps.Sessions))
	api.GET("/cart", getCartHandler(deps.Carts))
	api.POST("/cart/items", addItemHandler(deps.Carts))
	api.PATCH("/cart/items/:index", updateItemHandler(deps.Carts))
	api.DELETE("/cart/items/:index", removeItemHandler(deps.Carts))
	api.DELETE("/cart", clearCartHandler(deps.Carts))
	api.GET("/cart/total", cartTotalHandler(deps.Carts))

	api.GET("/addresses", listAddressesHandler(deps.Addresses))
	api.POST("/addresses", createAddressHandler(deps.Addresses, deps.Carts))

	api.POST("/checkout", checkoutHandler(deps.Checkout, deps.Notifier))
	api.GET("/checkout/sessions", listCheckoutSessionsHandler(deps.Ledger))

	api.POST("/quotes", submitQuoteHandler(deps.Quotes, deps.Notifier))
	api.GET("/notifications", notificationsHandler(deps.Notifier))

	return router, nil
}
