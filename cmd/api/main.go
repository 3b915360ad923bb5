package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"chefmarket-storefront/internal/backend"
	"chefmarket-storefront/internal/config"
	"chefmarket-storefront/internal/db"
	"chefmarket-storefront/internal/httpserver"
	"chefmarket-storefront/internal/notify"
	sessionrepo "chefmarket-storefront/internal/repository/session"
	addresssvc "chefmarket-storefront/internal/service/address"
	cartsvc "chefmarket-storefront/internal/service/cart"
	checkoutsvc "chefmarket-storefront/internal/service/checkout"
	sessionsvc "chefmarket-storefront/internal/service/session"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	backendClient := backend.New(cfg.BackendBaseURL, logger)
	sessionService := sessionsvc.New()
	cartService := cartsvc.New()
	addressService := addresssvc.New(backendClient)
	ledger := sessionrepo.NewPostgres(dbpool)
	notifier := notify.NewQueue()
	checkoutService := checkoutsvc.New(cartService, backendClient, ledger, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Sessions:  sessionService,
		Carts:     cartService,
		Addresses: addressService,
		Checkout:  checkoutService,
		Ledger:    ledger,
		Notifier:  notifier,
		Quotes:    backendClient,
	}, cfg.AllowedOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
