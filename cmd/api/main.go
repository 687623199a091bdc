package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/filestore"
	"storefront/internal/httpserver"
	productrepo "storefront/internal/repository/product"
	snapshotrepo "storefront/internal/repository/snapshot"
	tokenrepo "storefront/internal/repository/token"
	variantrepo "storefront/internal/repository/variant"
	adminsvc "storefront/internal/service/admin"
	authsvc "storefront/internal/service/auth"
	cartsvc "storefront/internal/service/cart"
	catalogsvc "storefront/internal/service/catalog"
	shopsvc "storefront/internal/service/shop"
	"storefront/internal/whatsapp"
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

	files, err := filestore.NewDisk(cfg.UploadDir, cfg.FileURLHost)
	if err != nil {
		logger.Fatalf("init filestore: %v", err)
	}

	productRepo := productrepo.NewPostgres(dbpool, logger)
	variantRepo := variantrepo.NewPostgres(dbpool, logger)
	snapshotStore := snapshotrepo.NewPostgres(dbpool, logger)
	tokenRepo := tokenrepo.NewPostgres(dbpool)

	catalogService := catalogsvc.New(productRepo, variantRepo, logger)
	cartManager := cartsvc.NewManager(snapshotStore, logger)
	channel := whatsapp.New(cfg.WhatsAppPhone)
	shopService := shopsvc.New(catalogService, cartManager, channel, cfg.BusinessName)
	adminService := adminsvc.New(productRepo, variantRepo)
	authService, err := authsvc.New(cfg.AdminEmail, cfg.AdminPassword, tokenRepo)
	if err != nil {
		logger.Fatalf("init auth: %v", err)
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Shop:        shopService,
		Admin:       adminService,
		Auth:        authService,
		Files:       files,
		CORSOrigins: cfg.CORSOrigins,
	})
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
