package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stitchworks/storefront/config"
	"github.com/stitchworks/storefront/internal/adminapi"
	"github.com/stitchworks/storefront/internal/app"
	"github.com/stitchworks/storefront/internal/webserver"
	"go.uber.org/zap"
)

var (
	conffile = flag.String("c", "storefront.yml", "config file")
	initdb   = flag.Bool("initdb", false, "drop and recreate all tables, then exit")
)

func main() {
	flag.Parse()

	cfg := config.LoadConfig(*conffile)
	a := app.NewApplication(cfg)
	a.Init(cfg)
	defer a.Release()

	if *initdb {
		a.InitDb()
		zap.S().Info("database initialized")
		return
	}

	webserver.Init(a)
	adminapi.InitRouter()

	errCh := make(chan error, 1)
	go func() {
		errCh <- webserver.Listen()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			zap.S().Fatalf("http server error: %v", err)
		}
	case sig := <-sigCh:
		zap.S().Infof("received %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := webserver.Shutdown(ctx); err != nil {
			zap.S().Errorf("shutdown error: %v", err)
		}
	}
}
