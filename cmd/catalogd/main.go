package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vinoteca/catalog/config"
	"github.com/vinoteca/catalog/internal/adminapi"
	"github.com/vinoteca/catalog/internal/app"
	"github.com/vinoteca/catalog/internal/webserver"
)

var version = "develop"

var (
	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	conffile = flag.String("c", "", "config yaml file")
	initdb   = flag.Bool("initdb", false, "drop and recreate all tables, then exit")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println(version)
		return
	}
	if *h {
		flag.Usage()
		return
	}

	cfg := config.LoadConfig(*conffile)

	application := app.NewApplication(cfg)
	if err := application.Init(cfg); err != nil {
		zap.S().Fatalf("application init failed: %v", err)
	}
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	webserver.Init(application)
	adminapi.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(webserver.Listen)
	g.Go(func() error {
		<-gctx.Done()
		zap.S().Info("shutting down admin server")
		return webserver.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		zap.S().Errorf("server stopped: %v", err)
	}
}
