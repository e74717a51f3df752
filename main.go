package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"lg/wellness-go-api/internal/config"
	"lg/wellness-go-api/internal/scheduler"
	"lg/wellness-go-api/internal/storage"
	"lg/wellness-go-api/internal/wellness"
)

func main() {
	log.SetPrefix("lg/wellness-go-api: ")
	log.SetFlags(log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer backend.Close()
	log.Printf("storage: %s", cfg.Storage.Driver)

	clock := wellness.SystemClock{Location: cfg.Timezone}
	h := newHandler(backend, clock, cfg.Schedule, 0)

	router := gin.New()
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{SkipPaths: []string{socketPath}}), gin.Recovery())
	router.SetTrustedProxies(nil)
	h.registerRoutes(router)
	if cfg.MetricsEnabled {
		metricsRoute(router)
	}

	sched := scheduler.New(cfg.Timezone, h.reminders, scheduler.WithGuest(h.userPartitions))
	sched.SetNotifier(h.hub)
	sched.OnFire(recordFired)
	go func() {
		if err := sched.Start(ctx); err != nil {
			log.Printf("scheduler: %v", err)
		}
	}()

	srv := &http.Server{Addr: cfg.Addr, Handler: router}
	go func() {
		log.Printf("listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	sched.Stop()
}
