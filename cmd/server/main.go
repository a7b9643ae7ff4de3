package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pricing_backend/internal/app/di"
	"pricing_backend/internal/app/router"
	"pricing_backend/internal/app/scheduler"
	"pricing_backend/internal/config"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := di.Build(ctx, cfg, di.Options{})
	if err != nil {
		log.Fatal(err)
	}
	defer app.Close()

	// 定期更新
	var sched *scheduler.Scheduler
	if cfg.Schedule.Disabled {
		log.Println("[INFO] scheduler disabled; use GET /cron or cmd/refresh to trigger refreshes")
	} else {
		sched, err = scheduler.New(cfg.Schedule.Interval, cfg.Schedule.Cron)
		if err != nil {
			log.Fatal(err)
		}
		for _, c := range di.Cycles(app) {
			if err := sched.Register(c); err != nil {
				log.Fatal(err)
			}
		}
		sched.Start()
	}

	// ルータ生成
	r := router.NewRouter(di.NewHandlers(app), cfg.Server.CORSOrigins)
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[INFO] listening on %s (provider=%s, mode=%s)", srv.Addr, cfg.Provider.Name, cfg.Refresh.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("[INFO] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("[ERROR] server shutdown:", err)
	}
	if sched != nil {
		sched.Stop()
	}
	// 追加・リセット時のバックグラウンド更新を待つ
	app.Refresh.Wait()
}
