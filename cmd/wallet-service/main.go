// @title         wallet-service API
// @version       1.0
// @description   Мост к Apple Wallet и Google Wallet: пропуска, ссылки сохранения, события.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8081
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/vbncursed/vkr/wallet-service/docs"
	wcfg "github.com/vbncursed/vkr/wallet-service/internal/config"
	"github.com/vbncursed/vkr/wallet-service/internal/events"
	wh "github.com/vbncursed/vkr/wallet-service/internal/http"
	"github.com/vbncursed/vkr/wallet-service/internal/metrics"
	"github.com/vbncursed/vkr/wallet-service/internal/platform/apple"
	"github.com/vbncursed/vkr/wallet-service/internal/platform/google"
	"github.com/vbncursed/vkr/wallet-service/internal/repo"
	"github.com/vbncursed/vkr/wallet-service/internal/service"
	"github.com/vbncursed/vkr/wallet-service/internal/telemetry"
)

const serviceName = "wallet-service"

func main() {
	level := new(slog.LevelVar)
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := wcfg.Load()
	if err != nil {
		fatal("config", err)
	}
	lvl, _ := cfg.SlogLevel()
	level.Set(lvl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := telemetry.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		fatal("otel", err)
	}

	pool, err := repo.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		fatal("db", err)
	}
	defer pool.Close()

	if err := repo.RunMigrations(ctx, pool); err != nil {
		fatal("migrate", err)
	}

	store := repo.NewStore(pool, cfg.Wallet.LibraryReadOnly)
	gw, err := googleWallet(ctx, cfg.Google, store)
	if err != nil {
		fatal("google wallet", err)
	}

	var opts []events.Option
	if brokers := events.CleanBrokers(cfg.Kafka.Brokers); len(brokers) > 0 {
		opts = append(opts, events.WithSink(events.NewKafkaSink(brokers, cfg.Kafka.Topic)))
	}
	emitter := events.NewEmitter(opts...)

	m := metrics.New()
	svc := service.New(emitter, m, apple.New(store), gw)
	e := wh.Router(svc, pool, m, cfg)

	srv := &http.Server{
		Addr:              cfg.Bind,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}
	// SSE handlers return once their subscription is closed
	srv.RegisterOnShutdown(emitter.DisconnectSubscribers)

	go func() {
		slog.Info("wallet-service listening", "addr", cfg.Bind)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fatal("http", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http shutdown", "err", err)
	}
	if err := emitter.Close(); err != nil {
		slog.Warn("event sinks close", "err", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Warn("otel shutdown", "err", err)
	}
}

// googleWallet собирает фасад android: локальный реестр или REST API,
// ссылки сохранения подписываются, если задан файл сервисного аккаунта
func googleWallet(ctx context.Context, cfg wcfg.GoogleConfig, local google.Client) (*google.Wallet, error) {
	var (
		client = local
		links  *google.SaveLinkSigner
	)
	if cfg.CredentialsFile != "" {
		sa, raw, err := google.ReadServiceAccount(cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
		links, err = google.NewSaveLinkSigner(sa, cfg.Origins)
		if err != nil {
			return nil, err
		}
		if cfg.Mode == wcfg.GoogleModeREST {
			rc, err := google.NewRESTClientFromCredentials(ctx, cfg.APIURL, cfg.IssuerID, raw)
			if err != nil {
				return nil, err
			}
			client = rc
		}
	}
	slog.Info("google wallet", "mode", cfg.Mode, "signed_links", links != nil)
	return google.New(client, links), nil
}

func fatal(what string, err error) {
	slog.Error(what, "err", err)
	os.Exit(1)
}
