package main

import (
	"context"
	"flag"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ashokpds15/Myself/pkg/api"
	"github.com/ashokpds15/Myself/pkg/audit"
	"github.com/ashokpds15/Myself/pkg/blogger"
	"github.com/ashokpds15/Myself/pkg/config"
	"github.com/ashokpds15/Myself/pkg/mail"
	"github.com/ashokpds15/Myself/pkg/subscriber"
	"github.com/ashokpds15/Myself/pkg/subscription"
	"github.com/ashokpds15/Myself/pkg/version"
)

const shutdownTimeout = 30 * time.Second

func main() {
	debug := true
	configPath := ""
	flag.BoolVar(&debug, "debug", false, "enable debug level logging")
	flag.StringVar(&configPath, "config", "", "path to the YAML config file")
	flag.Parse()

	log := setupLogger(debug).Sugar()
	defer func() { _ = log.Sync() }()
	log.With("version", version.Version).Info("Starting portfolio backend")

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	cfg.Defaults()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	a, err := newApp(cfg, debug, log)
	if err != nil {
		log.Fatalf("Error starting portfolio backend: %v", err)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- a.server.Listen() }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-sig:
		log.Infow("Shutting down", "signal", s.String())
	case err := <-errCh:
		if err != nil {
			log.Errorw("Server stopped", "error", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.shutdown(ctx)
}

// app holds the process-wide services so they can be closed in order.
type app struct {
	server   *api.Server
	store    *subscriber.SQLiteStore
	recorder *audit.Recorder
	log      *zap.SugaredLogger
}

func newApp(cfg config.Config, debug bool, log *zap.SugaredLogger) (*app, error) {
	store, err := subscriber.NewSQLiteStore(log, cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	var sender mail.Sender
	if cfg.Mail.Disabled {
		log.Warn("Mail delivery disabled; notifications are only logged")
		sender = mail.NewNoopSender(log)
	} else {
		sender = mail.NewSender(cfg.Mail, cfg.Frontend.BrandingName, log)
	}
	notifier := mail.NewNotifier(sender, cfg.Frontend.BrandingName, cfg.Mail.MaxConcurrentSends, log)

	sinks := []audit.Sink{audit.NewLogSink(log.Desugar())}
	if len(cfg.Audit.Kafka.Brokers) > 0 {
		ks, err := audit.NewKafkaSink(audit.KafkaSinkConfig{
			Brokers: cfg.Audit.Kafka.Brokers,
			Topic:   cfg.Audit.Kafka.Topic,
		}, log.Desugar())
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		log.Infow("Kafka audit sink enabled", "brokers", cfg.Audit.Kafka.Brokers, "topic", cfg.Audit.Kafka.Topic)
		sinks = append(sinks, ks)
	}
	recorder := audit.NewRecorder(log.Desugar(), sinks...)

	if cfg.Blogger.BlogID == "" || cfg.Blogger.APIKey == "" {
		log.Warn("Blogger blog ID or API key not set; post routes and auto-notify will fail")
	}

	server := api.NewServer(log.Desugar(), cfg, debug, store)
	err = server.RegisterAll([]api.APIController{
		subscription.NewController(log, subscription.Options{
			Store:            store,
			Notifier:         notifier,
			Posts:            blogger.NewClient(cfg.Blogger, log),
			Audit:            recorder,
			AdminAPIKey:      cfg.Admin.APIKey,
			PublicMiddleware: []gin.HandlerFunc{server.PublicRateLimit()},
		}),
	})
	if err != nil {
		server.Close()
		_ = recorder.Close()
		_ = store.Close()
		return nil, err
	}

	return &app{server: server, store: store, recorder: recorder, log: log}, nil
}

// shutdown drains HTTP first so in-flight notification runs can still
// record audit events and read the store.
func (a *app) shutdown(ctx context.Context) {
	if err := a.server.Shutdown(ctx); err != nil {
		a.log.Errorw("HTTP shutdown", "error", err)
	}
	if err := a.recorder.Close(); err != nil {
		a.log.Errorw("Closing audit recorder", "error", err)
	}
	if err := a.store.Close(); err != nil {
		a.log.Errorw("Closing subscriber store", "error", err)
	}
}

func setupLogger(debug bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.UTC().Format(time.RFC3339))
	}
	cfg.EncoderConfig.TimeKey = "ts"
	logger, err := cfg.Build()
	if err != nil {
		stdlog.Fatalf("failed to set up logger: %v", err)
	}
	return logger
}
