package main

import (
	"context"
	"fmt"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/FrenchMajesty/turbo-translate/clients"
	"github.com/FrenchMajesty/turbo-translate/clients/microsoft"
	"github.com/FrenchMajesty/turbo-translate/clients/openai"
	"github.com/FrenchMajesty/turbo-translate/config"
	"github.com/FrenchMajesty/turbo-translate/metrics"
	"github.com/FrenchMajesty/turbo-translate/rate_limit"
	"github.com/FrenchMajesty/turbo-translate/rate_limit/backends/memory"
	"github.com/FrenchMajesty/turbo-translate/turbo_translate"
	"github.com/FrenchMajesty/turbo-translate/utils/logger"
	"github.com/FrenchMajesty/turbo-translate/utils/retry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Translates the command line arguments (or a demo pair) with the provider
// selected in $TURBO_TRANSLATE_CONFIG.
func main() {
	cfg, err := config.Load(os.Getenv("TURBO_TRANSLATE_CONFIG"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	appLogger, err := logger.New(logger.LoggerType(cfg.Logging.Output), cfg.Logging.File)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer appLogger.Close()

	client := newClient(cfg, appLogger)
	appMetrics := startMetrics(cfg, appLogger)

	var backend rate_limit.Backend
	if cfg.Quota.Enabled {
		mem := memory.NewBackend()
		if cfg.Quota.RequestsPerMinute > 0 || cfg.Quota.UnitsPerMinute > 0 {
			mem.SetBudgetForTests(client.Provider(), cfg.Quota.UnitsPerMinute, cfg.Quota.RequestsPerMinute)
		}
		backend = mem
		defer backend.Close()
	}

	tt := turbo_translate.NewTurboTranslate(turbo_translate.Options{
		Client:  client,
		Backend: backend,
		Logger:  appLogger,
		Metrics: appMetrics,
		RetryConfig: &retry.Config{
			MaxRetries:      cfg.Retry.Count,
			BaseDelay:       cfg.Retry.BaseDelay(),
			MaxDelay:        cfg.Retry.MaxDelay(),
			BackoffMultiple: 2.0,
		},
		Throttled: func() {
			appLogger.Println("translator is throttling requests, one retry left")
		},
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for event := range tt.GetEventChan() {
			appLogger.Printf("event %s request=%s data=%v", event.Type, event.RequestID, event.Data)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	texts := os.Args[1:]
	if len(texts) == 0 {
		texts = []string{"Hello", "World"}
	}

	translations, ok, err := tt.TranslateArray(ctx, texts)
	tt.Stop()
	<-done

	switch {
	case err != nil:
		log.Fatalf("translate: %v", err)
	case !ok:
		fmt.Println("no result from translation service")
		os.Exit(1)
	}

	for i, text := range texts {
		fmt.Printf("%s => %s\n", text, translations[i])
	}
	fmt.Println(strings.Repeat("-", 20))
	fmt.Printf("%d texts translated\n", len(translations))
}

func newClient(cfg *config.Config, l logger.Logger) clients.TranslatorInterface {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout()}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		opts := []openai.Option{
			openai.WithModel(cfg.OpenAI.Model),
			openai.WithLanguages(cfg.OpenAI.From, cfg.OpenAI.To),
			openai.WithHTTPClient(httpClient),
			openai.WithLogger(l),
		}
		if cfg.OpenAI.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.OpenAI.BaseURL))
		}
		return openai.NewClient(cfg.OpenAI.APIKey, opts...)
	default:
		return microsoft.NewClient(cfg.Microsoft.APIKey,
			microsoft.WithEndpoint(cfg.Microsoft.Endpoint),
			microsoft.WithLanguages(cfg.Microsoft.From, cfg.Microsoft.To),
			microsoft.WithHTTPClient(httpClient),
			microsoft.WithLogger(l),
		)
	}
}

// startMetrics serves Prometheus metrics when metrics.listen is set
func startMetrics(cfg *config.Config, l logger.Logger) *metrics.Metrics {
	if cfg.Metrics.Listen == "" {
		return nil
	}

	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	server := &http.Server{
		Addr:              cfg.Metrics.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		l.Printf("Serving metrics on %s%s", cfg.Metrics.Listen, cfg.Metrics.Path)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Printf("metrics server failed: %v", err)
		}
	}()

	return m
}
