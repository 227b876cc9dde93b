package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"github.com/yourorg/adyen-gateway/internal/adyen"
	"github.com/yourorg/adyen-gateway/internal/config"
	"github.com/yourorg/adyen-gateway/internal/logger"
	"github.com/yourorg/adyen-gateway/internal/metrics"
	"github.com/yourorg/adyen-gateway/internal/policy"
	"github.com/yourorg/adyen-gateway/internal/reporting"
	"github.com/yourorg/adyen-gateway/internal/transport"
	"github.com/yourorg/adyen-gateway/internal/transport/circuitbreaker"
)

const (
	serviceName     = "adyen-gateway"
	journalCapacity = 10000
)

func setupRouter(gw *adyen.Gateway, journal *reporting.Journal, gatherer prometheus.Gatherer, l *zap.Logger) *gin.Engine {
	s := &server{gw: gw, journal: journal, reporter: reporting.NewReporter(), logger: l}

	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(serviceName), requestLogger(l))

	router.GET("/healthz", healthz)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := router.Group("/v1")
	for _, op := range operations {
		v1.POST("/"+op.route, s.handle(op.action, op.run))
	}
	v1.GET("/report", s.report)
	v1.GET("/journal", s.journalEntries)
	v1.GET("/gateway", s.gatewayInfo)
	return router
}

func newGateway(cfg *config.Config, l *zap.Logger, reg prometheus.Registerer) (*adyen.Gateway, error) {
	enforcer, err := policy.NewEnforcer(cfg.PolicyRules)
	if err != nil {
		return nil, fmt.Errorf("policy: %w", err)
	}

	transportOpts := []transport.Option{transport.WithTimeout(cfg.Timeout), transport.WithLogger(l)}
	if cfg.BreakerFailureThreshold > 0 {
		cb := circuitbreaker.NewCircuitBreaker(circuitbreaker.Config{
			FailureThreshold: cfg.BreakerFailureThreshold,
			ResetTimeout:     cfg.BreakerResetTimeout,
		})
		transportOpts = append(transportOpts, transport.WithCircuitBreaker(cb))
	}

	opts := []adyen.Option{
		adyen.WithTransport(transport.New(transportOpts...)),
		adyen.WithLogger(l),
		adyen.WithMetrics(metrics.New(reg)),
		adyen.WithPolicy(enforcer),
	}
	if cfg.Live() {
		opts = append(opts, adyen.WithLive())
	}
	if cfg.EndpointTemplate != "" {
		opts = append(opts, adyen.WithEndpointTemplate(cfg.EndpointTemplate))
	}

	return adyen.New(adyen.Credentials{
		MerchantAccount: cfg.MerchantAccount,
		Login:           cfg.Login,
		Password:        cfg.Password,
	}, opts...)
}

func setupTracing(enabled bool) (func(context.Context) error, error) {
	if !enabled {
		return func(context.Context) error { return nil }, nil
	}
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("stdouttrace: %w", err)
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	l, err := logger.New(cfg.LogLevel, !cfg.Live())
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = l.Sync() }()

	shutdownTracing, err := setupTracing(cfg.TraceStdout)
	if err != nil {
		l.Fatal("failed to set up tracing", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	gw, err := newGateway(cfg, l, reg)
	if err != nil {
		l.Fatal("failed to create gateway", zap.Error(err))
	}

	if cfg.Live() {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           setupRouter(gw, reporting.NewJournal(journalCapacity), reg, l),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		l.Info("starting server", zap.String("addr", cfg.HTTPAddr), zap.Bool("test", gw.Test()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error("server shutdown failed", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		l.Error("tracer shutdown failed", zap.Error(err))
	}
}
