// SPDX-FileCopyrightText: Copyright 2023 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

// Package controlplane contains the HTTP server exposing the OAuth, issue,
// import, webhook and integration endpoints
package controlplane

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"

	"github.com/mindersec/rdm-integrations/internal/controlplane/metrics"
	"github.com/mindersec/rdm-integrations/internal/db"
	"github.com/mindersec/rdm-integrations/internal/imports"
	"github.com/mindersec/rdm-integrations/internal/issues"
	"github.com/mindersec/rdm-integrations/internal/providers"
	"github.com/mindersec/rdm-integrations/internal/providers/gitlab"
	"github.com/mindersec/rdm-integrations/internal/session"
	"github.com/mindersec/rdm-integrations/internal/webhook"
	serverconfig "github.com/mindersec/rdm-integrations/pkg/config/server"
)

const metricsPath = "/metrics"

var (
	readHeaderTimeout = 2 * time.Second

	// RequestBodyMaxBytes is the maximum number of bytes that can be read from a request body
	RequestBodyMaxBytes int64 = 2 << 20
)

// Server represents the controlplane server
type Server struct {
	store     db.Store
	cfg       *serverconfig.Config
	mt        metrics.Metrics
	providers *providers.Registry
	sessions  *session.Store
	stager    imports.Stager
	issues    *issues.Service
	webhooks  *webhook.Receiver
	routes    imports.Routes
}

// NewServer creates a new server instance
func NewServer(
	store db.Store,
	cfg *serverconfig.Config,
	serverMetrics metrics.Metrics,
	registry *providers.Registry,
	sessions *session.Store,
	stager imports.Stager,
) *Server {
	if serverMetrics == nil {
		serverMetrics = metrics.NewNoopMetrics()
	}
	return &Server{
		store:     store,
		cfg:       cfg,
		mt:        serverMetrics,
		providers: registry,
		sessions:  sessions,
		stager:    stager,
		issues:    issues.NewService(store, registry, serverMetrics),
		webhooks: webhook.NewReceiver(store, registry, serverMetrics,
			webhook.WithEventType(gitlab.WebhookEventType),
			webhook.WithPayloadLogging(cfg.LoggingConfig.LogPayloads),
		),
		routes: hostRoutes{},
	}
}

// Router returns the handler serving every endpoint of the server
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(withLogger)
	r.Use(withRecovery)
	if s.cfg.HTTPServer.TrustProxyHeaders {
		r.Use(handlers.ProxyHeaders)
	}
	r.Use(withMaxSizeMiddleware)

	r.Get("/healthz", s.HandleHealth)

	r.Get("/oauth/authorize/{provider}", s.HandleAuthorize)
	r.Get("/oauth/callback/{provider}", s.HandleOAuthCallback)

	r.Route("/api/v1", func(r chi.Router) {
		// The webhook receiver caps its own body and is never called by browsers
		r.With(otelhttp.NewMiddleware("webhook")).
			Post("/webhooks/{provider}/{integration_id}", s.HandleWebhook)

		r.Group(func(r chi.Router) {
			r.Use(s.withCORSMiddleware)
			r.Get("/providers/{provider}", s.HandleGetProvider)
			r.Get("/providers/{provider}/fields", s.HandleProviderFields)
			r.Post("/projects/{project_id}/integrations", s.HandleCreateIntegration)
			r.Get("/integrations/{integration_id}", s.HandleGetIntegration)
			r.Put("/integrations/{integration_id}/options", s.HandleUpdateIntegrationOptions)
			r.Post("/integrations/{integration_id}/issues/{issue_id}", s.HandleSendIssue)
		})
	})

	r.Get("/projects/import/{provider}", s.HandleImport)
	r.Post("/projects/import/{provider}", s.HandleImport)
	r.Get("/projects/{project_id}/import/{provider}", s.HandleImport)
	r.Post("/projects/{project_id}/import/{provider}", s.HandleImport)

	return otelhttp.NewHandler(r, "http")
}

// StartHTTPServer starts the HTTP server and blocks while serving
func (s *Server) StartHTTPServer(ctx context.Context) error {
	errch := make(chan error)

	log.Printf("Starting HTTP server on %s", s.cfg.HTTPServer.GetAddress())

	server := http.Server{
		Addr:              s.cfg.HTTPServer.GetAddress(),
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}

	// start the metrics server if enabled
	if s.cfg.Metrics.Enabled {
		go func() {
			if err := s.startMetricServer(ctx); err != nil {
				log.Printf("failed to start metrics server: %v", err)
			}
		}()
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errch <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case err := <-errch:
		log.Printf("HTTP server fatal error: %v", err)
		return err
	case <-ctx.Done():
		shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownRelease()

		log.Printf("shutting down 'HTTP server'")

		return server.Shutdown(shutdownCtx)
	}
}

func (s *Server) withCORSMiddleware(h http.Handler) http.Handler {
	if s.cfg.HTTPServer.CORS.Enabled {
		var opts []handlers.CORSOption
		if len(s.cfg.HTTPServer.CORS.AllowOrigins) > 0 {
			opts = append(opts, handlers.AllowedOrigins(s.cfg.HTTPServer.CORS.AllowOrigins))
		}
		if len(s.cfg.HTTPServer.CORS.AllowMethods) > 0 {
			opts = append(opts, handlers.AllowedMethods(s.cfg.HTTPServer.CORS.AllowMethods))
		}
		if len(s.cfg.HTTPServer.CORS.AllowHeaders) > 0 {
			opts = append(opts, handlers.AllowedHeaders(s.cfg.HTTPServer.CORS.AllowHeaders))
		}
		if s.cfg.HTTPServer.CORS.AllowCredentials {
			opts = append(opts, handlers.AllowCredentials())
		}

		return handlers.CORS(opts...)(h)
	}

	return h
}

// withLogger attaches the process logger, tagged with the request ID, to
// the request context and logs the outcome of every request
func withLogger(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		l := zerolog.Ctx(r.Context()).With().
			Str("request_id", middleware.GetReqID(r.Context())).
			Logger()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		h.ServeHTTP(ww, r.WithContext(l.WithContext(r.Context())))

		l.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	})
}

func withRecovery(h http.Handler) http.Handler {
	l := log.Logger
	return handlers.RecoveryHandler(handlers.RecoveryLogger(&l))(h)
}

func withMaxSizeMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, RequestBodyMaxBytes)
		h.ServeHTTP(w, r)
	})
}

func initMetrics(r sdkmetric.Reader) *sdkmetric.MeterProvider {
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(resource.Default()),
		sdkmetric.WithReader(r),
	)

	otel.SetMeterProvider(mp)

	return mp
}

// startMetricServer starts a Prometheus metrics server and blocks while serving
func (s *Server) startMetricServer(ctx context.Context) error {
	// pull-based Prometheus exporter
	prometheusExporter, err := prometheus.New(
		prometheus.WithNamespace("rdm"),
	)
	if err != nil {
		return fmt.Errorf("could not initialize metrics: %w", err)
	}

	mp := initMetrics(prometheusExporter)
	defer shutdownHandler("MeterProvider", func(ctx context.Context) error {
		return mp.Shutdown(ctx)
	})

	if err := s.mt.Init(); err != nil {
		return fmt.Errorf("could not initialize instruments: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle(metricsPath, promhttp.Handler())

	ch := make(chan error)

	log.Printf("Starting metrics server on %s", s.cfg.MetricServer.GetAddress())

	server := http.Server{
		Addr:              s.cfg.MetricServer.GetAddress(),
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		ch <- server.ListenAndServe()
	}()

	select {
	case err := <-ch:
		log.Printf("Metric server fatal error: %v", err)
		return err
	case <-ctx.Done():
		shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownRelease()

		log.Printf("shutting down 'Metric server'")

		return server.Shutdown(shutdownCtx)
	}
}

type shutdowner func(context.Context) error

func shutdownHandler(component string, sdf shutdowner) {
	shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownRelease()

	log.Printf("shutting down '%s'", component)

	if err := sdf(shutdownCtx); err != nil {
		log.Error().Msgf("error shutting down '%s': %+v", component, err)
	}
}
