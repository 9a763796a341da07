// Copyright 2024-2026 George (earentir) Pantazis (https://earentir.dev)
// SPDX-License-Identifier: GPL-2.0-only
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dnsrdf/dnsrecords"
	"dnsrdf/identifier"
	"dnsrdf/mapper"
	"dnsrdf/pipeline"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// ContentTypeNQuads is the media type of conversion responses.
	ContentTypeNQuads = "application/n-quads"
	// HeaderRecordsRead carries the number of input records seen.
	HeaderRecordsRead = "X-Records-Read"
	// HeaderRecordsSkipped carries the number of records dropped with diagnostics.
	HeaderRecordsSkipped = "X-Records-Skipped"

	zoneKind        = "zone"
	shutdownTimeout = 5 * time.Second
)

// RouteRegistrar registers HTTP routes on the supplied Gin engine.
type RouteRegistrar func(*gin.Engine)

// Server holds what the conversion handlers need.
type Server struct {
	mapper  *mapper.Mapper
	workers int
	logger  *slog.Logger
}

// New returns a Server. A nil mapper uses mapper.Default.
func New(m *mapper.Mapper, workers int, logger *slog.Logger) *Server {
	if m == nil {
		m = mapper.Default
	}
	return &Server{mapper: m, workers: workers, logger: logger}
}

// Register wires the conversion, health and metrics routes.
func (s *Server) Register(router *gin.Engine) {
	if router == nil {
		return
	}
	router.GET("/health", healthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.POST("/convert/:kind", s.convertHandler)
}

// NewRouter builds a Gin engine with recovery and the given routes.
func NewRouter(registrar RouteRegistrar) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if registrar != nil {
		registrar(router)
	}
	return router
}

// Run serves the router on port until ctx is cancelled, then shuts down.
func Run(ctx context.Context, port string, registrar RouteRegistrar, logger *slog.Logger) error {
	trimmed := strings.TrimSpace(port)
	if trimmed == "" {
		return fmt.Errorf("api: invalid port %q", port)
	}
	srv := &http.Server{
		Addr:              ":" + trimmed,
		Handler:           NewRouter(registrar),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logAPIInfo(logger, "API server starting", "port", trimmed)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logAPIError(logger, "API server stopped with error", "error", err)
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api: shutdown: %w", err)
	}
	logAPIInfo(logger, "API server stopped")
	return nil
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// convertHandler maps a CSV body of the path's kind, or an RFC 1035 zone
// when kind is "zone" (query parameters isotime and origin).
func (s *Server) convertHandler(c *gin.Context) {
	var src pipeline.Source
	param := strings.TrimSpace(c.Param("kind"))
	if strings.EqualFold(param, zoneKind) {
		isotime := strings.TrimSpace(c.Query("isotime"))
		if isotime == "" {
			isotime = identifier.FormatTimestamp(time.Now().UTC())
		} else if _, err := identifier.ParseTimestamp(isotime); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		src = pipeline.NewZoneSource(c.Request.Body, c.Query("origin"), isotime)
	} else {
		kind, err := dnsrecords.ParseKind(param)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kinds": dnsrecords.Kinds()})
			return
		}
		src = pipeline.NewCSVSource(c.Request.Body, kind)
	}

	var out bytes.Buffer
	summary, err := pipeline.Run(c.Request.Context(), src, &out, pipeline.Options{
		Mapper:  s.mapper,
		Workers: s.workers,
		Logger:  s.logger,
	})
	if err != nil {
		logAPIWarn(s.logger, "conversion failed", "kind", param, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "summary": summary})
		return
	}
	c.Header(HeaderRecordsRead, strconv.Itoa(summary.Read))
	c.Header(HeaderRecordsSkipped, strconv.Itoa(summary.Skipped))
	c.Data(http.StatusOK, ContentTypeNQuads, out.Bytes())
}

func logAPIInfo(logger *slog.Logger, msg string, keyValues ...any) {
	if logger != nil {
		logger.Info(msg, keyValues...)
	}
}

func logAPIWarn(logger *slog.Logger, msg string, keyValues ...any) {
	if logger != nil {
		logger.Warn(msg, keyValues...)
	}
}

func logAPIError(logger *slog.Logger, msg string, keyValues ...any) {
	if logger != nil {
		logger.Error(msg, keyValues...)
	}
}
