// Package api serves the progression service over HTTP with gin.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hunter-system/hunter/internal/briefing"
	"github.com/hunter-system/hunter/internal/progression"
)

// Deps are the collaborators of the HTTP server.
type Deps struct {
	Service *progression.Service
	Briefer *briefing.Composer
	Metrics *Metrics
	// Ping checks the database for /healthz.
	Ping   func(ctx context.Context) error
	Now    func() time.Time
	Logger *zap.Logger
}

// NewRouter builds the gin engine with every route mounted.
func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Metrics == nil {
		d.Metrics = NewMetrics()
	}
	if d.Ping == nil {
		d.Ping = func(context.Context) error { return nil }
	}
	if d.Briefer == nil {
		d.Briefer = briefing.New(nil, d.Service.Engine().Ladder(), d.Logger)
	}
	h := &handler{svc: d.Service, briefer: d.Briefer, ping: d.Ping, now: d.Now, logger: d.Logger}

	r := gin.New()
	r.Use(recovery(d.Logger), requestLog(d.Logger), d.Metrics.Middleware())

	r.GET("/healthz", h.health)
	r.GET("/metrics", d.Metrics.Handler())

	api := r.Group("/api")
	api.GET("/ladder", h.ladder)
	api.GET("/assessment/questions", h.questions)
	api.POST("/hunters", h.enroll)

	hunter := api.Group("/hunters/:id")
	hunter.GET("", h.profile)
	hunter.GET("/status", h.status)
	hunter.POST("/assessment", h.assess)
	hunter.GET("/quests", h.quests)
	hunter.POST("/quests/:questID/complete", h.complete)
	hunter.GET("/stats", h.stats)
	hunter.GET("/history", h.history)
	hunter.GET("/briefing", h.brief)

	api.POST("/admin/hunters/:id/reset", h.reset)

	r.NoRoute(func(c *gin.Context) { fail(c, http.StatusNotFound, "resource not found") })
	return r
}

func requestLog(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func recovery(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		log.Error("panic in handler", zap.Any("error", err), zap.String("path", c.Request.URL.Path))
		fail(c, http.StatusInternalServerError, "internal server error")
	})
}

// Serve runs the router on addr until ctx is cancelled, then drains for up
// to five seconds.
func Serve(ctx context.Context, addr string, handler http.Handler, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("http server stopped")
	return nil
}
