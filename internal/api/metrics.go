package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hunter-system/hunter/internal/progression"
	"github.com/hunter-system/hunter/internal/rank"
)

// Metrics owns a private registry so tests and multiple servers do not
// collide on the global one.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	questsCompleted *prometheus.CounterVec
	xpAwarded       prometheus.Counter
	promotions      *prometheus.CounterVec
}

var _ progression.Recorder = (*Metrics)(nil)

// NewMetrics registers every collector, including Go runtime and process
// collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "endpoint", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		}, []string{"method", "endpoint"}),
		questsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hunter_quests_completed_total",
			Help: "Quests completed, by category",
		}, []string{"category"}),
		xpAwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hunter_xp_awarded_total",
			Help: "XP awarded for completed quests, streak boost included",
		}),
		promotions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hunter_rank_promotions_total",
			Help: "Rank changes, by the rank reached",
		}, []string{"rank"}),
	}
	m.registry.MustRegister(
		m.requests, m.duration, m.questsCompleted, m.xpAwarded, m.promotions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) QuestCompleted(c rank.Category) { m.questsCompleted.WithLabelValues(string(c)).Inc() }
func (m *Metrics) XPAwarded(xp int)               { m.xpAwarded.Add(float64(xp)) }
func (m *Metrics) RankChanged(to rank.Rank)       { m.promotions.WithLabelValues(string(to)).Inc() }

// Middleware counts and times requests by route pattern.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, endpoint, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
