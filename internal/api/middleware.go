package api

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"itgirls-web/internal/service"
	"itgirls-web/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of http request",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)
)

const (
	userLocal    = "sessionUser"
	visitorLocal = "visitorID"
)

// SessionMiddleware loads the stored user from the session cookies and puts
// it on the request context, where the backend client picks up the token.
func SessionMiddleware(auth service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		keys := keysFrom(c)
		if keys.Empty() {
			return c.Next()
		}

		user, err := auth.StoredUser(c.UserContext(), keys)
		if err != nil {
			slog.ErrorContext(c.UserContext(), "Failed to load session", slog.String("error", err.Error()))
			return c.Next()
		}
		if user != nil {
			c.Locals(userLocal, user)
			c.SetUserContext(session.WithRecord(c.UserContext(), user))
		}
		return c.Next()
	}
}

// CurrentUser is the signed-in user, or nil.
func CurrentUser(c *fiber.Ctx) *session.Record {
	user, _ := c.Locals(userLocal).(*session.Record)
	return user
}

func keysFrom(c *fiber.Ctx) session.Keys {
	return session.Keys{
		Persistent: c.Cookies(session.PersistentCookie),
		Transient:  c.Cookies(session.TransientCookie),
	}
}

// VisitorMiddleware gives every browser an anonymous id cookie on first
// contact, so per-visitor state never spans two browsers.
func VisitorMiddleware(secureCookies bool) fiber.Handler {
	jar := cookieJar{secure: secureCookies}
	return func(c *fiber.Ctx) error {
		id := c.Cookies(visitorCookie)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			jar.visitor(c, id)
		}
		c.Locals(visitorLocal, id)
		return c.Next()
	}
}

// clientKey identifies the browser for per-visitor state: the session key,
// else the anonymous visitor id.
func clientKey(c *fiber.Ctx) string {
	if key := keysFrom(c).Primary(); key != "" {
		return key
	}
	if id, _ := c.Locals(visitorLocal).(string); id != "" {
		return "visitor:" + id
	}
	// without VisitorMiddleware
	return "ip:" + c.IP()
}

func PrometheusMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start).Seconds()
		statusCode := c.Response().StatusCode()

		if err != nil {
			var e *fiber.Error

			if errors.As(err, &e) {
				statusCode = e.Code
			} else {
				statusCode = fiber.StatusInternalServerError
			}
		}

		method := c.Method()
		path := c.Route().Path
		statusStr := fmt.Sprintf("%d", statusCode)

		httpRequestTotal.WithLabelValues(method, path, statusStr).Inc()
		httpRequestDuration.WithLabelValues(method, path, statusStr).Observe(duration)

		return err
	}
}
