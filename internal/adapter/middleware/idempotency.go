package middleware

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	// How long the "in-progress" lock holds before the finishing handler must refresh it.
	provisionalLockTTL = 60 * time.Second
	// Allowed client/server clock skew for Eq-Request-At (in UTC).
	maxClockSkew = 10 * time.Minute

	redisOpTimeout = 2 * time.Second
)

type idempEntry struct {
	InProgress  bool      `json:"in_progress"`
	Code        int       `json:"code"`
	Body        []byte    `json:"body"`
	BodySHA256  string    `json:"body_sha256"`
	RequestID   string    `json:"request_id"`
	RequestAtMS int64     `json:"request_at_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

type respRecorder struct {
	w    http.ResponseWriter
	buf  *bytes.Buffer
	code int
}

func (r *respRecorder) Header() http.Header { return r.w.Header() }
func (r *respRecorder) Write(b []byte) (int, error) {
	if r.buf != nil {
		r.buf.Write(b)
	}
	return r.w.Write(b)
}
func (r *respRecorder) WriteHeader(statusCode int) { r.code = statusCode; r.w.WriteHeader(statusCode) }

// validateHeaders checks the Eq-Request-Id / Eq-Request-At / Eq-Actor-Id
// trio and returns a non-empty message on the first failure.
func validateHeaders(req *http.Request) (reqID, actorID string, reqAt time.Time, msg string) {
	reqID = strings.TrimSpace(req.Header.Get("Eq-Request-Id"))
	switch {
	case reqID == "":
		return "", "", time.Time{}, "missing Eq-Request-Id"
	case !validReqID(reqID):
		return "", "", time.Time{}, "invalid Eq-Request-Id format"
	}

	reqAt, err := parseEqRequestAt(req.Header.Get("Eq-Request-At"))
	if err != nil {
		return "", "", time.Time{}, err.Error()
	}
	now := nowUTC()
	if reqAt.Before(now.Add(-maxClockSkew)) || reqAt.After(now.Add(maxClockSkew)) {
		return "", "", time.Time{}, "Eq-Request-At too skewed"
	}

	actorID = strings.TrimSpace(req.Header.Get("Eq-Actor-Id"))
	switch {
	case actorID == "":
		return "", "", time.Time{}, "missing Eq-Actor-Id"
	case !reHex32.MatchString(actorID):
		return "", "", time.Time{}, "invalid Eq-Actor-Id"
	}
	return reqID, actorID, reqAt, ""
}

// IdempotencyMiddleware dedupes mutating requests per (method, route,
// actor id, request id). A first request takes a provisional Redis lock,
// runs the handler and stores the final response; an exact retry replays
// that response, a retry with a different body conflicts.
// Eq-Request-At must be epoch (seconds or ms) or RFC3339 with a zone.
func IdempotencyMiddleware(rdb *redis.Client, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			method := req.Method

			switch method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			reqID, actorID, reqAt, msg := validateHeaders(req)
			if msg != "" {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
			}

			// Buffer the body so both the hash and the handler can read it.
			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewBuffer(body))
			bhash := bodyHash(body)

			key := buildKey(method, c.Path(), actorID, reqID)
			ctx, cancel := context.WithTimeout(req.Context(), redisOpTimeout)
			defer cancel()

			locked, err := provisionalSet(ctx, rdb, key, idempEntry{
				InProgress:  true,
				BodySHA256:  bhash,
				RequestID:   reqID,
				RequestAtMS: reqAt.UnixMilli(),
				CreatedAt:   nowUTC(),
			})
			if err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "idempotency store unavailable"})
			}
			if !locked {
				// Key exists: body must match, and a finished entry replays.
				cur, errLoad := loadEntry(ctx, rdb, key)
				if errLoad != nil {
					log.Printf("idempotency: load %s failed: %v", key, errLoad)
				}
				if cur.BodySHA256 != "" && cur.BodySHA256 != bhash {
					return c.JSON(http.StatusConflict, map[string]string{"error": "Eq-Request-Id reused with different body"})
				}
				if !cur.InProgress && cur.Code != 0 && len(cur.Body) > 0 {
					return c.Blob(cur.Code, echo.MIMEApplicationJSON, cur.Body)
				}
				return c.JSON(http.StatusConflict, map[string]string{"error": "request is already in progress"})
			}

			rec := &respRecorder{w: c.Response().Writer, buf: &bytes.Buffer{}, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			_ = saveFinal(context.Background(), rdb, key, idempEntry{
				Code:        rec.code,
				Body:        rec.buf.Bytes(),
				BodySHA256:  bhash,
				RequestID:   reqID,
				RequestAtMS: reqAt.UnixMilli(),
				CreatedAt:   nowUTC(),
			}, ttl)
			return nil
		}
	}
}
