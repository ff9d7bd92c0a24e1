// Package stubserver is a local stand-in for the TOO API: the full endpoint
// surface with canned fixtures and an in-memory request store. It backs the
// integration tests and the swifttoo-sim binary.
package stubserver

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Server implements the API surface against in-memory state.
type Server struct {
	secret string
	logger *slog.Logger

	mu       sync.Mutex
	nextID   int
	nextJob  int
	requests map[int]map[string]any
	jobs     map[int]map[string]any
}

func New(secret string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		secret:   strings.TrimSpace(secret),
		logger:   logger,
		nextID:   1000,
		nextJob:  1,
		requests: map[int]map[string]any{},
		jobs:     map[int]map[string]any{},
	}
}

// Attach registers every route on the echo instance.
func (s *Server) Attach(e *echo.Echo) {
	api := e.Group("/swift", s.requireToken)
	api.GET("/resolve", s.resolve)
	api.GET("/visquery", s.visQuery)
	api.GET("/observations", s.observations)
	api.GET("/plan", s.plan)
	api.GET("/saa", s.saa)
	api.GET("/guano", s.guano)
	api.GET("/uvotmode", s.uvotMode)
	api.GET("/clock", s.clock)
	api.GET("/requests", s.tooRequests)
	api.GET("/data", s.data)
	api.GET("/queryjob/:job", s.queryJob)
	api.POST("/too", s.submitTOO)
	api.GET("/too/:id", s.getTOO)
	api.PUT("/too/:id", s.updateTOO)
	api.DELETE("/too/:id", s.cancelTOO)
	api.GET("/calendar/:id", s.calendar)
	api.GET("/commands/:id", s.commands)
}

// requireToken verifies the HS256 bearer token when a secret is configured.
func (s *Server) requireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.secret == "" {
			return next(c)
		}
		header := c.Request().Header.Get("Authorization")
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if raw == "" || raw == header {
			return c.JSON(http.StatusUnauthorized, detail("missing bearer token"))
		}
		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(s.secret), nil
		})
		if err != nil || !token.Valid || strings.TrimSpace(claims.Subject) == "" {
			s.logger.Warn("token rejected", slog.Any("error", err))
			return c.JSON(http.StatusUnauthorized, detail("invalid token"))
		}
		c.Set("username", claims.Subject)
		return next(c)
	}
}

func detail(message string) map[string]string {
	return map[string]string{"detail": message}
}

func acceptedStatus(job, tooID int, warnings ...string) map[string]any {
	status := map[string]any{
		"jobnumber": job,
		"status":    "Accepted",
		"too_id":    tooID,
	}
	if len(warnings) > 0 {
		status["warnings"] = warnings
	}
	return status
}

func (s *Server) submitTOO(c echo.Context) error {
	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, detail("malformed request body"))
	}
	if str(body["source_name"]) == "" || str(body["science_just"]) == "" {
		return c.JSON(http.StatusBadRequest, detail("missing required fields"))
	}

	s.mu.Lock()
	job := s.nextJob
	s.nextJob++
	validateOnly, _ := body["validate_only"].(bool)
	tooID := 0
	if !validateOnly {
		tooID = s.nextID
		s.nextID++
		body["too_id"] = tooID
		s.requests[tooID] = body
	}
	status := acceptedStatus(job, tooID)
	s.jobs[job] = status
	s.mu.Unlock()

	s.logger.Info("too submitted", slog.Int("jobNumber", job), slog.Int("tooID", tooID), slog.Bool("validateOnly", validateOnly))
	return c.JSON(http.StatusCreated, status)
}

func (s *Server) getTOO(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, detail("bad TOO ID"))
	}
	s.mu.Lock()
	body, ok := s.requests[id]
	s.mu.Unlock()
	if !ok {
		return c.JSON(http.StatusNotFound, detail("no such TOO"))
	}
	return c.JSON(http.StatusOK, body)
}

func (s *Server) updateTOO(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, detail("bad TOO ID"))
	}
	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, detail("malformed request body"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.requests[id]; !ok {
		return c.JSON(http.StatusNotFound, detail("no such TOO"))
	}
	body["too_id"] = id
	s.requests[id] = body
	job := s.nextJob
	s.nextJob++
	status := acceptedStatus(job, id)
	s.jobs[job] = status
	return c.JSON(http.StatusCreated, status)
}

func (s *Server) cancelTOO(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, detail("bad TOO ID"))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.requests[id]; !ok {
		return c.JSON(http.StatusNotFound, detail("no such TOO"))
	}
	delete(s.requests, id)
	job := s.nextJob
	s.nextJob++
	status := acceptedStatus(job, id)
	s.jobs[job] = status
	return c.JSON(http.StatusOK, status)
}

func (s *Server) queryJob(c echo.Context) error {
	job, err := strconv.Atoi(c.Param("job"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, detail("bad job number"))
	}
	s.mu.Lock()
	status, ok := s.jobs[job]
	s.mu.Unlock()
	if !ok {
		return c.JSON(http.StatusNotFound, detail("no such job"))
	}
	return c.JSON(http.StatusOK, status)
}

func str(value any) string {
	text, _ := value.(string)
	return strings.TrimSpace(text)
}
