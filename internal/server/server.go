package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/danmuck/mediagate/internal/manifest"
	"github.com/danmuck/mediagate/internal/observability"
	"github.com/danmuck/mediagate/internal/selection"
	"github.com/danmuck/mediagate/internal/token"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const Version = "0.1.0"

// Server exposes declaration listing and selection over HTTP.
type Server struct {
	Name     string
	Addr     string
	Appeared time.Time

	router       *gin.Engine
	engine       *selection.Engine
	declarations *manifest.Declarations
	content      []selection.Candidate
}

func New(
	name, addr string,
	corsOrigins []string,
	declarations *manifest.Declarations,
	content []selection.Candidate,
	engine *selection.Engine,
) *Server {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.Instrument(name, log.Logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(corsOrigins),
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	if declarations == nil {
		declarations = &manifest.Declarations{}
	}
	return &Server{
		Name:         name,
		Addr:         addr,
		Appeared:     time.Now(),
		router:       r,
		engine:       engine,
		declarations: declarations,
		content:      content,
	}
}

func (s *Server) HTTPRouter() *gin.Engine {
	return s.router
}

func (s *Server) Serve() error {
	s.RegisterRoutes()
	log.Info().Str("name", s.Name).Str("addr", s.Addr).Msg("mediagate listening")
	return s.router.Run(s.Addr)
}

func (s *Server) RegisterRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.Name,
			"version": Version,
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.GET("/tests", func(c *gin.Context) {
		tests := s.declarations.Tests()
		out := make([]TestInfo, 0, len(tests))
		for _, test := range tests {
			out = append(out, testInfo(test))
		}
		c.JSON(http.StatusOK, gin.H{"tests": out})
	})

	s.router.POST("/evaluate", s.handleEvaluate)
	s.router.POST("/plan", s.handlePlan)
}

// TestInfo is the wire form of one effective declaration.
type TestInfo struct {
	ID             string    `json:"id"`
	Metadata       token.Set `json:"metadata"`
	Protocols      token.Set `json:"protocols"`
	MetadataSource string    `json:"metadata_source"`
	ProtocolSource string    `json:"protocol_source"`
}

func testInfo(test selection.Test) TestInfo {
	return TestInfo{
		ID:             test.ID,
		Metadata:       test.Effective.Metadata.Fields(),
		Protocols:      test.Effective.Protocols.Types(),
		MetadataSource: test.Effective.MetadataSource.String(),
		ProtocolSource: test.Effective.ProtocolSource.String(),
	}
}

type evaluateRequest struct {
	Class    string    `json:"class" binding:"required"`
	Method   string    `json:"method" binding:"required"`
	Protocol string    `json:"protocol" binding:"required"`
	Fields   token.Set `json:"fields"`
}

func (s *Server) handleEvaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	test, err := s.declarations.Lookup(req.Class, req.Method)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, manifest.ErrTestNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	d := s.engine.Evaluate(test, selection.Candidate{
		ID:       "request",
		Protocol: req.Protocol,
		Fields:   req.Fields,
	})
	c.JSON(http.StatusOK, gin.H{
		"test":   testInfo(test),
		"result": d.Result,
	})
}

type planRequest struct {
	Candidates []selection.Candidate `json:"candidates"`
}

func (s *Server) handlePlan(c *gin.Context) {
	var req planRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	candidates := req.Candidates
	if len(candidates) == 0 {
		candidates = s.content
	}
	decisions, err := s.engine.Plan(c.Request.Context(), s.declarations.Tests(), candidates)
	if err != nil {
		log.Error().Err(err).Msg("plan failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"decisions": decisions,
		"summary":   selection.Summarize(decisions),
	})
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
