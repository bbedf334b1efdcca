package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/cors"

	"contentcal/internal/assistant"
	"contentcal/internal/calendar"
	"contentcal/internal/models"
	"contentcal/internal/store"
)

// Assistant produces AI suggestions. Implementations degrade to fixed
// messages instead of failing.
type Assistant interface {
	Ideas(ctx context.Context, clientName, industry string, count int) []assistant.Idea
	Caption(ctx context.Context, title, format string, network models.Network, clientName string) string
	Analyze(ctx context.Context, entries []assistant.ScheduleEntry, clientName string) string
}

// Server provides HTTP handlers for the content calendar backend.
type Server struct {
	engine    *gin.Engine
	store     *store.Store
	generator *calendar.Generator
	assistant Assistant
	plan      calendar.YearPlan
	logger    *slog.Logger
	staticDir string
	now       func() time.Time
	newID     func() string
}

// Option configures a Server.
type Option func(*Server)

// WithAssistant enables the AI endpoints.
func WithAssistant(a Assistant) Option {
	return func(s *Server) { s.assistant = a }
}

// WithYearPlan sets the span of yearly generation.
func WithYearPlan(plan calendar.YearPlan) Option {
	return func(s *Server) { s.plan = plan }
}

// WithStaticDir serves the built frontend from dir.
func WithStaticDir(dir string) Option {
	return func(s *Server) { s.staticDir = dir }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithIDFunc replaces the id generator for new entities.
func WithIDFunc(newID func() string) Option {
	return func(s *Server) { s.newID = newID }
}

// New constructs the HTTP server with routes and middleware configured.
func New(st *store.Store, logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/api"))

	srv := &Server{
		engine: router,
		store:  st,
		plan:   calendar.DefaultYearPlan(),
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(srv)
	}
	if srv.assistant == nil {
		srv.assistant = assistant.New(assistant.Config{}, logger)
	}
	srv.generator = calendar.New(calendar.WithIDFunc(srv.newID), calendar.WithClock(srv.now))

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Handler wraps the engine with CORS for the standalone frontend.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(s.engine)
}

// registerRoutes wires all API and static handlers together.
func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.GET("/healthz", s.handleHealth)

		clients := api.Group("/clients")
		{
			clients.GET("", s.handleListClients)
			clients.POST("", s.handleCreateClient)
			clients.GET(":id", s.handleGetClient)
			clients.PUT(":id", s.handleUpdateClient)
			clients.DELETE(":id", s.handleDeleteClient)
			clients.POST(":id/generate-month", s.handleGenerateMonth)
			clients.POST(":id/analysis", s.handleAnalyzeSchedule)
		}

		posts := api.Group("/posts")
		{
			posts.GET("", s.handleListPosts)
			posts.POST("", s.handleCreatePost)
			posts.PUT(":id", s.handleUpdatePost)
			posts.DELETE(":id", s.handleDeletePost)
			posts.POST(":id/caption", s.handleGenerateCaption)
		}

		statuses := api.Group("/statuses")
		{
			statuses.GET("", s.handleListStatuses)
			statuses.POST("", s.handleCreateStatus)
			statuses.PUT(":id", s.handleUpdateStatus)
			statuses.DELETE(":id", s.handleDeleteStatus)
		}

		api.POST("/calendar/yearly", s.handleGenerateYear)
		api.GET("/dashboard", s.handleDashboard)
		api.GET("/reports", s.handleReport)

		ai := api.Group("/ai")
		{
			ai.POST("/ideas", s.handleGenerateIdeas)
			ai.POST("/ideas/save", s.handleSaveIdea)
		}
	}

	s.mountStatic()
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// today is the current calendar day in local time.
func (s *Server) today() models.Date {
	return models.DateOf(s.now())
}

// respondSuccess writes payload as JSON, or only the status when payload is nil.
func respondSuccess(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}
