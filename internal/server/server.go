package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ifuryst/postcraft/internal/config"
	"github.com/ifuryst/postcraft/internal/generator"
	"github.com/ifuryst/postcraft/internal/migrate"
	"github.com/ifuryst/postcraft/internal/models"
	"github.com/ifuryst/postcraft/internal/service"
)

// ProjectAPI is what the HTTP handlers need from the project service.
type ProjectAPI interface {
	Create(ctx context.Context, input models.ProjectInput) (*models.Project, error)
	Get(ctx context.Context, id uint) (*models.Project, error)
	List(ctx context.Context) ([]models.ProjectSummary, error)
	Delete(ctx context.Context, id uint) (*models.Project, error)
	Export(ctx context.Context, id uint) (filename string, body string, err error)
}

type Server struct {
	Config *config.Config
	DB     *gorm.DB
	Router *gin.Engine
	Logger *zap.Logger
	Server *http.Server

	// Services
	Projects ProjectAPI
	Auth     *service.AuthService
}

// NewServer connects to the database and wires the generation pipeline.
func NewServer(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	if cfg.Server.AutoMigrate {
		applied, err := migrate.Up(context.Background(), cfg.Database.DSN(), logger)
		if err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info("Database migrated", zap.Strings("applied", applied))
	}

	// Initialize database
	db, err := service.NewDatabase(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize services
	gen := generator.New(cfg.Gemini.Generator(), nil, logger)
	projects := service.NewProjectService(gen, service.NewProjectStore(db), logger)

	srv := New(cfg, projects, logger)
	srv.DB = db
	return srv, nil
}

// New builds the router around an existing project service.
func New(cfg *config.Config, projects ProjectAPI, logger *zap.Logger) *Server {
	// Set gin mode
	gin.SetMode(cfg.Server.Mode)

	srv := &Server{
		Config:   cfg,
		Router:   gin.New(),
		Logger:   logger,
		Projects: projects,
		Auth:     service.NewAuthService(logger, cfg.Server.AdminTOTPSecret),
	}

	// Setup middleware and routes
	srv.setupMiddleware()
	srv.setupRoutes()

	return srv
}

func (s *Server) setupMiddleware() {
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestID())
	s.Router.Use(accessLog(s.Logger))
	s.Router.Use(httpMetrics())

	s.Router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", requestIDHeader, service.TOTPHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}))
}

func (s *Server) setupRoutes() {
	// Health check
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Unix(),
		})
	})
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := s.Router.Group("/api/v1")
	{
		projects := api.Group("/projects")
		{
			create := []gin.HandlerFunc{s.handleCreateProject}
			if rl := s.Config.RateLimit; rl.Enabled {
				create = append([]gin.HandlerFunc{newIPRateLimiter(rl.RequestsPerMinute, rl.Burst).middleware()}, create...)
			}
			projects.POST("", create...)
			projects.GET("", s.handleListProjects)
			projects.GET("/:id", s.handleGetProject)
			projects.DELETE("/:id", s.Auth.RequireTOTP(), s.handleDeleteProject)
			projects.GET("/:id/export.txt", s.handleExportProject)
		}
	}
}

func (s *Server) Start(_ context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.Config.Server.Host, s.Config.Server.Port)

	s.Server = &http.Server{
		Addr:              addr,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.Logger.Info("Starting HTTP server", zap.String("addr", addr))

	var err error
	if s.Config.Server.CertFile != "" && s.Config.Server.KeyFile != "" {
		err = s.Server.ListenAndServeTLS(s.Config.Server.CertFile, s.Config.Server.KeyFile)
	} else {
		err = s.Server.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.Server == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if s.DB != nil {
		if sqlDB, err := s.DB.DB(); err == nil {
			return sqlDB.Close()
		}
	}
	return nil
}
