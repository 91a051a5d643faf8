// Package web serves the browser quiz and its JSON API.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/abhisek/quizcrafter/internal/logging"
	"github.com/abhisek/quizcrafter/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

// Options configures the Server.
type Options struct {
	Service      *service.QuizService
	Logger       *slog.Logger
	Mode         string   // gin mode; defaults to release
	CORSOrigins  []string // CORS is enabled only when non-empty
	SecureCookie bool
}

// Server wires the quiz service to gin.
type Server struct {
	svc      *service.QuizService
	logger   *slog.Logger
	validate *validator.Validate
	engine   *gin.Engine
	secure   bool
}

// New builds the gin engine and its routes.
func New(opts Options) (*Server, error) {
	if opts.Service == nil {
		return nil, errors.New("web: service is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Mode == "" {
		opts.Mode = gin.ReleaseMode
	}
	gin.SetMode(opts.Mode)

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		svc:      opts.Service,
		logger:   opts.Logger,
		validate: newValidator(),
		secure:   opts.SecureCookie,
	}

	r := gin.New()
	r.Use(gin.Recovery(), logging.GinMiddleware(opts.Logger))
	if len(opts.CORSOrigins) > 0 {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = opts.CORSOrigins
		cfg.AllowCredentials = true
		cfg.AllowHeaders = append(cfg.AllowHeaders, "Content-Type")
		r.Use(cors.New(cfg))
	}
	r.SetHTMLTemplate(tmpl)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	ui := r.Group("/", s.sessionToken)
	{
		ui.GET("/", s.index)
		ui.POST("/quiz", s.generate)
		ui.POST("/quiz/answer", s.answer)
		ui.POST("/quiz/reset", s.reset)
	}

	api := r.Group("/api/v1", s.sessionToken)
	{
		api.POST("/quiz", s.apiGenerate)
		api.GET("/quiz", s.apiCurrent)
		api.POST("/quiz/answer", s.apiAnswer)
		api.DELETE("/quiz", s.apiReset)
	}

	s.engine = r
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
