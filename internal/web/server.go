// Package web serves the browser frontend and the JSON API.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/abhisek/edugenius/internal/export"
	"github.com/abhisek/edugenius/internal/intake"
	"github.com/abhisek/edugenius/internal/logger"
	"github.com/abhisek/edugenius/internal/modulegen"
	"github.com/abhisek/edugenius/internal/studio"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

const sessionName = "edugenius"

// Options configures a Server.
type Options struct {
	Generator     modulegen.Generator
	Intake        *intake.Intake
	Registry      *studio.Registry
	Log           *logger.Logger
	SessionSecret []byte
	SessionTTL    time.Duration
	CORSOrigins   []string

	// Model is shown in the page header.
	Model func() string
}

// Server holds the HTTP handlers.
type Server struct {
	gen      modulegen.Generator
	intake   *intake.Intake
	registry *studio.Registry
	log      *logger.Logger
	model    func() string
	engine   *gin.Engine
}

// New wires the router.
func New(opts Options) *Server {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	if opts.Intake == nil {
		opts.Intake = intake.New(intake.DefaultMaxBytes)
	}
	if opts.Model == nil {
		opts.Model = func() string { return "" }
	}
	s := &Server{
		gen:      opts.Generator,
		intake:   opts.Intake,
		registry: opts.Registry,
		log:      opts.Log.With("component", "web"),
		model:    opts.Model,
	}
	s.engine = s.router(opts)
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) router(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(s.log))

	tmpl := template.Must(export.Templates().ParseFS(templateFS, "templates/*.html.tmpl"))
	r.SetHTMLTemplate(tmpl)

	r.GET("/healthz", s.healthz)

	store := cookie.NewStore(opts.SessionSecret)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(opts.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	page := r.Group("/")
	page.Use(sessions.Sessions(sessionName, store), s.attachWorkspace())
	{
		page.GET("/", s.index)
		page.POST("/attachments", s.addAttachments)
		page.POST("/attachments/:index/delete", s.removeAttachment)
		page.POST("/generate", s.generate)
		page.POST("/quiz/:id/answer", s.answer)
		page.POST("/quiz/:id/explanation", s.toggleExplanation)
		page.GET("/export/:format", s.download)
	}

	api := r.Group("/api")
	api.Use(corsMiddleware(opts.CORSOrigins))
	{
		api.POST("/generate", s.apiGenerate)
		// Preflight requests only reach the CORS middleware through a route.
		api.OPTIONS("/generate", func(*gin.Context) {})
	}

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"POST", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
