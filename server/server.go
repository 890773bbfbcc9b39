package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/likecontent/pkg/domain"
	"github.com/umputun/likecontent/pkg/feed"
	"github.com/umputun/likecontent/pkg/likes"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/likes.go -pkg mocks -skip-ensure -fmt goimports . LikeService
//go:generate moq -out mocks/posts.go -pkg mocks -skip-ensure -fmt goimports . PostStore

//go:embed templates
var templatesFS embed.FS

//go:embed assets
var assetsFS embed.FS

// Server represents HTTP server instance
type Server struct {
	config  ConfigProvider
	likes   LikeService
	posts   PostStore
	version string
	debug   bool

	metrics       *Metrics
	sanitizer     *bluemonday.Policy
	feed          *feed.Generator
	pageTemplates map[string]*template.Template

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// LikeService is the like counter used by handlers
type LikeService interface {
	Count(ctx context.Context, postID int64) (int64, error)
	Increment(ctx context.Context, postID int64) (int64, error)
	Text(postID, count int64) string
	Button(ctx context.Context, view likes.View) (template.HTML, error)
	LoadAssets(view likes.View) bool
	TopLiked(ctx context.Context) ([]domain.TopItem, error)
}

// PostStore is the content registry
type PostStore interface {
	UpsertPost(ctx context.Context, post *domain.Post) error
	GetPost(ctx context.Context, id int64) (*domain.Post, error)
	ListPosts(ctx context.Context, limit, offset int) ([]domain.Post, error)
	DeletePost(ctx context.Context, id int64) error
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetAdminConfig() (user, password string)
	GetBaseURL() string
}

// page template names
const (
	pagePosts     = "posts.html"
	pagePost      = "post.html"
	pageDashboard = "dashboard.html"
)

// New initializes a new server instance
func New(cfg ConfigProvider, likeService LikeService, posts PostStore, version string, debug bool) *Server {
	s := &Server{
		config:        cfg,
		likes:         likeService,
		posts:         posts,
		version:       version,
		debug:         debug,
		metrics:       NewMetrics(),
		sanitizer:     bluemonday.StrictPolicy(),
		feed:          feed.NewGenerator(cfg.GetBaseURL()),
		pageTemplates: loadPageTemplates(),
		router:        routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	httpServer := s.httpServer
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("likecontent", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024)) // 64KB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Handle("GET /metrics", s.metrics.Handler())
	s.router.Handle("GET /assets/", http.FileServerFS(assetsFS))

	// drop-in endpoint for clients posting to admin-ajax.php
	s.router.HandleFunc("POST /admin-ajax.php", s.metrics.Instrument("admin-ajax", s.adminAjaxHandler))

	s.router.HandleFunc("GET /posts", s.metrics.Instrument("posts", s.postsHandler))
	s.router.HandleFunc("GET /posts/{id}", s.metrics.Instrument("post", s.postHandler))
	s.router.HandleFunc("GET /rss/top", s.metrics.Instrument("rss", s.rssHandler))

	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("POST /like", s.metrics.Instrument("like", s.likeHandler))
		r.HandleFunc("GET /like/{id}", s.metrics.Instrument("count", s.countHandler))
		r.HandleFunc("GET /top", s.metrics.Instrument("top", s.topHandler))
	})

	s.router.Mount("/admin").Route(func(r *routegroup.Bundle) {
		if user, passwd := s.config.GetAdminConfig(); passwd != "" {
			r.Use(rest.BasicAuthWithUserPasswd(user, passwd))
		} else {
			log.Printf("[WARN] admin password is not set, admin endpoints are open")
		}
		r.HandleFunc("GET /dashboard", s.dashboardHandler)
		r.HandleFunc("PUT /api/posts/{id}", s.upsertPostHandler)
		r.HandleFunc("DELETE /api/posts/{id}", s.deletePostHandler)
	})
}

// loadPageTemplates parses every page together with the shared layout and components
func loadPageTemplates() map[string]*template.Template {
	res := make(map[string]*template.Template)
	for _, page := range []string{pagePosts, pagePost, pageDashboard} {
		res[page] = template.Must(template.ParseFS(templatesFS,
			"templates/base.html", "templates/components/*.html", "templates/"+page))
	}
	return res
}
