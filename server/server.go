package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/replyscope/pkg/domain"
	"github.com/umputun/replyscope/pkg/engine"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/engine.go -pkg mocks -skip-ensure -fmt goimports . Engine
//go:generate moq -out mocks/settings.go -pkg mocks -skip-ensure -fmt goimports . Settings

// Server represents HTTP server instance
type Server struct {
	config   ConfigProvider
	engine   Engine
	settings Settings
	version  string
	debug    bool
	policy   *bluemonday.Policy

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Engine generates replies and keeps the learning memory
type Engine interface {
	OpenPanel(ctx context.Context, text string, force bool) engine.Panel
	Generate(ctx context.Context, req domain.GenerationRequest) (engine.Result, error)
	GenerateStream(ctx context.Context, req domain.GenerationRequest, onProgress func(string)) (engine.Result, error)
	AnalyzeComments(ctx context.Context, post string, replies []domain.CommentReply) *domain.CommentAnalysis
	Translate(ctx context.Context, text string) *string
	QuickReply(ctx context.Context, post string) (string, error)
	RecordSend(ctx context.Context, sc domain.SendContext, final string) error
	LearningStatus(domainID string) domain.SummaryStatus
	Summarize(ctx context.Context, domainID string) (string, error)
	ClearCache(ctx context.Context) error
}

// Settings manages channels, domain styles, custom catalogs and panel settings
type Settings interface {
	Active() domain.Config
	SetSession(ctx context.Context, persona string, autoSend bool) error
	SelectModel(ctx context.Context, model string) (domain.Config, error)
	Channels() []domain.Channel
	ActiveChannelID() string
	SaveChannel(ctx context.Context, ch domain.Channel) (domain.Channel, error)
	DeleteChannel(ctx context.Context, id string) error
	Activate(ctx context.Context, id string) (domain.Config, error)
	DomainStyle(domainID string) domain.DomainStyle
	Overrides() map[string]domain.DomainStyle
	SaveDomainStyle(ctx context.Context, domainID string, s domain.DomainStyle) (domain.DomainStyle, error)
	ResetDomainStyle(ctx context.Context, domainID string) error
	Styles() []domain.Option
	Strategies() []domain.Option
	AddCustomStyle(ctx context.Context, name string) (domain.Option, error)
	AddCustomStrategy(ctx context.Context, name string) (domain.Option, error)
	RemoveCustomStyle(ctx context.Context, id string) error
	RemoveCustomStrategy(ctx context.Context, id string) error
	GenSettings() domain.GenSettings
	SaveGenSettings(ctx context.Context, s domain.GenSettings) (domain.GenSettings, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// New initializes a new server instance
func New(cfg ConfigProvider, eng Engine, settings Settings, version string, debug bool) *Server {
	s := &Server{
		config:   cfg,
		engine:   eng,
		settings: settings,
		version:  version,
		debug:    debug,
		policy:   bluemonday.StrictPolicy(),
		router:   routegroup.New(http.NewServeMux()),
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
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("replyscope", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)

		// generation
		r.HandleFunc("POST /classify", s.classifyHandler)
		r.HandleFunc("POST /generate", s.generateHandler)
		r.HandleFunc("POST /generate/stream", s.generateStreamHandler)
		r.HandleFunc("POST /analyze", s.analyzeHandler)
		r.HandleFunc("POST /translate", s.translateHandler)
		r.HandleFunc("POST /quick-reply", s.quickReplyHandler)
		r.HandleFunc("POST /sent", s.sentHandler)
		r.HandleFunc("DELETE /cache", s.clearCacheHandler)

		// channels and session config
		r.HandleFunc("GET /channels", s.listChannelsHandler)
		r.HandleFunc("POST /channels", s.saveChannelHandler)
		r.HandleFunc("DELETE /channels/{id}", s.deleteChannelHandler)
		r.HandleFunc("POST /channels/{id}/activate", s.activateChannelHandler)
		r.HandleFunc("GET /config", s.getConfigHandler)
		r.HandleFunc("PUT /config/session", s.updateSessionHandler)
		r.HandleFunc("PUT /config/model", s.selectModelHandler)

		// domains and learning
		r.HandleFunc("GET /domains", s.listDomainsHandler)
		r.HandleFunc("GET /domains/{id}/style", s.getDomainStyleHandler)
		r.HandleFunc("PUT /domains/{id}/style", s.saveDomainStyleHandler)
		r.HandleFunc("DELETE /domains/{id}/style", s.resetDomainStyleHandler)
		r.HandleFunc("GET /domains/{id}/summary", s.getSummaryHandler)
		r.HandleFunc("POST /domains/{id}/summary", s.summarizeHandler)

		// style and strategy catalogs
		r.HandleFunc("GET /styles", s.listStylesHandler)
		r.HandleFunc("POST /styles", s.addStyleHandler)
		r.HandleFunc("DELETE /styles/{id}", s.removeStyleHandler)
		r.HandleFunc("GET /strategies", s.listStrategiesHandler)
		r.HandleFunc("POST /strategies", s.addStrategyHandler)
		r.HandleFunc("DELETE /strategies/{id}", s.removeStrategyHandler)

		// generation panel settings
		r.HandleFunc("GET /settings/generation", s.getGenSettingsHandler)
		r.HandleFunc("PUT /settings/generation", s.saveGenSettingsHandler)
	})
}
