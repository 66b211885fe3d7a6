package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-onboarding-server/account"
	"github.com/jrsteele09/go-onboarding-server/collect"
	"github.com/jrsteele09/go-onboarding-server/export"
	"github.com/jrsteele09/go-onboarding-server/internal/config"
	"github.com/jrsteele09/go-onboarding-server/lookup"
	"github.com/jrsteele09/go-onboarding-server/session"
	"github.com/jrsteele09/go-onboarding-server/wizard"
)

// Adapters bundles the three external lookup capabilities the server wires
// into the wizard and pipeline.
type Adapters struct {
	Registry  lookup.Registry
	Documents lookup.DocumentProvider
	Logos     lookup.LogoProvider
}

// Server is the HTTP surface over the onboarding wizard.
type Server struct {
	env      string // Environment (e.g., "development", "production")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	store    *session.Store
	wizard   *wizard.Controller
	exporter *export.Exporter
	accounts *account.Service
}

// New wires the full onboarding stack over a session repo and the three
// lookup adapters.
func New(cfg config.Config, repo session.Repo, adapters Adapters) (*Server, error) {
	store, err := session.NewStore(repo)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create session store: %w", err)
	}

	pipeline, err := collect.NewPipeline(
		adapters.Registry,
		adapters.Documents,
		collect.WithStageTimeout(cfg.GetStageTimeout()),
		collect.WithRetryBackoff(cfg.GetRetryBackoff()),
	)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create collection pipeline: %w", err)
	}

	controller, err := wizard.NewController(store, pipeline, adapters.Logos)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create wizard controller: %w", err)
	}

	exporter, err := export.NewExporter(store)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create exporter: %w", err)
	}

	tokens, err := account.NewTokenCreator(cfg.GetAppName(), []byte(cfg.GetSigningSecret()))
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create token creator: %w", err)
	}

	accounts, err := account.NewService(account.NewInMemoryUserRepo(), tokens)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create account service: %w", err)
	}

	s := &Server{
		mux:      http.NewServeMux(),
		config:   cfg,
		store:    store,
		wizard:   controller,
		exporter: exporter,
		accounts: accounts,
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
