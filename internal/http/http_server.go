package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/ports/primary"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/ports/secondary"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/services/workbench"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/handlers"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/handlers/languages"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/handlers/problems"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/handlers/sessions"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/handlers/submissions"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/ws"
)

type ServiceProvider struct {
	workbenchService workbench.IWorkbenchService
	problemSource    secondary.ProblemSource
	submissionSink   secondary.SubmissionSink
}

func NewServiceProvider(
	workbenchService workbench.IWorkbenchService,
	problemSource secondary.ProblemSource,
	submissionSink secondary.SubmissionSink,
) *ServiceProvider {
	return &ServiceProvider{
		workbenchService: workbenchService,
		problemSource:    problemSource,
		submissionSink:   submissionSink,
	}
}

type Server struct {
	router          *mux.Router
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	logger          primary.Logger
	gateway         *ws.Gateway
	srv             *http.Server
}

func NewServer(port int, serviceName string, serviceProvider ServiceProvider, gateway *ws.Gateway, logger primary.Logger) *Server {
	return &Server{
		Port:            port,
		ServiceName:     serviceName,
		ServiceProvider: serviceProvider,
		logger:          logger,
		gateway:         gateway,
	}
}

func (s *Server) Init() error {
	r := mux.NewRouter()
	r.Use(handlers.New(s.logger).RequestLogging)

	sessions.
		NewSessionHandler(s.ServiceProvider.workbenchService, s.logger).
		RegisterRoutes(r)
	problems.
		NewProblemHandler(s.ServiceProvider.problemSource, s.logger).
		RegisterRoutes(r)
	languages.NewLanguageHandler(s.logger).RegisterRoutes(r)
	submissions.
		NewSubmissionHandler(s.ServiceProvider.submissionSink, s.logger).
		RegisterRoutes(r)

	r.HandleFunc("/api/workbench/sessions/{id}/ws", s.gateway.HandleConnection).Methods("GET")
	r.HandleFunc("/health", s.health).Methods("GET")

	s.router = r
	return nil
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = fmt.Fprintf(w, `{"status":"ok","service":%q}`, s.ServiceName)
}

func (s *Server) Start(ctx context.Context) {
	// Set up server
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start the server in a goroutine
	go func() {
		s.logger.Info("Server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()
}

func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Shutting down http server...")

	s.gateway.Shutdown()

	if s.srv != nil {
		if err := s.srv.Shutdown(ctx); err != nil {
			s.logger.Error("Failed to shut down http server", "error", err)
		}
	}
}
