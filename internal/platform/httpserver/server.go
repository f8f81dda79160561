package httpserver

import (
	_ "embed"
	"encoding/json"
	"log/slog"
	"net/http"

	mintingservice "launchpad/contexts/asset-issuance/minting-service"
	chatrelayservice "launchpad/contexts/community-experience/chat-relay-service"
	progressionservice "launchpad/contexts/community-growth/progression-service"
	projectservice "launchpad/contexts/identity-access/project-service"

	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed doc.json
var swaggerDoc []byte

type Server struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	addr        string
	projects    projectservice.Module
	progression progressionservice.Module
	chat        chatrelayservice.Module
	minting     mintingservice.Module
}

func New(
	projects projectservice.Module,
	progression progressionservice.Module,
	chat chatrelayservice.Module,
	minting mintingservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:         http.NewServeMux(),
		logger:      logger,
		addr:        addr,
		projects:    projects,
		progression: progression,
		chat:        chat,
		minting:     minting,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the routed mux for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /swagger/doc.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(swaggerDoc)
	})
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/projects/v1", s.handleAuthenticate)
	s.mux.HandleFunc("GET /api/projects/v1", s.handleListProjects)
	s.mux.HandleFunc("GET /api/projects/v1/{project_id}", s.handleGetProject)

	s.mux.HandleFunc("POST /api/progression/v1/webhook", s.handleProgressionWebhook)
	s.mux.HandleFunc("POST /api/progression/v1/projects/{project_id}/check", s.handleProgressionCheck)
	s.mux.HandleFunc("GET /api/progression/v1/projects/{project_id}/metrics", s.handleProgressionMetrics)
	s.mux.HandleFunc("POST /api/progression/v1/projects/{project_id}/community", s.handleRegisterCommunity)

	s.mux.HandleFunc("POST /api/chat/v1/projects/{project_id}/messages", s.handleChatRelay)
	s.mux.HandleFunc("GET /api/chat/v1/sessions/{session_id}", s.handleChatHistory)

	s.mux.HandleFunc("POST /api/minting/v1/projects/{project_id}/assets", s.handleIssueAsset)
	s.mux.HandleFunc("GET /api/minting/v1/projects/{project_id}/assets", s.handleListAssets)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
