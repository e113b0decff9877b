// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"

	"meal-planner/internal/logging"
	"meal-planner/internal/planner"
	"meal-planner/internal/storage"
)

var serverInfo = protocol.Implementation{
	Name:    "meal-planner",
	Version: "1.0.0",
}

type Config struct {
	Addr   string
	DBPath string
	Seed   int64
}

type MealPlanServer struct {
	httpServer *http.Server
	storage    *storage.SQLiteStorage
	planner    *planner.Planner
	logger     *slog.Logger
	tools      map[string]toolHandler
}

func NewMealPlanServer(cfg *Config, logger *slog.Logger) (*MealPlanServer, error) {
	// Initialize database
	stor, err := storage.NewSQLiteStorage(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	planServer := &MealPlanServer{
		storage: stor,
		planner: planner.New(nil, planner.NewSeededRNG(cfg.Seed)),
		logger:  logger.With("component", "server"),
	}
	planServer.registerTools()

	mux := http.NewServeMux()
	mux.HandleFunc("/", planServer.handleHTTP)
	mux.HandleFunc("POST /generator/{tool}", planServer.handleGenerator)
	mux.HandleFunc("GET /healthz", planServer.handleHealth)

	planServer.httpServer = &http.Server{
		Addr:    cfg.Addr,
		Handler: logging.Middleware(logger, mux),
	}

	return planServer, nil
}

// Handler returns the routed HTTP handler.
func (s *MealPlanServer) Handler() http.Handler {
	return s.httpServer.Handler
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
}

// handleHTTP serves tool calls sent as MCP CallToolRequest bodies.
func (s *MealPlanServer) handleHTTP(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request protocol.CallToolRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	handler, ok := s.tools[request.Name]
	if !ok {
		http.Error(w, fmt.Sprintf("Unknown tool: %s", request.Name), http.StatusNotFound)
		return
	}

	args, err := json.Marshal(request.Arguments)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid arguments: %v", err), http.StatusBadRequest)
		return
	}

	var result *protocol.CallToolResult
	data, err := handler(args)
	if err != nil {
		s.logger.Warn("tool call failed", "tool", request.Name, "error", err)
		result = createErrorResponse(err)
	} else if result, err = createJSONResponse(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// handleGenerator serves tool calls whose arguments are the request body.
func (s *MealPlanServer) handleGenerator(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	name := r.PathValue("tool")
	handler, ok := s.tools[name]
	if !ok {
		http.Error(w, fmt.Sprintf("Unknown tool: %s", name), http.StatusNotFound)
		return
	}

	var args json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	data, err := handler(args)
	if err != nil {
		s.logger.Warn("tool call failed", "tool", name, "error", err)
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *MealPlanServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"server": serverInfo,
	}); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidParams):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *MealPlanServer) Start(ctx context.Context) error {
	s.logger.Info("starting meal planner server", "addr", s.httpServer.Addr, "foods", s.planner.Catalog().Len())
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *MealPlanServer) Stop(ctx context.Context) error {
	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}
	if s.storage != nil {
		if cerr := s.storage.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func createJSONResponse(data any) (*protocol.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: string(jsonBytes),
			},
		},
	}, nil
}

func createErrorResponse(err error) *protocol.CallToolResult {
	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: err.Error(),
			},
		},
		IsError: true,
	}
}
