// Package api provides the HTTP API for the board analyzer.
// GET endpoints are public (read-only geometry and status).
// The analyze and live endpoints are rate limited per client IP;
// the export endpoint requires a bearer token.
package api

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/berpycasiano-dotcom/catanylizer/internal/board"
	"github.com/berpycasiano-dotcom/catanylizer/internal/config"
	"github.com/berpycasiano-dotcom/catanylizer/internal/export"
	"github.com/berpycasiano-dotcom/catanylizer/internal/geometry"
	"github.com/berpycasiano-dotcom/catanylizer/internal/live"
	"github.com/berpycasiano-dotcom/catanylizer/internal/score"
)

const maxAnalyzeBody = 1 << 20 // 1 MiB

//go:embed analyze.schema.json
var analyzeSchemaJSON string

var analyzeSchema = jsonschema.MustCompileString("analyze.schema.json", analyzeSchemaJSON)

// Server serves board geometry and intersection rankings over HTTP.
type Server struct {
	Board []board.Hex
	Graph *geometry.IntersectionGraph // built at Cfg.DefaultSize
	Live  *live.Server
	Cfg   config.Config

	started time.Time
}

// analyzeRequest mirrors analyze.schema.json. Pointer fields distinguish
// omitted parameters from explicit zeros.
type analyzeRequest struct {
	Board  board.Document `json:"board"`
	Weight *float64       `json:"weight"`
	Size   *float64       `json:"size"`
	Top    *int           `json:"top"`
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	s.started = time.Now()

	// Rate limiters for the compute endpoints.
	analyzeLimiter := NewRateLimiter(s.Cfg.RateLimits.AnalyzePerMinute, time.Minute)
	sessionLimiter := NewRateLimiter(s.Cfg.RateLimits.SessionsPerHour, time.Hour)

	mux := http.NewServeMux()

	// Public endpoints.
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/board", s.handleBoard)
	mux.HandleFunc("/api/v1/analyze", RateLimitMiddleware(analyzeLimiter, s.handleAnalyze))

	// Live session endpoint (WebSocket; limited per IP like analyze).
	mux.HandleFunc("/api/v1/live", RateLimitMiddleware(sessionLimiter, s.Live.HandleWS))

	// Admin endpoint (POST, requires bearer token).
	mux.HandleFunc("/api/v1/export", s.adminOnly(s.handleExport))

	addr := fmt.Sprintf(":%d", s.Cfg.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.Cfg.AdminKey != "")

	go func() {
		handler := corsMiddleware(mux, s.Cfg.CORSOrigins)
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Localhost dev servers are always allowed; extra origins come from the
// cors_origins config key or the CATANYLIZER_CORS env var.
func corsMiddleware(next http.Handler, extra []string) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	for _, origin := range extra {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins[origin] = true
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkBearerToken returns true if the request has a valid admin bearer token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.Cfg.AdminKey
}

// adminOnly wraps a handler to require bearer token auth.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Cfg.AdminKey == "" {
			http.Error(w, "admin endpoints disabled (no CATANYLIZER_ADMIN_KEY set)", http.StatusForbidden)
			return
		}
		if !s.checkBearerToken(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"name":             "catanylizer",
		"protocol_version": live.Version,
		"hexes":            len(s.Board),
		"intersections":    len(s.Graph.Vertices),
		"default_weight":   s.Cfg.DefaultWeight,
		"default_size":     s.Cfg.DefaultSize,
		"live_sessions":    s.Live.SessionCount(),
		"started_at":       s.started.UTC().Format(time.RFC3339),
		"started":          humanize.Time(s.started),
		"admin_auth":       s.Cfg.AdminKey != "",
	}
	writeJSON(w, status)
}

// handleBoard returns hex centers, corner rings, and the deduplicated
// intersections for the renderer. The optional size query parameter
// scales the layout.
func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	size := s.Cfg.DefaultSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			http.Error(w, "size must be a number > 0", http.StatusBadRequest)
			return
		}
		size = parsed
	}

	type hexEntry struct {
		Index   int               `json:"index"`
		Q       int               `json:"q"`
		R       int               `json:"r"`
		Center  geometry.Point    `json:"center"`
		Corners [6]geometry.Point `json:"corners"`
	}

	type vertexEntry struct {
		X     float64 `json:"x"`
		Y     float64 `json:"y"`
		Label string  `json:"label"`
		Hexes []int   `json:"hexes"`
	}

	graph := s.Graph
	if size != s.Cfg.DefaultSize {
		graph = geometry.BuildIntersections(s.Board, size, geometry.DefaultPrecision)
	}

	hexes := make([]hexEntry, 0, len(s.Board))
	for _, h := range s.Board {
		center := geometry.Center(h.Coord, size)
		hexes = append(hexes, hexEntry{
			Index:   h.Index,
			Q:       h.Coord.Q,
			R:       h.Coord.R,
			Center:  center,
			Corners: geometry.Corners(center, size),
		})
	}

	vertices := make([]vertexEntry, 0, len(graph.Vertices))
	for _, v := range graph.Vertices {
		vertices = append(vertices, vertexEntry{
			X:     v.X,
			Y:     v.Y,
			Label: v.String(),
			Hexes: graph.Adjacent[v],
		})
	}

	writeJSON(w, map[string]any{
		"size":          size,
		"hexes":         hexes,
		"intersections": vertices,
	})
}

// analysis is one computed ranking pass plus the parameters it resolved.
type analysis struct {
	tiles  board.TileAssignment
	weight float64
	size   float64
	ranked []score.Intersection
}

// runAnalysis resolves request parameters against configured defaults and
// ranks the posted board. Bad boards get 422; on failure the response is
// already written and ok is false.
func (s *Server) runAnalysis(w http.ResponseWriter, req analyzeRequest) (analysis, bool) {
	var a analysis

	tiles, err := req.Board.Assignment()
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return a, false
	}

	a.tiles = tiles
	a.weight = s.Cfg.DefaultWeight
	if req.Weight != nil {
		a.weight = *req.Weight
	}
	a.size = s.Cfg.DefaultSize
	if req.Size != nil {
		a.size = *req.Size
	}

	graph := s.Graph
	if a.size != s.Cfg.DefaultSize {
		graph = geometry.BuildIntersections(s.Board, a.size, geometry.DefaultPrecision)
	}

	a.ranked, err = score.Rank(graph, tiles, a.weight)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return a, false
	}
	return a, true
}

// handleAnalyze ranks all intersections for a posted board. The request
// body is validated against analyze.schema.json before decoding; schema
// or board-coverage failures get 422.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeAnalyze(w, r)
	if !ok {
		return
	}
	a, ok := s.runAnalysis(w, req)
	if !ok {
		return
	}

	ranked := a.ranked
	if req.Top != nil && *req.Top > 0 && *req.Top < len(ranked) {
		ranked = ranked[:*req.Top]
	}

	resp := struct {
		Weight        float64                   `json:"weight"`
		Size          float64                   `json:"size"`
		Messages      []board.ValidationMessage `json:"messages,omitempty"`
		Intersections []score.Intersection      `json:"intersections"`
	}{
		Weight:        a.weight,
		Size:          a.size,
		Messages:      board.Validate(a.tiles),
		Intersections: ranked,
	}
	writeJSON(w, resp)
}

// handleExport runs an analysis and writes the full report to the
// configured export directory as zstd-compressed JSON.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeAnalyze(w, r)
	if !ok {
		return
	}
	a, ok := s.runAnalysis(w, req)
	if !ok {
		return
	}

	rep := export.NewReport(a.tiles, a.weight, a.size, board.Validate(a.tiles), a.ranked)
	name := fmt.Sprintf("report-%s.json.zst", time.Now().UTC().Format("20060102T150405Z"))
	path := filepath.Join(s.Cfg.ExportDir, name)
	if err := export.Write(path, rep); err != nil {
		slog.Error("export failed", "path", path, "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	slog.Info("report exported", "path", path, "intersections", len(a.ranked))
	writeJSON(w, map[string]any{
		"path":          path,
		"intersections": len(a.ranked),
	})
}

// decodeAnalyze reads, schema-validates, and decodes an analyze request
// body. On failure it writes the error response and returns ok=false.
func (s *Server) decodeAnalyze(w http.ResponseWriter, r *http.Request) (analyzeRequest, bool) {
	var req analyzeRequest
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return req, false
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxAnalyzeBody))
	if err != nil {
		http.Error(w, "request body too large or unreadable", http.StatusBadRequest)
		return req, false
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return req, false
	}
	if err := analyzeSchema.Validate(value); err != nil {
		http.Error(w, fmt.Sprintf("request does not match schema: %v", err), http.StatusUnprocessableEntity)
		return req, false
	}

	if err := json.Unmarshal(raw, &req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
