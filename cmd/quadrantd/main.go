// Command quadrantd serves chart renders over HTTP.
//
// POST /chart accepts a JSON payload of raw rectangle rows and the raw
// point cells (already fetched from whatever spreadsheet or form the
// caller uses) and responds with the rendered chart as base64 PNG.
// GET /healthz reports liveness.
package main

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/VantageDataChat/quadrant"
)

// chartRequest is the /chart payload. Rows carry raw cell text in the
// sheet's column order (x_min, x_max, y_min, y_max, fill, text); the
// point coordinates accept plain, fraction and percent notations.
type chartRequest struct {
	Rows   [][]string `json:"rows"`
	PointX string     `json:"point_x"`
	PointY string     `json:"point_y"`
	XLabel string     `json:"x_label,omitempty"`
	YLabel string     `json:"y_label,omitempty"`
}

type chartResponse struct {
	ImageBase64 string `json:"image_base64"`
}

type errorResponse struct {
	Error string `json:"error"`
	Stage string `json:"stage"`
}

// server holds the shared render dependencies. The font cache is the
// only state shared between requests; each render owns its surface.
type server struct {
	log   *slog.Logger
	fonts *quadrant.FontCache
}

func main() {
	addr := flag.String("addr", "", "listen address (default :$PORT or :8080)")
	fontDir := flag.String("font-dir", "", "extra font directory to scan")
	flag.Parse()

	listen := *addr
	if listen == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		listen = ":" + port
	}

	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	quadrant.SetLogger(log)

	var fonts *quadrant.FontCache
	if *fontDir != "" {
		fonts = quadrant.NewFontCache(*fontDir)
	} else {
		fonts = quadrant.NewFontCache()
	}

	s := &server{log: log, fonts: fonts}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("POST /chart", s.handleChart)

	srv := &http.Server{
		Addr:         listen,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("listening", "addr", listen)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("serve", "err", err)
		os.Exit(1)
	}
}

func (s *server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *server) handleChart(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req chartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, http.StatusBadRequest, "decode", err)
		return
	}

	opts := quadrant.DefaultOptions()
	opts.XLabel = req.XLabel
	opts.YLabel = req.YLabel
	opts.FontCache = s.fonts

	rects := quadrant.ParseRectangleRows(req.Rows, *opts.DefaultFill)

	point, err := quadrant.ParsePoint(req.PointX, req.PointY)
	if err != nil {
		s.fail(w, http.StatusBadRequest, "parse", err)
		return
	}

	pngBytes, err := quadrant.RenderPNG(rects, point, opts)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, quadrant.ErrNoRenderableGeometry) {
			status = http.StatusBadRequest
		}
		s.fail(w, status, "render", err)
		return
	}

	s.log.Info("chart rendered",
		"rects", len(rects), "bytes", len(pngBytes), "took", time.Since(start))
	writeJSON(w, http.StatusOK, chartResponse{
		ImageBase64: base64.StdEncoding.EncodeToString(pngBytes),
	})
}

// fail reports a structured error identifying which stage failed.
func (s *server) fail(w http.ResponseWriter, status int, stage string, err error) {
	s.log.Warn("request failed", "stage", stage, "err", err)
	writeJSON(w, status, errorResponse{Error: err.Error(), Stage: stage})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "write response: %v\n", err)
	}
}
