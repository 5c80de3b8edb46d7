package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/geobiz/internal/model"
	"github.com/sells-group/geobiz/internal/provider"
	"github.com/sells-group/geobiz/internal/search"
	"github.com/sells-group/geobiz/internal/view"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search pipeline over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}

		svc, err := initService("serve")
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           buildMux(svc, cfg.Server.AllowedOrigins),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// searchRequest is the POST /search and POST /explore body. Industry is
// only read by /explore.
type searchRequest struct {
	Query     string        `json:"query"`
	Geography string        `json:"geography"`
	Location  *model.LatLng `json:"location"`
	Industry  string        `json:"industry"`
}

// industryFilter is one entry of the explorer's filter bar.
type industryFilter struct {
	Industry string `json:"industry"`
	Count    int    `json:"count"`
}

// exploreResponse is a search result plus what a map explorer needs to
// render it: the industry filters, the businesses of the selected filter
// that can be pinned, and the viewport over them.
type exploreResponse struct {
	*model.SearchResponse
	Industries []industryFilter `json:"industries"`
	Industry   string           `json:"industry"`
	Markers    []model.Business `json:"markers"`
	Viewport   view.Viewport    `json:"viewport"`
}

func newExploreResponse(resp *model.SearchResponse, industry string, caller *model.LatLng) exploreResponse {
	if industry == "" {
		industry = view.AllIndustries
	}
	groups := view.GroupByIndustry(resp.Businesses)
	filters := make([]industryFilter, 0, len(groups))
	for _, g := range groups {
		filters = append(filters, industryFilter{Industry: g.Industry, Count: len(g.Businesses)})
	}
	selected := view.Select(groups, industry)
	return exploreResponse{
		SearchResponse: resp,
		Industries:     filters,
		Industry:       industry,
		Markers:        view.Markers(selected),
		Viewport:       view.Fit(selected, caller),
	}
}

// buildMux wires the HTTP routes around svc.
func buildMux(svc searcher, allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/search", func(w http.ResponseWriter, r *http.Request) {
		if resp, _, ok := handleSearch(w, r, svc); ok {
			writeJSON(w, http.StatusOK, resp)
		}
	})

	r.Post("/explore", func(w http.ResponseWriter, r *http.Request) {
		if resp, req, ok := handleSearch(w, r, svc); ok {
			writeJSON(w, http.StatusOK, newExploreResponse(resp, req.Industry, req.Location))
		}
	})

	return r
}

// handleSearch decodes the request body and runs the search. On failure it
// has already written the error response and returns false.
func handleSearch(w http.ResponseWriter, r *http.Request, svc searcher) (*model.SearchResponse, searchRequest, bool) {
	var req searchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, req, false
	}

	resp, err := svc.Search(r.Context(), model.Query{
		Text:      req.Query,
		Geography: req.Geography,
		Location:  req.Location,
	})
	if err != nil {
		status, msg := searchErrorStatus(err)
		zap.L().Warn("search request failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err),
		)
		writeError(w, status, msg)
		return nil, req, false
	}
	return resp, req, true
}

// searchErrorStatus maps a search failure to an HTTP status and message.
func searchErrorStatus(err error) (int, string) {
	if errors.Is(err, search.ErrEmptyQuery) {
		return http.StatusBadRequest, "query is required"
	}
	var pe *provider.Error
	if errors.As(err, &pe) {
		if pe.Transient() {
			return http.StatusServiceUnavailable, "search provider temporarily unavailable"
		}
		return http.StatusBadGateway, "search provider failed"
	}
	return http.StatusInternalServerError, "internal error"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
