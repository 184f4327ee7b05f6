package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"regexp"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/cache"
	"github.com/sells-group/leadgen-cli/internal/pipeline"
	"github.com/sells-group/leadgen-cli/internal/store"
)

var servePort int

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the search and lead-capture API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		p := initPipeline()
		results := cache.New(time.Duration(cfg.Cache.TTLMinutes)*time.Minute, cfg.Cache.Capacity)

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", "X-Admin-Key"},
		}))

		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Get("/api/search", searchHandler(p, results))
		r.Post("/api/leads", createLeadHandler(st))
		r.Get("/api/leads", leadStatsHandler(st))

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx) //nolint:errcheck
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func searchHandler(p *pipeline.Pipeline, results *cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if len(query) < 2 {
			writeError(w, http.StatusBadRequest, "query parameter q must be at least 2 characters")
			return
		}

		if cached := results.Get(query); cached != nil {
			w.Header().Set("X-Cache", "HIT")
			writeJSON(w, http.StatusOK, cached)
			return
		}

		result, err := p.Run(r.Context(), query)
		if err != nil {
			zap.L().Error("search failed", zap.String("query", query), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "search failed")
			return
		}
		results.Put(query, result)

		w.Header().Set("X-Cache", "MISS")
		writeJSON(w, http.StatusOK, result)
	}
}

func createLeadHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email  string `json:"email"`
			Query  string `json:"query"`
			Source string `json:"source"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if !emailPattern.MatchString(strings.TrimSpace(req.Email)) {
			writeError(w, http.StatusBadRequest, "a valid email is required")
			return
		}
		if len(strings.TrimSpace(req.Query)) < 2 {
			writeError(w, http.StatusBadRequest, "query must be at least 2 characters")
			return
		}

		lead, created, err := st.UpsertLead(r.Context(), req.Email, req.Query, req.Source)
		if err != nil {
			zap.L().Error("lead upsert failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "could not save lead")
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		writeJSON(w, status, map[string]any{"lead": lead, "created": created})
	}
}

func leadStatsHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-Admin-Key")
		if key == "" {
			key = r.URL.Query().Get("key")
		}
		if cfg.Server.AdminKey == "" || key != cfg.Server.AdminKey {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		stats, err := st.Stats(r.Context())
		if err != nil {
			zap.L().Error("lead stats failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "could not load stats")
			return
		}
		leads, err := st.ListLeads(r.Context(), 50)
		if err != nil {
			zap.L().Error("lead list failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "could not load leads")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"stats": stats, "leads": leads})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
