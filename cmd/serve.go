package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/caprae-capital/leadgen-cli/internal/export"
	"github.com/caprae-capital/leadgen-cli/internal/model"
	"github.com/caprae-capital/leadgen-cli/internal/pipeline"
	"github.com/caprae-capital/leadgen-cli/internal/source"
	"github.com/caprae-capital/leadgen-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the lead pipeline HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return eris.Wrap(err, "serve: init store")
		}
		defer st.Close()

		p, err := buildPipeline()
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Handler: newRouter(&api{store: st, pipeline: p}),
		}

		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err != nil {
			return eris.Wrap(err, "server listen")
		}

		zap.L().Info("starting server", zap.Int("port", port))
		return runServer(ctx, srv, ln)
	},
}

const shutdownTimeout = 10 * time.Second

// runServer serves until ctx is canceled, then drains in-flight
// requests under a fresh timeout before returning.
func runServer(ctx context.Context, srv *http.Server, ln net.Listener) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zap.L().Error("server shutdown", zap.Error(err))
		}
	}()

	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server serve")
	}
	<-done
	return nil
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

type api struct {
	store    store.Store
	pipeline *pipeline.Pipeline
}

func newRouter(a *api) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/upload", a.handleUpload)
		r.Post("/scrape", a.handleScrape)
		r.Get("/leads", a.handleListLeads)
		r.Get("/leads/{id}", a.handleGetLead)
		r.Delete("/leads", a.handleDeleteLeads)
		r.Get("/stats", a.handleStats)
		r.Get("/export", a.handleExport)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// batchResponse is the JSON shape for endpoints that run the pipeline.
type batchResponse struct {
	Added      int              `json:"added"`
	Duplicates int              `json:"duplicates"`
	Skipped    int              `json:"skipped"`
	Summary    pipeline.Summary `json:"summary"`
}

// processAndStore runs a raw batch through the pipeline with
// cross-batch dedup against the store and persists the survivors.
func (a *api) processAndStore(r *http.Request, raw []model.Lead) (*batchResponse, error) {
	ctx := r.Context()

	existing, err := a.store.ListEmails(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "serve: list existing emails")
	}

	result, err := a.pipeline.ProcessBatch(ctx, raw, pipeline.BatchOptions{
		ExistingEmails:     existing,
		SkipRenderFailures: true,
	})
	if err != nil {
		return nil, err
	}

	if _, err := a.store.InsertLeads(ctx, result.Leads); err != nil {
		return nil, eris.Wrap(err, "serve: insert leads")
	}

	return &batchResponse{
		Added:      len(result.Leads),
		Duplicates: result.Dropped,
		Skipped:    result.Skipped,
		Summary:    pipeline.Summarize(result.Leads),
	}, nil
}

func (a *api) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close() //nolint:errcheck

	raw, err := source.DecodeLeadsCSV(file, source.CSVOptions{
		Charset: r.FormValue("charset"),
		Source:  r.FormValue("source"),
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid csv: "+err.Error())
		return
	}

	resp, err := a.processAndStore(r, raw)
	if err != nil {
		zap.L().Error("upload failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "processing failed")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *api) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Source string `json:"source"`
		Query  string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Source == "" {
		writeError(w, http.StatusBadRequest, "source is required")
		return
	}

	adapter := source.Mock(req.Source)
	if adapter == nil {
		writeError(w, http.StatusBadRequest, "unknown source: "+req.Source)
		return
	}

	raw, err := adapter.Fetch(r.Context(), req.Query)
	if err != nil {
		zap.L().Error("scrape fetch failed", zap.String("source", req.Source), zap.Error(err))
		writeError(w, http.StatusBadGateway, "source fetch failed")
		return
	}

	resp, err := a.processAndStore(r, raw)
	if err != nil {
		zap.L().Error("scrape failed", zap.String("source", req.Source), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "processing failed")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func leadFilterFromQuery(r *http.Request) store.LeadFilter {
	q := r.URL.Query()
	minScore, _ := strconv.Atoi(q.Get("min_score"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	return store.LeadFilter{
		MinScore: minScore,
		Industry: q.Get("industry"),
		Source:   q.Get("source"),
		Limit:    limit,
		Offset:   offset,
	}
}

func (a *api) handleListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := a.store.ListLeads(r.Context(), leadFilterFromQuery(r))
	if err != nil {
		zap.L().Error("list leads failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "list failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"leads": leads,
		"count": len(leads),
	})
}

func (a *api) handleGetLead(w http.ResponseWriter, r *http.Request) {
	lead, err := a.store.GetLead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "lead not found")
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (a *api) handleDeleteLeads(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("all") == "true" {
		if err := a.store.DeleteAllLeads(r.Context()); err != nil {
			zap.L().Error("delete all failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "delete failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
		return
	}

	var req struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.IDs) == 0 {
		writeError(w, http.StatusBadRequest, "ids are required")
		return
	}

	deleted, err := a.store.DeleteLeads(r.Context(), req.IDs)
	if err != nil {
		zap.L().Error("delete leads failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

func (a *api) handleStats(w http.ResponseWriter, r *http.Request) {
	leads, err := a.store.ListLeads(r.Context(), store.LeadFilter{})
	if err != nil {
		zap.L().Error("stats failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "stats failed")
		return
	}
	writeJSON(w, http.StatusOK, pipeline.Summarize(leads))
}

func (a *api) handleExport(w http.ResponseWriter, r *http.Request) {
	leads, err := a.store.ListLeads(r.Context(), leadFilterFromQuery(r))
	if err != nil {
		zap.L().Error("export failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	format := strings.ToLower(r.URL.Query().Get("format"))
	switch format {
	case "", "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="leads.csv"`)
		if err := export.WriteCSV(w, leads); err != nil {
			zap.L().Error("export write failed", zap.Error(err))
		}
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="leads.xlsx"`)
		if err := export.WriteXLSX(w, leads); err != nil {
			zap.L().Error("export write failed", zap.Error(err))
		}
	default:
		writeError(w, http.StatusBadRequest, "unsupported format: "+format)
	}
}
