package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nmdsi/sponsor-cli/internal/dashboard"
	"github.com/nmdsi/sponsor-cli/internal/model"
	"github.com/nmdsi/sponsor-cli/internal/report"
	"github.com/nmdsi/sponsor-cli/pkg/predictapi"
)

var servePort int

// serveEnv carries what the HTTP handlers need.
type serveEnv struct {
	client    predictapi.Client
	loader    *dashboard.Loader
	reportDir string
	origins   []string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose dashboard data and PDF export over HTTP",
	Long:  "Serves the dashboard JSON and prospect summary downloads for a browser frontend. Not an auth proxy; requests hit the prediction service with this machine's session.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		client, _, err := newClient(ctx, st)
		if err != nil {
			return err
		}

		env := &serveEnv{
			client:    client,
			loader:    dashboard.NewLoader(client),
			reportDir: cfg.Report.OutputDir,
			origins:   cfg.Server.AllowedOrigin,
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(env),
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx) //nolint:errcheck
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}
		return nil
	},
}

func newRouter(env *serveEnv) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: env.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/dashboard", env.handleDashboard)
	r.Get("/api/dashboard/{variant}", env.handleVariantDashboard)
	r.Get("/api/report/{company}", env.handleReport)

	return r
}

func (env *serveEnv) handleDashboard(w http.ResponseWriter, r *http.Request) {
	data := env.loader.Load(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"companies": data.Companies,
		"charts":    data.AllCharts(),
	})
}

func (env *serveEnv) handleVariantDashboard(w http.ResponseWriter, r *http.Request) {
	variant, ok := model.ParseVariant(chi.URLParam(r, "variant"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown model variant"})
		return
	}

	data := env.loader.Load(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"performance": data.Performance[variant],
		"charts":      data.Charts(variant),
	})
}

func (env *serveEnv) handleReport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "company")

	matches, err := env.client.SearchCompanies(r.Context(), name)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "search failed"})
		return
	}
	var company model.Company
	for _, c := range matches {
		if c.Name() == name {
			company = c
			break
		}
	}
	if company == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "company not found"})
		return
	}

	gen := report.NewGenerator(env.reportDir)
	path, err := gen.Generate(company, model.User{Name: "Web Download"})
	if err != nil {
		zap.L().Error("report generation failed", zap.String("company", name), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "report generation failed"})
		return
	}
	defer os.Remove(path) //nolint:errcheck

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(name)))
	http.ServeFile(w, r, path)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
