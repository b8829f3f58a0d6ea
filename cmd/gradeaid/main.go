package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"

	"github.com/gradeaid/gradeaid/internal/handler"
	appI18n "github.com/gradeaid/gradeaid/internal/i18n"
	"github.com/gradeaid/gradeaid/internal/llm"
	"github.com/gradeaid/gradeaid/internal/model"
	"github.com/gradeaid/gradeaid/internal/store"
)

const (
	shutdownTimeout        = 15 * time.Second
	sessionCleanupInterval = time.Hour
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("error reading .env file", "error", err)
	}
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gradeaid",
		Short: "Grade student papers with an LLM and a fixed scoring policy",
	}

	serve := serveCmd()
	root.AddCommand(serve, scoreCmd(), exportCmd())

	// Make "serve" the default when no subcommand is given.
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func addDBFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("db-driver", string(store.DriverSQLite), "Database driver (sqlite, postgres)")
	f.String("db", "gradeaid.db", "SQLite path or Postgres DSN")
}

func addLogFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":8080", "HTTP listen address")
	f.String("llm-url", "http://localhost:11434/v1", "OpenAI-compatible API base URL")
	f.String("llm-key", "ollama", "API key for LLM")
	f.String("llm-model", "llama3.2", "LLM model name")
	f.Int("max-text-length", llm.DefaultMaxTextLength, "Maximum paper length in characters sent to the LLM")
	f.Int64("max-upload-size", handler.DefaultMaxUploadSize, "Maximum request body size in bytes")
	f.StringP("lang", "l", "en", "Default response language (en, es)")
	f.String("admin-password", "", "Initial admin password (or set GRADEAID_ADMIN_PASSWORD)")
	f.Bool("secure-cookies", true, "Set Secure flag on session cookies")
	f.StringSlice("cors-origins", []string{"http://localhost:3000"}, "Allowed CORS origins")
	f.Duration("request-timeout", 2*time.Minute, "Per-request timeout, including LLM analysis")
	addDBFlags(cmd)
	addLogFlags(cmd)
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a teacher's graded papers as JSON",
		RunE:  runExport,
	}
	f := cmd.Flags()
	f.String("teacher", "", "Username of the teacher to export (required)")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	addDBFlags(cmd)
	addLogFlags(cmd)

	_ = cmd.MarkFlagRequired("teacher")

	return cmd
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("GRADEAID")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("gradeaid")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/gradeaid")
	v.AddConfigPath("/etc/gradeaid")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

func openStore(ctx context.Context, v *viper.Viper) (*store.Store, error) {
	db, err := store.Open(ctx, store.Driver(v.GetString("db-driver")), v.GetString("db"))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openStore(ctx, v)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := seedAdmin(ctx, db, v.GetString("admin-password")); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	lang := v.GetString("lang")
	if err := appI18n.Init(lang); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	llmClient := llm.New(
		v.GetString("llm-url"),
		v.GetString("llm-key"),
		v.GetString("llm-model"),
		v.GetInt("max-text-length"),
	)
	if err := llmClient.Ping(ctx); err != nil {
		return fmt.Errorf("LLM health check: %w", err)
	}
	slog.Info("LLM endpoint OK", "url", v.GetString("llm-url"), "model", llmClient.Model())

	h := handler.New(db, llmClient, model.ServerConfig{
		SecureCookies: v.GetBool("secure-cookies"),
		MaxUploadSize: v.GetInt64("max-upload-size"),
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(v.GetDuration("request-timeout")))
	r.Use(cors.Handler(corsOptions(v.GetStringSlice("cors-origins"))))
	r.Use(appI18n.Middleware(lang))
	h.Routes(r)

	go cleanupSessions(ctx, db)

	addr := v.GetString("addr")
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			"addr", addr,
			"db_driver", v.GetString("db-driver"),
			"model", llmClient.Model(),
			"llm_url", v.GetString("llm-url"),
			"lang", lang,
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("could not stop server gracefully", "error", err)
			return srv.Close()
		}
		return nil
	}
}

// cleanupSessions deletes expired auth sessions until ctx is done.
func corsOptions(origins []string) cors.Options {
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}
}

func cleanupSessions(ctx context.Context, db *store.Store) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := db.CleanupExpiredSessions(ctx)
			if err != nil {
				slog.Warn("session cleanup failed", "error", err)
				continue
			}
			if n > 0 {
				slog.Debug("removed expired sessions", "count", n)
			}
		}
	}
}

func runExport(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)
	ctx := cmd.Context()

	db, err := openStore(ctx, v)
	if err != nil {
		return err
	}
	defer db.Close()

	username := v.GetString("teacher")
	teacher, err := db.GetUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("get teacher: %w", err)
	}
	if teacher == nil {
		return fmt.Errorf("teacher %q not found", username)
	}

	results, err := db.ExportPapers(ctx, teacher.ID)
	if err != nil {
		return fmt.Errorf("export papers: %w", err)
	}

	export := model.PapersExport{
		Teacher:    teacher.Username,
		ExportedAt: time.Now().UTC(),
		NumPapers:  len(results),
		Results:    results,
	}
	return writeJSONOutput(v.GetString("output"), export)
}

func seedAdmin(ctx context.Context, db *store.Store, password string) error {
	count, err := db.UserCount(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if password == "" {
		return fmt.Errorf("admin password is required: set --admin-password flag or GRADEAID_ADMIN_PASSWORD env var")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = db.CreateUser(ctx, model.User{
		Username:     "admin",
		DisplayName:  "Administrator",
		PasswordHash: string(hash),
		Role:         model.UserRoleAdmin,
		Active:       true,
	})
	if err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	slog.Info("seeded default admin user", "username", "admin")
	return nil
}
