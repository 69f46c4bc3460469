package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/akkharat/folioserv/internal/activity"
	"github.com/akkharat/folioserv/internal/auth"
	"github.com/akkharat/folioserv/internal/blob"
	dbpkg "github.com/akkharat/folioserv/internal/db"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	cfg        Config
	logger     *slog.Logger
	version    string
	db         *sql.DB
	blobStore  blob.Store
	tokens     *auth.TokenManager
	listener   net.Listener
	httpServer *http.Server
	errCh      chan error

	activityLogger activity.Logger
}

func New(cfg Config, logger *slog.Logger, version string) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if version == "" {
		version = "dev"
	}

	tokens, err := auth.NewTokenManager(cfg.TokenSecret, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	srv := &Server{
		cfg:     cfg,
		logger:  logger,
		version: version,
		tokens:  tokens,
		errCh:   make(chan error, 1),
	}

	mux := http.NewServeMux()
	registerHealthRoutes(mux, version)
	registerAPIRoutes(mux, srv)
	if cfg.BlobDir != "" {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.BlobDir))))
	}
	srv.httpServer = &http.Server{
		Addr:         cfg.ListenAddr(),
		Handler:      mux,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return srv, nil
}

func (s *Server) Start() error {
	if err := os.MkdirAll(s.cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory %s: %w", s.cfg.DataDir, err)
	}

	dbPath := s.cfg.DBPath
	if dbPath == "" {
		dbPath = filepath.Join(s.cfg.DataDir, "folioserv.db")
	}
	sqlDB, err := dbpkg.Open(dbpkg.Options{
		Path:          dbPath,
		EnableWAL:     s.cfg.DBWAL,
		BusyTimeoutMS: 5000,
		MaxOpenConns:  5,
		MaxIdleConns:  5,
	})
	if err != nil {
		return err
	}
	if err := dbpkg.RunMigrations(context.Background(), sqlDB); err != nil {
		_ = sqlDB.Close()
		return err
	}

	adminHash, err := auth.HashPassword(s.cfg.AdminPassword)
	if err != nil {
		_ = sqlDB.Close()
		return err
	}
	if err := dbpkg.Seed(context.Background(), sqlDB, dbpkg.SeedOptions{
		AdminUsername:     s.cfg.AdminUsername,
		AdminPasswordHash: adminHash,
	}); err != nil {
		_ = sqlDB.Close()
		return err
	}
	s.db = sqlDB

	if s.cfg.BlobDir != "" {
		if err := os.MkdirAll(s.cfg.BlobDir, 0o755); err != nil {
			_ = s.db.Close()
			s.db = nil
			return fmt.Errorf("create blob directory %s: %w", s.cfg.BlobDir, err)
		}
		s.blobStore = blob.NewFileStore(s.cfg.BlobDir, s.cfg.PublicBaseURL)
	} else {
		s.blobStore = blob.DataURLStore{}
	}

	baseLogger, err := activity.NewSQLiteLogger(sqlDB)
	if err != nil {
		_ = s.db.Close()
		s.db = nil
		return fmt.Errorf("initialize activity logger: %w", err)
	}
	s.activityLogger = activity.NewAsyncLogger(baseLogger, 256, func(err error) {
		s.logger.Error("asynchronous activity write failed", "error", err)
	})

	ln, err := net.Listen("tcp", s.cfg.ListenAddr())
	if err != nil {
		_ = s.db.Close()
		s.db = nil
		return fmt.Errorf("listen on %s: %w", s.cfg.ListenAddr(), err)
	}
	s.listener = ln

	s.logger.Info("folioservd starting",
		"listen_addr", ln.Addr().String(),
		"data_dir", s.cfg.DataDir,
		"db_path", dbPath,
		"blob_mode", blobMode(s.cfg.BlobDir),
		"version", s.version,
	)

	go func() {
		err := s.httpServer.Serve(ln)
		if err != nil && err != http.ErrServerClosed {
			s.errCh <- err
		}
		close(s.errCh)
	}()

	return nil
}

func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}

	select {
	case err := <-s.errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.listener == nil && s.db == nil {
		return nil
	}

	s.logger.Info("folioservd shutting down")
	if s.listener != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}

		if err, ok := <-s.errCh; ok && err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		s.listener = nil
	}
	if closer, ok := s.activityLogger.(interface{ Close(context.Context) error }); ok {
		if err := closer.Close(ctx); err != nil {
			return fmt.Errorf("close activity logger: %w", err)
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("close sqlite db: %w", err)
		}
		s.db = nil
	}
	s.blobStore = nil
	s.activityLogger = nil
	return nil
}

func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func blobMode(blobDir string) string {
	if blobDir == "" {
		return "data-url"
	}
	return "file"
}

func parseLogLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q (expected debug|info|warn|error)", level)
	}
}

func NewLogger(level string) (*slog.Logger, error) {
	parsed, err := parseLogLevel(level)
	if err != nil {
		return nil, err
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: parsed})
	return slog.New(h), nil
}
