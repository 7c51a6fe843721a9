package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"authored-notes/internal/api/http/handler"
	"authored-notes/internal/api/http/middleware"
	"authored-notes/internal/auth"
	"authored-notes/internal/config"
	"authored-notes/internal/logger"
	"authored-notes/internal/repository"
	"authored-notes/internal/service/notes"
	"authored-notes/internal/service/users"
	"authored-notes/internal/storage"
)

// Server представляет HTTP сервер приложения
type Server struct {
	HTTPServer *http.Server
	Listener   net.Listener
	Store      repository.Store

	Config *config.Config
	log    *slog.Logger
}

// NewServer создает сервер и занимает порт
func NewServer(cfg *config.Config, log *slog.Logger) (*Server, error) {
	addr := net.JoinHostPort("0.0.0.0", strconv.Itoa(cfg.Server.PortHTTP))

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	return &Server{
		Listener: listener,
		Config:   cfg,
		log:      log,
	}, nil
}

// Initialize инициализирует компоненты сервера (Store → Service → Handler)
func (s *Server) Initialize(ctx context.Context) error {
	store, err := storage.Open(ctx, s.Config.Storage)
	if err != nil {
		return err
	}
	s.log.Info("storage opened", slog.String("driver", s.Config.Storage.Driver))

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return fmt.Errorf("migrate: %w", err)
	}

	return s.InitializeWithStore(store)
}

// InitializeWithStore собирает сервисы и маршруты поверх готового хранилища
func (s *Server) InitializeWithStore(store repository.Store) error {
	s.Store = store

	userSvc, err := users.NewUserService(store, s.log)
	if err != nil {
		return err
	}
	noteSvc := notes.NewNoteService(store, s.log)
	tokens := auth.NewTokenManager(s.Config.Auth.JWTSecret, s.Config.Auth.TokenTTL())

	h := handler.NewHandler(noteSvc, userSvc, tokens, s.log).Routes()

	// Внешние слои: CORS обрабатывает preflight до лимитера
	gw := s.Config.Gateway
	h = middleware.RateLimit(s.log, gw.RateLimitRPS, gw.RateLimitBurst)(h)
	h = middleware.CORS(gw.CORSAllowedOrigins, gw.CORSMaxAge)(h)

	srv := s.Config.Server
	s.HTTPServer = &http.Server{
		Handler:           h,
		ReadTimeout:       seconds(srv.HTTPReadTimeout),
		WriteTimeout:      seconds(srv.HTTPWriteTimeout),
		IdleTimeout:       seconds(srv.HTTPIdleTimeout),
		ReadHeaderTimeout: seconds(srv.HTTPReadHeaderTimeout),
		ErrorLog:          slog.NewLogLogger(s.log.Handler(), slog.LevelError),
	}

	return nil
}

// Start запускает HTTP сервер в горутине
// Возвращает канал ошибок для отслеживания ошибок сервера
func (s *Server) Start() <-chan error {
	errChan := make(chan error, 1)

	go func() {
		s.log.Info("HTTP server listening",
			slog.String("addr", s.Listener.Addr().String()),
			slog.String("cors_origins", s.Config.Gateway.CORSAllowedOrigins),
		)
		if err := s.HTTPServer.Serve(s.Listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	return errChan
}

// Shutdown выполняет graceful shutdown сервера и закрывает хранилище
func (s *Server) Shutdown() error {
	s.log.Info("starting graceful shutdown")

	shutdownTimeout := time.Duration(s.Config.Server.GracefulShutdownTimeout) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := s.HTTPServer.Shutdown(ctx); err != nil {
		s.log.Warn("graceful shutdown timeout, forcing stop", logger.Err(err))
		errs = append(errs, err, s.HTTPServer.Close())
	} else {
		s.log.Info("HTTP server stopped gracefully")
	}

	if s.Store != nil {
		if err := s.Store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
	}

	return errors.Join(errs...)
}

// seconds 0 означает отсутствие таймаута
func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
