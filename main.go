package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/padraicbc/horserace/config"
	"github.com/padraicbc/horserace/db"
	"github.com/padraicbc/horserace/handlers"
	applog "github.com/padraicbc/horserace/logger"
	"github.com/padraicbc/horserace/store"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := handlers.Options{SessionTTL: cfg.SessionTTL, Logger: logger}
	if cfg.ArchiveEnabled() {
		bdb, err := db.Setup(ctx, cfg)
		if err != nil {
			logger.Fatal("database setup failed", zap.Error(err))
		}
		defer bdb.Close()
		if err := db.CreateTables(ctx, bdb); err != nil {
			logger.Fatal("create tables failed", zap.Error(err))
		}
		opts.Archive = db.NewArchive(bdb)
		opts.Users = db.NewUsers(bdb)
	} else {
		logger.Info("no database configured, archive and signin disabled")
	}

	sessions := store.NewRegistry(cfg.SessionTTL, func(sid string) *store.Store {
		so := []store.Option{store.WithLogger(applog.Session(logger, sid))}
		if cfg.RaceSeed != 0 {
			so = append(so, store.WithSeed(cfg.RaceSeed))
		}
		return store.New(so...)
	}, logger.Named("sessions"))
	go sessions.Run(ctx, cfg.SweepInterval)

	h := handlers.New(sessions, cfg.JWTKey(), opts)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Debug("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"*", "Authorization"},
	}))

	h.Register(e, cfg.IsAdmin)

	if cfg.StaticDir != "" {
		serveUI(e, cfg.StaticDir)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}()

	if cfg.Debug || len(cfg.TLSDomains) == 0 {
		logger.Info("starting server", zap.Bool("debug", cfg.Debug), zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}
	go func() {
		<-ctx.Done()
		_ = s.Close()
	}()

	logger.Info("starting tls server", zap.Strings("domains", cfg.TLSDomains))
	if err := s.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}

// serveUI serves the built browser UI from dir. Paths without a file
// extension fall back to index.html for client-side routing.
func serveUI(e *echo.Echo, dir string) {
	index := filepath.Join(dir, "index.html")
	fileServer := http.FileServer(http.Dir(dir))
	e.GET("/*", func(c echo.Context) error {
		path := c.Request().URL.Path

		// If request is for a static file, serve it
		if strings.Contains(path, ".") {
			fileServer.ServeHTTP(c.Response(), c.Request())
			return nil
		}
		return c.File(index)
	})
}
