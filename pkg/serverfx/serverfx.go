// Package serverfx wires the plugin host: middleware, the unit, the manifest
// router and the HTTP server lifecycle.
package serverfx

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joeydtaylor/steeze-plugin/pkg/bundlefx"
	"github.com/joeydtaylor/steeze-plugin/pkg/core"
	"github.com/joeydtaylor/steeze-plugin/pkg/manifest"
	"github.com/joeydtaylor/steeze-plugin/pkg/middleware/auth"
	"github.com/joeydtaylor/steeze-plugin/pkg/middleware/logger"
	"github.com/joeydtaylor/steeze-plugin/pkg/transport/httpx"
	"github.com/joeydtaylor/steeze-plugin/pkg/unit"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Options allow per-deployment env keys/defaults without code duplication.
type Options struct {
	Service         string // log tag only
	ManifestEnv     string // e.g. "PLUGIN_MANIFEST"
	DefaultManifest string // e.g. "manifest.toml"
	ListenAddrEnv   string // e.g. "SERVER_LISTEN_ADDRESS"
	DefaultListen   string // e.g. ":4000"
	TLSCertEnv      string // e.g. "SSL_SERVER_CERTIFICATE"
	TLSKeyEnv       string // e.g. "SSL_SERVER_KEY"
}

func DefaultOptions() Options {
	return Options{
		Service:         "steeze-plugin",
		ManifestEnv:     "PLUGIN_MANIFEST",
		DefaultManifest: "manifest.toml",
		ListenAddrEnv:   "SERVER_LISTEN_ADDRESS",
		DefaultListen:   ":4000",
		TLSCertEnv:      "SSL_SERVER_CERTIFICATE",
		TLSKeyEnv:       "SSL_SERVER_KEY",
	}
}

// ---- Unit + manifest ----

func provideUnit(zl *zap.Logger) *unit.Unit {
	return unit.New(unit.WithLogger(zl.Named("unit")))
}

func provideManifest(opts Options, u *unit.Unit, zl *zap.Logger) (manifest.Config, error) {
	core.RegisterUnit(u)

	path := envOr(opts.ManifestEnv, opts.DefaultManifest)
	cfg, err := core.LoadConfig(path)
	if err != nil {
		return manifest.Config{}, fmt.Errorf("manifest %s: %w", path, err)
	}
	if missing := core.Unresolved(cfg); len(missing) > 0 {
		return manifest.Config{}, fmt.Errorf("manifest %s: unregistered handlers: %s", path, strings.Join(missing, ", "))
	}
	zl.Info("manifest loaded",
		zap.String("path", path),
		zap.String("plugin", cfg.Plugin.Name),
		zap.String("version", cfg.Plugin.Version),
		zap.Int("routes", len(cfg.Routes)),
	)
	return cfg, nil
}

// ---- Router ----

type routerDeps struct {
	fx.In

	Cfg manifest.Config

	AuthMW *auth.Middleware
	LogMW  *logger.Middleware

	Metrics http.Handler `name:"metrics"`

	R   httpx.Router
	Log *zap.Logger
}

func provideRouter(d routerDeps) http.Handler {
	return core.BuildRouter(d.Cfg, core.BuildDeps{
		Auth:    d.AuthMW,
		LogMW:   d.LogMW,
		Metrics: d.Metrics,
		Router:  d.R,
		Logger:  d.Log,
	})
}

// ---- Server lifecycle ----

type serverDeps struct {
	fx.In
	Opts   Options
	Logger *zap.Logger
	App    http.Handler `name:"app"`
}

func registerHooks(lc fx.Lifecycle, d serverDeps) {
	addr := envOr(d.Opts.ListenAddrEnv, d.Opts.DefaultListen)
	cert := os.Getenv(d.Opts.TLSCertEnv)
	key := os.Getenv(d.Opts.TLSKeyEnv)

	srv := &http.Server{
		Addr:         addr,
		Handler:      d.App,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		TLSConfig:    &tls.Config{MinVersion: tls.VersionTLS13, MaxVersion: tls.VersionTLS13},
	}
	useTLS := fileExists(cert) && fileExists(key)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if useTLS {
				d.Logger.Info("server starting (TLS)",
					zap.String("service", d.Opts.Service),
					zap.String("addr", addr),
					zap.String("cert", cert),
				)
				go func() {
					if err := srv.ListenAndServeTLS(cert, key); err != nil && !errors.Is(err, http.ErrServerClosed) {
						d.Logger.Fatal("server failed", zap.Error(err))
					}
				}()
			} else {
				d.Logger.Info("server starting (PLAINTEXT)",
					zap.String("service", d.Opts.Service),
					zap.String("addr", addr),
				)
				srv.TLSConfig = nil
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						d.Logger.Fatal("server failed", zap.Error(err))
					}
				}()
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			d.Logger.Info("server stopping", zap.String("service", d.Opts.Service))
			return srv.Shutdown(ctx)
		},
	})
}

// ---- Public Fx module ----

func Module(opts Options) fx.Option {
	return fx.Options(
		fx.Supply(opts),

		// fx lifecycle events go through the system logger
		fx.WithLogger(func(zl *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zl.Named("fx")}
		}),

		// auth, logger, metrics (name:"metrics")
		bundlefx.Module,

		fx.Provide(httpx.NewChi),
		fx.Provide(provideUnit),
		fx.Provide(provideManifest),

		// Router (named "app")
		fx.Provide(
			fx.Annotate(
				provideRouter,
				fx.ResultTags(`name:"app"`),
			),
		),

		fx.Invoke(registerHooks),
	)
}

// ---- helpers ----

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
