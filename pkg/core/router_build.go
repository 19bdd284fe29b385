package core

import (
	"net/http"
	"time"

	chimd "github.com/go-chi/chi/v5/middleware"
	"github.com/joeydtaylor/steeze-plugin/pkg/manifest"
	"github.com/joeydtaylor/steeze-plugin/pkg/middleware/logger"
	hmetrics "github.com/joeydtaylor/steeze-plugin/pkg/middleware/metrics"
	"go.uber.org/zap"
)

func BuildRouter(cfg manifest.Config, d BuildDeps) http.Handler {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	r := d.Router
	r.Use(chimd.RequestID, chimd.Recoverer, chimd.Heartbeat("/ping"))

	if d.Auth != nil {
		r.Use(d.Auth.Middleware())
		if d.LogMW != nil {
			r.Use(d.LogMW.Middleware(d.Auth))
		}
		// metrics collector that references auth state without copying it
		r.Use(hmetrics.Collect(d.Auth))
	} else if d.LogMW != nil {
		r.Use(d.LogMW.Middleware(nil))
	}

	if d.Metrics != nil {
		r.Get("/metrics", d.Metrics)
	}

	paths := make([]string, 0, len(cfg.Routes))
	for _, rt := range cfg.Routes {
		paths = append(paths, rt.Path)
		if rt.LogBody {
			logger.AddBodyLogPaths(rt.Path)
		}

		h := wrapRoute(rt, d)
		if rt.Policy.TimeoutMS > 0 {
			h = withTimeout(h, time.Duration(rt.Policy.TimeoutMS)*time.Millisecond)
		}
		h = withGuard(h, d.Auth, rt.Guard)

		r.Handle(rt.Method, rt.Path, h)
		d.Logger.Debug("route mounted",
			zap.String("plugin", cfg.Plugin.Name),
			zap.String("method", rt.Method),
			zap.String("path", rt.Path),
			zap.String("handler", rt.Handler.Name),
		)
	}
	hmetrics.SetPathNormalizer(hmetrics.KnownPaths(paths...))
	return r.Mux()
}
