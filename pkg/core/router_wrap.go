package core

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/joeydtaylor/steeze-plugin/pkg/manifest"
	"github.com/joeydtaylor/steeze-plugin/pkg/middleware/logger"
	"go.uber.org/zap"
)

func wrapRoute(rt manifest.Route, d BuildDeps) http.HandlerFunc {
	if rt.Handler.Type != manifest.HandlerInproc {
		return func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "unknown handler type", http.StatusInternalServerError)
		}
	}

	limit := rt.Policy.MaxBodyBytes
	if limit <= 0 {
		limit = manifest.DefaultMaxBodyBytes
	}

	return func(w http.ResponseWriter, r *http.Request) {
		// resolved per request so handlers registered after the router is built still count
		h, ok := Lookup(rt.Handler.Name)
		if !ok {
			http.Error(w, "handler not found", http.StatusInternalServerError)
			return
		}

		inv := uuid.NewString()
		w.Header().Set(logger.InvocationHeader, inv)

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
		if err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "read body: "+err.Error(), http.StatusBadRequest)
			return
		}

		if rt.StampIdentity && d.Auth != nil {
			body = stampIdentity(body, d.Auth.GetUser(r.Context()))
		}

		out, status, err := h(r.Context(), body)
		if err != nil {
			d.Logger.Warn("invocation failed",
				zap.String("invocationId", inv),
				zap.String("handler", rt.Handler.Name),
				zap.Int("status", statusIf(status, http.StatusInternalServerError)),
				zap.Error(err),
			)
			http.Error(w, err.Error(), statusIf(status, http.StatusInternalServerError))
			return
		}
		writeJSON(w, out, statusIf(status, http.StatusOK))
	}
}
