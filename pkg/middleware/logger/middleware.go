package logger

import (
	"bytes"
	"io"
	"net/http"
	"time"

	chimd "github.com/go-chi/chi/v5/middleware"
	"github.com/joeydtaylor/steeze-plugin/pkg/middleware/auth"
	"go.uber.org/zap"
)

// InvocationHeader is set by the host on every unit call; the access log picks it up.
const InvocationHeader = "X-Invocation-Id"

func (m *Middleware) Middleware(ca *auth.Middleware) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := accessLogger()

			ww := chimd.NewWrapResponseWriter(w, r.ProtoMajor)

			// Read at most one byte past the logging cap, then hand downstream the
			// prefix followed by the unread remainder so route limits still apply.
			var body []byte
			if r.Body != nil && r.Body != http.NoBody {
				// on error keep what was read; the handler sees the same error next
				body, _ = io.ReadAll(io.LimitReader(r.Body, MaxLoggedBody+1))
				r.Body = prefixedBody{Reader: io.MultiReader(bytes.NewReader(body), r.Body), Closer: r.Body}
			}

			scheme := "http"
			if r.TLS != nil {
				scheme = "https"
			}

			start := time.Now()
			defer func() {
				lat := time.Since(start)

				// auth runs ahead of this middleware; nil-safe lookups
				isAuth := false
				var u auth.User
				if ca != nil {
					isAuth = ca.IsAuthenticated(r.Context())
					u = ca.GetUser(r.Context())
				}

				log := l.With(
					zap.String("requestId", chimd.GetReqID(r.Context())),
					zap.String("invocationId", ww.Header().Get(InvocationHeader)),
					zap.String("httpScheme", scheme),
					zap.Bool("isAuthenticated", isAuth),
					zap.String("username", u.Username),
					zap.String("tenant", u.Tenant),
					zap.String("role", u.Role.Name),
					zap.String("authenticationProvider", u.AuthenticationSource.Provider),
					zap.String("httpProto", r.Proto),
					zap.String("httpMethod", r.Method),
					zap.String("remoteAddr", r.RemoteAddr),
					zap.String("uri", r.URL.Path),
					zap.Duration("lat", lat),
					zap.Int("responseSize", ww.BytesWritten()),
					zap.Int("status", ww.Status()),
				)

				// Redact by default; allowlist small JSON bodies only.
				if shouldLogBody(r, body) {
					log.Info("access", zap.ByteString("requestData", body))
				} else {
					log.Info("access")
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// prefixedBody replays an already-read prefix and closes the original body.
type prefixedBody struct {
	io.Reader
	io.Closer
}
