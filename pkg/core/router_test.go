package core

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joeydtaylor/steeze-plugin/pkg/manifest"
	"github.com/joeydtaylor/steeze-plugin/pkg/middleware/auth"
	"github.com/joeydtaylor/steeze-plugin/pkg/middleware/logger"
	"github.com/joeydtaylor/steeze-plugin/pkg/middleware/metrics"
	httpx "github.com/joeydtaylor/steeze-plugin/pkg/transport/httpx"
	"github.com/joeydtaylor/steeze-plugin/pkg/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testManifest = `
[plugin]
name = "hello-plugin"
version = "1.0.0"

[[route]]
path = "/execute"
[route.handler]
name = "execute"

[[route]]
path = "/validate_input"
log_body = true
stamp_identity = true
[route.handler]
name = "validate_input"
[route.guard]
require_auth = true

[[route]]
path = "/collect_data"
method = "GET"
[route.handler]
name = "collect_data"
[route.guard]
roles = ["onboarding"]

[[route]]
path = "/me/execute"
stamp_identity = true
[route.handler]
name = "execute"
[route.guard]
require_auth = true

[[route]]
path = "/small"
[route.handler]
name = "execute"
[route.policy]
max_body_bytes = 16

[[route]]
path = "/ghost"
[route.handler]
name = "ghost"
`

func newHost(t *testing.T) http.Handler {
	t.Helper()
	RegisterUnit(unit.New())
	logger.SetAccessLogger(zap.NewNop())

	cfg, err := ParseConfig([]byte(testManifest))
	require.NoError(t, err)
	return BuildRouter(cfg, BuildDeps{
		Auth:    auth.New(auth.Config{DevBypass: true, AdminRole: "admin"}),
		LogMW:   logger.ProvideLoggerMiddleware(),
		Metrics: metrics.NewPromHttpHandler(),
		Router:  httpx.NewChi(),
	})
}

type devUser struct{ name, tenant, role string }

func call(h http.Handler, method, path, body string, u *devUser) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	if u != nil {
		r.Header.Set("X-Dev-User", u.name)
		r.Header.Set("X-Dev-Tenant", u.tenant)
		r.Header.Set("X-Dev-Role", u.role)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func outcome(t *testing.T, rec *httptest.ResponseRecorder) unit.Outcome {
	t.Helper()
	o, err := unit.ParseOutcome(rec.Body.String())
	require.NoError(t, err, rec.Body.String())
	return o
}

func TestExecuteRoute(t *testing.T) {
	h := newHost(t)

	rec := call(h, http.MethodPost, "/execute", `{"function":"greet","input":{"name":"Ada"},"journeyData":{}}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	_, err := uuid.Parse(rec.Header().Get(logger.InvocationHeader))
	assert.NoError(t, err)

	g, _ := outcome(t, rec).Data().StringAt("greeting")
	assert.Equal(t, "Hello, Ada!", g)
}

func TestSoftFailureIsOK(t *testing.T) {
	rec := call(newHost(t), http.MethodPost, "/execute", `{"function":"nope","input":{},"journeyData":{}}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"success":false,"error":"Unknown function: nope","action":"fail"}`, rec.Body.String())
}

func TestHardFailureStatus(t *testing.T) {
	h := newHost(t)

	rec := call(h, http.MethodPost, "/execute", `{"function":`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to parse input")

	rec = call(h, http.MethodPost, "/small", `{"function":"greet","input":{},"journeyData":{}}`, nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = call(h, http.MethodPost, "/ghost", `{}`, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "handler not found")
}

func TestGuards(t *testing.T) {
	h := newHost(t)
	body := `{"function":"validate","input":{"email":"a@b.c"},"journeyData":{}}`

	assert.Equal(t, http.StatusUnauthorized, call(h, http.MethodPost, "/validate_input", body, nil).Code)
	assert.Equal(t, http.StatusOK, call(h, http.MethodPost, "/validate_input", body, &devUser{name: "ada"}).Code)

	assert.Equal(t, http.StatusUnauthorized, call(h, http.MethodGet, "/collect_data", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, call(h, http.MethodGet, "/collect_data", "", &devUser{name: "bob", role: "user"}).Code)

	rec := call(h, http.MethodGet, "/collect_data", "", &devUser{name: "bob", role: "onboarding"})
	require.Equal(t, http.StatusOK, rec.Code)
	a, _ := outcome(t, rec).Action()
	assert.Equal(t, unit.ActionRequireInput, a)

	assert.Equal(t, http.StatusOK, call(h, http.MethodGet, "/collect_data", "", &devUser{name: "root", role: "admin"}).Code)
}

func TestUserGuard(t *testing.T) {
	a := auth.New(auth.Config{DevBypass: true, AdminRole: "admin"})
	ok := func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }
	h := a.Middleware()(withGuard(ok, a, manifest.Guard{Users: []string{"ada"}, Roles: []string{"onboarding"}}))

	cases := []struct {
		user devUser
		want int
	}{
		{devUser{name: "ada", role: "onboarding"}, http.StatusOK},
		{devUser{name: "ada", role: "user"}, http.StatusForbidden},
		{devUser{name: "bob", role: "onboarding"}, http.StatusForbidden},
		{devUser{name: "root", role: "admin"}, http.StatusOK},
	}
	for _, tc := range cases {
		u := tc.user
		assert.Equal(t, tc.want, call(h, http.MethodPost, "/x", "", &u).Code, u.name+"/"+u.role)
	}
}

func TestStampIdentity(t *testing.T) {
	h := newHost(t)
	ada := &devUser{name: "ada", tenant: "acme"}

	rec := call(h, http.MethodPost, "/me/execute", `{"function":"greet","input":{},"journeyData":{}}`, ada)
	require.Equal(t, http.StatusOK, rec.Code)
	id, _ := outcome(t, rec).Data().StringAt("user_id")
	assert.Equal(t, "ada", id)

	rec = call(h, http.MethodPost, "/me/execute", `{"function":"greet","userId":"given","input":{},"journeyData":{}}`, ada)
	id, _ = outcome(t, rec).Data().StringAt("user_id")
	assert.Equal(t, "given", id)

	// unstamped route leaves the request alone
	rec = call(h, http.MethodPost, "/execute", `{"function":"greet","input":{},"journeyData":{}}`, ada)
	id, _ = outcome(t, rec).Data().StringAt("user_id")
	assert.Equal(t, "anonymous", id)

	// undecodable bodies still reach the unit
	rec = call(h, http.MethodPost, "/me/execute", `nope`, ada)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStampIdentityBody(t *testing.T) {
	out := stampIdentity([]byte(`{"function":"greet","input":{},"journeyData":{}}`), auth.User{Username: "ada", Tenant: "acme"})
	assert.JSONEq(t, `{"function":"greet","userId":"ada","tenantId":"acme","input":{},"journeyData":{}}`, string(out))

	in := []byte(`{"function":"greet","input":{},"journeyData":{}}`)
	assert.Equal(t, in, stampIdentity(in, auth.User{}))

	// a differently-cased key is an unknown field, not the caller's userId
	out = stampIdentity([]byte(`{"function":"greet","UserId":"mallory","input":{},"journeyData":{}}`), auth.User{Username: "ada"})
	assert.JSONEq(t, `{"function":"greet","userId":"ada","input":{},"journeyData":{}}`, string(out))
}

func TestOperationalRoutes(t *testing.T) {
	h := newHost(t)
	assert.Equal(t, http.StatusOK, call(h, http.MethodGet, "/ping", "", nil).Code)
	require.Equal(t, http.StatusOK, call(h, http.MethodPost, "/execute", `{"function":"greet","input":{},"journeyData":{}}`, nil).Code)

	rec := call(h, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "plugin_invocations_total")

	call(h, http.MethodPost, "/not-a-route", "", nil)
	rec = call(h, http.MethodGet, "/metrics", "", nil)
	assert.Contains(t, rec.Body.String(), `uri="unmatched"`)
	assert.NotContains(t, rec.Body.String(), `uri="/not-a-route"`)
}

func TestEntryHandlerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, status, err := EntryHandler(unit.EntryExecute, unit.Execute)(ctx, []byte(`{}`))
	assert.Error(t, err)
	assert.Equal(t, http.StatusGatewayTimeout, status)
}

func TestUnresolved(t *testing.T) {
	RegisterUnit(unit.New())
	cfg, err := ParseConfig([]byte(testManifest))
	require.NoError(t, err)
	assert.Equal(t, []string{"ghost"}, Unresolved(cfg))

	_, err = LoadConfig("does-not-exist.toml")
	assert.Error(t, err)
}

func TestFunctionLabel(t *testing.T) {
	assert.Equal(t, "branch_example", functionLabel(unit.EntryExecute, []byte(`{"function":"branch","input":{},"journeyData":{}}`)))
	assert.Equal(t, "greet", functionLabel(unit.EntryExecute, []byte(`{"function":"greet","input":{},"journeyData":{},"Function":"validate"}`)))
	assert.Equal(t, "", functionLabel(unit.EntryExecute, []byte(`{"FUNCTION":"greet","input":{},"journeyData":{}}`)))
	assert.Equal(t, "validate", functionLabel(unit.EntryValidateInput, nil))
	assert.Equal(t, "", functionLabel(unit.EntryCollectData, nil))
}

func TestWithTimeout(t *testing.T) {
	var deadline bool
	h := withTimeout(func(w http.ResponseWriter, r *http.Request) {
		_, deadline = r.Context().Deadline()
		w.WriteHeader(http.StatusOK)
	}, time.Minute)
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/execute", nil))
	assert.True(t, deadline)
	assert.Equal(t, http.StatusOK, rec.Code)

	// an expired deadline is reported by the entry handler, once
	expired := withTimeout(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Millisecond)
		_, status, err := EntryHandler(unit.EntryExecute, unit.Execute)(r.Context(), []byte(`{}`))
		require.Error(t, err)
		http.Error(w, err.Error(), status)
	}, time.Nanosecond)
	rec = httptest.NewRecorder()
	expired(rec, httptest.NewRequest(http.MethodPost, "/execute", nil))
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}
