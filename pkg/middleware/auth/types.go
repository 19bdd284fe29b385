package auth

type Role struct {
	Name string `json:"name"`
}

type AuthenticationSource struct {
	Provider string `json:"provider"`
}

// User is the authenticated caller. Username and Tenant feed the unit's
// userId/tenantId when a route stamps identity.
type User struct {
	Username             string               `json:"username"`
	Tenant               string               `json:"tenant"`
	AuthenticationSource AuthenticationSource `json:"authenticationSource"`
	Role                 Role                 `json:"role"`
}

type contextKey struct{ name string }

var userCtxKey = &contextKey{"user"}
