package auth

import "net/http"

// Dev-only user injection via headers when AUTH_DEV_BYPASS=true
func devUserFromHeaders(r *http.Request) User {
	user := r.Header.Get("X-Dev-User")
	if user == "" {
		return User{}
	}
	return User{
		Username:             user,
		Tenant:               r.Header.Get("X-Dev-Tenant"),
		AuthenticationSource: AuthenticationSource{Provider: firstNonEmpty(r.Header.Get("X-Dev-Provider"), "dev")},
		Role:                 Role{Name: r.Header.Get("X-Dev-Role")},
	}
}
