package auth

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries the verification settings; ProvideAuthentication reads them from env.
type Config struct {
	Secret    string
	Issuer    string
	Audience  string
	Leeway    time.Duration
	AdminRole string
	DevBypass bool
}

// ProvideAuthentication wires defaults and env config.
func ProvideAuthentication() *Middleware {
	leeway := 60 * time.Second
	if v := strings.TrimSpace(os.Getenv("AUTH_LEEWAY_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			leeway = time.Duration(n) * time.Second
		}
	}
	return New(Config{
		Secret:    os.Getenv("AUTH_JWT_SECRET"),
		Issuer:    strings.TrimSpace(os.Getenv("AUTH_ISSUER")),
		Audience:  strings.TrimSpace(os.Getenv("AUTH_AUDIENCE")),
		Leeway:    leeway,
		AdminRole: os.Getenv("ADMIN_ROLE_NAME"),
		DevBypass: os.Getenv("AUTH_DEV_BYPASS") == "true",
	})
}

func New(c Config) *Middleware {
	m := &Middleware{
		adminRole: c.AdminRole,
		devBypass: c.DevBypass,
		issuer:    c.Issuer,
		audience:  c.Audience,
		leeway:    c.Leeway,
	}
	if c.Secret != "" {
		m.secret = []byte(c.Secret)
	}
	return m
}
