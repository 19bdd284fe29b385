package auth

import (
	"time"

	"go.uber.org/fx"
)

type Middleware struct {
	adminRole string
	devBypass bool

	// Bearer token verification
	secret   []byte
	issuer   string
	audience string
	leeway   time.Duration
}

var Module = fx.Options(
	fx.Provide(ProvideAuthentication),
)
