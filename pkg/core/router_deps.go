package core

import (
	"net/http"

	"github.com/joeydtaylor/steeze-plugin/pkg/middleware/auth"
	"github.com/joeydtaylor/steeze-plugin/pkg/middleware/logger"
	httpx "github.com/joeydtaylor/steeze-plugin/pkg/transport/httpx"
	"go.uber.org/zap"
)

type BuildDeps struct {
	Auth    *auth.Middleware
	LogMW   *logger.Middleware
	Metrics http.Handler
	Router  httpx.Router
	Logger  *zap.Logger
}
