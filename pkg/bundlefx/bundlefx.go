// Package bundlefx groups the HTTP middleware modules every plugin host needs.
package bundlefx

import (
	"github.com/joeydtaylor/steeze-plugin/pkg/middleware/auth"
	"github.com/joeydtaylor/steeze-plugin/pkg/middleware/logger"
	"github.com/joeydtaylor/steeze-plugin/pkg/middleware/metrics"
	"go.uber.org/fx"
)

// Module provided to fx
var Module = fx.Options(
	auth.Module,
	logger.Module,
	metrics.Module,
)
