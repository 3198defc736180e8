// Package engine recalculates a pro forma deal: triple-entry cost sync and
// weighted redistribution, municipal fees, contingency, S-curve construction
// financing, revenue and the yield verdict.
//
// Every recalculation is a single forward pass over the deal. The engine
// holds no per-deal state, so one Engine can serve any number of deals.
package engine

import (
	"github.com/iwvelando/proforma/pkg/defaults"
	"go.uber.org/zap"
)

// Engine runs the pro forma pipeline against a defaults dataset.
type Engine struct {
	logger *zap.Logger
	ds     *defaults.Dataset
}

// New returns an engine for the dataset. A nil dataset uses the built-in
// one and a nil logger discards output.
func New(logger *zap.Logger, ds *defaults.Dataset) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ds == nil {
		ds = defaults.Builtin()
	}
	return &Engine{logger: logger, ds: ds}
}

// Dataset returns the defaults the engine was built with.
func (e *Engine) Dataset() *defaults.Dataset {
	return e.ds
}
