// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prolog

import (
	"fmt"
	"sync"

	"code.hybscloud.com/atomix"
	"go.uber.org/zap"

	"code.hybscloud.com/prolog/fli"
)

// lifecycle serializes engine creation and destruction process-wide.
var lifecycle sync.Mutex

// Engine is one instance of an embedded engine. It is idle until
// activated on a thread; at most one thread holds it at a time.
type Engine struct {
	drv    fli.Driver
	id     fli.EngineID
	serial Serial
	log    *zap.Logger
	closed atomix.Uint32
}

// New creates an engine through drv.
func New(drv fli.Driver, opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	lifecycle.Lock()
	defer lifecycle.Unlock()
	id, err := drv.CreateEngine()
	if err != nil {
		return nil, fmt.Errorf("prolog: create engine: %w", err)
	}
	e := &Engine{
		drv:    drv,
		id:     id,
		serial: nextSerial(),
		log:    o.log,
	}
	e.log.Debug("engine created", zap.Uint32("serial", e.serial), zap.Uint64("engine", uint64(id)))
	return e, nil
}

// Serial returns the serial number assigned to this engine.
func (e *Engine) Serial() Serial {
	return e.serial
}

// ID returns the driver's handle of this engine.
func (e *Engine) ID() fli.EngineID {
	return e.id
}

// Driver returns the driver the engine was created with.
func (e *Engine) Driver() fli.Driver {
	return e.drv
}

// Do activates e on the calling thread, runs fn with the base context
// and deactivates again on every exit path.
func (e *Engine) Do(fn func(Context[Activated]) error) error {
	a := e.Activate()
	defer a.Release()
	return fn(a.Context())
}

// Close destroys the engine. Closing an active engine panics; closing
// twice is a no-op.
func (e *Engine) Close() error {
	lifecycle.Lock()
	defer lifecycle.Unlock()
	if e.closed.Load() != 0 {
		return nil
	}
	if active.holder(e) != 0 {
		panic("prolog: close of an active engine")
	}
	if err := e.drv.DestroyEngine(e.id); err != nil {
		return fmt.Errorf("prolog: destroy engine: %w", err)
	}
	e.closed.Store(1)
	e.log.Debug("engine closed", zap.Uint32("serial", e.serial))
	return nil
}
