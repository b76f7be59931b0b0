// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prolog

// Frame is a save point on the term stack. Terms allocated in the frame
// are valid until the frame is retired.
type Frame struct {
	Context[InFrame]
}

// Close retires the frame, discarding its term references but keeping
// bindings made to terms of enclosing scopes.
func (f *Frame) Close() {
	f.s.assertActive()
	f.s.engine.drv.CloseFrame(f.s.frame)
	f.s.retire()
}

// Rewind undoes every binding and allocation made since the frame was
// opened. The frame stays open. Terms allocated in the frame before the
// rewind become invalid; using one panics.
func (f *Frame) Rewind() {
	f.s.assertActive()
	f.s.engine.drv.RewindFrame(f.s.frame)
	f.s.gen++
}

// Discard rewinds and retires the frame.
func (f *Frame) Discard() {
	f.s.assertActive()
	f.s.engine.drv.DiscardFrame(f.s.frame)
	f.s.retire()
}

// Release discards the frame if it is still open. It is meant for defer.
func (f *Frame) Release() {
	if !f.s.closed {
		f.Discard()
	}
}

// WithFrame runs fn in a new frame of c. The frame is closed when fn
// returns nil and discarded when fn returns an error or panics.
func WithFrame[P Phase](c Context[P], fn func(f *Frame) error) error {
	f := c.OpenFrame()
	defer f.Release()
	if err := fn(f); err != nil {
		return err
	}
	if !f.s.closed {
		f.Close()
	}
	return nil
}
