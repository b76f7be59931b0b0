// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prolog

import "go.uber.org/zap"

// Option configures an Engine.
type Option func(*options)

type options struct {
	log *zap.Logger
}

func defaultOptions() options {
	return options{log: zap.NewNop()}
}

// WithLogger sets the logger of the engine and of runners built on it.
// A nil logger keeps the default no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}
