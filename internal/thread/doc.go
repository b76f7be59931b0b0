// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package thread reports the identity of the OS thread the calling
// goroutine runs on.
//
// The identity is only stable while the goroutine is wired to its thread
// with runtime.LockOSThread. Callers that record an identity must hold
// the lock for as long as the record is meaningful.
package thread
