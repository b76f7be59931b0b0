// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux && !windows

package thread

import (
	"bytes"
	"runtime"
	"strconv"
)

// ID returns the id of the calling goroutine.
// x/sys exposes no portable thread id here; a goroutine locked to its
// thread is an equivalent key for every caller in this module.
func ID() uint64 {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		panic("thread: cannot parse goroutine id")
	}
	return id
}
