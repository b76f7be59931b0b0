// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package thread

import "golang.org/x/sys/unix"

// ID returns the kernel thread id of the calling thread.
func ID() uint64 {
	return uint64(unix.Gettid())
}
