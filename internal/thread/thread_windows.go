// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build windows

package thread

import "golang.org/x/sys/windows"

// ID returns the Win32 thread id of the calling thread.
func ID() uint64 {
	return uint64(windows.GetCurrentThreadId())
}
