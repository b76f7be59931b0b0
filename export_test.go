// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prolog

// ActiveThreads returns the number of threads with an active engine.
func ActiveThreads() int {
	return active.len()
}
