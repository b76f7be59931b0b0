// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prolog

import (
	"code.hybscloud.com/kont"
)

// Exec runs a Cont-world query protocol on an open query. The protocol
// should end with CutDone or DiscardDone; a query left open is
// discarded.
func Exec[R any](q *Query, protocol kont.Eff[R]) R {
	defer q.Release()
	h := queryHandler[R]{q: q}
	return kont.Handle(protocol, h)
}

// ExecExpr runs an Expr-world query protocol on an open query.
func ExecExpr[R any](q *Query, protocol kont.Expr[R]) R {
	defer q.Release()
	h := queryHandler[R]{q: q}
	return kont.HandleExpr(protocol, h)
}
