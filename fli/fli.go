// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fli declares the low-level foreign language interface of an
// embedded Prolog engine.
//
// A [Driver] is unchecked: handles are plain integers, the active engine
// is implicit per OS thread, and misuse (closing frames out of order,
// touching a term of an inactive engine, advancing a closed query) is
// undefined. Package prolog layers the checked protocol on top.
//
// # Handles
//
//   - [EngineID]: one engine instance. Zero means "no engine".
//   - [TermRef]: a term reference slot on the active engine's local stack.
//     Blocks from [Driver.NewTermRefs] are consecutive: ref+i is slot i.
//   - [FrameID]: a foreign frame marker.
//   - [QueryID]: an open query. Zero names the pending exception slot in
//     [Driver.Exception].
//   - [PredicateID], [ModuleID]: resolved lookup handles, stable for the
//     lifetime of the process.
//
// # Status Codes
//
// [Driver.NextSolution] returns one of [StatusException], [StatusFailure],
// [StatusTrue] or [StatusLast] when the query was opened with [FlagExtStatus].
package fli

import "errors"

// Opaque handle types.
type (
	EngineID    uint64
	TermRef     uint64
	FrameID     uint64
	QueryID     uint64
	PredicateID uint64
	ModuleID    uint64
)

// Status is the result code of a solve step.
type Status = int

// Extended status codes of NextSolution.
const (
	StatusException Status = -1
	StatusFailure   Status = 0
	StatusTrue      Status = 1
	StatusLast      Status = 2
)

// QueryFlags control how a query is opened.
type QueryFlags uint32

// Query flags.
const (
	FlagNormal         QueryFlags = 0x0002
	FlagNoDebug        QueryFlags = 0x0004
	FlagCatchException QueryFlags = 0x0008
	FlagPassException  QueryFlags = 0x0010
	FlagExtStatus      QueryFlags = 0x0040
)

// TermType classifies the value a term reference currently holds.
type TermType uint8

// Term types.
const (
	TypeVariable TermType = iota + 1
	TypeAtom
	TypeInteger
	TypeFloat
	TypeString
	TypeCompound
)

var typeNames = [...]string{
	TypeVariable: "variable",
	TypeAtom:     "atom",
	TypeInteger:  "integer",
	TypeFloat:    "float",
	TypeString:   "string",
	TypeCompound: "compound",
}

func (t TermType) String() string {
	if int(t) < len(typeNames) && typeNames[t] != "" {
		return typeNames[t]
	}
	return "unknown"
}

// Driver errors.
var (
	ErrEngineBusy    = errors.New("fli: engine is active on another thread")
	ErrNoEngine      = errors.New("fli: no such engine")
	ErrInvalidName   = errors.New("fli: invalid predicate name")
	ErrResourceLimit = errors.New("fli: resource limit exceeded")
)

// Driver is the primitive interface of one embedded engine implementation.
// All term, frame and query operations act on the engine that is active
// on the calling OS thread.
type Driver interface {
	// CreateEngine creates a new engine instance.
	CreateEngine() (EngineID, error)
	// DestroyEngine destroys an engine that is not active anywhere.
	DestroyEngine(e EngineID) error
	// SetEngine makes e the active engine of the calling thread.
	// Zero detaches the current engine.
	SetEngine(e EngineID) error
	// CurrentEngine reports the engine active on the calling thread.
	CurrentEngine() EngineID

	// NewTermRefs allocates n consecutive fresh variables.
	NewTermRefs(n int) TermRef
	OpenFrame() FrameID
	// CloseFrame discards term references created since the frame,
	// keeping bindings.
	CloseFrame(f FrameID)
	// DiscardFrame undoes bindings and discards everything since the frame.
	DiscardFrame(f FrameID)
	// RewindFrame undoes bindings since the frame but keeps it open.
	RewindFrame(f FrameID)

	Unify(a, b TermRef) bool

	Module(name string) ModuleID
	Predicate(module ModuleID, name string, arity int) (PredicateID, error)
	PredicateInfo(p PredicateID) (module, name string, arity int)

	OpenQuery(module ModuleID, flags QueryFlags, p PredicateID, args TermRef) QueryID
	NextSolution(q QueryID) Status
	CutQuery(q QueryID)
	CloseQuery(q QueryID)

	// Exception returns the exception term of q, or the pending exception
	// when q is zero. Zero means no exception.
	Exception(q QueryID) TermRef
	RaiseException(t TermRef)
	// HasException reports whether a pending exception is set. It
	// allocates nothing.
	HasException() bool
	ClearException()

	TermType(t TermRef) TermType
	UnifyInt64(t TermRef, v int64) bool
	UnifyFloat64(t TermRef, v float64) bool
	UnifyAtom(t TermRef, name string) bool
	UnifyString(t TermRef, s string) bool
	UnifyCompound(t TermRef, name string, args TermRef, arity int) bool
	GetInt64(t TermRef) (int64, bool)
	GetFloat64(t TermRef) (float64, bool)
	GetAtom(t TermRef) (string, bool)
	GetString(t TermRef) (string, bool)
	GetCompound(t TermRef) (name string, arity int, ok bool)
	// GetArg unifies arg with the index-th (1-based) argument of t.
	GetArg(index int, t, arg TermRef) bool
	// Format renders t in quoted canonical form.
	Format(t TermRef) string
}
