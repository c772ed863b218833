// Copyright ©2026 The krylov Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrShape is returned when the matrix is not square, when the length
	// of the right-hand side or of the initial guess does not match the
	// dimension of the system, or when the preconditioner shape differs
	// from the matrix shape.
	ErrShape = errors.New("krylov: incompatible shape")

	// ErrCallback is returned by GMRES when both Callback and CallbackNorm
	// are set in Settings.
	ErrCallback = errors.New("krylov: conflicting callback settings")

	// ErrBreakdown is returned by BiCGSTAB when the recurrence encounters
	// a vanishing inner product and cannot continue.
	ErrBreakdown = errors.New("krylov: breakdown")
)

// Settings holds various settings for solving a linear system. The zero
// value of each field means a default.
type Settings struct {
	// X0 is an initial guess.
	// If it is nil, the zero vector will be used.
	// If it is not nil, its length must be equal to the dimension of the
	// system. It is copied, the solvers never write through it.
	X0 []float64

	// Tolerance specifies the relative error tolerance of the final
	// approximate solution with respect to the right-hand side,
	//  |r| <= Tolerance * |b|.
	// If it is zero, it will be set to 1e-5. See also AbsTolerance.
	Tolerance float64

	// AbsTolerance is an absolute residual tolerance. If it is positive,
	// the stopping criterion becomes
	//  |r| <= max(AbsTolerance, Tolerance*|b|),
	// coupling the relative and absolute criteria. If it is not positive,
	// only the relative criterion applies, except that a zero right-hand
	// side makes the criterion |r| <= Tolerance.
	AbsTolerance float64

	// MaxIterations is the limit on the number of iterations. If it is
	// not positive, it will be set to 10 times the dimension of the
	// system.
	MaxIterations int

	// Preconditioner is an operator approximating A⁻¹ that is applied to
	// accelerate convergence. If it is nil, no preconditioning is used
	// (the identity). If it is not nil, its shape must match the shape of
	// the system matrix.
	Preconditioner Operator

	// Restart is the number of Arnoldi steps GMRES performs between
	// restarts. Larger values increase the iteration cost but may be
	// necessary for convergence. If it is not positive, it will be set to
	// 20. It is clamped to the dimension of the system. Other solvers
	// ignore it.
	Restart int

	// Callback, if it is not nil, observes the progress of the solve. CG
	// and BiCGSTAB invoke it after every iteration with the current
	// solution estimate. GMRES invokes it at every restart-cycle boundary
	// with the current preconditioned estimate. The callback must not
	// modify or retain the vector.
	Callback func(x []float64)

	// CallbackNorm, if it is not nil, is invoked by GMRES at every
	// restart-cycle boundary after the first with the relative
	// preconditioned residual norm |r|/|b|. Other solvers ignore it.
	// GMRES rejects Settings with both Callback and CallbackNorm set.
	CallbackNorm func(prNorm float64)
}

// Result holds the result of an iterative solve.
type Result struct {
	// X is the approximate solution.
	X []float64

	// Info indicates how the solve terminated. It is 0 when the residual
	// tolerance was met (or the system was trivial), and equal to the
	// iteration limit when the limit was reached without meeting the
	// tolerance. A nonzero Info is not reported as an error, callers must
	// check it explicitly.
	Info int

	// Stats holds the statistics of the solve.
	Stats Stats
}

// Stats holds statistics about an iterative solve.
type Stats struct {
	// Iterations is the number of iterations performed. GMRES counts at
	// restart-cycle granularity, advancing by Restart per cycle.
	Iterations int
	// MulVec is the number of matrix-vector products performed.
	MulVec int
	// PSolve is the number of preconditioner applications performed.
	PSolve int
	// ResidualNorm is the final norm of the residual.
	ResidualNorm float64
	// StartTime is an approximate time when the solve was started.
	StartTime time.Time
	// Runtime is an approximate duration of the solve.
	Runtime time.Duration
}

// problem is the validated and normalized state shared by the solvers. It
// is scoped to a single solve call.
type problem struct {
	dim     int
	x       []float64 // Copy of X0 or the zero vector.
	bnorm   float64
	atol    float64 // Effective absolute stopping tolerance.
	maxiter int

	psolve func(dst, rhs []float64) // z = M*rhs, identity when no preconditioner.
}

// newProblem validates a, b and settings and assembles the state shared by
// the solvers. All validation happens here, before any operator
// application.
func newProblem(a Operator, b []float64, s *Settings) (*problem, error) {
	if a == nil {
		panic("krylov: nil operator")
	}
	r, c := a.Dims()
	if r != c {
		return nil, fmt.Errorf("%w: expected square matrix, got %d×%d", ErrShape, r, c)
	}
	dim := r
	if len(b) != dim {
		return nil, fmt.Errorf("%w: right-hand side has length %d, system has dimension %d", ErrShape, len(b), dim)
	}

	p := &problem{dim: dim}
	if dim == 0 {
		return p, nil
	}

	p.x = make([]float64, dim)
	if s.X0 != nil {
		if len(s.X0) != dim {
			return nil, fmt.Errorf("%w: initial guess has length %d, system has dimension %d", ErrShape, len(s.X0), dim)
		}
		copy(p.x, s.X0)
	}

	p.maxiter = s.MaxIterations
	if p.maxiter <= 0 {
		p.maxiter = 10 * dim
	}

	tol := s.Tolerance
	if tol == 0 {
		tol = 1e-5
	}
	p.bnorm = floats.Norm(b, 2)
	switch {
	case s.AbsTolerance > 0:
		p.atol = math.Max(s.AbsTolerance, tol*p.bnorm)
	case p.bnorm == 0:
		p.atol = tol
	default:
		p.atol = tol * p.bnorm
	}

	if m := s.Preconditioner; m != nil {
		mr, mc := m.Dims()
		if mr != r || mc != c {
			return nil, fmt.Errorf("%w: matrix is %d×%d but preconditioner is %d×%d", ErrShape, r, c, mr, mc)
		}
		p.psolve = m.MulVec
	} else {
		p.psolve = func(dst, rhs []float64) { copy(dst, rhs) }
	}
	return p, nil
}

// trivial returns the result of a zero-dimensional solve.
func trivial(stats *Stats) Result {
	stats.Runtime = time.Since(stats.StartTime)
	return Result{X: []float64{}, Stats: *stats}
}
