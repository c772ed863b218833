// Copyright ©2026 The krylov Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import (
	"time"

	"gonum.org/v1/gonum/floats"
)

// CG solves the system of linear equations
//
//	A x = b
//
// using the preconditioned Conjugate Gradient method. A must be Hermitian
// positive-definite; this is not verified at runtime, violating it yields
// non-convergent behavior, not an error. For general nonsymmetric systems
// use GMRES or BiCGSTAB.
//
// CG is a short-recurrence method: it performs one matrix-vector product
// and one preconditioner application per iteration and keeps only a
// constant number of auxiliary vectors.
//
// A vanishing search-direction inner product or ρ (breakdown, or an exact
// solve from the initial guess) is not guarded: the division propagates
// non-finite values into the result rather than returning an error.
func CG(a Operator, b []float64, settings Settings) (Result, error) {
	stats := Stats{StartTime: time.Now()}

	p, err := newProblem(a, b, &settings)
	if err != nil {
		return Result{}, err
	}
	if p.dim == 0 {
		return trivial(&stats), nil
	}

	x := p.x
	r := make([]float64, p.dim)
	if settings.X0 != nil {
		a.MulVec(r, x)
		stats.MulVec++
		floats.AddScaledTo(r, b, -1, r) // r = b - A*x₀
	} else {
		copy(r, b)
	}

	z := make([]float64, p.dim)
	pv := make([]float64, p.dim) // Search direction.
	q := make([]float64, p.dim)  // A*p.

	var rho, rhoPrev float64
	resid := floats.Norm(r, 2)
	iters := 0
	for iters < p.maxiter {
		p.psolve(z, r) // z = M r_{i-1}
		stats.PSolve++
		rhoPrev = rho
		rho = floats.Dot(r, z) // ρ_i = r_{i-1}·z
		if iters > 0 {
			beta := rho / rhoPrev         // β = ρ_i / ρ_{i-1}
			floats.AddScaled(z, beta, pv) // z = z + β p_{i-1}
		}
		copy(pv, z) // p_i = z

		a.MulVec(q, pv) // q = A p_i
		stats.MulVec++
		alpha := rho / floats.Dot(pv, q) // α = ρ_i / (p_i·q)
		floats.AddScaled(x, alpha, pv)   // x_i = x_{i-1} + α p_i
		floats.AddScaled(r, -alpha, q)   // r_i = r_{i-1} - α q

		iters++
		if settings.Callback != nil {
			settings.Callback(x)
		}
		resid = floats.Norm(r, 2)
		if resid <= p.atol {
			break
		}
	}

	var info int
	if !(resid <= p.atol) {
		info = p.maxiter
	}
	stats.Iterations = iters
	stats.ResidualNorm = resid
	stats.Runtime = time.Since(stats.StartTime)
	return Result{X: x, Info: info, Stats: stats}, nil
}
