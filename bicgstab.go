// Copyright ©2026 The krylov Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

// dlamchE is the machine epsilon for float64.
const dlamchE = 1.0 / (1 << 53)

// BiCGSTAB solves the system of linear equations
//
//	A x = b
//
// using the preconditioned BiConjugate Gradient STABilized method. A can
// be a general nonsymmetric matrix. Unlike BiCG, BiCGSTAB needs no
// products with the transpose of A or of the preconditioner, so it works
// with any Operator. For symmetric positive-definite systems use CG.
//
// BiCGSTAB detects ρ- and ω-breakdown of the recurrence and returns
// ErrBreakdown together with the last iterate.
func BiCGSTAB(a Operator, b []float64, settings Settings) (Result, error) {
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

	rt := make([]float64, p.dim) // Shadow residual, fixed at r₀.
	copy(rt, r)
	pv := make([]float64, p.dim)
	v := make([]float64, p.dim)
	t := make([]float64, p.dim)
	phat := make([]float64, p.dim)
	shat := make([]float64, p.dim)

	var rho, rhoPrev, alpha, omega float64
	resid := floats.Norm(r, 2)
	iters := 0
	for iters < p.maxiter {
		rhoPrev = rho
		rho = floats.Dot(rt, r)
		if math.Abs(rho) < dlamchE*dlamchE {
			return finishBiCGSTAB(x, resid, iters, p, &stats),
				fmt.Errorf("%w: rho became zero", ErrBreakdown)
		}
		if iters == 0 {
			copy(pv, r)
		} else {
			beta := (rho / rhoPrev) * (alpha / omega)
			floats.AddScaled(pv, -omega, v) // p_i -= ω v_i
			floats.Scale(beta, pv)          // p_i *= β
			floats.Add(pv, r)               // p_i += r_i
		}
		p.psolve(phat, pv) // Solve M p^_i = p_i.
		stats.PSolve++
		a.MulVec(v, phat) // v_i = A p^_i
		stats.MulVec++
		alpha = rho / floats.Dot(rt, v)

		// Early exit on the intermediate residual s = r - α v.
		floats.AddScaled(r, -alpha, v)
		resid = floats.Norm(r, 2)
		if resid <= p.atol {
			floats.AddScaled(x, alpha, phat)
			iters++
			if settings.Callback != nil {
				settings.Callback(x)
			}
			break
		}

		p.psolve(shat, r) // Solve M s^_i = s_i.
		stats.PSolve++
		a.MulVec(t, shat) // t_i = A s^_i
		stats.MulVec++
		omega = floats.Dot(t, r) / floats.Dot(t, t)
		floats.AddScaled(x, alpha, phat)
		floats.AddScaled(x, omega, shat)
		floats.AddScaled(r, -omega, t)

		iters++
		if settings.Callback != nil {
			settings.Callback(x)
		}
		resid = floats.Norm(r, 2)
		if resid <= p.atol {
			break
		}
		if math.Abs(omega) < dlamchE*dlamchE {
			return finishBiCGSTAB(x, resid, iters, p, &stats),
				fmt.Errorf("%w: omega became zero", ErrBreakdown)
		}
	}

	return finishBiCGSTAB(x, resid, iters, p, &stats), nil
}

func finishBiCGSTAB(x []float64, resid float64, iters int, p *problem, stats *Stats) Result {
	var info int
	if !(resid <= p.atol) {
		info = p.maxiter
	}
	stats.Iterations = iters
	stats.ResidualNorm = resid
	stats.Runtime = time.Since(stats.StartTime)
	return Result{X: x, Info: info, Stats: *stats}
}
