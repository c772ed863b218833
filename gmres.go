// Copyright ©2026 The krylov Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// GMRES solves the system of linear equations
//
//	A x = b
//
// using the restarted, right-preconditioned Generalized Minimal RESidual
// method. A can be any non-singular square matrix.
//
// GMRES builds an orthonormal basis of the Krylov subspace of dimension
// Settings.Restart together with the Hessenberg matrix of projection
// coefficients, then updates the iterate with the solution of a small
// dense least-squares problem. The basis is discarded and rebuilt from the
// true residual after every restart cycle. Iterations are counted at
// cycle granularity: each cycle advances the count by Restart.
//
// Because the method is right-preconditioned, the iterate tracked
// internally is the pre-image under the preconditioner; the returned
// solution is the preconditioned point M·x, the actually-converged
// approximation to A⁻¹b.
//
// Reference:
//
//	M. Wang, H. Klie, M. Parashar and H. Sudan, "Solving Sparse Linear
//	Systems on NVIDIA Tesla GPUs", ICCS 2009.
func GMRES(a Operator, b []float64, settings Settings) (Result, error) {
	stats := Stats{StartTime: time.Now()}

	if settings.Callback != nil && settings.CallbackNorm != nil {
		return Result{}, ErrCallback
	}

	p, err := newProblem(a, b, &settings)
	if err != nil {
		return Result{}, err
	}
	if p.dim == 0 {
		return trivial(&stats), nil
	}
	if p.bnorm == 0 {
		// The zero vector trivially solves A x = 0.
		stats.Runtime = time.Since(stats.StartTime)
		return Result{X: make([]float64, p.dim), Stats: stats}, nil
	}

	dim := p.dim
	restart := settings.Restart
	if restart <= 0 {
		restart = 20
	}
	if restart > dim {
		restart = dim
	}

	x := p.x
	mx := make([]float64, dim) // Preconditioned iterate M*x.
	r := make([]float64, dim)
	z := make([]float64, dim)
	u := make([]float64, dim)

	// Krylov basis, one restart cycle's worth of contiguous columns.
	v := make([]float64, dim*restart)
	// Upper Hessenberg matrix of projection coefficients, consumed by the
	// least-squares solve at the end of each cycle.
	h := mat.NewDense(restart+1, restart, nil)
	e := make([]float64, restart+1)

	var rnorm float64
	iters := 0
	for {
		p.psolve(mx, x) // mx = M x
		stats.PSolve++
		a.MulVec(r, mx)
		stats.MulVec++
		floats.AddScaledTo(r, b, -1, r) // r = b - A*mx, the true residual
		rnorm = floats.Norm(r, 2)

		switch {
		case settings.Callback != nil:
			settings.Callback(mx)
		case settings.CallbackNorm != nil && iters > 0:
			settings.CallbackNorm(rnorm / p.bnorm)
		}

		if rnorm <= p.atol || iters >= p.maxiter {
			break
		}

		v0 := v[:dim]
		copy(v0, r)
		floats.Scale(1/rnorm, v0)
		for i := range e {
			e[i] = 0
		}
		e[0] = rnorm

		// Arnoldi process. Each new direction is orthogonalized against
		// all columns built so far within the cycle, not only the last
		// one, to limit loss of orthogonality.
		for j := 0; j < restart; j++ {
			p.psolve(z, v[j*dim:(j+1)*dim])
			stats.PSolve++
			a.MulVec(u, z)
			stats.MulVec++
			for k := 0; k <= j; k++ {
				vk := v[k*dim : (k+1)*dim]
				hkj := floats.Dot(vk, u)
				h.Set(k, j, hkj)
				floats.AddScaled(u, -hkj, vk)
			}
			unorm := floats.Norm(u, 2)
			h.Set(j+1, j, unorm)
			if j+1 < restart {
				vnext := v[(j+1)*dim : (j+2)*dim]
				copy(vnext, u)
				// A zero norm here signals breakdown, the division
				// propagates non-finite values as-is.
				floats.Scale(1/unorm, vnext)
			}
		}

		// Minimize |H y - e|₂ over the small dense system. The basis and
		// operator work above may run on whatever backend the Operator
		// wraps; this low-dimensional solve is always done with the dense
		// solver on the host.
		y, err := solveLstsq(h, e)
		if err != nil {
			return Result{}, err
		}
		for j := 0; j < restart; j++ {
			floats.AddScaled(x, y[j], v[j*dim:(j+1)*dim])
		}
		iters += restart
	}

	var info int
	if !(rnorm <= p.atol) {
		info = p.maxiter
	}
	stats.Iterations = iters
	stats.ResidualNorm = rnorm
	stats.Runtime = time.Since(stats.StartTime)
	return Result{X: mx, Info: info, Stats: stats}, nil
}

// solveLstsq returns the least-squares solution y of H y ≈ e. A Condition
// warning from the dense solver is ignored so that nearly rank-deficient
// cycles (for example after a lucky breakdown) produce a solution instead
// of aborting the solve.
func solveLstsq(h *mat.Dense, e []float64) ([]float64, error) {
	m, n := h.Dims()
	y := mat.NewVecDense(n, nil)
	err := y.SolveVec(h, mat.NewVecDense(m, e))
	if err != nil {
		if _, ok := err.(mat.Condition); !ok {
			return nil, err
		}
	}
	return y.RawVector().Data, nil
}
