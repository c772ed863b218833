// Copyright ©2026 The krylov Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import (
	"math/rand"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/RisaKirisu/krylov/internal/dok"
)

// randomSPD returns a random symmetric positive-definite n×n operator. The
// diagonal is shifted by n to keep the matrix well conditioned.
func randomSPD(n int, rnd *rand.Rand) Operator {
	a := make([]float64, n*n)
	lda := n
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			a[i*lda+j] = rnd.Float64()
		}
	}
	for i := 0; i < n; i++ {
		a[i*lda+i] += float64(n)
	}
	bi := blas64.Implementation()
	return OperatorFunc(n, func(dst, x []float64) {
		bi.Dsymv(blas.Upper, n, 1, a, lda, x, 1, 0, dst, 1)
	})
}

// randomNonsym returns a random diagonally dominant nonsymmetric n×n
// operator.
func randomNonsym(n int, rnd *rand.Rand) Operator {
	a := make([]float64, n*n)
	for i := range a {
		a[i] = rnd.Float64() - 0.5
	}
	for i := 0; i < n; i++ {
		a[i*n+i] += float64(n)
	}
	bi := blas64.Implementation()
	return OperatorFunc(n, func(dst, x []float64) {
		bi.Dgemv(blas.NoTrans, n, n, 1, a, n, x, 1, 0, dst, 1)
	})
}

// laplacian1D returns the n×n tridiagonal matrix of the one-dimensional
// Poisson equation discretized by central differences.
func laplacian1D(n int) *dok.Matrix {
	m := dok.New(n, n)
	for i := 0; i < n; i++ {
		m.Set(i, i, 2)
		if i > 0 {
			m.Set(i, i-1, -1)
		}
		if i < n-1 {
			m.Set(i, i+1, -1)
		}
	}
	return m
}

// rhsFor returns the right-hand side b = A*want.
func rhsFor(a Operator, want []float64) []float64 {
	b := make([]float64, len(want))
	a.MulVec(b, want)
	return b
}

// ones returns the length-n vector of ones.
func ones(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}
	return v
}

// identityOp returns the n×n identity operator.
func identityOp(n int) Operator {
	return OperatorFunc(n, func(dst, x []float64) {
		copy(dst, x)
	})
}

// panicOp returns an n×n operator that fails the test when applied.
func panicOp(n int) Operator {
	return OperatorFunc(n, func(dst, x []float64) {
		panic("krylov: operator must not be applied")
	})
}
