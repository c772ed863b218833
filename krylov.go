// Copyright ©2026 The krylov Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package krylov provides iterative Krylov-subspace algorithms for solving
// systems of linear equations
//
//	A x = b,
//
// where A is a square matrix that may be large, sparse, or defined only
// implicitly through its action on a vector. The solvers never form or
// factorize A, they access it exclusively through matrix-vector products,
// which makes them suitable for systems too large or too unstructured for
// direct factorization.
//
// CG solves Hermitian positive-definite systems, GMRES and BiCGSTAB solve
// general nonsymmetric systems. All three accept an optional preconditioner
// approximating A⁻¹.
package krylov

import "gonum.org/v1/gonum/mat"

// Operator represents a square matrix through its action on a vector. It is
// the only capability the solvers require of the system matrix and of the
// preconditioner.
//
// MulVec must be deterministic and linear in x. Implementations must not
// retain dst or x.
type Operator interface {
	// Dims returns the dimensions of the matrix.
	Dims() (r, c int)

	// MulVec computes A*x and stores the result into dst. The lengths of
	// dst and x are the column dimension of the matrix.
	MulVec(dst, x []float64)
}

// Matrix adapts any gonum matrix to an Operator, so that dense, banded,
// symmetric or triangular representations can be passed to the solvers
// directly.
func Matrix(m mat.Matrix) Operator {
	return matrixOp{m}
}

type matrixOp struct {
	m mat.Matrix
}

func (a matrixOp) Dims() (r, c int) { return a.m.Dims() }

func (a matrixOp) MulVec(dst, x []float64) {
	d := mat.NewVecDense(len(dst), dst)
	d.MulVec(a.m, mat.NewVecDense(len(x), x))
}

// OperatorFunc returns an n×n Operator whose action is computed by mulVec.
// It is intended for implicit operators, for example stencils or
// matrix-free discretizations, where assembling the matrix is not wanted.
func OperatorFunc(n int, mulVec func(dst, x []float64)) Operator {
	if mulVec == nil {
		panic("krylov: nil mulVec")
	}
	return funcOp{n: n, mulVec: mulVec}
}

type funcOp struct {
	n      int
	mulVec func(dst, x []float64)
}

func (a funcOp) Dims() (r, c int)        { return a.n, a.n }
func (a funcOp) MulVec(dst, x []float64) { a.mulVec(dst, x) }
