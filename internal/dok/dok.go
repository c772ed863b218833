// Copyright ©2026 The krylov Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dok provides a sparse matrix in dictionary-of-keys format. It is
// convenient for incrementally assembling structured test matrices, for
// example discretized Laplacians, and implements the operator contract of
// the krylov package.
package dok

// Matrix is a sparse matrix stored as a map from (row, column) to value.
type Matrix struct {
	rows, cols int

	data map[index]float64
}

type index struct {
	row, col int
}

// New returns an empty r×c matrix.
func New(r, c int) *Matrix {
	return &Matrix{
		rows: r,
		cols: c,
		data: make(map[index]float64),
	}
}

// Dims returns the dimensions of the matrix.
func (m *Matrix) Dims() (r, c int) {
	return m.rows, m.cols
}

// NNZ returns the number of stored entries.
func (m *Matrix) NNZ() int {
	return len(m.data)
}

// At returns the element at (i, j).
func (m *Matrix) At(i, j int) float64 {
	m.checkIndex(i, j)
	return m.data[index{i, j}]
}

// Set sets the element at (i, j) to v.
func (m *Matrix) Set(i, j int, v float64) {
	m.checkIndex(i, j)
	m.data[index{i, j}] = v
}

// Add adds v to the element at (i, j).
func (m *Matrix) Add(i, j int, v float64) {
	m.checkIndex(i, j)
	m.data[index{i, j}] += v
}

// MulVec computes A*x and stores the result into dst.
func (m *Matrix) MulVec(dst, x []float64) {
	if m.cols != len(x) {
		panic("dok: dimension mismatch")
	}
	if m.rows != len(dst) {
		panic("dok: dimension mismatch")
	}
	for i := range dst {
		dst[i] = 0
	}
	for ij, aij := range m.data {
		dst[ij.row] += aij * x[ij.col]
	}
}

func (m *Matrix) checkIndex(i, j int) {
	if i < 0 || m.rows <= i {
		panic("dok: row index out of range")
	}
	if j < 0 || m.cols <= j {
		panic("dok: column index out of range")
	}
}
