// Copyright ©2026 The krylov Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/RisaKirisu/krylov"
)

func ExampleCG() {
	// Solve a small symmetric positive-definite system given as a dense
	// gonum matrix.
	a := krylov.Matrix(mat.NewSymDense(2, []float64{
		4, 1,
		1, 3,
	}))
	b := []float64{1, 2}

	res, err := krylov.CG(a, b, krylov.Settings{Tolerance: 1e-10})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Info:", res.Info)
	fmt.Printf("Solution: %.4f\n", res.X)

	// Output:
	// Info: 0
	// Solution: [0.0909 0.6364]
}

func ExampleGMRES() {
	// A nonsymmetric convection-diffusion operator applied matrix-free.
	const n = 100
	a := krylov.OperatorFunc(n, func(dst, x []float64) {
		for i := range dst {
			dst[i] = 3 * x[i]
			if i > 0 {
				dst[i] -= 1.5 * x[i-1]
			}
			if i < n-1 {
				dst[i] -= 0.5 * x[i+1]
			}
		}
	})
	b := make([]float64, n)
	for i := range b {
		b[i] = 1
	}

	res, err := krylov.GMRES(a, b, krylov.Settings{Restart: 30})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Info:", res.Info)
	fmt.Println("Converged:", res.Stats.ResidualNorm <= 1e-5*10)

	// Output:
	// Info: 0
	// Converged: true
}

func ExampleBiCGSTAB() {
	// The same nonsymmetric system solved with short recurrences instead
	// of restarted Arnoldi cycles.
	const n = 100
	a := krylov.OperatorFunc(n, func(dst, x []float64) {
		for i := range dst {
			dst[i] = 3 * x[i]
			if i > 0 {
				dst[i] -= 1.5 * x[i-1]
			}
			if i < n-1 {
				dst[i] -= 0.5 * x[i+1]
			}
		}
	})
	b := make([]float64, n)
	for i := range b {
		b[i] = 1
	}

	res, err := krylov.BiCGSTAB(a, b, krylov.Settings{})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Info:", res.Info)

	// Output:
	// Info: 0
}
