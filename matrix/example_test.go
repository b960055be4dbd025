package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/arrhenius/matrix"
)

// ExampleSolve solves a damped 2x2 normal system, the shape produced by
// every Levenberg–Marquardt iteration of the fitting engine.
func ExampleSolve() {
	a, _ := matrix.NewDenseFrom(2, 2, []float64{4, 1, 1, 3})
	x, err := matrix.Solve(a, []float64{1, 2})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("x = [%.4f, %.4f]\n", x[0], x[1])
	// Output:
	// x = [0.0909, 0.6364]
}

// ExamplePseudoInverseSym shows the rank report for a singular matrix.
func ExamplePseudoInverseSym() {
	a, _ := matrix.NewDenseFrom(2, 2, []float64{1, 2, 2, 4})
	pinv, rank, _ := matrix.PseudoInverseSym(a, 1e-12)
	fmt.Println("rank:", rank)
	v, _ := pinv.At(0, 1)
	fmt.Printf("pinv[0][1] = %.2f\n", v)
	// Output:
	// rank: 1
	// pinv[0][1] = 0.08
}
