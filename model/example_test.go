package model_test

import (
	"fmt"

	"github.com/katalvlaran/arrhenius/model"
)

// ExampleByName resolves a menu number and evaluates the law.
func ExampleByName() {
	m, err := model.ByName("2")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(m)
	fmt.Printf("alpha(t=0) = %.1f\n", m.Evaluate(0, 600, 50, 15))
	// Output:
	// 2. First-order
	// alpha(t=0) = 0.0
}
