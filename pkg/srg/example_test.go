package srg_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/srgsearch/pkg/srg"
)

func ExampleIsValid() {
	// The 5-cycle is srg(5,2,0,1).
	spec := srg.Spec{N: 5, K: 2, Lambda: 0, Mu: 1}
	rows := srg.RowSet{
		{0, 1, 0, 0, 1},
		{1, 0, 1, 0, 0},
		{0, 1, 0, 1, 0},
		{0, 0, 1, 0, 1},
		{1, 0, 0, 1, 0},
	}
	gram := srg.Evaluate(rows)
	fmt.Println(gram[0])
	fmt.Println(srg.IsValid(spec, rows, gram))
	// Output:
	// [2 0 1 1 0]
	// true
}

func ExampleViolations() {
	spec := srg.Spec{N: 5, K: 2, Lambda: 1, Mu: 1}
	rows := srg.RowSet{
		{0, 1, 0, 0, 1},
		{1, 0, 1, 0, 0},
	}
	for _, v := range srg.Violations(spec, rows, srg.Evaluate(rows)) {
		fmt.Printf("rows %d,%d adjacent=%v want=%d got=%d\n", v.I, v.J, v.Adjacent, v.Want, v.Got)
	}
	// Output:
	// rows 0,1 adjacent=true want=1 got=0
}

func ExampleSolve() {
	spec := srg.Spec{N: 6, K: 3, Lambda: 0, Mu: 3}
	seeds := srg.RowSet{{0, 1, 0, 0, 1, 1}}

	opts := srg.DefaultOptions()
	opts.Seed = 42
	res, err := srg.Solve(context.Background(), spec, seeds, opts)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res.State, len(res.Rows))
	fmt.Println(srg.IsValid(spec, res.Rows, res.Gram))
	// Output:
	// complete 6
	// true
}
