// Package srg searches for adjacency matrices of strongly regular graphs.
//
// A strongly regular graph SRG(n, k, λ, μ) is a k-regular graph on n vertices
// in which every pair of adjacent vertices shares exactly λ common neighbors
// and every pair of non-adjacent vertices shares exactly μ common neighbors.
//
// # Search
//
// The search is randomized and constructive. Rows of the adjacency matrix are
// generated one at a time: the entries already implied by earlier rows (the
// matrix is symmetric) are copied in, the diagonal is zero, and the remaining
// positions receive exactly the number of ones needed to reach degree k, at
// uniformly random places. A candidate row is kept when every new pair of rows
// has the right number of shared ones (the Gram matrix entry) and discarded
// otherwise. After a long streak of rejections a [BacktrackPolicy] drops
// trailing rows so the search can leave a dead end.
//
//	spec := srg.Spec{N: 10, K: 3, Lambda: 0, Mu: 1} // Petersen graph
//	res, err := srg.Solve(ctx, spec, nil, srg.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Rows, res.Elapsed)
//
// # Building blocks
//
// The pieces of the search are exported for testing and reporting:
//   - [GenerateRow], [KnownPrefix], [NextRow], [RandomRow] produce candidate rows
//   - [Evaluate] computes the Gram matrix of a row set
//   - [IsValid] and [Violations] check a row set against λ and μ
//   - [BacktrackPolicy.Backtrack] decides how many rows survive a stall
//
// # Termination
//
// There is no proof of termination. For parameters with no SRG, or where one is
// astronomically unlikely to be found, [Solver.Solve] runs until the context is
// cancelled or the configured iteration/time budget runs out.
package srg
