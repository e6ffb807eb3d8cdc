// Package pkg provides the libraries behind srgsearch, a randomized search
// for strongly regular graphs.
//
// # Overview
//
// A strongly regular graph srg(n, k, λ, μ) has n vertices of degree k, where
// adjacent vertices share λ neighbors and non-adjacent vertices share μ.
// srgsearch builds the adjacency matrix one row at a time, checks each new
// row against the rows before it, and backtracks when it keeps failing:
//
//	Spec + seed rows
//	       ↓
//	  [srg] row generator (random symmetric-consistent row)
//	       ↓
//	  [srg] Gram evaluation + constraint check
//	       ↓
//	  [srg] accept, reject or backtrack
//	       ↓
//	  [report] document / text / tables, [render] DOT, SVG, PNG, PDF
//
// # Quick Start
//
//	spec := srg.Spec{N: 10, K: 3, Lambda: 0, Mu: 1}
//	res, err := srg.Solve(ctx, spec, nil, srg.Options{Seed: 42})
//	if err != nil {
//	    return err
//	}
//	report.Render(os.Stdout, report.NewDocument(res))
//
// # Main Packages
//
// [srg] - The search itself: row generation, Gram matrix evaluation,
// constraint checking, the search driver and its backtrack policy.
//
// [report] - JSON result documents, plain text reports and terminal tables.
//
// [render] - Graph drawings through Graphviz, with PDF conversion.
//
// [store] - Result storage keyed by the search inputs. A file backend for the
// CLI and Redis and MongoDB backends for shared deployments.
//
// [config] - TOML configuration and the preset catalog.
//
// [api] - HTTP handlers for solving, checking and fetching results.
//
// [errors] - Error codes shared by the CLI and the API.
//
// # Testing
//
//	go test ./...                         # Unit tests
//	go test -tags integration ./pkg/...   # Redis and MongoDB backends
//
// [srg]: https://pkg.go.dev/github.com/matzehuels/srgsearch/pkg/srg
// [report]: https://pkg.go.dev/github.com/matzehuels/srgsearch/pkg/report
// [render]: https://pkg.go.dev/github.com/matzehuels/srgsearch/pkg/render
// [store]: https://pkg.go.dev/github.com/matzehuels/srgsearch/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/srgsearch/pkg/config
// [api]: https://pkg.go.dev/github.com/matzehuels/srgsearch/pkg/api
// [errors]: https://pkg.go.dev/github.com/matzehuels/srgsearch/pkg/errors
package pkg
