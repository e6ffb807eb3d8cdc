// Package report formats search results for people and for other programs.
//
// # Result Documents
//
// A [Document] is the JSON form of a search result, used by `srgsearch
// solve --json`, the result store and the HTTP API:
//
//	{
//	  "id": "5f0c6f6e-8a57-4c55-b1c5-2f6a1f8d7c11",
//	  "spec": {"n": 5, "k": 2, "lambda": 0, "mu": 1},
//	  "rows": [[0,1,0,0,1], [1,0,1,0,0], ...],
//	  "gram": [[2,0,1,1,0], ...],
//	  "status": "complete",
//	  "elapsed_ms": 3,
//	  "seed": 42,
//	  "stats": {"iterations": 112, "accepted": 4, ...},
//	  "created_at": "2026-10-19T12:00:00Z"
//	}
//
// # Row Files
//
// [ReadRows] accepts a result document, a bare JSON matrix, or plain text
// with one row per line ("0 1 0 0 1" or "01001"). Blank lines and lines
// starting with # are ignored, so a text report can be read back.
//
// # Text Reports
//
// [WriteText] writes the plain text report (rows, Gram matrix, run time);
// [Render] draws the same information as labeled lipgloss tables for the
// terminal.
package report
