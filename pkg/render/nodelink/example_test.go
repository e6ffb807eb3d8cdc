package nodelink_test

import (
	"fmt"

	"github.com/matzehuels/srgsearch/pkg/render/nodelink"
	"github.com/matzehuels/srgsearch/pkg/srg"
)

func ExampleToDOT() {
	// K3,3 as found from the seed row [0 1 0 0 1 1].
	rows := srg.RowSet{
		{0, 1, 0, 0, 1, 1},
		{1, 0, 1, 1, 0, 0},
		{0, 1, 0, 0, 1, 1},
		{0, 1, 0, 0, 1, 1},
		{1, 0, 1, 1, 0, 0},
		{1, 0, 1, 1, 0, 0},
	}
	fmt.Print(nodelink.ToDOT(rows, nodelink.Options{}))
	// Output:
	// graph G {
	//   layout=circo;
	//   bgcolor="transparent";
	//   node [shape=circle, style=filled, fillcolor=white, fontsize=14, width=0.45, fixedsize=true];
	//   edge [color="#4a4a4a"];
	//
	//   v0;
	//   v1;
	//   v2;
	//   v3;
	//   v4;
	//   v5;
	//
	//   v0 -- v1;
	//   v0 -- v4;
	//   v0 -- v5;
	//   v1 -- v2;
	//   v1 -- v3;
	//   v2 -- v4;
	//   v2 -- v5;
	//   v3 -- v4;
	//   v3 -- v5;
	// }
}
