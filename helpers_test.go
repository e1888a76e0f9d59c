package fabricator_test

import (
	"github.com/nodeloom/fabricator/nn"
	"github.com/nodeloom/fabricator/refgraph"
)

// evaluatorFor compiles g with the dense feedforward backend. Sparse-vs-dense
// parity is covered separately in nn's own test suite.
func evaluatorFor(g *refgraph.Graph) (nn.Evaluator, error) {
	return nn.FabricateFeedForward(g)
}
