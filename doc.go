// Package fabricator compiles a declarative directed, weighted computation
// graph — the kind produced by neuroevolution systems such as NEAT, where
// topologies are sparse, irregular and evolved — into an executable
// evaluator. Each node carries a scalar activation function; each edge
// carries a scalar weight. Graphs may contain recurrent edges, in which case
// evaluation is stateful across calls.
//
// The package itself holds the graph capability contract (Graph, Recurrent,
// Node, Edge), the activation function registry, the unroll pass that
// rewrites a recurrent graph into a feedforward one, and the scheduler that
// stages a feedforward graph into an ordered sequence of (matrix, activation)
// stages. Turning a Schedule into something runnable is the job of the
// sibling nn package.
//
// Basic usage:
//
//	net, err := nn.FabricateFeedForward(g)
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, err := net.Evaluate([]float64{1.0, 0.5})
package fabricator
