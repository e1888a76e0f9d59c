package fabricator

// ActivationFunc is a scalar activation function: total on reals, pure.
type ActivationFunc func(x float64) float64

// Node is the capability a graph node must expose to the fabricator: a
// stable identity and the activation applied to it during evaluation.
// Node ids are integers but need not be dense or zero-based; identity is
// unique within one graph.
type Node interface {
	ID() int
	Activation() ActivationFunc
}

// Edge is a directed, weighted connection between two node ids. Both ids
// must reference nodes declared by the enclosing Graph.
type Edge interface {
	Start() int
	End() int
	Weight() float64
}

// Graph is the capability contract the fabricator consumes. It is borrowed
// for the duration of a fabrication call and never mutated or retained.
// Implementations partition their nodes into three disjoint, ordered
// sequences whose union is the full node set. The evaluator's results come
// back in ascending output-id order, whatever order Outputs lists them in.
type Graph interface {
	Inputs() []Node
	Hidden() []Node
	Outputs() []Node
	Edges() []Edge
}

// Recurrent extends Graph with a second edge set consumed one evaluation
// step later than Edges. Cycles formed purely from RecurrentEdges are legal
// — that is precisely what Unroll exists to handle — but cycles formed from
// Edges alone are rejected by BuildSchedule as ErrUnresolvable.
type Recurrent interface {
	Graph
	RecurrentEdges() []Edge
}

// AllNodes returns a Graph's inputs, hidden nodes and outputs concatenated
// in that order.
func AllNodes(g Graph) []Node {
	nodes := make([]Node, 0, len(g.Inputs())+len(g.Hidden())+len(g.Outputs()))
	nodes = append(nodes, g.Inputs()...)
	nodes = append(nodes, g.Hidden()...)
	nodes = append(nodes, g.Outputs()...)
	return nodes
}
