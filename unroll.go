package fabricator

import "sort"

// simpleNode, simpleEdge and simpleGraph are the minimal concrete
// implementations of Node, Edge and Graph that Unroll builds its result
// from. They exist only to satisfy the capability contract; callers that
// want a richer, mutable construction API should look at the refgraph
// package instead.
type simpleNode struct {
	id  int
	act ActivationFunc
}

func (n *simpleNode) ID() int                    { return n.id }
func (n *simpleNode) Activation() ActivationFunc { return n.act }

type simpleEdge struct {
	start, end int
	weight     float64
}

func (e *simpleEdge) Start() int      { return e.start }
func (e *simpleEdge) End() int        { return e.end }
func (e *simpleEdge) Weight() float64 { return e.weight }

type simpleGraph struct {
	inputs, hidden, outputs []Node
	edges                   []Edge
}

func (g *simpleGraph) Inputs() []Node  { return g.inputs }
func (g *simpleGraph) Hidden() []Node  { return g.hidden }
func (g *simpleGraph) Outputs() []Node { return g.outputs }
func (g *simpleGraph) Edges() []Edge   { return g.edges }

// freshIDSource returns the first integers not already present in used,
// one at a time, marking each as used as it is handed out. This is the
// "compute the set of ids the graph uses, then generate fresh ids as the
// first integers not in that set" re-architecture: no artificial cap on
// the id range, unlike reserving the upper half of usize.
func freshIDSource(used map[int]bool) func() int {
	next := 0
	return func() int {
		for used[next] {
			next++
		}
		id := next
		used[id] = true
		next++
		return id
	}
}

// Unroll eliminates a Recurrent graph's temporal edges by encoding memory
// as extra input/output nodes on a new feedforward Graph.
//
// Original input nodes are re-assigned the lowest fresh ids (sorted
// ascending by their original id), then original output nodes get the next
// lowest fresh ids (same sort), then every original output gets a wrapper
// input node appended to the result's inputs — even outputs no recurrent
// edge reads from, so a recurrent evaluator can uniformly carry all outputs
// as state. Finally, each recurrent edge (u, w, v) gets u a wrapper
// input/output pair (first time u is seen as a recurrent source, unless u is
// an output, which reuses its existing wrapper input) plus an ordinary edge
// (wrapper_input_of_u, w, v) into the new graph. Hidden nodes keep their
// original ids untouched.
//
// The result satisfies len(result.Inputs())-len(g.Inputs()) ==
// len(result.Outputs()); every wrapper input doubles as next step's memory
// slot, one per original output plus one per distinct recurrent source that
// is not itself an output, so
// the input-side delta already equals the full unrolled output count. The
// recurrent fabricator uses that count directly as its state vector size.
func Unroll(g Recurrent) Graph {
	used := map[int]bool{}
	for _, n := range AllNodes(g) {
		used[n.ID()] = true
	}
	freshID := freshIDSource(used)

	edges := make([]*simpleEdge, 0, len(g.Edges()))
	for _, e := range g.Edges() {
		edges = append(edges, &simpleEdge{e.Start(), e.End(), e.Weight()})
	}
	recurrentEdges := make([]*simpleEdge, 0, len(g.RecurrentEdges()))
	for _, e := range g.RecurrentEdges() {
		recurrentEdges = append(recurrentEdges, &simpleEdge{e.Start(), e.End(), e.Weight()})
	}

	patch := func(oldID, newID int) {
		for _, e := range edges {
			if e.start == oldID {
				e.start = newID
			}
			if e.end == oldID {
				e.end = newID
			}
		}
		for _, e := range recurrentEdges {
			if e.start == oldID {
				e.start = newID
			}
			if e.end == oldID {
				e.end = newID
			}
		}
	}

	sortedInputs := append([]Node{}, g.Inputs()...)
	sort.Slice(sortedInputs, func(i, j int) bool { return sortedInputs[i].ID() < sortedInputs[j].ID() })
	newInputs := make([]*simpleNode, 0, len(sortedInputs))
	for _, n := range sortedInputs {
		newID := freshID()
		patch(n.ID(), newID)
		newInputs = append(newInputs, &simpleNode{newID, n.Activation()})
	}

	sortedOutputs := append([]Node{}, g.Outputs()...)
	sort.Slice(sortedOutputs, func(i, j int) bool { return sortedOutputs[i].ID() < sortedOutputs[j].ID() })
	newOutputs := make([]*simpleNode, 0, len(sortedOutputs))
	for _, n := range sortedOutputs {
		newID := freshID()
		patch(n.ID(), newID)
		newOutputs = append(newOutputs, &simpleNode{newID, n.Activation()})
	}

	// wrapper input for every output, regardless of whether any recurrent
	// edge reads from it
	unrollMap := map[int]int{} // new-id of a recurrent source -> its wrapper input id
	for _, out := range newOutputs {
		wrapperInputID := freshID()
		newInputs = append(newInputs, &simpleNode{wrapperInputID, Identity})
		unrollMap[out.id] = wrapperInputID
	}

	for _, re := range recurrentEdges {
		wrapperInputID, seen := unrollMap[re.start]
		if !seen {
			wrapperInputID = freshID()
			wrapperOutputID := freshID()
			newInputs = append(newInputs, &simpleNode{wrapperInputID, Identity})
			newOutputs = append(newOutputs, &simpleNode{wrapperOutputID, Identity})
			// carries the present value of the recurrent source into next
			// step's memory
			edges = append(edges, &simpleEdge{re.start, wrapperOutputID, 1.0})
			unrollMap[re.start] = wrapperInputID
		}
		edges = append(edges, &simpleEdge{wrapperInputID, re.end, re.weight})
	}

	hidden := make([]Node, len(g.Hidden()))
	copy(hidden, g.Hidden())

	inputs := make([]Node, len(newInputs))
	for i, n := range newInputs {
		inputs[i] = n
	}
	outputs := make([]Node, len(newOutputs))
	for i, n := range newOutputs {
		outputs[i] = n
	}
	allEdges := make([]Edge, len(edges))
	for i, e := range edges {
		allEdges[i] = e
	}

	return &simpleGraph{inputs: inputs, hidden: hidden, outputs: outputs, edges: allEdges}
}
