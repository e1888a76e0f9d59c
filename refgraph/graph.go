// Package refgraph is a concrete, mutable Graph/Recurrent builder: a
// reference implementation of the fabricator package's capability
// contract, meant for callers assembling a graph by hand (tests, the
// fabricate command) rather than decoding one from some other source.
package refgraph

import (
	"sync"

	"github.com/nodeloom/fabricator"
)

type node struct {
	id  int
	act fabricator.ActivationFunc
}

func (n *node) ID() int                          { return n.id }
func (n *node) Activation() fabricator.ActivationFunc { return n.act }

type edge struct {
	start, end int
	weight     float64
}

func (e *edge) Start() int      { return e.start }
func (e *edge) End() int        { return e.end }
func (e *edge) Weight() float64 { return e.weight }

// Graph is a directed, weighted computation graph under construction. All
// mutations are protected by an internal mutex, so a Graph can be built
// concurrently and then handed to the fabricator once assembly finishes.
type Graph struct {
	mu sync.RWMutex

	inputs  []*node
	hidden  []*node
	outputs []*node

	edges          []*edge
	recurrentEdges []*edge
}

// New returns an empty Graph ready for AddInput/AddHidden/AddOutput and
// AddEdge/AddRecurrentEdge calls.
func New() *Graph {
	return &Graph{}
}

// AddInput declares an input node with the given id and activation.
func (g *Graph) AddInput(id int, act fabricator.ActivationFunc) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inputs = append(g.inputs, &node{id, act})
}

// AddHidden declares a hidden node with the given id and activation.
func (g *Graph) AddHidden(id int, act fabricator.ActivationFunc) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.hidden = append(g.hidden, &node{id, act})
}

// AddOutput declares an output node with the given id and activation.
// Evaluators return output values in ascending id order, not in the order
// outputs are added in.
func (g *Graph) AddOutput(id int, act fabricator.ActivationFunc) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.outputs = append(g.outputs, &node{id, act})
}

// AddEdge declares an ordinary, same-step edge. Adding a second edge with
// the same (start, end) pair records it alongside the first, so Edges()
// returns both; BuildSchedule sums their weights when it compiles the graph.
func (g *Graph) AddEdge(start, end int, weight float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.edges = append(g.edges, &edge{start, end, weight})
}

// AddRecurrentEdge declares an edge consumed one evaluation step later: its
// start node's present value becomes available at its end node on the
// following call to a recurrent evaluator's Evaluate.
func (g *Graph) AddRecurrentEdge(start, end int, weight float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.recurrentEdges = append(g.recurrentEdges, &edge{start, end, weight})
}

// Inputs implements fabricator.Graph.
func (g *Graph) Inputs() []fabricator.Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return toNodes(g.inputs)
}

// Hidden implements fabricator.Graph.
func (g *Graph) Hidden() []fabricator.Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return toNodes(g.hidden)
}

// Outputs implements fabricator.Graph.
func (g *Graph) Outputs() []fabricator.Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return toNodes(g.outputs)
}

// Edges implements fabricator.Graph.
func (g *Graph) Edges() []fabricator.Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return toEdges(g.edges)
}

// RecurrentEdges implements fabricator.Recurrent.
func (g *Graph) RecurrentEdges() []fabricator.Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return toEdges(g.recurrentEdges)
}

func toNodes(ns []*node) []fabricator.Node {
	out := make([]fabricator.Node, len(ns))
	for i, n := range ns {
		out[i] = n
	}
	return out
}

func toEdges(es []*edge) []fabricator.Edge {
	out := make([]fabricator.Edge, len(es))
	for i, e := range es {
		out[i] = e
	}
	return out
}
