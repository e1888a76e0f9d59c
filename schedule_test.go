package fabricator_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/nodeloom/fabricator"
	"github.com/nodeloom/fabricator/refgraph"
)

// ScheduleSuite covers seven of spec.md §8's eight concrete end-to-end
// scenarios (scenario 5, the recurrent one, lives in RecurrentSuite) plus
// the duplicate-edge and zero-weight-edge cases original_source's own test
// module adds on top of them.
type ScheduleSuite struct {
	suite.Suite
}

func evaluate(t *testing.T, g *refgraph.Graph, input []float64) []float64 {
	t.Helper()
	ev, err := evaluatorFor(g)
	require.NoError(t, err)
	out, err := ev.Evaluate(input)
	require.NoError(t, err)
	return out
}

// scenario 1: 1 in, 1 out; 0 --0.5--> 1; input [5.0] -> [2.5]
func (s *ScheduleSuite) TestScenario1SingleEdge() {
	g := refgraph.New()
	g.AddInput(0, fabricator.Identity)
	g.AddOutput(1, fabricator.Identity)
	g.AddEdge(0, 1, 0.5)

	out := evaluate(s.T(), g, []float64{5.0})
	require.InDelta(s.T(), 2.5, out[0], 1e-9)
}

// scenario 2: 2 in, 1 out; 0--0.5-->2, 1--0.5-->2; input [5,5] -> [5.0]
func (s *ScheduleSuite) TestScenario2TwoInputsOneOutput() {
	g := refgraph.New()
	g.AddInput(0, fabricator.Identity)
	g.AddInput(1, fabricator.Identity)
	g.AddOutput(2, fabricator.Identity)
	g.AddEdge(0, 2, 0.5)
	g.AddEdge(1, 2, 0.5)

	out := evaluate(s.T(), g, []float64{5.0, 5.0})
	require.InDelta(s.T(), 5.0, out[0], 1e-9)
}

// scenario 3: 1 in, 1 out, 1 hidden; 0--0.5-->1, 1--0.5-->2; input [5.0] -> [1.25]
func (s *ScheduleSuite) TestScenario3OneHidden() {
	g := refgraph.New()
	g.AddInput(0, fabricator.Identity)
	g.AddHidden(1, fabricator.Identity)
	g.AddOutput(2, fabricator.Identity)
	g.AddEdge(0, 1, 0.5)
	g.AddEdge(1, 2, 0.5)

	out := evaluate(s.T(), g, []float64{5.0})
	require.InDelta(s.T(), 1.25, out[0], 1e-9)
}

// scenario 4: 1 in, 2 out, 1 hidden; input [5.0] -> [3.75, 2.5]
func (s *ScheduleSuite) TestScenario4TwoOutputsCarry() {
	g := refgraph.New()
	g.AddInput(0, fabricator.Identity)
	g.AddHidden(1, fabricator.Identity)
	g.AddOutput(2, fabricator.Identity)
	g.AddOutput(3, fabricator.Identity)
	g.AddEdge(0, 1, 0.5)
	g.AddEdge(1, 2, 0.5)
	g.AddEdge(0, 3, 0.5)
	g.AddEdge(0, 2, 0.5)

	out := evaluate(s.T(), g, []float64{5.0})
	require.InDelta(s.T(), 3.75, out[0], 1e-9)
	require.InDelta(s.T(), 2.5, out[1], 1e-9)
}

// scenario 6: empty edge set fails with ErrEmpty.
func (s *ScheduleSuite) TestScenario6EmptyGraph() {
	g := refgraph.New()
	g.AddInput(0, fabricator.Identity)
	g.AddOutput(1, fabricator.Identity)

	_, err := fabricator.BuildSchedule(g)
	require.ErrorIs(s.T(), err, fabricator.ErrEmpty)
	require.Equal(s.T(), "no edges present, net invalid", err.Error())
}

// scenario 7: output node 2 unreachable (only 0--0.5-->1 declared; node 1 is
// hidden and node 2 has no incoming edge at all).
func (s *ScheduleSuite) TestScenario7UnreachableOutput() {
	g := refgraph.New()
	g.AddInput(0, fabricator.Identity)
	g.AddHidden(1, fabricator.Identity)
	g.AddOutput(2, fabricator.Identity)
	g.AddEdge(0, 1, 0.5)

	_, err := fabricator.BuildSchedule(g)
	require.ErrorIs(s.T(), err, fabricator.ErrUnreachableOutput)
	require.Equal(s.T(), "dependencies resolved but not all outputs computable, net invalid", err.Error())
}

// scenario 8: node 2 depends on node 1, but nothing produces node 1.
func (s *ScheduleSuite) TestScenario8UnresolvableDependency() {
	g := refgraph.New()
	g.AddInput(0, fabricator.Identity)
	g.AddHidden(1, fabricator.Identity)
	g.AddOutput(2, fabricator.Identity)
	g.AddEdge(1, 2, 0.5)

	_, err := fabricator.BuildSchedule(g)
	require.ErrorIs(s.T(), err, fabricator.ErrUnresolvable)
	require.Equal(s.T(), "can't resolve dependencies, net invalid", err.Error())
}

// Zero-weight edges still create a dependency and are scheduled, distinct
// from having no edge at all.
func (s *ScheduleSuite) TestZeroWeightEdgeStillSchedules() {
	g := refgraph.New()
	g.AddInput(0, fabricator.Identity)
	g.AddInput(1, fabricator.Identity)
	g.AddOutput(2, fabricator.Identity)
	g.AddEdge(0, 2, 0.5)
	g.AddEdge(1, 2, 0.0)

	out := evaluate(s.T(), g, []float64{5.0, 5.0})
	require.InDelta(s.T(), 2.5, out[0], 1e-9)
}

// Duplicate (start,end) edges sum their weights rather than the second
// silently overwriting the first.
func (s *ScheduleSuite) TestDuplicateEdgesSumWeights() {
	g := refgraph.New()
	g.AddInput(0, fabricator.Identity)
	g.AddOutput(1, fabricator.Identity)
	g.AddEdge(0, 1, 0.2)
	g.AddEdge(0, 1, 0.3)

	out := evaluate(s.T(), g, []float64{10.0})
	require.InDelta(s.T(), 5.0, out[0], 1e-9) // 10*(0.2+0.3), not 10*0.3
}

// Scheduler determinism: the compiled output order follows sorted-ascending
// output ids, not declaration order.
func (s *ScheduleSuite) TestOutputOrderIsSortedById() {
	g := refgraph.New()
	g.AddInput(0, fabricator.Identity)
	g.AddOutput(5, fabricator.Identity)
	g.AddOutput(2, fabricator.Identity)
	g.AddEdge(0, 5, 1.0)
	g.AddEdge(0, 2, 2.0)

	out := evaluate(s.T(), g, []float64{1.0})
	require.Len(s.T(), out, 2)
	require.InDelta(s.T(), 2.0, out[0], 1e-9) // node 2 first: sorted ascending
	require.InDelta(s.T(), 1.0, out[1], 1e-9) // node 5 second
}

func TestScheduleSuite(t *testing.T) {
	suite.Run(t, new(ScheduleSuite))
}
