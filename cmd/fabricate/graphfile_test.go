package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nodeloom/fabricator/nn"
)

func TestLoadGraphRoundTripsThroughFabrication(t *testing.T) {
	content := `
[inputs]
0 = identity
1 = identity

[outputs]
2 = identity

[edges]
e1 = 0,2,0.5
e2 = 1,2,0.5
`
	path := filepath.Join(t.TempDir(), "graph.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	g, err := loadGraph(path)
	require.NoError(t, err)

	ev, err := nn.FabricateFeedForward(g)
	require.NoError(t, err)

	out, err := ev.Evaluate([]float64{5.0, 5.0})
	require.NoError(t, err)
	require.InDelta(t, 5.0, out[0], 1e-9)
}

func TestLoadGraphWithRecurrentSection(t *testing.T) {
	content := `
[inputs]
0 = identity
1 = identity

[outputs]
2 = identity
3 = identity

[edges]
e1 = 0,2,1.0
e2 = 1,3,1.0

[recurrent]
r1 = 0,2,1.0
r2 = 1,3,1.0
`
	path := filepath.Join(t.TempDir(), "recurrent.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	g, err := loadGraph(path)
	require.NoError(t, err)

	ev, err := nn.FabricateRecurrent(g)
	require.NoError(t, err)

	out, err := ev.Evaluate([]float64{5.0, 0.0})
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{5.0, 0.0}, out, 1e-9)
}

func TestParseInputRejectsEmptySpec(t *testing.T) {
	_, err := parseInput("")
	require.Error(t, err)
}

func TestParseInputParsesCommaSeparatedFloats(t *testing.T) {
	values, err := parseInput("1.0, 2.5,-3")
	require.NoError(t, err)
	require.Equal(t, []float64{1.0, 2.5, -3.0}, values)
}
