package nn

import (
	"github.com/nodeloom/fabricator"
	"gonum.org/v1/gonum/mat"
)

// FeedForwardEvaluator evaluates a Schedule with gonum dense matrices, one
// per stage. It is the right choice whenever the graph is not sparse enough
// to make the matrix-building overhead of SparseFeedForwardEvaluator pay
// for itself.
type FeedForwardEvaluator struct {
	stages      []denseStage
	inputCount  int
	outputCount int
}

type denseStage struct {
	weights     *mat.Dense
	activations []fabricator.ActivationFunc
}

func newFeedForwardEvaluator(schedule *fabricator.Schedule) *FeedForwardEvaluator {
	stages := make([]denseStage, len(schedule.Stages))
	for i, stage := range schedule.Stages {
		kIn, kOut := stage.InputWidth(), stage.OutputWidth()
		data := make([]float64, kIn*kOut)
		for c, col := range stage.Columns {
			for r, w := range col {
				data[r*kOut+c] = w
			}
		}
		stages[i] = denseStage{
			weights:     mat.NewDense(kIn, kOut, data),
			activations: stage.Activations,
		}
	}
	return &FeedForwardEvaluator{
		stages:      stages,
		inputCount:  schedule.InputCount,
		outputCount: schedule.OutputCount,
	}
}

// FabricateFeedForward compiles g into a dense evaluator.
func FabricateFeedForward(g fabricator.Graph) (*FeedForwardEvaluator, error) {
	schedule, err := fabricator.BuildSchedule(g)
	if err != nil {
		return nil, err
	}
	return newFeedForwardEvaluator(schedule), nil
}

func (e *FeedForwardEvaluator) InputCount() int  { return e.inputCount }
func (e *FeedForwardEvaluator) OutputCount() int { return e.outputCount }

// Evaluate runs one forward pass. The returned slice is owned by the
// caller; successive calls never alias a previously returned slice.
func (e *FeedForwardEvaluator) Evaluate(input []float64) ([]float64, error) {
	if len(input) != e.inputCount {
		return nil, inputLengthError(e.inputCount, len(input))
	}
	if len(e.stages) == 0 {
		return append([]float64{}, input...), nil
	}

	row := append([]float64{}, input...)
	state := mat.NewDense(1, len(row), row)
	for _, stage := range e.stages {
		var next mat.Dense
		next.Mul(state, stage.weights)
		raw := next.RawRowView(0)
		for i, act := range stage.activations {
			raw[i] = act(raw[i])
		}
		state = mat.NewDense(1, len(raw), append([]float64{}, raw...))
	}
	return append([]float64{}, state.RawRowView(0)...), nil
}
