package nn

import "github.com/nodeloom/fabricator"

// sparseEntry is one nonzero weight in a stage's weight matrix, stored
// against the row (source slot) it belongs to — a row-grouped triplet list,
// the same shape as a CSR matrix without the offset array. gonum's mat
// package has no sparse matrix type, and nothing else in reach fits a
// strictly two-dimensional, row-major-access weight matrix any better, so
// this is hand-rolled rather than borrowed.
type sparseEntry struct {
	col    int
	weight float64
}

type sparseStage struct {
	rows        [][]sparseEntry
	outputWidth int
	activations []fabricator.ActivationFunc
}

// SparseFeedForwardEvaluator evaluates a Schedule by walking only the
// nonzero entries of each stage, skipping the structural zeros that a
// mostly-disconnected graph's dense matrix would otherwise carry. Worth
// choosing over FeedForwardEvaluator once a graph's edges are sparse enough
// that the dense matrix is mostly padding.
type SparseFeedForwardEvaluator struct {
	stages      []sparseStage
	inputCount  int
	outputCount int
}

func newSparseFeedForwardEvaluator(schedule *fabricator.Schedule) *SparseFeedForwardEvaluator {
	stages := make([]sparseStage, len(schedule.Stages))
	for i, stage := range schedule.Stages {
		rows := make([][]sparseEntry, stage.InputWidth())
		for c, col := range stage.Columns {
			for r, w := range col {
				if w == 0 {
					continue
				}
				rows[r] = append(rows[r], sparseEntry{col: c, weight: w})
			}
		}
		stages[i] = sparseStage{
			rows:        rows,
			outputWidth: stage.OutputWidth(),
			activations: stage.Activations,
		}
	}
	return &SparseFeedForwardEvaluator{
		stages:      stages,
		inputCount:  schedule.InputCount,
		outputCount: schedule.OutputCount,
	}
}

// FabricateFeedForwardSparse compiles g into a sparse evaluator.
func FabricateFeedForwardSparse(g fabricator.Graph) (*SparseFeedForwardEvaluator, error) {
	schedule, err := fabricator.BuildSchedule(g)
	if err != nil {
		return nil, err
	}
	return newSparseFeedForwardEvaluator(schedule), nil
}

func (e *SparseFeedForwardEvaluator) InputCount() int  { return e.inputCount }
func (e *SparseFeedForwardEvaluator) OutputCount() int { return e.outputCount }

func (e *SparseFeedForwardEvaluator) Evaluate(input []float64) ([]float64, error) {
	if len(input) != e.inputCount {
		return nil, inputLengthError(e.inputCount, len(input))
	}
	state := append([]float64{}, input...)
	for _, stage := range e.stages {
		next := make([]float64, stage.outputWidth)
		for r, entries := range stage.rows {
			v := state[r]
			if v == 0 {
				continue
			}
			for _, entry := range entries {
				next[entry.col] += v * entry.weight
			}
		}
		for i, act := range stage.activations {
			next[i] = act(next[i])
		}
		state = next
	}
	return state, nil
}
