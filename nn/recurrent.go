package nn

import "github.com/nodeloom/fabricator"

// RecurrentEvaluator wraps a feedforward Evaluator over an unrolled graph
// with a persisted memory vector, so a caller sees an ordinary stateful
// step function instead of the unrolled wrapper nodes underneath.
//
// The memory vector is sized to the unrolled graph's entire output count,
// not merely the delta over the original output count: Unroll gives every
// original output a wrapper input regardless of whether any recurrent edge
// reads from it, so the evaluator can carry the whole output vector forward
// uniformly. Each step's full unrolled output becomes next step's memory;
// only its first OutputCount entries are handed back to the caller.
type RecurrentEvaluator struct {
	inner       Evaluator
	memory      []float64
	outputCount int
}

func newRecurrentEvaluator(inner Evaluator, memorySize, outputCount int) *RecurrentEvaluator {
	return &RecurrentEvaluator{
		inner:       inner,
		memory:      make([]float64, memorySize),
		outputCount: outputCount,
	}
}

func fabricateRecurrentOver(g fabricator.Recurrent, compile func(fabricator.Graph) (Evaluator, error)) (*RecurrentEvaluator, error) {
	unrolled := fabricator.Unroll(g)
	inner, err := compile(unrolled)
	if err != nil {
		return nil, err
	}
	memory := len(unrolled.Outputs())
	if len(unrolled.Inputs())-len(g.Inputs()) != memory {
		panic("fabricator: unroll produced inconsistent input/output delta")
	}
	return newRecurrentEvaluator(inner, memory, len(g.Outputs())), nil
}

// FabricateRecurrent unrolls g and compiles the result with
// FabricateFeedForward.
func FabricateRecurrent(g fabricator.Recurrent) (*RecurrentEvaluator, error) {
	return fabricateRecurrentOver(g, func(unrolled fabricator.Graph) (Evaluator, error) {
		return FabricateFeedForward(unrolled)
	})
}

// FabricateRecurrentSparse unrolls g and compiles the result with
// FabricateFeedForwardSparse.
func FabricateRecurrentSparse(g fabricator.Recurrent) (*RecurrentEvaluator, error) {
	return fabricateRecurrentOver(g, func(unrolled fabricator.Graph) (Evaluator, error) {
		return FabricateFeedForwardSparse(unrolled)
	})
}

func (r *RecurrentEvaluator) InputCount() int  { return r.inner.InputCount() - len(r.memory) }
func (r *RecurrentEvaluator) OutputCount() int { return r.outputCount }

// Evaluate advances the recurrent state by one step.
func (r *RecurrentEvaluator) Evaluate(input []float64) ([]float64, error) {
	want := r.InputCount()
	if len(input) != want {
		return nil, inputLengthError(want, len(input))
	}
	combined := make([]float64, 0, len(input)+len(r.memory))
	combined = append(combined, input...)
	combined = append(combined, r.memory...)

	out, err := r.inner.Evaluate(combined)
	if err != nil {
		return nil, err
	}
	copy(r.memory, out)
	return append([]float64{}, out[:r.outputCount]...), nil
}

// Reset zeroes the persisted memory vector, as if evaluation were starting
// fresh.
func (r *RecurrentEvaluator) Reset() {
	for i := range r.memory {
		r.memory[i] = 0
	}
}
