package fabricator

import (
	"math"
	"sort"
)

// Column is one produced or carried signal for a Stage: a weight per
// available slot of the previous stage (or, for the first stage, per
// declared input).
type Column []float64

// Stage is one (matrix, activation vector) pair. Columns has one entry per
// produced signal; every Column has the same length, the stage's input
// width. Activations has one entry per Column.
type Stage struct {
	Columns     []Column
	Activations []ActivationFunc
}

// InputWidth returns the stage's k_in: the length shared by every Column.
// A stage with no columns has width zero.
func (s Stage) InputWidth() int {
	if len(s.Columns) == 0 {
		return 0
	}
	return len(s.Columns[0])
}

// OutputWidth returns the stage's k_out: the number of Columns.
func (s Stage) OutputWidth() int { return len(s.Columns) }

// Schedule is the fabricator's compiled, schedule-ready intermediate form:
// an ordered sequence of Stages. Stage i's OutputWidth equals stage i+1's
// InputWidth; the final stage's OutputWidth equals OutputCount, with column
// i holding the output node with the i-th smallest id.
type Schedule struct {
	Stages      []Stage
	InputCount  int
	OutputCount int
}

func idsOf(nodes []Node) []int {
	ids := make([]int, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID()
	}
	return ids
}

// BuildSchedule stages a feedforward Graph into an ordered sequence of
// (matrix, activation) Stages.
//
// Available node ids start as the declared inputs, sorted ascending —
// positional slot i corresponds to the i-th smallest input id, not the
// i-th declared input. Each round finds every node whose dependencies are
// all currently available, computes its column, and advances it to
// next-available; any node only partially satisfied has its satisfied-but-
// stale dependencies explicitly carried forward (an identity one-hot
// column) so positional correspondence survives into the next round, and
// any already-available wanted (output) node not freshly produced this
// round is carried too. A round that frees no dependency is a stuck graph:
// either a required input is never declared, or edges presented as
// ordinary form a cycle. Duplicate (start,end) ordinary edges have their
// weights summed rather than the last one silently winning.
func BuildSchedule(g Graph) (*Schedule, error) {
	depsByEnd := map[int]map[int]float64{}
	for _, e := range g.Edges() {
		bucket, ok := depsByEnd[e.End()]
		if !ok {
			bucket = map[int]float64{}
			depsByEnd[e.End()] = bucket
		}
		bucket[e.Start()] += e.Weight()
	}
	if len(depsByEnd) == 0 {
		return nil, ErrEmpty
	}

	activationByID := map[int]ActivationFunc{}
	for _, n := range AllNodes(g) {
		activationByID[n.ID()] = n.Activation()
	}

	available := idsOf(g.Inputs())
	sort.Ints(available)

	wanted := idsOf(g.Outputs())
	sort.Ints(wanted)

	var stages []Stage

	for len(depsByEnd) > 0 {
		before := len(depsByEnd)

		availIndex := make(map[int]int, len(available))
		for i, id := range available {
			availIndex[id] = i
		}

		dependents := make([]int, 0, len(depsByEnd))
		for d := range depsByEnd {
			dependents = append(dependents, d)
		}
		sort.Ints(dependents)

		var columns []Column
		var activations []ActivationFunc
		var nextAvailable []int
		nextSet := map[int]bool{}

		type stalled struct {
			vec Column
		}
		var stalledNodes []stalled

		for _, d := range dependents {
			deps := depsByEnd[d]
			vec := make(Column, len(available))
			for i := range vec {
				vec[i] = math.NaN()
			}
			computable := true
			for start, weight := range deps {
				if idx, ok := availIndex[start]; ok {
					vec[idx] = weight
				} else {
					computable = false
				}
			}
			if !computable {
				stalledNodes = append(stalledNodes, stalled{vec})
				continue
			}
			for i, v := range vec {
				if math.IsNaN(v) {
					vec[i] = 0.0
				}
			}
			columns = append(columns, vec)
			act, ok := activationByID[d]
			if !ok {
				act = Identity
			}
			activations = append(activations, act)
			nextAvailable = append(nextAvailable, d)
			nextSet[d] = true
		}

		for _, s := range stalledNodes {
			for i, w := range s.vec {
				if math.IsNaN(w) {
					continue
				}
				sourceID := available[i]
				if nextSet[sourceID] {
					continue
				}
				carry := make(Column, len(available))
				carry[i] = 1.0
				columns = append(columns, carry)
				activations = append(activations, Identity)
				nextAvailable = append(nextAvailable, sourceID)
				nextSet[sourceID] = true
			}
		}

		for _, w := range wanted {
			idx, ok := availIndex[w]
			if !ok || nextSet[w] {
				continue
			}
			carry := make(Column, len(available))
			carry[idx] = 1.0
			columns = append(columns, carry)
			activations = append(activations, Identity)
			nextAvailable = append(nextAvailable, w)
			nextSet[w] = true
		}

		for _, id := range nextAvailable {
			delete(depsByEnd, id)
		}

		if len(depsByEnd) == before {
			return nil, ErrUnresolvable
		}

		if len(depsByEnd) == 0 {
			posOf := make(map[int]int, len(nextAvailable))
			for i, id := range nextAvailable {
				posOf[id] = i
			}
			reorderedColumns := make([]Column, len(wanted))
			reorderedActivations := make([]ActivationFunc, len(wanted))
			matched := 0
			for i, w := range wanted {
				if pos, ok := posOf[w]; ok {
					reorderedColumns[i] = columns[pos]
					reorderedActivations[i] = activations[pos]
					matched++
				}
			}
			if matched < len(wanted) {
				return nil, ErrUnreachableOutput
			}
			columns = reorderedColumns
			activations = reorderedActivations
		}

		stages = append(stages, Stage{Columns: columns, Activations: activations})
		available = nextAvailable
	}

	return &Schedule{
		Stages:      stages,
		InputCount:  len(g.Inputs()),
		OutputCount: len(wanted),
	}, nil
}
