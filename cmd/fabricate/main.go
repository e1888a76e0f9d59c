// Command fabricate loads a graph description from an INI file, compiles
// it, evaluates it once against an input vector (or repeatedly, for a
// recurrent graph), and prints the result.
package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/nodeloom/fabricator/internal/obslog"
	"github.com/nodeloom/fabricator/nn"
	"github.com/nodeloom/fabricator/refgraph"
)

func main() {
	graphPath := flag.String("graph", "", "path to the INI graph description")
	inputSpec := flag.String("input", "", "comma-separated input vector, e.g. 1.0,2.0,3.0")
	recurrent := flag.Bool("recurrent", false, "treat the graph as recurrent (uses the [recurrent] section)")
	sparse := flag.Bool("sparse", false, "use the sparse evaluator backend instead of the dense one")
	steps := flag.Int("steps", 1, "for a recurrent graph, evaluate this many steps feeding the same input each time")
	flag.Parse()

	logger := obslog.New(obslog.DefaultConfig())

	if *graphPath == "" {
		log.Fatal("fabricate: -graph is required")
	}
	input, err := parseInput(*inputSpec)
	if err != nil {
		log.Fatalf("fabricate: %v", err)
	}

	g, err := loadGraph(*graphPath)
	if err != nil {
		logger.WithGraphSource(*graphPath).WithError(err).Warn("failed to load graph description")
		log.Fatalf("fabricate: %v", err)
	}

	if *recurrent {
		runRecurrent(g, input, *steps, *sparse, logger)
	} else {
		runFeedForward(g, input, *sparse, logger)
	}
}

func runFeedForward(g *refgraph.Graph, input []float64, sparse bool, logger *obslog.Logger) {
	var (
		evaluator nn.Evaluator
		err       error
	)
	if sparse {
		evaluator, err = nn.FabricateFeedForwardSparse(g)
	} else {
		evaluator, err = nn.FabricateFeedForward(g)
	}
	if err != nil {
		logger.WithError(err).Warn("fabrication failed")
		log.Fatalf("fabricate: %v", err)
	}

	output, err := evaluator.Evaluate(input)
	if err != nil {
		log.Fatalf("fabricate: %v", err)
	}
	printOutput("output", output)
}

func runRecurrent(g *refgraph.Graph, input []float64, steps int, sparse bool, logger *obslog.Logger) {
	var (
		evaluator *nn.RecurrentEvaluator
		err       error
	)
	if sparse {
		evaluator, err = nn.FabricateRecurrentSparse(g)
	} else {
		evaluator, err = nn.FabricateRecurrent(g)
	}
	if err != nil {
		logger.WithError(err).Warn("fabrication failed")
		log.Fatalf("fabricate: %v", err)
	}

	for step := 0; step < steps; step++ {
		output, err := evaluator.Evaluate(input)
		if err != nil {
			log.Fatalf("fabricate: step %d: %v", step, err)
		}
		printOutput(fmt.Sprintf("step %d", step), output)
	}
}

func parseInput(spec string) ([]float64, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, fmt.Errorf("-input is required")
	}
	parts := strings.Split(spec, ",")
	values := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad input value %q: %w", p, err)
		}
		values[i] = v
	}
	return values, nil
}

func printOutput(label string, output []float64) {
	formatted := make([]string, len(output))
	for i, v := range output {
		formatted[i] = strconv.FormatFloat(v, 'f', 4, 64)
	}
	fmt.Printf("%s: [%s]\n", label, strings.Join(formatted, ", "))
}
