package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nodeloom/fabricator"
	"github.com/nodeloom/fabricator/refgraph"
	"gopkg.in/ini.v1"
)

// loadGraph reads a graph description from an INI file and builds a
// refgraph.Graph from it. The expected layout:
//
//	[inputs]
//	0 = identity
//	1 = identity
//
//	[hidden]
//	4 = sigmoid
//
//	[outputs]
//	2 = identity
//	3 = identity
//
//	[edges]
//	; start,end,weight
//	e1 = 0,2,1.0
//	e2 = 1,3,1.0
//
//	[recurrent]
//	r1 = 0,2,1.0
//
// Node keys are parsed as integer ids; the section they appear in decides
// their partition. Edge keys are arbitrary and exist only to give ini.v1
// distinct keys within a section — their order is not meaningful, since
// BuildSchedule re-sorts everything by id.
func loadGraph(path string) (*refgraph.Graph, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, path)
	if err != nil {
		return nil, fmt.Errorf("fabricate: failed to load graph file %q: %w", path, err)
	}

	g := refgraph.New()

	if err := loadNodes(cfg, "inputs", g.AddInput); err != nil {
		return nil, err
	}
	if err := loadNodes(cfg, "hidden", g.AddHidden); err != nil {
		return nil, err
	}
	if err := loadNodes(cfg, "outputs", g.AddOutput); err != nil {
		return nil, err
	}
	if err := loadEdges(cfg, "edges", g.AddEdge); err != nil {
		return nil, err
	}
	if err := loadEdges(cfg, "recurrent", g.AddRecurrentEdge); err != nil {
		return nil, err
	}

	return g, nil
}

func loadNodes(cfg *ini.File, section string, add func(id int, act fabricator.ActivationFunc)) error {
	sec, err := cfg.GetSection(section)
	if err != nil {
		return nil // section is optional; hidden and recurrent may be absent
	}
	for _, key := range sec.Keys() {
		id, err := strconv.Atoi(key.Name())
		if err != nil {
			return fmt.Errorf("fabricate: [%s] key %q is not an integer node id: %w", section, key.Name(), err)
		}
		act, err := fabricator.GetActivation(strings.TrimSpace(key.String()))
		if err != nil {
			return fmt.Errorf("fabricate: [%s] node %d: %w", section, id, err)
		}
		add(id, act)
	}
	return nil
}

func loadEdges(cfg *ini.File, section string, add func(start, end int, weight float64)) error {
	sec, err := cfg.GetSection(section)
	if err != nil {
		return nil
	}
	for _, key := range sec.Keys() {
		parts := strings.Split(key.String(), ",")
		if len(parts) != 3 {
			return fmt.Errorf("fabricate: [%s] %s: expected \"start,end,weight\", got %q", section, key.Name(), key.String())
		}
		start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return fmt.Errorf("fabricate: [%s] %s: bad start id: %w", section, key.Name(), err)
		}
		end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return fmt.Errorf("fabricate: [%s] %s: bad end id: %w", section, key.Name(), err)
		}
		weight, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil {
			return fmt.Errorf("fabricate: [%s] %s: bad weight: %w", section, key.Name(), err)
		}
		add(start, end, weight)
	}
	return nil
}
