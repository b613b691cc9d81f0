package engine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/domain"
)

const chainSeparator = " → "

type visitState uint8

const (
	unvisited visitState = iota
	inProgress
	done
)

// dependencyGraph has an edge from every dependency to each task that
// depends on it, the direction work flows.
type dependencyGraph struct {
	nodes  []domain.TaskID
	edges  map[domain.TaskID][]domain.TaskID
	titles map[domain.TaskID]string
}

func buildDependencyGraph(tasks []domain.Task) dependencyGraph {
	g := dependencyGraph{
		nodes:  make([]domain.TaskID, 0, len(tasks)),
		edges:  make(map[domain.TaskID][]domain.TaskID),
		titles: make(map[domain.TaskID]string, len(tasks)),
	}
	for _, task := range tasks {
		if !task.HasCallerID() {
			continue
		}
		if _, known := g.titles[task.ID]; !known {
			g.nodes = append(g.nodes, task.ID)
		}
		g.titles[task.ID] = task.Title
		for _, dep := range task.Dependencies {
			g.edges[dep] = append(g.edges[dep], task.ID)
		}
	}
	return g
}

func (g dependencyGraph) label(id domain.TaskID) string {
	if title, ok := g.titles[id]; ok {
		return fmt.Sprintf("%s (%s)", title, id)
	}
	return string(id)
}

type frame struct {
	node domain.TaskID
	next int
}

// DetectCycles finds every dependency cycle in the batch. Traversal starts
// from each task in input order and never re-enters a fully explored task.
// A cycle is reported once however many of its rotations are reachable.
func DetectCycles(tasks []domain.Task) domain.CycleReport {
	g := buildDependencyGraph(tasks)
	report := domain.CycleReport{
		Chains:      []string{},
		AffectedIDs: []domain.TaskID{},
		Cycles:      [][]domain.TaskID{},
	}

	state := make(map[domain.TaskID]visitState, len(g.nodes))
	seen := make(map[string]struct{})
	affected := make(map[domain.TaskID]struct{})

	record := func(cycle []domain.TaskID) {
		key := canonicalCycleKey(cycle)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}

		labels := make([]string, len(cycle))
		for i, id := range cycle {
			labels[i] = g.label(id)
			if _, ok := affected[id]; !ok {
				affected[id] = struct{}{}
				report.AffectedIDs = append(report.AffectedIDs, id)
			}
		}
		report.Cycles = append(report.Cycles, cycle)
		report.Chains = append(report.Chains, strings.Join(labels, chainSeparator))
	}

	for _, start := range g.nodes {
		if state[start] != unvisited {
			continue
		}

		stack := []frame{{node: start}}
		position := map[domain.TaskID]int{start: 0}
		state[start] = inProgress

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			neighbors := g.edges[top.node]

			if top.next == len(neighbors) {
				state[top.node] = done
				delete(position, top.node)
				stack = stack[:len(stack)-1]
				continue
			}

			next := neighbors[top.next]
			top.next++

			switch state[next] {
			case unvisited:
				state[next] = inProgress
				position[next] = len(stack)
				stack = append(stack, frame{node: next})
			case inProgress:
				from := position[next]
				cycle := make([]domain.TaskID, 0, len(stack)-from+1)
				for _, f := range stack[from:] {
					cycle = append(cycle, f.node)
				}
				record(append(cycle, next))
			}
		}
	}

	return report
}

// canonicalCycleKey rotates the open cycle to start at its smallest id.
func canonicalCycleKey(closed []domain.TaskID) string {
	open := closed[:len(closed)-1]
	if len(open) == 0 {
		return string(closed[0])
	}
	pivot := 0
	for i, id := range open {
		if id < open[pivot] {
			pivot = i
		}
	}
	rotated := slices.Concat(open[pivot:], open[:pivot])
	parts := make([]string, len(rotated))
	for i, id := range rotated {
		parts[i] = string(id)
	}
	return strings.Join(parts, "\x00")
}
