// Package problem assembles an in-memory problem instance and turns it
// into a graph.Graph of the requested variant (§6 "Programmatic
// interface"). File-format parsers (adjacency-list, DIMACS edge-list)
// remain external collaborators per §1 and are not implemented here.
package problem

import (
	"errors"
	"fmt"

	"github.com/critnode/critnode/cnp"
	"github.com/critnode/critnode/dcnp"
	"github.com/critnode/critnode/graph"
)

// ProblemType selects which engine CreateOriginalGraph builds.
type ProblemType int

const (
	TypeCNP ProblemType = iota
	TypeDCNP
)

// ErrUnknownProblemType is returned by CreateOriginalGraph for an
// unrecognized ProblemType (§6 "Unknown problem type").
var ErrUnknownProblemType = errors.New("problem: unknown problem type")

// ErrEdgeOutOfRange is returned by AddEdge when an endpoint was never
// declared via AddNode / the constructor's vertex count.
var ErrEdgeOutOfRange = errors.New("problem: edge endpoint out of range")

// ProblemData assembles a vertex/edge set in memory via incremental
// AddNode/AddEdge calls. File-format readers (adjacency-list, DIMACS
// edge-list) are intentionally not ported (§1, §6).
type ProblemData struct {
	numNodes int
	edges    [][2]int
}

// NewProblemData reserves num vertices (ids 0..num-1).
func NewProblemData(num int) *ProblemData {
	return &ProblemData{numNodes: num}
}

// AddNode grows the vertex count so that id is valid, mirroring the
// original's incremental AddNode.
func (p *ProblemData) AddNode(id int) {
	if id+1 > p.numNodes {
		p.numNodes = id + 1
	}
}

// AddEdge records an undirected edge between u and v.
func (p *ProblemData) AddEdge(u, v int) error {
	if u < 0 || v < 0 || u >= p.numNodes || v >= p.numNodes {
		return ErrEdgeOutOfRange
	}
	p.edges = append(p.edges, [2]int{u, v})
	return nil
}

// NumNodes returns the current vertex count.
func (p *ProblemData) NumNodes() int { return p.numNodes }

// Edges returns the recorded edge list.
func (p *ProblemData) Edges() [][2]int { return p.edges }

// CreateOriginalGraph builds a graph.Graph of the requested variant over
// this instance's vertices and edges (§6). hopDistance is ignored for
// TypeCNP.
func (p *ProblemData) CreateOriginalGraph(problemType ProblemType, budget int, seed uint32, hopDistance int) (*graph.Graph, error) {
	switch problemType {
	case TypeCNP:
		e, err := cnp.New(p.numNodes, budget, p.edges, seed)
		if err != nil {
			return nil, fmt.Errorf("problem: create original graph: %w", err)
		}
		return graph.NewCNP(e), nil
	case TypeDCNP:
		e, err := dcnp.New(p.numNodes, budget, hopDistance, p.edges, seed)
		if err != nil {
			return nil, fmt.Errorf("problem: create original graph: %w", err)
		}
		return graph.NewDCNP(e), nil
	default:
		return nil, ErrUnknownProblemType
	}
}
