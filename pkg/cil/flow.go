package cil

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
)

// FlowGraph builds the instruction level control flow graph of a body.
// Vertices are instruction indices. Handler and filter entries are not
// reachable through edges; see HandlerEntries.
func FlowGraph(body *Body) (graph.Graph[int, int], error) {
	g := graph.New(graph.IntHash, graph.Directed())

	index := make(map[*Instruction]int, len(body.Instructions))
	for i, instr := range body.Instructions {
		index[instr] = i
		if err := g.AddVertex(i, graph.VertexAttribute("label", instr.String())); err != nil {
			return nil, fmt.Errorf("failed to add vertex %d: %w", i, err)
		}
	}

	addEdge := func(from int, to *Instruction) error {
		if to == nil {
			return nil
		}
		j, ok := index[to]
		if !ok {
			return fmt.Errorf("%s branches outside of the method body", body.Instructions[from].Label())
		}
		if err := g.AddEdge(from, j); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
			return err
		}
		return nil
	}

	for i, instr := range body.Instructions {
		if instr.OpCode == nil {
			return nil, fmt.Errorf("%s has no opcode", instr.Label())
		}
		switch instr.OpCode.Operand {
		case InlineBrTarget, InlineShortBrTarget:
			target, _ := instr.Operand.(*Instruction)
			if err := addEdge(i, target); err != nil {
				return nil, err
			}
		case InlineSwitch:
			targets, _ := instr.Operand.([]*Instruction)
			for _, target := range targets {
				if err := addEdge(i, target); err != nil {
					return nil, err
				}
			}
		}
		if !instr.OpCode.EndsBlock() && i+1 < len(body.Instructions) {
			if err := addEdge(i, body.Instructions[i+1]); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}

// HandlerEntry is an instruction entered from the runtime with a known stack.
type HandlerEntry struct {
	Index int
	// Stack is the entry stack; a catch handler starts with the exception object.
	Stack []TypeSig
}

// HandlerEntries returns the entry points of every exception handler and filter.
func HandlerEntries(body *Body) []HandlerEntry {
	var entries []HandlerEntry
	for _, eh := range body.ExceptionHandlers {
		switch eh.Kind {
		case HandlerCatch:
			var ex TypeSig = CorLib.Object
			if eh.CatchType != nil {
				ex = ToTypeSig(eh.CatchType)
			}
			if i := body.IndexOf(eh.HandlerStart); i >= 0 {
				entries = append(entries, HandlerEntry{Index: i, Stack: []TypeSig{ex}})
			}
		case HandlerFilter:
			if i := body.IndexOf(eh.FilterStart); i >= 0 {
				entries = append(entries, HandlerEntry{Index: i, Stack: []TypeSig{CorLib.Object}})
			}
			if i := body.IndexOf(eh.HandlerStart); i >= 0 {
				entries = append(entries, HandlerEntry{Index: i, Stack: []TypeSig{CorLib.Object}})
			}
		default:
			if i := body.IndexOf(eh.HandlerStart); i >= 0 {
				entries = append(entries, HandlerEntry{Index: i})
			}
		}
	}
	return entries
}

// Successors returns the sorted successor indices of every vertex.
func Successors(g graph.Graph[int, int]) (map[int][]int, error) {
	adj, err := g.AdjacencyMap()
	if err != nil {
		return nil, err
	}
	succs := make(map[int][]int, len(adj))
	for from, edges := range adj {
		list := make([]int, 0, len(edges))
		for to := range edges {
			list = append(list, to)
		}
		sort.Ints(list)
		succs[from] = list
	}
	return succs, nil
}

// WriteDOT writes the control flow graph of a body in Graphviz DOT format.
func WriteDOT(w io.Writer, body *Body) error {
	g, err := FlowGraph(body)
	if err != nil {
		return err
	}
	return draw.DOT(g, w)
}
