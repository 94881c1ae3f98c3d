// Package resolver flattens the dependency closure of a set of resources into
// a single load order.
//
// The order is a depth-first postorder: every dependency appears before the
// resources that declare it, each resource appears once, and siblings keep
// the order in which they were listed. Traversal uses an explicit stack, so
// the depth of a dependency chain is bounded only by memory.
package resolver

import (
	oerrors "github.com/jsmodule/cli/internal/errors"
	"github.com/jsmodule/cli/internal/output"
)

// Lookup returns the direct dependencies of a resource.
// *descriptor.Finder satisfies it.
type Lookup interface {
	Find(id string) ([]string, error)
}

// Resolver expands root resources into their complete, ordered dependency
// closure. It holds no state between calls and is safe for concurrent use
// when its Lookup is.
type Resolver struct {
	lookup Lookup
}

// Graph is the result of a resolution with the edges that produced it.
type Graph struct {
	// Roots are the requested resources, in caller order.
	Roots []string
	// Order is the resolved sequence.
	Order []string
	// Deps maps every resource in Order to its declared dependencies.
	Deps map[string][]string
}

// New creates a Resolver backed by l.
func New(l Lookup) (*Resolver, error) {
	if l == nil {
		return nil, oerrors.InvalidArgument("lookup", "cannot be nil")
	}
	return &Resolver{lookup: l}, nil
}

// Resolve returns the resolved sequence for roots.
// A nil roots slice is rejected; an empty one resolves to an empty sequence.
// On failure no partial sequence is returned.
func (r *Resolver) Resolve(roots []string) ([]string, error) {
	g, err := r.ResolveGraph(roots)
	if err != nil {
		return nil, err
	}
	return g.Order, nil
}

type color uint8

const (
	white color = iota // not visited
	gray               // on the stack
	black              // emitted
)

// frame is one resource on the traversal stack.
type frame struct {
	id   string
	deps []string
	next int
}

// ResolveGraph is Resolve that also returns the dependency edges it read.
func (r *Resolver) ResolveGraph(roots []string) (*Graph, error) {
	if roots == nil {
		return nil, oerrors.InvalidArgument("roots", "cannot be nil")
	}

	log := output.With("resolver")

	state := make(map[string]color)
	deps := make(map[string][]string)
	order := make([]string, 0, len(roots))
	var stack []frame

	// enter marks id in progress and pushes it with its dependencies.
	enter := func(id string) error {
		found, err := r.lookup.Find(id)
		if err != nil {
			return err
		}
		state[id] = gray
		deps[id] = found
		stack = append(stack, frame{id: id, deps: found})
		return nil
	}

	for _, root := range roots {
		if state[root] == black {
			continue
		}
		if err := enter(root); err != nil {
			return nil, err
		}

		for len(stack) > 0 {
			top := len(stack) - 1
			if stack[top].next < len(stack[top].deps) {
				dep := stack[top].deps[stack[top].next]
				stack[top].next++

				switch state[dep] {
				case black:
					continue
				case gray:
					return nil, cycleError(stack, dep)
				}
				if err := enter(dep); err != nil {
					return nil, err
				}
				continue
			}

			id := stack[top].id
			stack = stack[:top]
			state[id] = black
			order = append(order, id)
			log.Debug("resolved", "resource", id, "position", len(order))
		}
	}

	rootsCopy := make([]string, len(roots))
	copy(rootsCopy, roots)
	return &Graph{
		Roots: rootsCopy,
		Order: order,
		Deps:  deps,
	}, nil
}

// cycleError builds the cycle from the first stack occurrence of id back to id.
func cycleError(stack []frame, id string) error {
	start := 0
	for i, f := range stack {
		if f.id == id {
			start = i
			break
		}
	}
	cycle := make([]string, 0, len(stack)-start+1)
	for _, f := range stack[start:] {
		cycle = append(cycle, f.id)
	}
	cycle = append(cycle, id)
	return &oerrors.CyclicDependencyError{Resource: id, Cycle: cycle}
}
