package resolver

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsmodule/cli/internal/descriptor"
	oerrors "github.com/jsmodule/cli/internal/errors"
	"github.com/jsmodule/cli/internal/source"
	"github.com/jsmodule/cli/internal/testutil"
)

// graphLookup serves dependencies from a map and counts lookups.
type graphLookup struct {
	deps  map[string][]string
	calls map[string]int
	fail  map[string]error
}

func newGraphLookup(deps map[string][]string) *graphLookup {
	return &graphLookup{deps: deps, calls: map[string]int{}, fail: map[string]error{}}
}

func (g *graphLookup) Find(id string) ([]string, error) {
	g.calls[id]++
	if err, ok := g.fail[id]; ok {
		return nil, err
	}
	if d, ok := g.deps[id]; ok {
		return d, nil
	}
	return []string{}, nil
}

// testGraph is the following dependency graph:
//
//	      f
//	    /   \               circular       circular dependency
//	   /     \              dependency     u
//	  |       |                  p         |^
//	  a   b   |      c   d  e   ^ \        | \
//	 /|\ / \ /|     / \        /   \       v  \
//	h i j   k |    l   m       \   /      /| /
//	  |      /                  \ /      / |/
//	  x_____/                    q      z   w
func testGraph() map[string][]string {
	return map[string][]string{
		"a.js": {"h.js", "i.js", "j.js"},
		"b.js": {"j.js", "k.js"},
		"c.js": {"l.js", "m.js"},
		"f.js": {"a.js", "k.js", "x.js"},
		"i.js": {"x.js"},
		"p.js": {"q.js"},
		"q.js": {"p.js"},
		"u.js": {"v.js"},
		"v.js": {"z.js", "w.js"},
		"w.js": {"u.js"},
	}
}

func newTestResolver(t *testing.T, deps map[string][]string) (*Resolver, *graphLookup) {
	t.Helper()
	lookup := newGraphLookup(deps)
	r, err := New(lookup)
	require.NoError(t, err)
	return r, lookup
}

func TestNew_NilLookup(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, oerrors.ErrInvalidArgument)
}

func TestResolve_NilRoots(t *testing.T) {
	r, _ := newTestResolver(t, testGraph())
	_, err := r.Resolve(nil)
	assert.ErrorIs(t, err, oerrors.ErrInvalidArgument)
}

func TestResolve_Empty(t *testing.T) {
	r, lookup := newTestResolver(t, testGraph())
	result, err := r.Resolve([]string{})
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
	assert.Empty(t, lookup.calls)
}

func TestResolveGraph_EmptyRootsNotNil(t *testing.T) {
	r, _ := newTestResolver(t, testGraph())
	g, err := r.ResolveGraph([]string{})
	require.NoError(t, err)
	assert.NotNil(t, g.Roots)
	assert.Empty(t, g.Roots)
}

func TestResolve_Graph(t *testing.T) {
	tests := []struct {
		name  string
		roots []string
		want  []string
	}{
		{"no deps multiple", []string{"d.js", "e.js"}, []string{"d.js", "e.js"}},
		{"deps single", []string{"b.js"}, []string{"j.js", "k.js", "b.js"}},
		{"deps multiple", []string{"b.js", "c.js"}, []string{"j.js", "k.js", "b.js", "l.js", "m.js", "c.js"}},
		{"deps single deep", []string{"a.js"}, []string{"h.js", "x.js", "i.js", "j.js", "a.js"}},
		{"deps multiple deep", []string{"a.js", "b.js"}, []string{"h.js", "x.js", "i.js", "j.js", "a.js", "k.js", "b.js"}},
		{"deps complex deep", []string{"a.js", "b.js", "f.js"}, []string{"h.js", "x.js", "i.js", "j.js", "a.js", "k.js", "b.js", "f.js"}},
		{"root listed after its dependent", []string{"f.js", "a.js"}, []string{"h.js", "x.js", "i.js", "j.js", "a.js", "k.js", "f.js"}},
		{"duplicate roots", []string{"b.js", "b.js"}, []string{"j.js", "k.js", "b.js"}},
		{"root that is a shared leaf", []string{"j.js", "b.js"}, []string{"j.js", "k.js", "b.js"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, lookup := newTestResolver(t, testGraph())
			result, err := r.Resolve(tt.roots)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result)
			for id, n := range lookup.calls {
				assert.Equal(t, 1, n, "descriptor of %s should be read once", id)
			}
		})
	}
}

func TestResolve_Calendar(t *testing.T) {
	r, _ := newTestResolver(t, map[string][]string{
		"calendar.js":  {"jquery.js", "jquery-ui.js"},
		"jquery-ui.js": {"ui.js"},
	})
	result, err := r.Resolve([]string{"calendar.js"})
	require.NoError(t, err)
	assert.Equal(t, []string{"jquery.js", "ui.js", "jquery-ui.js", "calendar.js"}, result)
}

func TestResolve_Diamond(t *testing.T) {
	r, _ := newTestResolver(t, map[string][]string{
		"top.js":   {"left.js", "right.js"},
		"left.js":  {"base.js"},
		"right.js": {"base.js"},
	})
	result, err := r.Resolve([]string{"top.js"})
	require.NoError(t, err)
	assert.Equal(t, []string{"base.js", "left.js", "right.js", "top.js"}, result)
}

func TestResolve_SingleCircularDependency(t *testing.T) {
	r, _ := newTestResolver(t, testGraph())
	result, err := r.Resolve([]string{"p.js"})
	require.Error(t, err)
	assert.Nil(t, result)

	var cycleErr *oerrors.CyclicDependencyError
	require.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, "p.js", cycleErr.Resource)
	assert.Equal(t, []string{"p.js", "q.js", "p.js"}, cycleErr.Cycle)
}

func TestResolve_DeepCircularDependency(t *testing.T) {
	r, _ := newTestResolver(t, testGraph())
	result, err := r.Resolve([]string{"u.js"})
	assert.Nil(t, result)

	var cycleErr *oerrors.CyclicDependencyError
	require.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, []string{"u.js", "v.js", "w.js", "u.js"}, cycleErr.Cycle)
}

func TestResolve_CycleBelowRoot(t *testing.T) {
	r, _ := newTestResolver(t, map[string][]string{
		"app.js": {"a.js"},
		"a.js":   {"b.js"},
		"b.js":   {"c.js"},
		"c.js":   {"a.js"},
	})
	_, err := r.Resolve([]string{"app.js"})

	var cycleErr *oerrors.CyclicDependencyError
	require.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, []string{"a.js", "b.js", "c.js", "a.js"}, cycleErr.Cycle,
		"cycle should not include the acyclic prefix")
}

func TestResolve_SelfDependency(t *testing.T) {
	r, _ := newTestResolver(t, map[string][]string{"a.js": {"a.js"}})
	_, err := r.Resolve([]string{"a.js"})
	assert.ErrorIs(t, err, oerrors.ErrCyclicDependency)
}

func TestResolve_CycleInLaterRootDiscardsEarlierWork(t *testing.T) {
	r, _ := newTestResolver(t, testGraph())
	result, err := r.Resolve([]string{"b.js", "p.js"})
	assert.ErrorIs(t, err, oerrors.ErrCyclicDependency)
	assert.Nil(t, result)
}

func TestResolve_LookupErrorPropagates(t *testing.T) {
	r, lookup := newTestResolver(t, testGraph())
	formatErr := &oerrors.DescriptorFormatError{Resource: "i.js", Descriptor: "i.dep.js", Reason: "descriptor is empty"}
	lookup.fail["i.js"] = formatErr

	result, err := r.Resolve([]string{"a.js"})
	assert.Nil(t, result)
	assert.Same(t, formatErr, err, "lookup errors propagate unchanged")
}

func TestResolve_Deterministic(t *testing.T) {
	r, _ := newTestResolver(t, testGraph())
	first, err := r.Resolve([]string{"f.js", "c.js", "b.js"})
	require.NoError(t, err)
	second, err := r.Resolve([]string{"f.js", "c.js", "b.js"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolve_DeepChain(t *testing.T) {
	const depth = 100000
	deps := make(map[string][]string, depth)
	for i := 0; i < depth-1; i++ {
		deps[fmt.Sprintf("m%d.js", i)] = []string{fmt.Sprintf("m%d.js", i+1)}
	}
	r, _ := newTestResolver(t, deps)

	result, err := r.Resolve([]string{"m0.js"})
	require.NoError(t, err)
	require.Len(t, result, depth)
	assert.Equal(t, fmt.Sprintf("m%d.js", depth-1), result[0])
	assert.Equal(t, "m0.js", result[depth-1])
}

// TestResolve_RandomDAGs checks the ordering invariants on generated acyclic
// graphs: no duplicates, and every dependency precedes its dependent.
func TestResolve_RandomDAGs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for iter := 0; iter < 50; iter++ {
		n := 2 + rng.Intn(30)
		deps := make(map[string][]string)
		for i := 0; i < n; i++ {
			id := fmt.Sprintf("n%d.js", i)
			// Edges only point to higher indexes, so the graph is acyclic.
			for j := i + 1; j < n; j++ {
				if rng.Intn(4) == 0 {
					deps[id] = append(deps[id], fmt.Sprintf("n%d.js", j))
				}
			}
		}
		var roots []string
		for i := 0; i < n; i++ {
			if rng.Intn(3) == 0 {
				roots = append(roots, fmt.Sprintf("n%d.js", i))
			}
		}
		roots = append(roots, "n0.js")

		r, _ := newTestResolver(t, deps)
		result, err := r.Resolve(roots)
		require.NoError(t, err)

		pos := make(map[string]int, len(result))
		for i, id := range result {
			_, dup := pos[id]
			require.False(t, dup, "duplicate %s in %v", id, result)
			pos[id] = i
		}
		for _, root := range roots {
			require.Contains(t, pos, root)
		}
		for id, i := range pos {
			for _, d := range deps[id] {
				j, ok := pos[d]
				require.True(t, ok, "dependency %s of %s missing", d, id)
				require.Less(t, j, i, "%s must precede %s", d, id)
			}
		}
	}
}

func TestResolveGraph_RecordsEdges(t *testing.T) {
	r, _ := newTestResolver(t, testGraph())
	g, err := r.ResolveGraph([]string{"b.js"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.js"}, g.Roots)
	assert.Equal(t, []string{"j.js", "k.js", "b.js"}, g.Order)
	assert.Equal(t, []string{"j.js", "k.js"}, g.Deps["b.js"])
	assert.Empty(t, g.Deps["j.js"])
}

func TestResolve_WithDescriptorFinder(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()
	testutil.WriteFiles(t, dir, testutil.CalendarFixture())

	r, err := New(descriptor.NewFinder(source.NewDir(dir)))
	require.NoError(t, err)

	result, err := r.Resolve([]string{"calendar.js"})
	require.NoError(t, err)
	assert.Equal(t, []string{"jquery.js", "ui.js", "jquery-ui.js", "calendar.js"}, result)

	_, err = r.Resolve([]string{"calendar.txt"})
	assert.ErrorIs(t, err, oerrors.ErrInvalidArgument)
}
