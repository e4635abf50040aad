package wire

import "github.com/skeinproject/skein/internal/hs"

// Phase labels one step of the connection-change protocol.
type Phase string

const (
	// PhasePrepare resets anchor types to fresh instantiations.
	PhasePrepare Phase = "prepare"
	// PhasePropagate is the non-final handle pass, publishing partial
	// type views so interdependent scopes can react to each other.
	PhasePropagate Phase = "propagate"
	// PhaseSettle is the final handle pass, committing derived types.
	PhaseSettle Phase = "settle"
)

// TraceEntry records one protocol step against one target. The trace
// exists for tests and debugging; it asserts the ordering guarantee
// that every target in a region is prepared before any is handled.
type TraceEntry struct {
	Target string
	Phase  Phase
}

// propTarget is a unit of the propagation protocol: a plain block, or
// a lambda body scope acting for its block.
type propTarget interface {
	targetName() string
	prepareConnectionChanges(*hs.Checker)
	handleConnectionChanges(final bool)
}

// collectRegion walks downstream from start and returns the affected
// propagation targets in discovery order. Downstream means: through
// output connections to sink blocks, and from lambda blocks through
// binder connections into their body. Binder anchors themselves are
// walls; the walk never ascends out of a scope through one.
func (g *Graph) collectRegion(start *Block) []propTarget {
	var region []propTarget
	seen := make(map[propTarget]bool)
	queue := []*Block{start}
	visited := map[*Block]bool{start: true}

	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]

		t := b.propTargetFor()
		if !seen[t] {
			seen[t] = true
			region = append(region, t)
		}

		push := func(conns []ConnID) {
			for _, id := range conns {
				c, ok := g.conns[id]
				if !ok {
					continue
				}
				next := c.sink.Block()
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}

		for _, out := range b.outputs {
			push(out.conns)
		}
		if b.lambda != nil {
			for _, bind := range b.lambda.binders {
				push(bind.conns)
			}
		}
	}
	return region
}

func (g *Graph) recordPhase(t propTarget, p Phase) {
	g.trace = append(g.trace, TraceEntry{Target: t.targetName(), Phase: p})
}

// Trace returns the protocol steps recorded since the last reset.
func (g *Graph) Trace() []TraceEntry { return g.trace }

// ResetTrace discards the recorded protocol steps.
func (g *Graph) ResetTrace() { g.trace = nil }
