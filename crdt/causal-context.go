package crdt

import (
	"sort"
)

// Structs

// Dot is a globally unique, causally-ordered event identifier: the pair of
// the actor that produced the event and the strictly increasing version
// number that actor assigned to it. An actor must never reuse a version.
type Dot struct {
	Actor   string
	Version uint32
}

// CausalContext compactly tracks which dots a replica has observed. The
// vector holds, per actor, the highest version v forming an unbroken run
// 1..v. The cloud holds dots received out of order or retained as
// tombstones that could not (yet) be folded into the vector.
type CausalContext struct {
	vector map[string]uint32
	cloud  map[Dot]struct{}
}

// Functions

// InitCausalContext returns an empty initialized new causal context.
func InitCausalContext() CausalContext {

	return CausalContext{
		vector: make(map[string]uint32),
		cloud:  make(map[Dot]struct{}),
	}
}

// clone returns a deep copy of ctx so that derived
// contexts never share backing maps with their origin.
func (ctx CausalContext) clone() CausalContext {

	next := CausalContext{
		vector: make(map[string]uint32, len(ctx.vector)),
		cloud:  make(map[Dot]struct{}, len(ctx.cloud)),
	}

	for actor, version := range ctx.vector {
		next.vector[actor] = version
	}

	for dot := range ctx.cloud {
		next.cloud[dot] = struct{}{}
	}

	return next
}

// Vector returns a copy of the contiguous version runs per actor, e.g.
// for callers encoding the context for transfer.
func (ctx CausalContext) Vector() map[string]uint32 {

	vector := make(map[string]uint32, len(ctx.vector))

	for actor, version := range ctx.vector {
		vector[actor] = version
	}

	return vector
}

// Cloud returns the dots not yet folded into the version vector.
func (ctx CausalContext) Cloud() []Dot {

	dots := make([]Dot, 0, len(ctx.cloud))

	for dot := range ctx.cloud {
		dots = append(dots, dot)
	}

	return dots
}

// Contains reports whether dot d has been observed by this context:
// either its version lies inside the contiguous run recorded for its
// actor, or the dot is literally present in the cloud.
func (ctx CausalContext) Contains(d Dot) bool {

	if d.Version <= ctx.vector[d.Actor] {
		return true
	}

	_, found := ctx.cloud[d]

	return found
}

// NextDot stamps the next contiguous dot for the supplied actor and
// returns it together with the advanced context. The cloud is never
// touched: a local writer always produces gap-free versions.
func (ctx CausalContext) NextDot(actor string) (Dot, CausalContext) {

	next := ctx.clone()

	d := Dot{
		Actor:   actor,
		Version: next.vector[actor] + 1,
	}

	next.vector[actor] = d.Version

	return d, next
}

// AddDot records dot d in the cloud unconditionally. It is used for
// tombstones and for remote or out-of-order dots that must become known
// without assigning them anew.
func (ctx CausalContext) AddDot(d Dot) CausalContext {

	next := ctx.clone()
	next.cloud[d] = struct{}{}

	return next
}

// Compress folds foldable cloud dots into the version vector and drops
// redundant ones, leaving only genuine causal gaps behind. The set of
// known dots is unchanged, only its representation shrinks.
func (ctx CausalContext) Compress() CausalContext {

	next := ctx.clone()

	// Order cloud dots ascending by (actor, version). Processing one
	// sorted run per actor reaches the fixed point in a single pass,
	// because folding a version immediately makes its successor foldable.
	dots := make([]Dot, 0, len(next.cloud))
	for dot := range next.cloud {
		dots = append(dots, dot)
	}

	sort.Slice(dots, func(i, j int) bool {

		if dots[i].Actor != dots[j].Actor {
			return dots[i].Actor < dots[j].Actor
		}

		return dots[i].Version < dots[j].Version
	})

	for _, dot := range dots {

		highest := next.vector[dot.Actor]

		if dot.Version == (highest + 1) {
			// Contiguous successor: fold into the vector.
			next.vector[dot.Actor] = dot.Version
			delete(next.cloud, dot)
		} else if dot.Version <= highest {
			// Already covered by the vector: redundant.
			delete(next.cloud, dot)
		}

		// Otherwise a future gap: the dot stays in the cloud.
	}

	return next
}

// Merge joins ctx with other into a new context: the version vectors are
// combined pointwise by maximum, the clouds are unioned, and the result
// is compressed. Merge is commutative, associative and idempotent.
func (ctx CausalContext) Merge(other CausalContext) CausalContext {

	next := ctx.clone()

	for actor, version := range other.vector {

		if version > next.vector[actor] {
			next.vector[actor] = version
		}
	}

	for dot := range other.cloud {
		next.cloud[dot] = struct{}{}
	}

	return next.Compress()
}
