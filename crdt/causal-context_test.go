package crdt

import (
	"reflect"
	"testing"
)

// Functions

// TestContains executes a white-box unit test
// on implemented Contains() function.
func TestContains(t *testing.T) {

	// Create new causal context.
	ctx := InitCausalContext()

	// Make sure the context is initially empty.
	if len(ctx.vector) != 0 || len(ctx.cloud) != 0 {
		t.Fatalf("[crdt.TestContains] Expected context to be empty initially, but found %d vector and %d cloud entries.\n", len(ctx.vector), len(ctx.cloud))
	}

	if ctx.Contains(Dot{"node-1", 1}) {
		t.Fatal("[crdt.TestContains] Expected dot (node-1, 1) not to be known by an empty context but Contains() returns true.")
	}

	// Any version inside the contiguous run is known.
	ctx.vector["node-1"] = 3

	for version := uint32(1); version <= 3; version++ {
		if !ctx.Contains(Dot{"node-1", version}) {
			t.Fatalf("[crdt.TestContains] Expected dot (node-1, %d) to be known via the vector but Contains() returns false.\n", version)
		}
	}

	if ctx.Contains(Dot{"node-1", 4}) {
		t.Fatal("[crdt.TestContains] Expected dot (node-1, 4) not to be known but Contains() returns true.")
	}

	// A literal cloud member is known, too.
	ctx.cloud[Dot{"node-2", 7}] = struct{}{}

	if !ctx.Contains(Dot{"node-2", 7}) {
		t.Fatal("[crdt.TestContains] Expected dot (node-2, 7) to be known via the cloud but Contains() returns false.")
	}

	if ctx.Contains(Dot{"node-2", 6}) {
		t.Fatal("[crdt.TestContains] Expected dot (node-2, 6) not to be known but Contains() returns true.")
	}
}

// TestNextDot executes a white-box unit test
// on implemented NextDot() function.
func TestNextDot(t *testing.T) {

	ctx := InitCausalContext()

	// Stamping dots for one actor yields the contiguous run 1, 2, 3, ...
	for expected := uint32(1); expected <= 5; expected++ {

		var d Dot
		d, ctx = ctx.NextDot("node-1")

		if d.Actor != "node-1" || d.Version != expected {
			t.Fatalf("[crdt.TestNextDot] Expected dot (node-1, %d) but received (%s, %d).\n", expected, d.Actor, d.Version)
		}
	}

	// The cloud stays untouched by local stamping.
	if len(ctx.cloud) != 0 {
		t.Fatalf("[crdt.TestNextDot] Expected cloud to stay empty but found %d entries.\n", len(ctx.cloud))
	}

	// A second actor starts its own run at 1.
	d, ctx := ctx.NextDot("node-2")
	if d.Version != 1 {
		t.Fatalf("[crdt.TestNextDot] Expected first dot of node-2 to carry version 1 but received %d.\n", d.Version)
	}

	if ctx.vector["node-1"] != 5 {
		t.Fatalf("[crdt.TestNextDot] Expected node-1 to remain at version 5 but found %d.\n", ctx.vector["node-1"])
	}
}

// TestAddDot executes a white-box unit test
// on implemented AddDot() function.
func TestAddDot(t *testing.T) {

	ctx := InitCausalContext()

	// AddDot records unconditionally in the cloud, even dots that a
	// compress run would immediately fold or discard.
	ctx = ctx.AddDot(Dot{"node-1", 4})
	ctx = ctx.AddDot(Dot{"node-1", 4})
	ctx = ctx.AddDot(Dot{"node-2", 1})

	if len(ctx.cloud) != 2 {
		t.Fatalf("[crdt.TestAddDot] Expected 2 cloud entries but found %d.\n", len(ctx.cloud))
	}

	if ctx.vector["node-1"] != 0 || ctx.vector["node-2"] != 0 {
		t.Fatal("[crdt.TestAddDot] Expected AddDot() to leave the version vector untouched.")
	}

	if !ctx.Contains(Dot{"node-1", 4}) || !ctx.Contains(Dot{"node-2", 1}) {
		t.Fatal("[crdt.TestAddDot] Expected added dots to be known by the context.")
	}
}

// TestCompress executes a white-box unit test
// on implemented Compress() function.
func TestCompress(t *testing.T) {

	ctx := InitCausalContext()
	ctx.vector["node-1"] = 2

	// Redundant (below the run), foldable (chain 3, 4, 5) and gapped
	// (8) dots all at once.
	for _, d := range []Dot{
		{"node-1", 1},
		{"node-1", 3},
		{"node-1", 4},
		{"node-1", 5},
		{"node-1", 8},
		{"node-2", 1},
		{"node-2", 3},
	} {
		ctx.cloud[d] = struct{}{}
	}

	compressed := ctx.Compress()

	// The chain 3..5 folds in one pass because the dots are processed
	// in ascending order per actor.
	if compressed.vector["node-1"] != 5 {
		t.Fatalf("[crdt.TestCompress] Expected node-1 run to reach 5 but found %d.\n", compressed.vector["node-1"])
	}

	if compressed.vector["node-2"] != 1 {
		t.Fatalf("[crdt.TestCompress] Expected node-2 run to reach 1 but found %d.\n", compressed.vector["node-2"])
	}

	// Only the two genuine gaps survive in the cloud.
	expectedCloud := map[Dot]struct{}{
		{"node-1", 8}: {},
		{"node-2", 3}: {},
	}
	if !reflect.DeepEqual(compressed.cloud, expectedCloud) {
		t.Fatalf("[crdt.TestCompress] Expected cloud %v but found %v.\n", expectedCloud, compressed.cloud)
	}

	// Compress must never change which dots are known.
	for _, d := range []Dot{
		{"node-1", 1}, {"node-1", 2}, {"node-1", 3}, {"node-1", 4},
		{"node-1", 5}, {"node-1", 8}, {"node-2", 1}, {"node-2", 3},
	} {
		if ctx.Contains(d) != compressed.Contains(d) {
			t.Fatalf("[crdt.TestCompress] Expected Contains(%v) to be unaffected by compression.\n", d)
		}
	}

	for _, d := range []Dot{
		{"node-1", 6}, {"node-1", 7}, {"node-1", 9}, {"node-2", 2}, {"node-2", 4},
	} {
		if compressed.Contains(d) {
			t.Fatalf("[crdt.TestCompress] Expected dot %v to stay unknown after compression.\n", d)
		}
	}
}

// TestCausalContextMerge executes a white-box unit test
// on implemented Merge() function.
func TestCausalContextMerge(t *testing.T) {

	a := InitCausalContext()
	a.vector["node-1"] = 4
	a.cloud[Dot{"node-2", 2}] = struct{}{}

	b := InitCausalContext()
	b.vector["node-1"] = 2
	b.vector["node-2"] = 1
	b.cloud[Dot{"node-1", 6}] = struct{}{}

	merged := a.Merge(b)

	// Pointwise maximum of the vectors; the (node-2, 2) cloud dot folds
	// onto node-2's run of 1 during the final compression.
	if merged.vector["node-1"] != 4 || merged.vector["node-2"] != 2 {
		t.Fatalf("[crdt.TestCausalContextMerge] Expected vector {node-1: 4, node-2: 2} but found %v.\n", merged.vector)
	}

	// The (node-1, 6) gap survives.
	if _, found := merged.cloud[Dot{"node-1", 6}]; !found {
		t.Fatal("[crdt.TestCausalContextMerge] Expected gap dot (node-1, 6) to survive the merge.")
	}

	// Commutative.
	if !reflect.DeepEqual(a.Merge(b), b.Merge(a)) {
		t.Fatal("[crdt.TestCausalContextMerge] Expected merge to be commutative.")
	}

	// Associative.
	c := InitCausalContext()
	c.vector["node-3"] = 2
	c.cloud[Dot{"node-1", 5}] = struct{}{}

	if !reflect.DeepEqual(a.Merge(b).Merge(c), a.Merge(b.Merge(c))) {
		t.Fatal("[crdt.TestCausalContextMerge] Expected merge to be associative.")
	}

	// Idempotent over compressed representations.
	if !reflect.DeepEqual(merged.Merge(merged), merged) {
		t.Fatal("[crdt.TestCausalContextMerge] Expected merge to be idempotent.")
	}
}
