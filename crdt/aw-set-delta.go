package crdt

// Structs

// DeltaAWSet is an add-wins set augmented with delta tracking. Next to
// the full state it accumulates a second dot store holding only the dots
// and tombstones introduced since the last delta reset, so replicas can
// ship increments instead of full states during anti-entropy.
type DeltaAWSet struct {
	state AWSet
	delta DotStore
}

// Functions

// InitDeltaAWSet returns an empty initialized new delta-tracked
// add-wins set.
func InitDeltaAWSet() DeltaAWSet {

	return DeltaAWSet{
		state: InitAWSet(),
		delta: InitDotStore(),
	}
}

// State exposes the full add-wins set.
func (s DeltaAWSet) State() AWSet {
	return s.state
}

// Delta exposes the accumulated delta as a bare dot store, ready to be
// shipped to other replicas and applied there via MergeDelta.
func (s DeltaAWSet) Delta() DotStore {
	return s.delta.clone()
}

// Add inserts value on behalf of actor into the full state and mirrors
// the update into the delta: the fresh dot with its value, plus the
// tombstones of any dots the implicit pre-remove cleared.
func (s DeltaAWSet) Add(actor string, value interface{}) DeltaAWSet {

	store, removed := s.state.store.remove(value)
	store, fresh := store.add(actor, value)

	delta := s.delta.clone()

	// Record cleared dots as known-but-absent in the delta, so that the
	// delta transports the removal, too.
	for _, dot := range removed {
		delete(delta.entries, dot)
		delta.context = delta.context.AddDot(dot).Compress()
	}

	delta.context = delta.context.AddDot(fresh).Compress()
	delta.entries[fresh] = value

	return DeltaAWSet{
		state: AWSet{store: store},
		delta: delta,
	}
}

// Remove deletes value from the full state and records the affected dots
// as tombstones in the delta.
func (s DeltaAWSet) Remove(value interface{}) DeltaAWSet {

	store, removed := s.state.store.remove(value)

	delta := s.delta.clone()

	for _, dot := range removed {
		delete(delta.entries, dot)
		delta.context = delta.context.AddDot(dot).Compress()
	}

	return DeltaAWSet{
		state: AWSet{store: store},
		delta: delta,
	}
}

// Lookup returns true if value e is present in the full state.
func (s DeltaAWSet) Lookup(e interface{}) bool {
	return s.state.Lookup(e)
}

// Value returns the deduplicated elements of the full state.
func (s DeltaAWSet) Value() []interface{} {
	return s.state.Value()
}

// Merge joins two delta-tracked sets pairwise: full state with full
// state, delta with delta.
func (s DeltaAWSet) Merge(other DeltaAWSet) DeltaAWSet {

	return DeltaAWSet{
		state: s.state.Merge(other.state),
		delta: s.delta.Merge(other.delta),
	}
}

// MergeDelta is the anti-entropy entry point: it applies a delta
// received from a remote replica to both the full state and the local
// delta, so the increment travels onwards during the next exchange.
func (s DeltaAWSet) MergeDelta(remote DotStore) DeltaAWSet {

	return DeltaAWSet{
		state: AWSet{store: s.state.store.Merge(remote)},
		delta: s.delta.Merge(remote),
	}
}

// ResetDelta clears the accumulated delta after a completed exchange
// round. When to reset is the caller's policy, not this package's.
func (s DeltaAWSet) ResetDelta() DeltaAWSet {

	return DeltaAWSet{
		state: s.state,
		delta: InitDotStore(),
	}
}
