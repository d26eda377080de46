package crdt

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Structs

// AWSet is an add-wins observed-removed set built directly on a DotStore.
// When an add and a remove of the same element happen concurrently on
// different replicas, the add survives the merge.
type AWSet struct {
	store DotStore
}

// Functions

// InitAWSet returns an empty initialized new add-wins set.
func InitAWSet() AWSet {

	return AWSet{store: InitDotStore()}
}

// Store exposes the underlying dot store of the set.
func (s AWSet) Store() DotStore {
	return s.store.clone()
}

// Add inserts value into the set on behalf of actor. Any dot currently
// holding the value is removed first, including dots stamped by other
// actors that this replica has observed, so the newest causally-visible
// add always dominates. Concurrent adds of the same value by different
// actors are not collapsed locally but deduplicated on read.
func (s AWSet) Add(actor string, value interface{}) AWSet {

	return AWSet{store: s.store.Remove(value).Add(actor, value)}
}

// Remove deletes value from the set, leaving the causal
// tombstone described in the DotStore documentation.
func (s AWSet) Remove(value interface{}) AWSet {

	return AWSet{store: s.store.Remove(value)}
}

// Lookup returns true if value e is present in the set.
func (s AWSet) Lookup(e interface{}) bool {
	return s.store.Lookup(e)
}

// Value returns the elements of the set, deduplicated: a value held
// under multiple concurrent dots is reported exactly once.
func (s AWSet) Value() []interface{} {

	distinct := mapset.NewThreadUnsafeSet[interface{}]()

	for _, value := range s.store.Values() {
		distinct.Add(value)
	}

	return distinct.ToSlice()
}

// Merge joins s with other. The semilattice property follows directly
// from the DotStore join.
//
// Known limitation inherited from the underlying join: a local remove
// interacting with a not-yet-delivered remote add of the same value can
// produce results that diverge from the canonical add-wins set
// literature. The behavior is deliberately kept as documented and is
// pinned by an explicit test rather than silently changed.
func (s AWSet) Merge(other AWSet) AWSet {

	return AWSet{store: s.store.Merge(other.store)}
}
