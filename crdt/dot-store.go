package crdt

// Structs

// DotStore is a causally-indexed container binding live values to the
// unique dots under which they were written. Values that were removed
// leave no explicit tombstone: a dot that is known by the causal context
// but absent from the entries marks a deletion.
type DotStore struct {
	context CausalContext
	entries map[Dot]interface{}
}

// Functions

// InitDotStore returns an empty initialized new dot store.
func InitDotStore() DotStore {

	return DotStore{
		context: InitCausalContext(),
		entries: make(map[Dot]interface{}),
	}
}

// clone returns a deep copy of the store. Stored values themselves are
// not copied: the package treats them as opaque immutable tokens.
func (s DotStore) clone() DotStore {

	next := DotStore{
		context: s.context.clone(),
		entries: make(map[Dot]interface{}, len(s.entries)),
	}

	for dot, value := range s.entries {
		next.entries[dot] = value
	}

	return next
}

// Context exposes the causal context of the store.
func (s DotStore) Context() CausalContext {
	return s.context.clone()
}

// Entries returns a copy of the live dot-to-value bindings, e.g. for
// callers encoding the store for transfer.
func (s DotStore) Entries() map[Dot]interface{} {

	entries := make(map[Dot]interface{}, len(s.entries))

	for dot, value := range s.entries {
		entries[dot] = value
	}

	return entries
}

// Add stamps a fresh dot for the supplied actor and binds value to it.
func (s DotStore) Add(actor string, value interface{}) DotStore {

	next, _ := s.add(actor, value)

	return next
}

// add is the internal form of Add. It additionally hands the stamped dot
// back to callers that mirror updates into a delta store.
func (s DotStore) add(actor string, value interface{}) (DotStore, Dot) {

	next := s.clone()

	d, ctx := next.context.NextDot(actor)
	next.context = ctx
	next.entries[d] = value

	return next, d
}

// Remove deletes every entry currently holding the supplied value. The
// affected dots stay known by the causal context, which is exactly what
// marks the value as removed rather than never-seen.
func (s DotStore) Remove(value interface{}) DotStore {

	next, _ := s.remove(value)

	return next
}

// remove is the internal form of Remove, returning the dots whose
// entries were deleted so delta-tracked callers can record them.
func (s DotStore) remove(value interface{}) (DotStore, []Dot) {

	next := s.clone()

	removed := make([]Dot, 0, 1)

	for dot, held := range next.entries {

		if held == value {
			removed = append(removed, dot)
			delete(next.entries, dot)
		}
	}

	return next, removed
}

// Lookup cycles through the live entries and returns true
// if value e is present and false otherwise.
func (s DotStore) Lookup(e interface{}) bool {

	for _, value := range s.entries {

		if e == value {
			return true
		}
	}

	return false
}

// Values returns the values of all live entries in no specified order.
// A value held under multiple concurrent dots appears multiple times.
func (s DotStore) Values() []interface{} {

	values := make([]interface{}, 0, len(s.entries))

	for _, value := range s.entries {
		values = append(values, value)
	}

	return values
}

// Len returns the number of live entries.
func (s DotStore) Len() int {
	return len(s.entries)
}

// Merge joins s with other into a new store. The join must never
// resurrect a removed value, so remote entries are only absorbed when
// they are genuinely unseen, and local entries are only dropped when the
// other side provably observed and removed them:
//
//  1. Start from s's entries.
//  2. Absorb every entry of other that s neither holds nor knows. A dot
//     s knows but does not hold was removed here, so it stays out.
//  3. Drop every remaining entry whose dot other knows but does not
//     hold: other observed that entry and removed it.
//  4. The resulting causal context is the merge of both contexts.
func (s DotStore) Merge(other DotStore) DotStore {

	next := s.clone()

	for dot, value := range other.entries {

		if _, held := next.entries[dot]; held {
			continue
		}

		if next.context.Contains(dot) {
			// Known but absent: we removed it. Do not resurrect.
			continue
		}

		next.entries[dot] = value
	}

	for dot := range next.entries {

		if _, held := other.entries[dot]; held {
			continue
		}

		if other.context.Contains(dot) {
			// The other side observed this entry and removed it.
			delete(next.entries, dot)
		}
	}

	next.context = next.context.Merge(other.context)

	return next
}
