package crdt

// GCounter is a grow-only counter: every actor increments its own slot
// and the counter value is the sum over all slots. Merging takes the
// pointwise maximum per actor, which is commutative, associative and
// idempotent because slots only ever grow.
type GCounter struct {
	counts map[string]uint64
}

// InitGCounter returns a zeroed new grow-only counter.
func InitGCounter() GCounter {

	return GCounter{counts: make(map[string]uint64)}
}

// InitGCounterFromCounts returns a counter seeded with the supplied
// per-actor counts, e.g. for reconstructing remote state.
func InitGCounterFromCounts(counts map[string]uint64) GCounter {

	c := InitGCounter()

	for actor, count := range counts {
		c.counts[actor] = count
	}

	return c
}

// Inc increments actor's slot by n.
func (c GCounter) Inc(actor string, n uint64) GCounter {

	next := InitGCounterFromCounts(c.counts)
	next.counts[actor] += n

	return next
}

// Value returns the counter value, the sum over all actor slots.
func (c GCounter) Value() interface{} {

	var sum uint64

	for _, count := range c.counts {
		sum += count
	}

	return sum
}

// Merge joins two grow-only counters by pointwise maximum.
func (c GCounter) Merge(other Embeddable) Embeddable {

	o := other.(GCounter)

	next := InitGCounterFromCounts(c.counts)

	for actor, count := range o.counts {

		if count > next.counts[actor] {
			next.counts[actor] = count
		}
	}

	return next
}
