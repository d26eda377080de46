package crdt

// PNCounter is a counter supporting increments and decrements. It keeps
// two independent per-actor maps, one for increments and one for
// decrements, merges each by pointwise maximum and reports their
// difference as its value.
type PNCounter struct {
	pos map[string]uint64
	neg map[string]uint64
}

// InitPNCounter returns a zeroed new PN counter.
func InitPNCounter() PNCounter {

	return PNCounter{
		pos: make(map[string]uint64),
		neg: make(map[string]uint64),
	}
}

func (c PNCounter) clone() PNCounter {

	next := InitPNCounter()

	for actor, count := range c.pos {
		next.pos[actor] = count
	}

	for actor, count := range c.neg {
		next.neg[actor] = count
	}

	return next
}

// Inc increments actor's positive slot by n.
func (c PNCounter) Inc(actor string, n uint64) PNCounter {

	next := c.clone()
	next.pos[actor] += n

	return next
}

// Dec increments actor's negative slot by n.
func (c PNCounter) Dec(actor string, n uint64) PNCounter {

	next := c.clone()
	next.neg[actor] += n

	return next
}

// Value returns sum(pos) - sum(neg) as a signed integer.
func (c PNCounter) Value() interface{} {

	var posSum, negSum uint64

	for _, count := range c.pos {
		posSum += count
	}

	for _, count := range c.neg {
		negSum += count
	}

	return int64(posSum) - int64(negSum)
}

// Merge joins two PN counters by pointwise maximum over both maps
// independently.
func (c PNCounter) Merge(other Embeddable) Embeddable {

	o := other.(PNCounter)

	next := c.clone()

	for actor, count := range o.pos {

		if count > next.pos[actor] {
			next.pos[actor] = count
		}
	}

	for actor, count := range o.neg {

		if count > next.neg[actor] {
			next.neg[actor] = count
		}
	}

	return next
}
