package crdt

// LWWRegister is a last-writer-wins register. The timestamp deciding a
// write's fate is injected by the caller instead of read from a system
// clock, which keeps merges reproducible and tests deterministic.
// Callers that want wall-clock semantics pass time.Now().UnixNano().
type LWWRegister struct {
	value     interface{}
	timestamp int64
}

// InitLWWRegister returns a register holding value as of the supplied
// timestamp.
func InitLWWRegister(value interface{}, timestamp int64) LWWRegister {

	return LWWRegister{
		value:     value,
		timestamp: timestamp,
	}
}

// Set returns a register holding the new value as of the supplied
// timestamp. A timestamp not exceeding the current one still wins
// locally; ordering is only enforced between replicas, at merge time.
func (r LWWRegister) Set(value interface{}, timestamp int64) LWWRegister {

	return LWWRegister{
		value:     value,
		timestamp: timestamp,
	}
}

// Timestamp returns the timestamp of the current value.
func (r LWWRegister) Timestamp() int64 {
	return r.timestamp
}

// Value returns the register's current value.
func (r LWWRegister) Value() interface{} {
	return r.value
}

// Merge keeps the write with the greater timestamp. On a timestamp tie
// the argument wins over the receiver, making the tie-break the same on
// both replicas only if they agree on argument order; exchanging
// distinct values under equal timestamps is a caller mistake the
// register cannot repair.
func (r LWWRegister) Merge(other Embeddable) Embeddable {

	o := other.(LWWRegister)

	if r.timestamp > o.timestamp {
		return r
	}

	return o
}
