package crdt

// Embeddable is the capability every value stored inside an AWMap has to
// provide: a pure projection to an application-visible value, and a join
// with another instance of the same concrete type.
//
// Merge must be commutative, associative and idempotent over same-typed
// instances. Calling Merge with a different concrete type is a
// programmer error and panics; the package never arrives there as long
// as one key holds one type across all replicas.
type Embeddable interface {
	Value() interface{}
	Merge(other Embeddable) Embeddable
}
