/*
Package crdt implements state-based conflict-free replicated data types
(CvRDTs) with causal, tombstone-free removal semantics.

The core of the package is the causal machinery: a CausalContext tracking the
dots (actor-version event identifiers) a replica has observed, and a DotStore
binding live values to dots on top of such a context. An add-wins
observed-removed set (AWSet), its delta-state variant (DeltaAWSet) and a
recursive add-wins map (AWMap) are built on these two. Grow-only and PN
counters as well as a last-writer-wins register round the package off as
embeddable values for the map.

CAUTION! Consider these two requirements:
  - Every type in this package has value semantics: operations never mutate
    their receiver but return a fresh aggregate. Two replicas therefore never
    share backing storage, and retained snapshots stay valid across updates.
  - Element values and map keys are compared with the built-in equality of
    interface values. Only comparable values may be stored, or lookups and
    removals will panic the way map access on an uncomparable key does.

Merging any two states of the same type is commutative, associative and
idempotent, so replicas converge regardless of the order, duplication or
delay with which states or deltas are exchanged.

The state-based set semantics of this package are a practical derivation from
the specification of conflict-free replicated data types by Shapiro,
Preguiça, Baquero and Zawirski, available under:
https://hal.inria.fr/inria-00555588/document
The causal-context representation follows the delta-state work of Almeida,
Shoker and Baquero: https://arxiv.org/abs/1603.01529
*/
package crdt
