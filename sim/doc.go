/*
Package sim drives randomized replication scenarios against the crdt
package: a cluster of in-memory replicas independently updates a
delta-tracked add-wins set and a stats map, periodically exchanges
deltas, and finally reconciles and checks convergence.

The package replaces no transport and persists nothing. Its purpose is
to exercise the merge algebra under realistic interleavings and to give
operational counters something to count.
*/
package sim
