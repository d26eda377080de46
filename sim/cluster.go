package sim

import (
	"math/rand"
	"reflect"
	"sort"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	uuid "github.com/satori/go.uuid"

	"github.com/platogo/crdt/config"
	"github.com/platogo/crdt/crdt"
)

// Structs

// Replica is one simulated writer: a unique actor identity, a
// delta-tracked add-wins set of elements and an add-wins map collecting
// per-replica statistics.
type Replica struct {
	ID    string
	Set   crdt.DeltaAWSet
	Stats crdt.AWMap
}

// Cluster owns a group of replicas and runs a scenario against them:
// rounds of independent random updates, interleaved with full-mesh
// delta exchanges, followed by a final reconciliation.
type Cluster struct {
	logger   log.Logger
	metrics  *Metrics
	rng      *rand.Rand
	scenario config.Simulation
	replicas []*Replica
	steps    int64
}

// Functions

// NewCluster assembles the replicas of a scenario. Every replica
// receives a fresh UUID as its actor identity, upholding the
// one-writer-per-actor discipline the crdt package requires.
func NewCluster(logger log.Logger, metrics *Metrics, scenario config.Simulation) *Cluster {

	c := &Cluster{
		logger:   logger,
		metrics:  metrics,
		rng:      rand.New(rand.NewSource(scenario.Seed)),
		scenario: scenario,
		replicas: make([]*Replica, scenario.Replicas),
	}

	for i := range c.replicas {

		c.replicas[i] = &Replica{
			ID:    uuid.NewV4().String(),
			Set:   crdt.InitDeltaAWSet(),
			Stats: crdt.InitAWMap(),
		}
	}

	return c
}

// Replicas exposes the replicas of the cluster.
func (c *Cluster) Replicas() []*Replica {
	return c.replicas
}

// Run plays the configured number of rounds. Each round every replica
// applies its random updates; every SyncEvery rounds the replicas
// exchange deltas. A final exchange and reconciliation closes the run.
func (c *Cluster) Run() error {

	for round := 1; round <= c.scenario.Rounds; round++ {

		for _, replica := range c.replicas {

			for op := 0; op < c.scenario.OpsPerRound; op++ {

				if err := c.step(replica); err != nil {
					return err
				}
			}
		}

		if (round % c.scenario.SyncEvery) == 0 {

			c.exchange()

			level.Debug(c.logger).Log(
				"msg", "completed delta exchange",
				"round", round,
			)
		}
	}

	c.exchange()
	c.reconcile()

	level.Info(c.logger).Log(
		"msg", "scenario finished",
		"rounds", c.scenario.Rounds,
		"replicas", len(c.replicas),
		"elements", len(c.Values()),
	)

	return nil
}

// step applies one random update at the supplied replica: an element
// add or remove on the set, mirrored into the replica's stats map.
func (c *Cluster) step(replica *Replica) error {

	element := c.scenario.Elements[c.rng.Intn(len(c.scenario.Elements))]

	// Lean towards adds so the converged set stays interesting.
	if c.rng.Intn(10) < 6 {
		replica.Set = replica.Set.Add(replica.ID, element)
	} else {
		replica.Set = replica.Set.Remove(element)
	}

	c.steps++
	c.metrics.OpsApplied.Add(1)

	// Count the operation in the replica's slot of the shared counter.
	stats, err := replica.Stats.Update(replica.ID, "ops", crdt.InitGCounter().Inc(replica.ID, 1), func(value crdt.Embeddable) crdt.Embeddable {
		return value.(crdt.GCounter).Inc(replica.ID, 1)
	})
	if err != nil {
		return err
	}

	// Record the touched element under a deterministic logical clock.
	stats, err = stats.Put(replica.ID, "last-element", crdt.InitLWWRegister(element, c.steps))
	if err != nil {
		return err
	}

	replica.Stats = stats

	return nil
}

// exchange ships every replica's accumulated delta to every other
// replica and resets the shipped windows afterwards. The stats maps
// travel as full states, the way non-delta types are synchronized.
func (c *Cluster) exchange() {

	for _, from := range c.replicas {

		delta := from.Set.Delta()

		for _, to := range c.replicas {

			if to == from {
				continue
			}

			to.Set = to.Set.MergeDelta(delta)
			to.Stats = from.Stats.Merge(to.Stats).(crdt.AWMap)

			c.metrics.MergesApplied.Add(1)
		}

		c.metrics.DeltasShipped.Add(1)
	}

	for _, replica := range c.replicas {
		replica.Set = replica.Set.ResetDelta()
	}
}

// reconcile merges all full states pairwise onto every replica, the
// closing anti-entropy round of a scenario.
func (c *Cluster) reconcile() {

	for _, from := range c.replicas {

		for _, to := range c.replicas {

			if to == from {
				continue
			}

			to.Set = to.Set.Merge(from.Set)
			to.Stats = to.Stats.Merge(from.Stats).(crdt.AWMap)

			c.metrics.MergesApplied.Add(1)
		}
	}
}

// Converged reports whether all replicas agree on both the element set
// and the projected stats.
func (c *Cluster) Converged() bool {

	first := c.replicas[0]

	for _, replica := range c.replicas[1:] {

		if !reflect.DeepEqual(sortedElements(replica.Set), sortedElements(first.Set)) {
			return false
		}

		if !reflect.DeepEqual(replica.Stats.Value(), first.Stats.Value()) {
			return false
		}
	}

	return true
}

// Values returns the sorted converged element set as seen by the first
// replica.
func (c *Cluster) Values() []string {
	return sortedElements(c.replicas[0].Set)
}

// sortedElements projects a delta set to its sorted string elements.
func sortedElements(set crdt.DeltaAWSet) []string {

	values := set.Value()

	elements := make([]string, 0, len(values))
	for _, value := range values {
		elements = append(elements, value.(string))
	}
	sort.Strings(elements)

	return elements
}
