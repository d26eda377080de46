package crdt

import (
	"github.com/pkg/errors"
)

// Variables

// Errors of the strict map accessors. Tolerant accessors (Fetch, Get,
// and the default form of Update) never produce them.
var (
	// ErrKeyNotFound is returned when a strict accessor addresses an
	// absent key.
	ErrKeyNotFound = errors.New("key not found in map")

	// ErrNotEmbeddable is returned when a nil value is offered to the
	// map. It is raised before any state changes, leaving the map as-is.
	ErrNotEmbeddable = errors.New("value does not provide the embeddable capability")

	// ErrNotNestedMap is returned by path access when an intermediate
	// path element does not hold an embedded map.
	ErrNotNestedMap = errors.New("path element is not a nested map")
)

// Structs

// AWMap is a recursive add-wins container mapping keys to arbitrary
// embedded CRDT values. Key causality is tracked through an internal
// add-wins set of the keys, while a plain map holds the current value
// per key; both are kept in lockstep by Put. Because AWMap itself
// provides the embeddable capability, maps nest inside maps, reachable
// through the path accessors.
type AWMap struct {
	keys    AWSet
	entries map[string]Embeddable
}

// Functions

// InitAWMap returns an empty initialized new add-wins map.
func InitAWMap() AWMap {

	return AWMap{
		keys:    InitAWSet(),
		entries: make(map[string]Embeddable),
	}
}

// clone returns a copy of the map. Entry values are shared, which is
// safe because embeddable values are treated as immutable.
func (m AWMap) clone() AWMap {

	next := AWMap{
		keys:    AWSet{store: m.keys.store.clone()},
		entries: make(map[string]Embeddable, len(m.entries)),
	}

	for key, value := range m.entries {
		next.entries[key] = value
	}

	return next
}

// Put binds key to value on behalf of actor: the key joins the causal
// key set and the entry is overwritten unconditionally. A prior local
// value for the same key is replaced, not merged. A nil value is
// rejected before any state mutation.
func (m AWMap) Put(actor string, key string, value Embeddable) (AWMap, error) {

	if value == nil {
		return m, errors.Wrapf(ErrNotEmbeddable, "put of key '%s'", key)
	}

	next := m.clone()
	next.keys = next.keys.Add(actor, key)
	next.entries[key] = value

	return next, nil
}

// Fetch returns the value bound to key and whether the key is present.
func (m AWMap) Fetch(key string) (Embeddable, bool) {

	value, found := m.entries[key]

	return value, found
}

// MustFetch returns the value bound to key and fails if it is absent.
func (m AWMap) MustFetch(key string) (Embeddable, error) {

	value, found := m.entries[key]
	if !found {
		return nil, errors.Wrapf(ErrKeyNotFound, "fetch of key '%s'", key)
	}

	return value, nil
}

// Get returns the value bound to key, or def if the key is absent.
func (m AWMap) Get(key string, def Embeddable) Embeddable {

	if value, found := m.entries[key]; found {
		return value
	}

	return def
}

// Keys returns the currently present keys in no specified order.
func (m AWMap) Keys() []string {

	keys := make([]string, 0, len(m.entries))

	for key := range m.entries {
		keys = append(keys, key)
	}

	return keys
}

// Len returns the number of present keys.
func (m AWMap) Len() int {
	return len(m.entries)
}

// Update transforms the value at key through fn on behalf of actor. An
// absent key is bound to def directly, bypassing fn.
func (m AWMap) Update(actor string, key string, def Embeddable, fn func(Embeddable) Embeddable) (AWMap, error) {

	current, found := m.entries[key]
	if !found {
		return m.Put(actor, key, def)
	}

	return m.Put(actor, key, fn(current))
}

// MustUpdate transforms the value at key through fn on behalf of actor
// and fails if the key is absent.
func (m AWMap) MustUpdate(actor string, key string, fn func(Embeddable) Embeddable) (AWMap, error) {

	current, found := m.entries[key]
	if !found {
		return m, errors.Wrapf(ErrKeyNotFound, "update of key '%s'", key)
	}

	return m.Put(actor, key, fn(current))
}

// GetIn traverses a path of nested maps and returns the value at its
// final key, or def if only the final key is absent. Every intermediate
// key must be present and hold an embedded map.
func (m AWMap) GetIn(path []string, def Embeddable) (Embeddable, error) {

	if len(path) == 0 {
		return def, nil
	}

	if len(path) == 1 {
		return m.Get(path[0], def), nil
	}

	inner, err := m.MustFetch(path[0])
	if err != nil {
		return nil, err
	}

	innerMap, ok := inner.(AWMap)
	if !ok {
		return nil, errors.Wrapf(ErrNotNestedMap, "get through key '%s'", path[0])
	}

	return innerMap.GetIn(path[1:], def)
}

// PutIn binds the final key of path to value, rebuilding every ancestor
// map via Put so the change propagates causally on every level, all on
// behalf of the same actor. Missing intermediate maps are created.
func (m AWMap) PutIn(actor string, path []string, value Embeddable) (AWMap, error) {

	if len(path) == 0 {
		return m, errors.Wrap(ErrKeyNotFound, "put of empty path")
	}

	if len(path) == 1 {
		return m.Put(actor, path[0], value)
	}

	inner := m.Get(path[0], InitAWMap())

	innerMap, ok := inner.(AWMap)
	if !ok {
		return m, errors.Wrapf(ErrNotNestedMap, "put through key '%s'", path[0])
	}

	rebuilt, err := innerMap.PutIn(actor, path[1:], value)
	if err != nil {
		return m, err
	}

	return m.Put(actor, path[0], rebuilt)
}

// UpdateIn transforms the value at the final key of path through fn,
// rebuilding every ancestor map on behalf of the same actor. Unlike
// PutIn it fails if any key of the path is absent.
func (m AWMap) UpdateIn(actor string, path []string, fn func(Embeddable) Embeddable) (AWMap, error) {

	if len(path) == 0 {
		return m, errors.Wrap(ErrKeyNotFound, "update of empty path")
	}

	if len(path) == 1 {
		return m.MustUpdate(actor, path[0], fn)
	}

	inner, err := m.MustFetch(path[0])
	if err != nil {
		return m, err
	}

	innerMap, ok := inner.(AWMap)
	if !ok {
		return m, errors.Wrapf(ErrNotNestedMap, "update through key '%s'", path[0])
	}

	rebuilt, err := innerMap.UpdateIn(actor, path[1:], fn)
	if err != nil {
		return m, err
	}

	return m.Put(actor, path[0], rebuilt)
}

// Value projects the map to a plain map from key to the projected value
// of each entry, recursing through nested maps.
func (m AWMap) Value() interface{} {

	projected := make(map[string]interface{}, len(m.entries))

	for key, value := range m.entries {
		projected[key] = value.Value()
	}

	return projected
}

// Merge joins two maps: the key sets merge per the add-wins set rules to
// the converged key set, and for every surviving key the values of both
// sides merge through their own capability. A key whose value only ever
// existed on one side carries that side's value forward unchanged.
// Entries whose key did not survive the key-set merge are dropped.
func (m AWMap) Merge(other Embeddable) Embeddable {

	o := other.(AWMap)

	keys := m.keys.Merge(o.keys)

	next := AWMap{
		keys:    keys,
		entries: make(map[string]Embeddable, len(m.entries)),
	}

	for _, key := range keys.Value() {

		k := key.(string)

		left, foundLeft := m.entries[k]
		right, foundRight := o.entries[k]

		switch {
		case foundLeft && foundRight:
			next.entries[k] = left.Merge(right)
		case foundLeft:
			next.entries[k] = left
		case foundRight:
			next.entries[k] = right
		}
	}

	return next
}
