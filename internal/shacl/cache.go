package shacl

// cacheSlots is the property-count cache's fixed table size: 1024
// entries addressed by the 10-bit key spec §4.6 specifies.
const cacheSlots = 1024

type cacheEntry struct {
	node  TermID
	pred  TermID
	count int
	valid bool
}

// PropertyCountCache memoises property-count(node, pred) in a
// direct-mapped table. Collisions overwrite the existing entry (spec
// §9's open question resolves to "overwrite is the shipped policy";
// see DESIGN.md for the tradeoff this accepts).
type PropertyCountCache struct {
	entries [cacheSlots]cacheEntry
}

// index implements spec §4.6's key formula exactly:
// (node_id & 0x3F) << 4 | (property_id & 0xF).
func cacheIndex(node, pred TermID) int {
	return int(((uint32(node) & 0x3F) << 4) | (uint32(pred) & 0xF))
}

// Get returns the cached count for (node, pred), and whether the slot
// actually holds that exact pair (a collision with a different pair is
// reported as a miss, not a stale hit).
func (c *PropertyCountCache) Get(node, pred TermID) (int, bool) {
	e := &c.entries[cacheIndex(node, pred)]
	if e.valid && e.node == node && e.pred == pred {
		return e.count, true
	}
	return 0, false
}

// Set stores count for (node, pred), overwriting whatever previously
// occupied that slot.
func (c *PropertyCountCache) Set(node, pred TermID, count int) {
	c.entries[cacheIndex(node, pred)] = cacheEntry{node: node, pred: pred, count: count, valid: true}
}

// Invalidate clears every entry. Called eagerly whenever the backing
// store mutates (spec: "Invalidated wholesale on any store mutation").
func (c *PropertyCountCache) Invalidate() {
	for i := range c.entries {
		c.entries[i] = cacheEntry{}
	}
}

// Pair names a (node, predicate) combination to pre-populate.
type Pair struct {
	Node TermID
	Pred TermID
}

// Warmup pre-populates the cache for a known set of (node, predicate)
// pairs, typically called once after a bulk insert.
func (c *PropertyCountCache) Warmup(count func(node, pred TermID) int, pairs []Pair) {
	for _, p := range pairs {
		c.Set(p.Node, p.Pred, count(p.Node, p.Pred))
	}
}
