package lattice

// KeyWrapper is implemented by the key abstractions of segmented
// containers. A key wrapper is tagged with a key variable, denoting the
// key space covered by one segment of the container.
type KeyWrapper interface {
	Element

	// KeyVar retrieves the variable denoting the keys of the segment.
	KeyVar() Variable
	// IsSingleton holds if the segment denotes exactly one concrete key.
	// Only then may the value of the segment be strongly updated.
	IsSingleton() bool
	// Decomp partitions the key space of the receiver, minus the keys
	// overlapping exclude, into segments that are pairwise disjoint and
	// disjoint from exclude. Together with exclude, they cover every key
	// of the receiver. The result is empty if exclude covers the receiver.
	// Decomp reports false if no such partition can be computed.
	Decomp(exclude KeyWrapper) ([]KeyWrapper, bool)
	// Less is a fixed total order over segments, used to give containers
	// a unique representation. It is unrelated to the lattice order.
	Less(KeyWrapper) bool
}
