package kvdb

// Iterator walks key/value pairs in ascending key order. Returned slices
// are only valid until the next call to Next.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte

	// Release may be called more than once
	Release()

	// Error reports a failure during the walk. Running out of pairs is not
	// an error.
	Error() error
}

// Iteratee opens iterators over one key prefix. start is relative to the
// prefix and may be nil.
type Iteratee interface {
	NewIterator(prefix, start []byte) Iterator
}
