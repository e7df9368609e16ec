package kvdb

// Batch buffers changes until Write applies all of them atomically. The
// store relies on it for each commit of an executed certificate.
type Batch interface {
	KVWriter

	// ValueSize is the number of key and value bytes queued
	ValueSize() int

	Write() error

	// Reset empties the batch so it can be reused
	Reset()
}

type Batcher interface {
	NewBatch() Batch
}
