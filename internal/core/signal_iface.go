package core

// Frame is one encoded outbound message.
type Frame []byte

// SignalConnection abstracts the per-connection messaging transport a
// TownListener writes to. Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	// TrySend queues f without blocking.
	TrySend(f Frame) error
	// Drain stops accepting frames and closes once queued ones are written.
	Drain()
	Close()
}
