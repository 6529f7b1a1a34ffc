package websocket

const DefaultMaxConnections = 32

// Semaphore caps the number of concurrently open log streams.
type Semaphore struct {
	slots chan struct{}
}

func NewSemaphore(maxConnections int) *Semaphore {
	if maxConnections <= 0 {
		maxConnections = DefaultMaxConnections
	}
	return &Semaphore{
		slots: make(chan struct{}, maxConnections),
	}
}

// TryAcquire takes a slot without blocking.
func (s *Semaphore) TryAcquire() bool {
	select {
	case s.slots <- struct{}{}:
		return true
	default:
		return false
	}
}

// Release frees a slot. Releasing an empty semaphore is a no-op.
func (s *Semaphore) Release() {
	select {
	case <-s.slots:
	default:
	}
}

func (s *Semaphore) InUse() int {
	return len(s.slots)
}

func (s *Semaphore) Capacity() int {
	return cap(s.slots)
}
