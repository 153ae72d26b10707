package storage

import (
	"context"
	"sync"
	"time"
)

// Saver debounces snapshot writes so a burst of mutations costs one write.
// Mutations never block on the disk: Queue replaces the pending payload
// and returns. Close flushes whatever is still pending, which bounds the
// loss window on a clean shutdown to zero and on a crash to the debounce
// interval.
type Saver struct {
	snaps    *Snapshots
	key      string
	debounce time.Duration
	onError  func(error)

	mu      sync.Mutex
	pending []byte
	dirty   bool

	wakeup chan struct{}
	stopCh chan struct{}
	doneCh chan struct{}
	once   sync.Once
}

func NewSaver(snaps *Snapshots, key string, debounce time.Duration, onError func(error)) *Saver {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	if onError == nil {
		onError = func(error) {}
	}
	s := &Saver{
		snaps:    snaps,
		key:      key,
		debounce: debounce,
		onError:  onError,
		wakeup:   make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	go s.loop()
	return s
}

// Queue replaces the pending payload. The latest write wins; intermediate
// snapshots are never needed because each payload is the whole state.
func (s *Saver) Queue(payload []byte) {
	s.mu.Lock()
	s.pending = payload
	s.dirty = true
	s.mu.Unlock()
	select {
	case s.wakeup <- struct{}{}:
	default:
	}
}

// Flush writes any pending payload immediately. Used on app suspend.
func (s *Saver) Flush() error {
	payload, ok := s.take()
	if !ok {
		return nil
	}
	return s.write(payload)
}

// Close stops the loop and flushes pending state.
func (s *Saver) Close() error {
	s.once.Do(func() { close(s.stopCh) })
	<-s.doneCh
	return s.Flush()
}

func (s *Saver) loop() {
	defer close(s.doneCh)
	var timer *time.Timer
	for {
		select {
		case <-s.wakeup:
			timer = resetTimer(timer, s.debounce)
		case <-s.stopCh:
			if timer != nil {
				stopTimer(timer)
			}
			return
		}

		select {
		case <-timer.C:
			if payload, ok := s.take(); ok {
				if err := s.write(payload); err != nil {
					s.onError(err)
				}
			}
		case <-s.wakeup:
			// Another mutation landed inside the window; restart it by
			// re-queuing the wakeup for the outer select.
			select {
			case s.wakeup <- struct{}{}:
			default:
			}
		case <-s.stopCh:
			stopTimer(timer)
			return
		}
	}
}

func (s *Saver) take() ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil, false
	}
	payload := s.pending
	s.pending = nil
	s.dirty = false
	return payload, true
}

func (s *Saver) write(payload []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.snaps.Save(ctx, s.key, payload)
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
