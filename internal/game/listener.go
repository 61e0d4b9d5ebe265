package game

import "github.com/lgbarn/chessplay-go/internal/chess"

// BoardEvent describes the board after a change.
type BoardEvent struct {
	FEN string
	// LastMove is the move just applied, or the zero Move after an undo.
	LastMove chess.Move
	Undo     bool
	Status   State
}

// Listener receives controller notifications. Calls are made from a
// dedicated goroutine, in order, never while the controller's lock is
// held. A listener may query the controller but must not call Wait.
type Listener interface {
	BoardChanged(BoardEvent)
	StateChanged(State)
	SearchProgress(percent int)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	OnBoardChanged   func(BoardEvent)
	OnStateChanged   func(State)
	OnSearchProgress func(int)
}

func (l ListenerFuncs) BoardChanged(e BoardEvent) {
	if l.OnBoardChanged != nil {
		l.OnBoardChanged(e)
	}
}

func (l ListenerFuncs) StateChanged(s State) {
	if l.OnStateChanged != nil {
		l.OnStateChanged(s)
	}
}

func (l ListenerFuncs) SearchProgress(percent int) {
	if l.OnSearchProgress != nil {
		l.OnSearchProgress(percent)
	}
}

// event is one queued notification.
type event func(Listener)

// enqueueL queues a notification. Caller holds c.mu.
func (c *Controller) enqueueL(e event) {
	if c.listener == nil || c.wakeClosed {
		return
	}
	c.pending = append(c.pending, e)
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// notify delivers queued notifications until the controller is closed.
func (c *Controller) notify() {
	defer close(c.notifyDone)
	for range c.wake {
		c.mu.Lock()
		batch := c.pending
		c.pending = nil
		c.delivering = len(batch) > 0
		c.mu.Unlock()

		for _, e := range batch {
			e(c.listener)
		}

		c.mu.Lock()
		c.delivering = false
		c.idle.Broadcast()
		c.mu.Unlock()
	}

	c.mu.Lock()
	batch := c.pending
	c.pending = nil
	c.mu.Unlock()
	for _, e := range batch {
		e(c.listener)
	}

	c.mu.Lock()
	c.idle.Broadcast()
	c.mu.Unlock()
}
