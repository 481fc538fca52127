package views

import "context"

// requestGuard sequences the reads of one component. Starting a read cancels
// the previous one; only the latest read may apply its result. Callers hold
// the component mutex.
type requestGuard struct {
	seq    uint64
	cancel context.CancelFunc
	closed bool
}

func (g *requestGuard) start(parent context.Context) (context.Context, uint64) {
	if g.cancel != nil {
		g.cancel()
	}
	g.seq++
	ctx, cancel := context.WithCancel(parent)
	g.cancel = cancel
	return ctx, g.seq
}

// settle reports whether seq is still the latest read and releases its
// context.
func (g *requestGuard) settle(seq uint64) bool {
	if g.closed || seq != g.seq {
		return false
	}
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	return true
}

func (g *requestGuard) close() {
	g.closed = true
	g.seq++
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}
