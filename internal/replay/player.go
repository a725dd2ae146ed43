package replay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/protunedev/protune/internal/sequence"
)

// DefaultKeyDelay is the pause between consecutive key events. Matches the
// 50 ms the in-game menu reliably accepts.
const DefaultKeyDelay = 50 * time.Millisecond

// ErrBusy is returned when Run is called while a replay is in progress. The
// trigger policy is to ignore re-entrant triggers, not queue them.
var ErrBusy = errors.New("replay already running")

// State is the player's lifecycle state. There are only two: a run blocks
// until the full plan has been emitted.
type State int

const (
	// Idle means no replay is in progress.
	Idle State = iota
	// Running means a replay is emitting events.
	Running
)

// Player executes plans against an injector. It holds no memory of prior
// runs; replaying the same plan twice emits two identical streams.
type Player struct {
	mu     sync.Mutex
	state  State
	inj    Injector
	logger *log.Logger
}

// New returns a player that emits through inj.
func New(inj Injector, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{inj: inj, logger: logger}
}

// State reports whether a replay is in progress.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Run emits every event in the plan in order, sleeping delay between
// consecutive events. Injection failures are logged and skipped: with no
// feedback channel there is nothing to retry against, so the run continues.
// Cancelling ctx stops the run between keys and reports the partial run as
// aborted.
//
// A concurrent Run returns ErrBusy without emitting anything.
func (p *Player) Run(ctx context.Context, plan sequence.Plan, delay time.Duration) error {
	p.mu.Lock()
	if p.state == Running {
		p.mu.Unlock()
		return ErrBusy
	}
	p.state = Running
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.state = Idle
		p.mu.Unlock()
	}()

	for i, ev := range plan.Events {
		if err := p.inj.Tap(ev); err != nil {
			// Open-loop: delivery failures are not recoverable.
			p.logger.Warn("key event not delivered", "key", ev.String(), "index", i, "err", err)
		}
		if i == len(plan.Events)-1 {
			break
		}
		select {
		case <-ctx.Done():
			p.logger.Warn("replay aborted", "emitted", i+1, "total", plan.Total())
			return fmt.Errorf("replay aborted: %w", ctx.Err())
		case <-time.After(delay):
		}
	}
	return nil
}

// NotifyDone surfaces a user-visible acknowledgment after a full run: a
// terminal bell and a summary line, the tool's stand-in for the modal the
// original flow showed.
func NotifyDone(w io.Writer, car string, plan sequence.Plan) {
	fmt.Fprintf(w, "\aSettings applied: %s (%d key events)\n", car, plan.Total())
}
