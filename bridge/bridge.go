// Package bridge pumps key events from a source through the key table into an
// X68000 keyboard line.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"x68kbd/keytable"
)

// Event is one key transition. Sources that only know make-codes always set
// Press.
type Event struct {
	Code  keytable.Scancode
	Press bool
}

// Source yields events until it returns an error; io.EOF ends a run cleanly.
type Source interface {
	ReadEvent(ctx context.Context) (Event, error)
}

// DefaultMaxHooks bounds unmapped-key hooks running at once.
const DefaultMaxHooks = 4

type Options struct {
	Table    keytable.Table
	Policy   *Policy // nil = ignore
	Sink     Sink
	Log      zerolog.Logger
	Metrics  *Metrics // may be nil
	MaxHooks int      // 0 = DefaultMaxHooks
}

// Bridge is safe for concurrent use. Table and policy can be swapped while
// Run is pumping events.
type Bridge struct {
	table   atomic.Pointer[keytable.Table]
	policy  atomic.Pointer[Policy]
	sink    Sink
	log     zerolog.Logger
	metrics *Metrics

	mu sync.Mutex // serializes sink writes

	// Hooks run under ctx; Close cancels it. A press that finds every slot
	// taken skips its hook.
	ctx    context.Context
	cancel context.CancelFunc
	slots  chan struct{}
	hooks  sync.WaitGroup
}

func New(opts Options) *Bridge {
	b := &Bridge{
		sink:    opts.Sink,
		log:     opts.Log,
		metrics: opts.Metrics,
	}
	if b.sink == nil {
		b.sink = NewLineSink(io.Discard)
	}
	n := opts.MaxHooks
	if n <= 0 {
		n = DefaultMaxHooks
	}
	b.slots = make(chan struct{}, n)
	b.ctx, b.cancel = context.WithCancel(context.Background())
	b.SetTable(opts.Table)
	b.SetPolicy(opts.Policy)
	return b
}

func (b *Bridge) SetTable(t keytable.Table) {
	b.table.Store(&t)
}

func (b *Bridge) Table() keytable.Table {
	return *b.table.Load()
}

func (b *Bridge) SetPolicy(p *Policy) {
	if p == nil {
		p = &Policy{Action: ActionIgnore}
	}
	b.policy.Store(p)
}

func (b *Bridge) Policy() *Policy {
	return b.policy.Load()
}

// Handle translates one event and writes it to the sink. Events without a
// keycode are handed to the unmapped policy instead; only sink failures are
// returned.
func (b *Bridge) Handle(ev Event) error {
	kc, st := b.Table().Lookup(ev.Code)
	b.metrics.event(st)

	if st != keytable.Mapped {
		b.unmapped(ev, st)
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.sink.WriteKey(kc, ev.Press); err != nil {
		return fmt.Errorf("unable to write keycode %s: %w", kc, err)
	}
	b.log.Debug().
		Stringer("scancode", ev.Code).
		Stringer("keycode", kc).
		Bool("press", ev.Press).
		Msg("key")
	return nil
}

// Run pumps events from src until it is exhausted, ctx is done, or the sink
// fails.
func (b *Bridge) Run(ctx context.Context, src Source) error {
	for {
		ev, err := src.ReadEvent(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("unable to read event: %w", err)
		}
		if err := b.Handle(ev); err != nil {
			return err
		}
	}
}

// Close kills running hooks and waits for them to exit. Hooks without a
// timeout would otherwise hold shutdown forever.
func (b *Bridge) Close() error {
	b.cancel()
	b.hooks.Wait()
	return nil
}

func (b *Bridge) unmapped(ev Event, st keytable.Status) {
	// Releases of unmapped keys carry nothing the press didn't.
	if !ev.Press {
		return
	}

	p := b.Policy()
	switch p.Action {
	case ActionLog, ActionExec:
		b.log.Warn().
			Stringer("scancode", ev.Code).
			Stringer("status", st).
			Str("name", keytable.Name(ev.Code)).
			Msg("no keycode for scancode")
	}
	if p.Action != ActionExec || p.Hook == nil {
		return
	}

	select {
	case b.slots <- struct{}{}:
	default:
		b.log.Warn().
			Stringer("scancode", ev.Code).
			Int("running", cap(b.slots)).
			Msg("too many hooks running, skipped")
		b.metrics.hookSkipped()
		return
	}

	hook := p.hookFor(ev.Code, st)
	b.hooks.Add(1)
	go func() {
		defer func() {
			<-b.slots
			b.hooks.Done()
		}()
		r := hook.Run(b.ctx)
		if r.Status != 0 || r.TimedOut {
			b.log.Warn().
				Str("command", r.Command).
				Int("status", r.Status).
				Bool("timed_out", r.TimedOut).
				Bytes("stderr", r.StdErr).
				Msg("unmapped hook failed")
		}
		b.metrics.hook(r)
	}()
}
