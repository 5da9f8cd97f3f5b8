package bridge

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"x68kbd/keytable"
)

// A, Space (unmapped), Left Shift (outside the active table), Enter.
var input = []byte{0x04, 0x31, 0xe1, 0x28}

func TestEncode(t *testing.T) {
	assert.Equal(t, byte(0x1e), Encode(0x1e, true))
	assert.Equal(t, byte(0x9e), Encode(0x1e, false))
	assert.Equal(t, byte(0xf2), Encode(0x72, false))
}

func TestRun(t *testing.T) {
	var out bytes.Buffer
	b := New(Options{Table: keytable.New(), Sink: NewLineSink(&out)})

	err := b.Run(context.Background(), NewByteSource(bytes.NewReader(input)))
	require.NoError(t, err)
	require.NoError(t, b.Close())

	assert.Equal(t, []byte{0x1e, 0x1d}, out.Bytes())
}

func TestRunExtended(t *testing.T) {
	var out bytes.Buffer
	b := New(Options{Table: keytable.New(keytable.WithExtended(true)), Sink: NewLineSink(&out)})

	require.NoError(t, b.Run(context.Background(), NewByteSource(bytes.NewReader(input))))
	assert.Equal(t, []byte{0x1e, 0x70, 0x1d}, out.Bytes())
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	b := New(Options{Table: keytable.New(), Sink: NewLineSink(&out)})
	require.NoError(t, b.Run(ctx, NewByteSource(bytes.NewReader(input))))
	assert.Empty(t, out.Bytes())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("line down") }

func TestRunSourceError(t *testing.T) {
	b := New(Options{Table: keytable.New()})
	err := b.Run(context.Background(), NewByteSource(failingReader{}))
	assert.ErrorContains(t, err, "line down")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestRunSinkError(t *testing.T) {
	b := New(Options{Table: keytable.New(), Sink: NewLineSink(failingWriter{})})
	err := b.Run(context.Background(), NewByteSource(bytes.NewReader(input)))
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestHandleRelease(t *testing.T) {
	var out bytes.Buffer
	b := New(Options{Table: keytable.New(), Sink: NewLineSink(&out)})

	require.NoError(t, b.Handle(Event{Code: 0x04, Press: true}))
	require.NoError(t, b.Handle(Event{Code: 0x04, Press: false}))
	require.NoError(t, b.Handle(Event{Code: 0x31, Press: false}))

	assert.Equal(t, []byte{0x1e, 0x9e}, out.Bytes())
}

func TestSetTable(t *testing.T) {
	var out bytes.Buffer
	b := New(Options{Table: keytable.New(), Sink: NewLineSink(&out)})

	require.NoError(t, b.Handle(Event{Code: 0xe0, Press: true}))
	b.SetTable(keytable.New(keytable.WithExtended(true)))
	assert.True(t, b.Table().Extended())
	require.NoError(t, b.Handle(Event{Code: 0xe0, Press: true}))

	assert.Equal(t, []byte{0x71}, out.Bytes())
}

func TestHexSink(t *testing.T) {
	var out bytes.Buffer
	b := New(Options{Table: keytable.New(), Sink: NewHexSink(&out)})

	require.NoError(t, b.Handle(Event{Code: 0x28, Press: true}))
	require.NoError(t, b.Handle(Event{Code: 0x28, Press: false}))

	assert.Equal(t, "1d make\n9d break\n", out.String())
}

func TestNewPolicy(t *testing.T) {
	p, err := NewPolicy(ActionLog, "ignored 'unterminated", 0, 0)
	require.NoError(t, err)
	assert.Nil(t, p.Hook)

	p, err = NewPolicy(ActionExec, "logger -t x68kbd", time.Second, 128)
	require.NoError(t, err)
	require.NotNil(t, p.Hook)
	assert.Equal(t, "logger", p.Hook.Command)
	assert.Equal(t, time.Second, p.Hook.Timeout)
	assert.Equal(t, int64(128), p.Hook.MaxReply)

	_, err = NewPolicy(ActionExec, "", 0, 0)
	assert.Error(t, err)

	_, err = NewPolicy("shout", "", 0, 0)
	assert.Error(t, err)
}

func TestPolicyIgnore(t *testing.T) {
	var logs bytes.Buffer
	b := New(Options{Table: keytable.New(), Log: zerolog.New(&logs)})

	require.NoError(t, b.Handle(Event{Code: 0x31, Press: true}))
	assert.Empty(t, logs.String())
}

func TestPolicyLog(t *testing.T) {
	var logs bytes.Buffer
	p, err := NewPolicy(ActionLog, "", 0, 0)
	require.NoError(t, err)
	b := New(Options{Table: keytable.New(), Policy: p, Log: zerolog.New(&logs).Level(zerolog.InfoLevel)})

	require.NoError(t, b.Handle(Event{Code: 0x04, Press: true}))
	require.NoError(t, b.Handle(Event{Code: 0xf0, Press: true}))

	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"scancode":"0xf0"`)
	assert.Contains(t, lines[0], `"status":"out_of_range"`)
}

func TestPolicyExec(t *testing.T) {
	out := filepath.Join(t.TempDir(), "hook.out")
	p, err := NewPolicy(ActionExec,
		`/bin/sh -c 'echo "$X68KBD_SCANCODE $X68KBD_STATUS $X68KBD_NAME" >> "$0"' `+out,
		5*time.Second, 64)
	require.NoError(t, err)

	m := NewMetrics()
	b := New(Options{Table: keytable.New(), Policy: p, Metrics: m})

	require.NoError(t, b.Handle(Event{Code: 0x04, Press: true}))
	require.NoError(t, b.Handle(Event{Code: 0xe1, Press: true}))

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(m.hooks.WithLabelValues("ok")) == 1
	}, 5*time.Second, 20*time.Millisecond)
	require.NoError(t, b.Close())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "0xe1 out_of_range Shift\n", string(data))
}

func TestPolicyExecFailure(t *testing.T) {
	p, err := NewPolicy(ActionExec, "/bin/false", 5*time.Second, 64)
	require.NoError(t, err)

	var logs bytes.Buffer
	m := NewMetrics()
	b := New(Options{Table: keytable.New(), Policy: p, Metrics: m, Log: zerolog.New(&logs)})

	require.NoError(t, b.Handle(Event{Code: 0x31, Press: true}))

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(m.hooks.WithLabelValues("failed")) == 1
	}, 5*time.Second, 20*time.Millisecond)
	require.NoError(t, b.Close())

	assert.Contains(t, logs.String(), "unmapped hook failed")
}

// closeWithin fails the test if b.Close takes longer than d.
func closeWithin(t *testing.T, b *Bridge, d time.Duration) {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- b.Close() }()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(d):
		t.Fatalf("Close still blocked after %s", d)
	}
}

func TestCloseKillsHooks(t *testing.T) {
	p, err := NewPolicy(ActionExec, "sleep 30", 0, 0)
	require.NoError(t, err)
	b := New(Options{Table: keytable.New(), Policy: p})

	require.NoError(t, b.Handle(Event{Code: 0x31, Press: true}))
	time.Sleep(100 * time.Millisecond)

	closeWithin(t, b, 3*time.Second)
}

func TestHookLimit(t *testing.T) {
	p, err := NewPolicy(ActionExec, "sleep 30", 0, 0)
	require.NoError(t, err)
	m := NewMetrics()
	b := New(Options{Table: keytable.New(), Policy: p, Metrics: m, MaxHooks: 1})

	require.NoError(t, b.Handle(Event{Code: 0x31, Press: true}))
	require.NoError(t, b.Handle(Event{Code: 0xf0, Press: true}))
	require.NoError(t, b.Handle(Event{Code: 0xf1, Press: true}))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.hooks.WithLabelValues("skipped")))

	closeWithin(t, b, 3*time.Second)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.hooks.WithLabelValues("ok")))
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	b := New(Options{Table: keytable.New(), Metrics: m})

	require.NoError(t, b.Run(context.Background(), NewByteSource(bytes.NewReader(input))))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.events.WithLabelValues("mapped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.events.WithLabelValues("unmapped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.events.WithLabelValues("out_of_range")))

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `x68kbd_events_total{status="mapped"} 2`)
	assert.Contains(t, string(body), `x68kbd_hook_runs_total{result="ok"} 0`)
	assert.Contains(t, string(body), `x68kbd_hook_runs_total{result="skipped"} 0`)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.event(keytable.Mapped) })
}
