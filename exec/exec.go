package exec

/*
  Run external hook commands: own process group, bounded output, hard timeout.
*/

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/kballard/go-shellquote"
)

// Time between SIGTERM and SIGKILL for a timed out process group.
const killDelay = time.Second / 2

type Command struct {
	Command  string
	Args     []string
	Env      []string // appended to the current environment
	Dir      string
	UseShell bool          // run Command through /bin/sh -c
	Timeout  time.Duration // 0 = no limit
	MaxReply int64         // per stream; 0 = discard output
	StdIn    []byte
}

type Result struct {
	Command   string   `json:"command"`
	Args      []string `json:"args,omitempty"`
	Processed bool     `json:"processed"` // Was the process ever started?
	TimedOut  bool     `json:"timed_out,omitempty"`
	Status    int      `json:"status"`
	StdOut    []byte   `json:"stdout,omitempty"`
	StdErr    []byte   `json:"stderr,omitempty"`
}

// Parse splits a shell-quoted command line into a Command.
func Parse(line string) (*Command, error) {
	words, err := shellquote.Split(line)
	if err != nil {
		return nil, fmt.Errorf("unable to split command %q: %w", line, err)
	}
	if len(words) == 0 {
		return nil, errors.New("empty command")
	}
	return &Command{Command: words[0], Args: words[1:]}, nil
}

// Run starts the command and waits for it, or for the timeout / ctx, whichever
// comes first. On expiry the whole process group gets SIGTERM, then SIGKILL.
func (c *Command) Run(ctx context.Context) *Result {
	r := &Result{Command: c.Command, Args: c.Args}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	name, args := c.Command, c.Args
	if c.UseShell {
		name = "/bin/sh"
		args = append([]string{"-c", c.Command, "sh"}, c.Args...)
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		pid := cmd.Process.Pid
		err := syscall.Kill(-pid, syscall.SIGTERM)
		time.AfterFunc(killDelay, func() {
			_ = syscall.Kill(-pid, syscall.SIGKILL)
		})
		return err
	}
	cmd.WaitDelay = 2 * killDelay
	cmd.Env = append(os.Environ(), c.Env...)
	cmd.Dir = c.Dir
	cmd.Stdin = bytes.NewReader(c.StdIn)

	stdout := &capped{max: c.MaxReply}
	stderr := &capped{max: c.MaxReply}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		r.Status = -1 // No such command at all?
		r.StdErr = []byte(err.Error())
		return r
	}
	r.Processed = true

	err := cmd.Wait()
	r.StdOut = stdout.Bytes()
	r.StdErr = stderr.Bytes()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		r.TimedOut = true
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			r.Status = exitErr.ExitCode()
		} else {
			r.Status = -1
		}
	}
	return r
}

// capped keeps the first max bytes written and silently drops the rest, so
// a chatty child never blocks on a full pipe.
type capped struct {
	buf bytes.Buffer
	max int64
}

func (c *capped) Write(p []byte) (int, error) {
	n := len(p)
	if room := c.max - int64(c.buf.Len()); room > 0 {
		if int64(len(p)) > room {
			p = p[:room]
		}
		c.buf.Write(p)
	}
	return n, nil
}

func (c *capped) Bytes() []byte {
	if c.buf.Len() == 0 {
		return nil
	}
	return c.buf.Bytes()
}
