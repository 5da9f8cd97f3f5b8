package bridge

import (
	"fmt"
	"time"

	"x68kbd/exec"
	"x68kbd/keytable"
)

// What to do with a scancode that has no keycode. The table can't tell a
// deliberately empty slot from a stray byte worth alarming about; the
// deployment decides.
const (
	ActionIgnore = "ignore"
	ActionLog    = "log"
	ActionExec   = "exec" // log, then run Hook
)

type Policy struct {
	Action string
	Hook   *exec.Command
}

// NewPolicy builds a policy. line is only parsed for ActionExec.
func NewPolicy(action, line string, timeout time.Duration, maxReply int64) (*Policy, error) {
	p := &Policy{Action: action}
	switch action {
	case ActionIgnore, ActionLog:
	case ActionExec:
		hook, err := exec.Parse(line)
		if err != nil {
			return nil, fmt.Errorf("unmapped hook: %w", err)
		}
		hook.Timeout = timeout
		hook.MaxReply = maxReply
		p.Hook = hook
	default:
		return nil, fmt.Errorf("unknown unmapped action %q", action)
	}
	return p, nil
}

// hookFor copies the hook with the key described in its environment.
func (p *Policy) hookFor(sc keytable.Scancode, st keytable.Status) *exec.Command {
	c := *p.Hook
	c.Env = append(append([]string(nil), p.Hook.Env...),
		"X68KBD_SCANCODE="+sc.String(),
		"X68KBD_STATUS="+st.String(),
		"X68KBD_NAME="+keytable.Name(sc),
	)
	return &c
}
