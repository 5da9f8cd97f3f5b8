package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"x68kbd/keytable"
)

const shellHelp = `<code>...   look up scancodes (0x1e, 1eh or decimal)
ext on|off   toggle the 0x8c-0xe7 table
dump         print the table
help         this text
quit         leave
`

var errQuit = errors.New("quit")

type session struct {
	table keytable.Table
	out   io.Writer
}

// exec runs one shell line. It returns errQuit when the session should end.
func (s *session) exec(line string) error {
	words := strings.Fields(line)
	if len(words) == 0 {
		return nil
	}
	switch words[0] {
	case "quit", "exit":
		return errQuit
	case "help", "?":
		fmt.Fprint(s.out, shellHelp)
	case "dump":
		return dump(s.out, s.table, "text")
	case "ext":
		if len(words) != 2 || (words[1] != "on" && words[1] != "off") {
			return errors.New("usage: ext on|off")
		}
		s.table = keytable.New(keytable.WithExtended(words[1] == "on"))
		fmt.Fprintf(s.out, "extended table %s, %d slots\n", words[1], s.table.Len())
	default:
		return translate(s.out, s.table, words)
	}
	return nil
}

func (s *session) prompt() string {
	if s.table.Extended() {
		return "x68kbd(ext)> "
	}
	return "x68kbd> "
}

func shell(t keytable.Table) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetTabCompletionStyle(liner.TabPrints)
	line.SetCompleter(func(l string) (c []string) {
		for _, w := range []string{"dump", "ext on", "ext off", "help", "quit"} {
			if strings.HasPrefix(w, strings.ToLower(l)) {
				c = append(c, w)
			}
		}
		return
	})

	s := &session{table: t, out: os.Stdout}
	for {
		in, err := line.Prompt(s.prompt())
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("shell: %w", err)
		}
		line.AppendHistory(in)

		if err := s.exec(in); errors.Is(err, errQuit) {
			return nil
		} else if err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
