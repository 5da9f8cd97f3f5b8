package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"x68kbd/keytable"
)

// parseCode accepts 0x1e, 1eh or decimal.
func parseCode(arg string) (keytable.Scancode, error) {
	s := strings.ToLower(strings.TrimSpace(arg))
	base := 10
	switch {
	case strings.HasPrefix(s, "0x"):
		s, base = s[2:], 16
	case strings.HasSuffix(s, "h"):
		s, base = s[:len(s)-1], 16
	}
	v, err := strconv.ParseUint(s, base, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid scancode %q: must be 0-255", arg)
	}
	return keytable.Scancode(v), nil
}

func describe(t keytable.Table, sc keytable.Scancode) string {
	kc, st := t.Lookup(sc)
	line := fmt.Sprintf("%s -> %s (%s)", sc, kc, st)
	if name := keytable.Name(sc); name != "" {
		line += " " + name
	}
	return line
}

func translate(w io.Writer, t keytable.Table, args []string) error {
	if len(args) == 0 {
		return errors.New("translate: no scancodes given")
	}
	for _, arg := range args {
		sc, err := parseCode(arg)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, describe(t, sc))
	}
	return nil
}

var (
	mappedColor   = color.New(color.FgGreen)
	unmappedColor = color.New(color.Faint)
)

func dump(w io.Writer, t keytable.Table, format string) error {
	entries := t.Entries()
	switch strings.ToLower(format) {
	case "", "text":
		for _, e := range entries {
			c := mappedColor
			if e.Keycode == keytable.NoKey {
				c = unmappedColor
			}
			c.Fprintf(w, "%s -> %s  %s\n", e.Scancode, e.Keycode, e.Name)
		}
		return nil

	case "toml":
		data, err := toml.Marshal(struct {
			Entries []keytable.Entry `toml:"entry"`
		}{entries})
		if err != nil {
			return fmt.Errorf("unable to encode table: %w", err)
		}
		_, err = w.Write(data)
		return err

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("unable to encode table: %w", err)
		}
		return enc.Close()

	default:
		return fmt.Errorf("unknown dump format %q", format)
	}
}
