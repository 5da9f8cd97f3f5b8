// Package keytable translates USB HID keyboard usages into Sharp X68000
// keyboard codes.
//
// The input domain is a single byte. Lookups are total: every byte has an
// answer, and NoKey is returned both for slots that deliberately map to
// nothing and for bytes past the end of the table. Lookup reports which of the
// two it was.
package keytable

import "fmt"

// Scancode is an incoming key usage byte.
type Scancode uint8

// Keycode is an X68000 keyboard code.
type Keycode uint8

const (
	// NoKey is returned when a scancode has no X68000 counterpart.
	NoKey Keycode = 0x00

	// Size is the number of slots in the active table (0x00-0x8b).
	Size = 0x8c

	// ExtendedFirst and ExtendedLast bound the optional extension.
	ExtendedFirst = 0x8c
	ExtendedLast  = 0xe7
)

func (s Scancode) String() string {
	return fmt.Sprintf("0x%02x", uint8(s))
}

func (k Keycode) String() string {
	return fmt.Sprintf("0x%02x", uint8(k))
}

// Status tells apart the cases Translate folds into NoKey.
type Status int

const (
	Mapped Status = iota
	Unmapped
	OutOfRange
)

func (s Status) String() string {
	switch s {
	case Mapped:
		return "mapped"
	case Unmapped:
		return "unmapped"
	case OutOfRange:
		return "out_of_range"
	default:
		return "unknown"
	}
}

// Entry is one table slot, used for dumps.
type Entry struct {
	Scancode Scancode `json:"scancode" yaml:"scancode" toml:"scancode"`
	Keycode  Keycode  `json:"keycode" yaml:"keycode" toml:"keycode"`
	Name     string   `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
}

// InRange reports whether sc indexes the active table.
func InRange(sc Scancode) bool {
	return int(sc) < Size
}

// Translate returns the keycode for sc, or NoKey.
func Translate(sc Scancode) Keycode {
	if !InRange(sc) {
		return NoKey
	}
	return active[sc]
}

// Lookup is Translate plus the reason behind a NoKey answer.
func Lookup(sc Scancode) (Keycode, Status) {
	if !InRange(sc) {
		return NoKey, OutOfRange
	}
	return active[sc], statusOf(active[sc])
}

// Name returns the X68000 label of the key at sc, or "" if the slot has none.
func Name(sc Scancode) string {
	if int(sc) >= len(names) {
		return ""
	}
	return names[sc]
}

// Entries copies the active table.
func Entries() []Entry {
	return entries(active[:], 0)
}

func statusOf(kc Keycode) Status {
	if kc == NoKey {
		return Unmapped
	}
	return Mapped
}

func entries(codes []Keycode, first int) []Entry {
	out := make([]Entry, len(codes))
	for i, kc := range codes {
		sc := Scancode(first + i)
		out[i] = Entry{Scancode: sc, Keycode: kc, Name: Name(sc)}
	}
	return out
}
