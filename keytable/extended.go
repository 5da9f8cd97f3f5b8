package keytable

// Table is a read-only view over the key tables. The zero value answers from
// the active table only and behaves exactly like the package-level functions.
type Table struct {
	extended bool
}

// Option configures a Table.
type Option func(*Table)

// WithExtended turns lookups in ExtendedFirst..ExtendedLast on or off.
func WithExtended(on bool) Option {
	return func(t *Table) {
		t.extended = on
	}
}

// New returns a Table configured by opts.
func New(opts ...Option) Table {
	var t Table
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Extended reports whether the extension is consulted.
func (t Table) Extended() bool {
	return t.extended
}

// Len is the number of scancodes t answers from a table.
func (t Table) Len() int {
	if t.extended {
		return ExtendedLast + 1
	}
	return Size
}

// Translate is the package-level Translate, extended to ExtendedLast when t
// has the extension on.
func (t Table) Translate(sc Scancode) Keycode {
	kc, _ := t.Lookup(sc)
	return kc
}

// Lookup is Translate plus the reason behind a NoKey answer. Scancodes past
// ExtendedLast are OutOfRange in every mode.
func (t Table) Lookup(sc Scancode) (Keycode, Status) {
	if InRange(sc) || !t.extended {
		return Lookup(sc)
	}
	if sc > ExtendedLast {
		return NoKey, OutOfRange
	}
	kc := extended[sc-ExtendedFirst]
	return kc, statusOf(kc)
}

// Entries copies every slot t answers from, in scancode order.
func (t Table) Entries() []Entry {
	out := Entries()
	if t.extended {
		out = append(out, entries(extended[:], ExtendedFirst)...)
	}
	return out
}
