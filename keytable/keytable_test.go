package keytable

import (
	"sync"
	"testing"
)

func TestTranslateIsTotal(t *testing.T) {
	for i := 0; i <= 0xff; i++ {
		sc := Scancode(i)
		got := Translate(sc)
		if i >= Size && got != NoKey {
			t.Errorf("Translate(%s) = %s, want NoKey past the table", sc, got)
		}
		if i < Size && got != active[i] {
			t.Errorf("Translate(%s) = %s, want %s", sc, got, active[i])
		}
	}
}

func TestTranslateKnownKeys(t *testing.T) {
	cases := []struct {
		name string
		sc   Scancode
		want Keycode
	}{
		{"A", 0x04, 0x1e},
		{"Z", 0x1d, 0x2a},
		{"0", 0x27, 0x0b},
		{"Enter", 0x28, 0x1d},
		{"F1", 0x3a, 0x63},
		{"F10", 0x43, 0x6c},
		{"reserved", 0x00, 0x00},
		{"no key at 0x31", 0x31, 0x00},
		{"no key at 0x64", 0x64, 0x00},
		{"past the table", 0x8c, 0x00},
		{"last byte", 0xff, 0x00},
	}
	for _, c := range cases {
		if got := Translate(c.sc); got != c.want {
			t.Errorf("%s: Translate(%s) = %s, want %s", c.name, c.sc, got, c.want)
		}
	}
}

func TestTranslateIsPure(t *testing.T) {
	var first [256]Keycode
	for i := range first {
		first[i] = Translate(Scancode(i))
	}
	for round := 0; round < 3; round++ {
		for i := 0xff; i >= 0; i-- {
			if got := Translate(Scancode(i)); got != first[i] {
				t.Fatalf("round %d: Translate(%#02x) changed from %s to %s", round, i, first[i], got)
			}
		}
	}
}

func TestLookupStatus(t *testing.T) {
	cases := []struct {
		sc     Scancode
		want   Keycode
		status Status
	}{
		{0x04, 0x1e, Mapped},
		{0x8b, 0x56, Mapped},
		{0x00, NoKey, Unmapped},
		{0x31, NoKey, Unmapped},
		{0x64, NoKey, Unmapped},
		{0x86, NoKey, Unmapped},
		{0x8c, NoKey, OutOfRange},
		{0xe0, NoKey, OutOfRange},
		{0xff, NoKey, OutOfRange},
	}
	for _, c := range cases {
		kc, st := Lookup(c.sc)
		if kc != c.want || st != c.status {
			t.Errorf("Lookup(%s) = %s, %s; want %s, %s", c.sc, kc, st, c.want, c.status)
		}
		if kc != Translate(c.sc) {
			t.Errorf("Lookup(%s) disagrees with Translate", c.sc)
		}
	}
}

func TestInRange(t *testing.T) {
	for i := 0; i <= 0xff; i++ {
		if got := InRange(Scancode(i)); got != (i < 0x8c) {
			t.Errorf("InRange(%#02x) = %v", i, got)
		}
	}
}

func TestZeroTableMatchesPackage(t *testing.T) {
	var tbl Table
	if tbl.Extended() {
		t.Fatal("zero Table has the extension on")
	}
	if tbl.Len() != Size {
		t.Errorf("Len() = %d, want %d", tbl.Len(), Size)
	}
	for i := 0; i <= 0xff; i++ {
		sc := Scancode(i)
		kc, st := tbl.Lookup(sc)
		wkc, wst := Lookup(sc)
		if kc != wkc || st != wst {
			t.Errorf("Table.Lookup(%s) = %s, %s; package Lookup = %s, %s", sc, kc, st, wkc, wst)
		}
	}
}

func TestExtendedTableLookup(t *testing.T) {
	tbl := New(WithExtended(true))
	if !tbl.Extended() {
		t.Fatal("WithExtended(true) left the extension off")
	}
	cases := []struct {
		sc     Scancode
		want   Keycode
		status Status
	}{
		{0x04, 0x1e, Mapped},
		{0x31, NoKey, Unmapped},
		{0x8c, NoKey, Unmapped},
		{0xdf, NoKey, Unmapped},
		{0xe0, 0x71, Mapped},
		{0xe1, 0x70, Mapped},
		{0xe2, 0x55, Mapped},
		{0xe3, 0x5f, Mapped},
		{0xe4, NoKey, Unmapped},
		{0xe5, NoKey, Unmapped},
		{0xe6, 0x59, Mapped},
		{0xe7, 0x72, Mapped},
		{0xe8, NoKey, OutOfRange},
		{0xff, NoKey, OutOfRange},
	}
	for _, c := range cases {
		kc, st := tbl.Lookup(c.sc)
		if kc != c.want || st != c.status {
			t.Errorf("Lookup(%s) = %s, %s; want %s, %s", c.sc, kc, st, c.want, c.status)
		}
		if tbl.Translate(c.sc) != kc {
			t.Errorf("Translate(%s) disagrees with Lookup", c.sc)
		}
	}

	if off := New(WithExtended(true), WithExtended(false)); off.Translate(0xe0) != NoKey {
		t.Error("last option should win")
	}
}

func TestEntries(t *testing.T) {
	e := Entries()
	if len(e) != Size {
		t.Fatalf("Entries() has %d rows, want %d", len(e), Size)
	}
	if e[0x04] != (Entry{Scancode: 0x04, Keycode: 0x1e, Name: "A"}) {
		t.Errorf("row 0x04 = %+v", e[0x04])
	}
	e[0x04].Keycode = 0x7f
	if Translate(0x04) != 0x1e {
		t.Fatal("Entries() exposed the table")
	}

	ext := New(WithExtended(true)).Entries()
	if len(ext) != ExtendedLast+1 {
		t.Fatalf("extended Entries() has %d rows, want %d", len(ext), ExtendedLast+1)
	}
	for i, row := range ext {
		if int(row.Scancode) != i {
			t.Fatalf("row %d has scancode %s", i, row.Scancode)
		}
	}
	if ext[0xe0].Keycode != 0x71 || ext[0xe0].Name != "Ctrl" {
		t.Errorf("row 0xe0 = %+v", ext[0xe0])
	}
}

func TestName(t *testing.T) {
	if Name(0x28) != "Enter" {
		t.Errorf("Name(0x28) = %q", Name(0x28))
	}
	// Labels follow the keycode: 0x89 sends 0x0e, the X68000 ¥ key.
	if Translate(0x89) != 0x0e || Name(0x89) != "Yen" {
		t.Errorf("0x89 = %s %q, want 0x0e \"Yen\"", Translate(0x89), Name(0x89))
	}
	if Name(0x31) != "" {
		t.Errorf("Name(0x31) = %q, want empty", Name(0x31))
	}
	if Name(0xff) != "" {
		t.Errorf("Name(0xff) = %q, want empty", Name(0xff))
	}
}

func TestConcurrentLookups(t *testing.T) {
	tbl := New(WithExtended(true))
	var want [256]Keycode
	for i := range want {
		want[i] = tbl.Translate(Scancode(i))
	}

	var wg sync.WaitGroup
	errs := make(chan Scancode, 8*256)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i <= 0xff; i++ {
				sc := Scancode(i)
				if tbl.Translate(sc) != want[i] {
					errs <- sc
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for sc := range errs {
		t.Errorf("concurrent Translate(%s) returned a wrong value", sc)
	}
}
