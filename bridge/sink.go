package bridge

import (
	"fmt"
	"io"

	"x68kbd/keytable"
)

// BreakBit marks a key release on the X68000 keyboard line.
const BreakBit = 0x80

// Encode returns the line byte for a key transition.
func Encode(kc keytable.Keycode, press bool) byte {
	if press {
		return byte(kc)
	}
	return byte(kc) | BreakBit
}

type Sink interface {
	WriteKey(kc keytable.Keycode, press bool) error
}

// LineSink writes raw line bytes, one per transition.
type LineSink struct {
	w io.Writer
}

func NewLineSink(w io.Writer) *LineSink {
	return &LineSink{w: w}
}

func (s *LineSink) WriteKey(kc keytable.Keycode, press bool) error {
	_, err := s.w.Write([]byte{Encode(kc, press)})
	return err
}

// HexSink writes the same bytes as LineSink, as text, one per line.
type HexSink struct {
	w io.Writer
}

func NewHexSink(w io.Writer) *HexSink {
	return &HexSink{w: w}
}

func (s *HexSink) WriteKey(kc keytable.Keycode, press bool) error {
	state := "make"
	if !press {
		state = "break"
	}
	_, err := fmt.Fprintf(s.w, "%02x %s\n", Encode(kc, press), state)
	return err
}
