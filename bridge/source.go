package bridge

import (
	"bufio"
	"context"
	"io"

	"x68kbd/keytable"
)

// ByteSource reads make-codes, one byte each, from a stream such as a serial
// port or stdin. A blocked read does not observe ctx; close the underlying
// reader to interrupt it.
type ByteSource struct {
	r *bufio.Reader
}

func NewByteSource(r io.Reader) *ByteSource {
	return &ByteSource{r: bufio.NewReader(r)}
}

func (s *ByteSource) ReadEvent(ctx context.Context) (Event, error) {
	if err := ctx.Err(); err != nil {
		return Event{}, err
	}
	b, err := s.r.ReadByte()
	if err != nil {
		return Event{}, err
	}
	return Event{Code: keytable.Scancode(b), Press: true}, nil
}
