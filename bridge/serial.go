package bridge

import (
	"fmt"

	"go.bug.st/serial"
)

// OpenSerial opens an X68000 keyboard line: 8N1 at the given rate (the
// machine expects 2400).
func OpenSerial(path string, baud int) (serial.Port, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("unable to open serial port %s: %w", path, err)
	}
	return port, nil
}
