// Package evsource reads key events from a Linux input device and reports them
// as HID usages.
package evsource

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	evdev "github.com/holoplot/go-evdev"
	"github.com/rs/zerolog"

	"x68kbd/bridge"
)

// EV_KEY values.
const (
	keyRelease = 0
	keyPress   = 1
	keyRepeat  = 2
)

var ErrNoKeyboard = errors.New("no keyboard found")

// Device is an open evdev keyboard. It implements bridge.Source.
type Device struct {
	dev  *evdev.InputDevice
	path string
	name string
	log  zerolog.Logger
}

func Open(path string, log zerolog.Logger) (*Device, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", path, err)
	}
	name, _ := dev.Name()
	return &Device{dev: dev, path: path, name: name, log: log}, nil
}

// Find opens the first device that looks like a keyboard and whose name does
// not match bypass (nil = bypass nothing).
func Find(bypass *regexp.Regexp, log zerolog.Logger) (*Device, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("unable to list input devices: %w", err)
	}

	for _, p := range paths {
		if bypass != nil && bypass.MatchString(p.Name) {
			log.Debug().Str("path", p.Path).Str("name", p.Name).Msg("bypassed")
			continue
		}
		d, err := Open(p.Path, log)
		if err != nil {
			log.Debug().Err(err).Msg("skipped")
			continue
		}
		if isKeyboard(d.dev.CapableEvents(evdev.EV_KEY)) {
			return d, nil
		}
		d.Close()
	}
	return nil, ErrNoKeyboard
}

// isKeyboard: mice and media remotes report EV_KEY too, but not A and Enter.
func isKeyboard(codes []evdev.EvCode) bool {
	var a, enter bool
	for _, c := range codes {
		switch c {
		case evdev.KEY_A:
			a = true
		case evdev.KEY_ENTER:
			enter = true
		}
	}
	return a && enter
}

func (d *Device) Path() string { return d.path }
func (d *Device) Name() string { return d.name }

// Grab takes the device away from every other reader, the console included.
func (d *Device) Grab() error {
	if err := d.dev.Grab(); err != nil {
		return fmt.Errorf("unable to grab %s: %w", d.path, err)
	}
	return nil
}

// Close releases the device and unblocks a pending ReadEvent.
func (d *Device) Close() error {
	return d.dev.Close()
}

// ReadEvent returns the next press or release that has a HID usage.
// Autorepeat is dropped: the X68000 keyboard repeats on its own.
// A blocked read does not observe ctx; Close the device to interrupt it.
func (d *Device) ReadEvent(ctx context.Context) (bridge.Event, error) {
	for {
		if err := ctx.Err(); err != nil {
			return bridge.Event{}, err
		}
		ev, err := d.dev.ReadOne()
		if err != nil {
			return bridge.Event{}, fmt.Errorf("%s: %w", d.path, err)
		}
		if ev.Type != evdev.EV_KEY || ev.Value == keyRepeat {
			continue
		}
		if e, ok := toEvent(ev.Code, ev.Value); ok {
			return e, nil
		}
		d.log.Debug().Uint16("code", uint16(ev.Code)).Msg("no HID usage")
	}
}

func toEvent(code evdev.EvCode, value int32) (bridge.Event, bool) {
	if value != keyPress && value != keyRelease {
		return bridge.Event{}, false
	}
	sc, ok := Usage(code)
	if !ok {
		return bridge.Event{}, false
	}
	return bridge.Event{Code: sc, Press: value == keyPress}, true
}
