// Package device opens the process' real-time audio context for the
// current platform.
package device

import (
	"github.com/sonikatlas/sonik/pkg/audio"
)

// Options describe the context to open. Browsers pick their own rate and
// quantum, so the js build ignores them.
type Options struct {
	SampleRate int
	BlockSize  int
}

// Device is an opened context together with whatever keeps it sounding.
type Device struct {
	audio.Context
	peak   func() float64
	rms    func() float64
	closer func() error
}

// Peak returns the recent output peak, or zero when the platform does not
// expose one.
func (d *Device) Peak() float64 {
	if d.peak == nil {
		return 0
	}
	return d.peak()
}

// RMS returns the recent output RMS level, or zero when the platform does
// not expose one.
func (d *Device) RMS() float64 {
	if d.rms == nil {
		return 0
	}
	return d.rms()
}

// Close releases the output. The context must not be used afterwards.
func (d *Device) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer()
}

// Factory returns a function that opens a device with opts, suitable for
// the preview manager's lazy initialisation.
func Factory(opts Options) func() (audio.Context, error) {
	return func() (audio.Context, error) {
		d, err := Open(opts)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
}
