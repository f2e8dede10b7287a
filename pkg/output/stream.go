// Package output connects a renderer to a real-time sink. The default build
// plays through the system audio device with oto; the headless build drains
// the renderer at wall-clock pace so schedules still advance on machines
// without sound hardware.
package output

import (
	"encoding/binary"
	"math"

	"github.com/sonikatlas/sonik/pkg/dsp/analysis"
)

// Renderer produces mono float32 frames on demand.
type Renderer interface {
	Render(out []float32)
}

// rmsWindow is the span of the sliding RMS meter.
const rmsWindow = 0.3 // seconds

// reader turns a Renderer into a little-endian float32 byte stream and
// meters what it hands out.
type reader struct {
	src   Renderer
	buf   []float32
	meter *analysis.PeakMeter
	rms   *analysis.RMSMeter
}

func newReader(sampleRate int, src Renderer) *reader {
	return &reader{
		src:   src,
		buf:   make([]float32, 1024),
		meter: analysis.NewPeakMeter(float64(sampleRate)),
		rms:   analysis.NewRMSMeter(int(rmsWindow * float64(sampleRate))),
	}
}

func (r *reader) Read(p []byte) (int, error) {
	frames := len(p) / 4
	if frames == 0 {
		return 0, nil
	}
	if len(r.buf) < frames {
		r.buf = make([]float32, frames)
	}
	samples := r.buf[:frames]
	r.src.Render(samples)
	r.meter.Process(samples)
	r.rms.Process(samples)

	for i, s := range samples {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}
	return frames * 4, nil
}
