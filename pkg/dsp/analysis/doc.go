// Package analysis provides level metering for rendered previews.
//
// PeakMeter tracks block peaks with a steady decay, RMSMeter keeps a sliding
// window, and Measure summarises a finished buffer in fixed windows:
//
//	levels := analysis.Measure(rendered, 44100)
//	for i, l := range levels {
//	    fmt.Printf("%ds peak %.1f dBFS rms %.1f dBFS\n", i, l.PeakDB(), l.RMSDB())
//	}
//
// The streaming meters are safe for concurrent use.
package analysis
