//go:build !js

package device

import (
	"go.uber.org/multierr"

	"github.com/sonikatlas/sonik/pkg/graph"
	"github.com/sonikatlas/sonik/pkg/output"
)

// Open creates a graph context and starts streaming it to the output sink.
// The context starts suspended; resuming it is left to the caller.
func Open(opts Options) (*Device, error) {
	ctx := graph.New(float64(opts.SampleRate), graph.WithBlockSize(opts.BlockSize))

	stream, err := output.Open(opts.SampleRate, ctx)
	if err != nil {
		return nil, err
	}
	stream.Start()

	return &Device{
		Context: ctx,
		peak:    stream.Peak,
		rms:     stream.RMS,
		closer: func() error {
			return multierr.Combine(stream.Close(), ctx.Close())
		},
	}, nil
}
