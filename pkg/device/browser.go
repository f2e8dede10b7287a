//go:build js

package device

import (
	"github.com/sonikatlas/sonik/pkg/webaudio"
)

// Open creates a Web Audio context.
func Open(Options) (*Device, error) {
	ctx, err := webaudio.New()
	if err != nil {
		return nil, err
	}
	return &Device{Context: ctx}, nil
}
