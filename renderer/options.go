package renderer

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/achilleasa/go-raytrace/tracer"
)

// Block scheduler names.
const (
	NaiveScheduler   = "naive"
	PerfectScheduler = "perfect"
)

type Options struct {
	// Number of cpu tracers. The frame is split into one block per tracer.
	Tracers uint32 `toml:"tracers"`

	// Number of goroutines used by each tracer for rendering a scanline.
	// If zero, one goroutine per cpu is used.
	Workers uint32 `toml:"workers"`

	// Number of samples.
	SamplesPerPixel uint32 `toml:"samples_per_pixel"`

	// The block scheduler used for distributing rows between tracers.
	Scheduler string `toml:"scheduler"`
}

// Get the default render options.
func DefaultOptions() Options {
	return Options{
		Tracers:         1,
		Workers:         uint32(runtime.NumCPU()),
		SamplesPerPixel: 1,
		Scheduler:       NaiveScheduler,
	}
}

// Overlay options with the values defined in a TOML file. Keys that do not
// map to an option are reported as an error.
func LoadOptions(filename string, opts *Options) error {
	meta, err := toml.DecodeFile(filename, opts)
	if err != nil {
		return fmt.Errorf("renderer: could not load options from %s: %s", filename, err.Error())
	}

	if undecoded := meta.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, len(undecoded))
		for idx, key := range undecoded {
			keys[idx] = key.String()
		}
		return fmt.Errorf("renderer: unknown options in %s: %s", filename, strings.Join(keys, ", "))
	}

	return nil
}

// Create the block scheduler selected by the options.
func (opts Options) BlockScheduler() (tracer.BlockScheduler, error) {
	switch opts.Scheduler {
	case NaiveScheduler, "":
		return tracer.NaiveScheduler(), nil
	case PerfectScheduler:
		return tracer.PerfectScheduler(), nil
	}
	return nil, ErrUnknownScheduler
}
