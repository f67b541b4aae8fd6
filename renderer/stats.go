package renderer

import (
	"time"

	"github.com/google/uuid"
)

type TracerStat struct {
	// The tracer id.
	Id string

	// The block height and the percentage of total frame area it represents.
	BlockH       uint32
	FramePercent float32

	// Render time for assigned block
	RenderTime time.Duration

	// Rays traced while rendering the assigned block.
	PrimaryRays    uint64
	ShadowRays     uint64
	ReflectionRays uint64
}

type FrameStats struct {
	// A unique id for the rendered frame.
	FrameId uuid.UUID

	// Individual tracer stats.
	Tracers []TracerStat

	// Total render time for entire frame.
	RenderTime time.Duration
}

// Get the total number of rays traced for the frame.
func (s FrameStats) TotalRays() uint64 {
	var total uint64
	for _, stat := range s.Tracers {
		total += stat.PrimaryRays + stat.ShadowRays + stat.ReflectionRays
	}
	return total
}
