package tracer

import (
	"errors"
	"time"
)

var (
	ErrNoSceneData = errors.New("tracer: no scene data uploaded")
	ErrNoFrame     = errors.New("tracer: frame buffer not initialized")
)

type UpdateType uint8

const (
	// Replace the world used for tracing. Payload is a *scene.World.
	UpdateWorld UpdateType = iota
)

// A unit of work that is processed by a tracer.
type BlockRequest struct {
	// Block start row and height.
	BlockY uint32
	BlockH uint32

	// The number of emitted rays per traced pixel.
	SamplesPerPixel uint32

	// A channel to signal on block completion with the number of completed rows.
	DoneChan chan<- uint32

	// A channel to signal if an error occurs.
	ErrChan chan<- error
}

// Tracer statistics.
type Stats struct {
	// The rendered block height
	BlockH uint32

	// The time for rendering the last block.
	RenderTime time.Duration

	// The time spent applying pending updates before rendering the last block.
	UpdateTime time.Duration

	// Number of rays traced while rendering the last block.
	PrimaryRays    uint64
	ShadowRays     uint64
	ReflectionRays uint64
}

type Tracer interface {
	// Get tracer id.
	Id() string

	// Get the computation speed estimate. The schedulers use it to
	// distribute rows between tracers when no render times are available.
	Speed() uint32

	// Setup the tracer to render frames of the given dimensions into
	// frameBuffer. The frame buffer holds 3 bytes per pixel.
	Init(frameW, frameH uint32, frameBuffer []uint8) error

	// Shutdown and cleanup tracer.
	Close()

	// Enqueue block request.
	Enqueue(BlockRequest)

	// Append a change to the tracer's update buffer. Pending changes are
	// applied before the next block is rendered.
	Update(UpdateType, interface{})

	// Retrieve last frame statistics.
	Stats() *Stats
}
