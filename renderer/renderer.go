package renderer

import (
	"fmt"
	"time"

	"github.com/achilleasa/go-raytrace/log"
	"github.com/achilleasa/go-raytrace/scene"
	"github.com/achilleasa/go-raytrace/tracer"
	"github.com/achilleasa/go-raytrace/tracer/cpu"
	"github.com/google/uuid"
)

type Renderer interface {
	// Render frame.
	Render() error

	// Get the rendered frame as a flat RGB buffer; 3 bytes per pixel,
	// row-major with the top row first.
	FrameBuffer() []uint8

	// Shutdown renderer and any attached tracer.
	Close()

	// Get render statistics.
	Stats() FrameStats
}

// The default renderer splits each frame into row blocks and distributes
// them to a pool of cpu tracers that render into a shared frame buffer.
type defaultRenderer struct {
	logger log.Logger

	world   *scene.World
	options Options

	scheduler        tracer.BlockScheduler
	tracers          []tracer.Tracer
	blockAssignments []uint32

	frameW      uint32
	frameH      uint32
	frameBuffer []uint8

	// Channels for receiving block completion and error notifications.
	doneChan chan uint32
	errChan  chan error

	stats FrameStats
}

// Create a new renderer for world using the specified block scheduler.
func NewDefault(world *scene.World, scheduler tracer.BlockScheduler, opts Options) (Renderer, error) {
	if world == nil {
		return nil, ErrSceneNotDefined
	}
	if world.Camera == nil {
		return nil, ErrCameraNotDefined
	}
	if err := world.Validate(); err != nil {
		return nil, err
	}
	if opts.Tracers == 0 {
		return nil, ErrNoTracers
	}

	r := &defaultRenderer{
		logger:    log.New("renderer"),
		world:     world,
		options:   opts,
		scheduler: scheduler,
		tracers:   make([]tracer.Tracer, 0, opts.Tracers),
		frameW:    world.Camera.Width,
		frameH:    world.Camera.Height,
	}
	r.frameBuffer = make([]uint8, 3*r.frameW*r.frameH)

	for idx := uint32(0); idx < opts.Tracers; idx++ {
		tr := cpu.NewTracer(fmt.Sprintf("cpu-%d", idx), int(opts.Workers))
		err := tr.Init(r.frameW, r.frameH, r.frameBuffer)
		if err != nil {
			r.logger.Warningf("skipping tracer %s due to init error: %s", tr.Id(), err.Error())
			continue
		}

		tr.Update(tracer.UpdateWorld, world)
		r.tracers = append(r.tracers, tr)
		r.logger.Infof("attached tracer %s (speed: %d)", tr.Id(), tr.Speed())
	}

	if len(r.tracers) == 0 {
		return nil, ErrNoTracers
	}

	r.doneChan = make(chan uint32, len(r.tracers))
	r.errChan = make(chan error, len(r.tracers))

	return r, nil
}

// Render a frame. Every tracer renders the block of rows assigned to it by
// the scheduler and the call blocks until all blocks are complete.
func (r *defaultRenderer) Render() error {
	start := time.Now()

	r.blockAssignments = r.scheduler.Schedule(r.tracers, r.frameH)

	var blockY uint32 = 0
	pending := 0
	for idx, tr := range r.tracers {
		blockH := r.blockAssignments[idx]
		if blockH == 0 {
			continue
		}

		tr.Enqueue(tracer.BlockRequest{
			BlockY:          blockY,
			BlockH:          blockH,
			SamplesPerPixel: r.options.SamplesPerPixel,
			DoneChan:        r.doneChan,
			ErrChan:         r.errChan,
		})
		blockY += blockH
		pending++
	}

	// Wait for every enqueued block so no tracer is still writing to the
	// frame buffer once we return.
	var firstErr error
	for ; pending > 0; pending-- {
		select {
		case rows := <-r.doneChan:
			r.logger.Debugf("completed block of %d rows", rows)
		case err := <-r.errChan:
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if firstErr != nil {
		return firstErr
	}

	r.updateStats(time.Since(start))
	r.logger.Infof("rendered frame %s in %d ms", r.stats.FrameId, r.stats.RenderTime.Nanoseconds()/1e6)

	return nil
}

// Get the frame buffer.
func (r *defaultRenderer) FrameBuffer() []uint8 {
	return r.frameBuffer
}

// Shutdown renderer and any attached tracer.
func (r *defaultRenderer) Close() {
	for _, tr := range r.tracers {
		tr.Close()
	}
	r.tracers = nil
}

// Get render statistics.
func (r *defaultRenderer) Stats() FrameStats {
	return r.stats
}

func (r *defaultRenderer) updateStats(renderTime time.Duration) {
	r.stats = FrameStats{
		FrameId:    uuid.New(),
		Tracers:    make([]TracerStat, 0, len(r.tracers)),
		RenderTime: renderTime,
	}

	for idx, tr := range r.tracers {
		stat := TracerStat{
			Id:           tr.Id(),
			BlockH:       r.blockAssignments[idx],
			FramePercent: 100.0 * float32(r.blockAssignments[idx]) / float32(r.frameH),
		}

		// Tracers without a block keep stats from an earlier frame
		if stat.BlockH != 0 {
			trStats := tr.Stats()
			stat.RenderTime = trStats.RenderTime
			stat.PrimaryRays = trStats.PrimaryRays
			stat.ShadowRays = trStats.ShadowRays
			stat.ReflectionRays = trStats.ReflectionRays
		}

		r.stats.Tracers = append(r.stats.Tracers, stat)
	}
}
