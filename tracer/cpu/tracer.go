package cpu

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/achilleasa/go-raytrace/log"
	"github.com/achilleasa/go-raytrace/scene"
	"github.com/achilleasa/go-raytrace/tracer"
	"github.com/achilleasa/go-raytrace/types"
	"golang.org/x/time/rate"
)

var (
	ErrBusy            = errors.New("cpu tracer: worker did not accept block request")
	ErrBlockOutOfRange = errors.New("cpu tracer: block exceeds frame bounds")
)

// Min interval between two progress messages.
const progressInterval = time.Second

type cpuTracer struct {
	logger log.Logger

	sync.Mutex
	wg sync.WaitGroup

	// The tracer id.
	id string

	// Number of goroutines that split each scanline.
	workers int

	// Frame dims and the shared frame buffer; each tracer only writes the
	// rows of the blocks assigned to it.
	frameW      uint32
	frameH      uint32
	frameBuffer []uint8

	// A buffer for queuing updates. Updates are grouped by type and
	// latest updates always overwrite the previous ones.
	updateMu     sync.Mutex
	updateBuffer map[tracer.UpdateType]interface{}

	// A channel for receiving block requests from the renderer.
	blockReqChan chan tracer.BlockRequest

	// A channel for signaling the worker to exit.
	closeChan chan struct{}

	// Statistics for last rendered block.
	stats *tracer.Stats

	// The world being rendered and the integrator that shades it.
	world      *scene.World
	integrator *Whitted

	// Limits the rate of progress log messages.
	progress *rate.Limiter
}

// Create a new cpu tracer that splits each scanline between the given number
// of goroutines. If workers is zero, one goroutine per cpu is used.
func NewTracer(id string, workers int) tracer.Tracer {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &cpuTracer{
		logger:       log.New(fmt.Sprintf("cpu tracer (%s)", id)),
		id:           id,
		workers:      workers,
		updateBuffer: make(map[tracer.UpdateType]interface{}, 0),
		blockReqChan: make(chan tracer.BlockRequest, 1),
		stats:        &tracer.Stats{},
		progress:     rate.NewLimiter(rate.Every(progressInterval), 1),
	}
}

// Get tracer id.
func (tr *cpuTracer) Id() string {
	return tr.id
}

// Get the computation speed estimate. This is the number of goroutines
// used for rendering.
func (tr *cpuTracer) Speed() uint32 {
	return uint32(tr.workers)
}

// Initialize tracer.
func (tr *cpuTracer) Init(frameW, frameH uint32, frameBuffer []uint8) error {
	tr.Lock()
	defer tr.Unlock()

	if uint64(len(frameBuffer)) < 3*uint64(frameW)*uint64(frameH) {
		return fmt.Errorf("cpu tracer: frame buffer too small for a %dx%d frame; got %d bytes", frameW, frameH, len(frameBuffer))
	}

	tr.frameW, tr.frameH = frameW, frameH
	tr.frameBuffer = frameBuffer

	// Start worker
	if tr.closeChan == nil {
		tr.startWorker()
	}

	return nil
}

// Shutdown and cleanup tracer.
func (tr *cpuTracer) Close() {
	tr.Lock()
	defer tr.Unlock()

	tr.cleanup()
}

// Cleanup tracer. This method is meant to be called while holding tr.Lock()
func (tr *cpuTracer) cleanup() {
	// If the worker is running shut it down
	if tr.closeChan != nil {
		tr.closeChan <- struct{}{}

		// wait for worker to ack close and shutdown channel
		<-tr.closeChan
		close(tr.closeChan)
		tr.closeChan = nil
		tr.wg.Wait()
	}

	tr.frameBuffer = nil
	tr.world = nil
	tr.integrator = nil
}

// Enqueue block request.
func (tr *cpuTracer) Enqueue(blockReq tracer.BlockRequest) {
	select {
	case tr.blockReqChan <- blockReq:
	default:
		// drop the request if worker is not listening
		tr.logger.Error("request processor did not receive block request")
		select {
		case blockReq.ErrChan <- ErrBusy:
		default:
		}
	}
}

// Append a change to the tracer's update buffer.
func (tr *cpuTracer) Update(updateType tracer.UpdateType, data interface{}) {
	tr.updateMu.Lock()
	tr.updateBuffer[updateType] = data
	tr.updateMu.Unlock()
}

// Retrieve last frame statistics.
func (tr *cpuTracer) Stats() *tracer.Stats {
	return tr.stats
}

// Commit queued changes.
func (tr *cpuTracer) commitUpdates() error {
	tr.updateMu.Lock()
	pending := tr.updateBuffer
	tr.updateBuffer = make(map[tracer.UpdateType]interface{}, 0)
	tr.updateMu.Unlock()

	for updateType, data := range pending {
		switch updateType {
		case tracer.UpdateWorld:
			world, ok := data.(*scene.World)
			if !ok || world == nil {
				return fmt.Errorf("cpu tracer: invalid payload %T for world update", data)
			}
			tr.world = world
			tr.integrator = NewWhitted(world)
		default:
			return fmt.Errorf("unsupported update type %d", updateType)
		}
	}

	return nil
}

func (tr *cpuTracer) hasPendingUpdates() bool {
	tr.updateMu.Lock()
	defer tr.updateMu.Unlock()
	return len(tr.updateBuffer) != 0
}

// Spawn a go-routine to process block render requests.
func (tr *cpuTracer) startWorker() {
	// Worker already running
	if tr.closeChan != nil {
		return
	}

	tr.closeChan = make(chan struct{}, 0)
	readyChan := make(chan struct{}, 0)
	tr.wg.Add(1)
	go func() {
		defer tr.wg.Done()
		var blockReq tracer.BlockRequest
		var startTime time.Time
		var err error
		close(readyChan)
		for {
			select {
			case blockReq = <-tr.blockReqChan:
				startTime = time.Now()

				// Apply any pending changes
				if tr.hasPendingUpdates() {
					err = tr.commitUpdates()
					if err != nil {
						blockReq.ErrChan <- err
						continue
					}
					tr.stats.UpdateTime = time.Since(startTime)
					startTime = time.Now()
				}

				// Render block and reply with our completion status
				err = tr.renderBlock(&blockReq)
				if err != nil {
					blockReq.ErrChan <- err
					continue
				}

				// Update stats
				tr.stats.BlockH = blockReq.BlockH
				tr.stats.RenderTime = time.Since(startTime)
				tr.stats.PrimaryRays, tr.stats.ShadowRays, tr.stats.ReflectionRays = tr.integrator.ResetCounters()

				blockReq.DoneChan <- blockReq.BlockH
			case <-tr.closeChan:
				// Ack close
				tr.closeChan <- struct{}{}
				return
			}
		}
	}()

	// Wait for go-routine to start
	<-readyChan
}

// Render block one scanline at a time.
func (tr *cpuTracer) renderBlock(blockReq *tracer.BlockRequest) error {
	if tr.world == nil {
		return tracer.ErrNoSceneData
	}
	if tr.world.Camera == nil {
		return scene.ErrNoCamera
	}
	if tr.frameBuffer == nil {
		return tracer.ErrNoFrame
	}
	if blockReq.BlockY+blockReq.BlockH > tr.frameH {
		return ErrBlockOutOfRange
	}

	spp := blockReq.SamplesPerPixel
	if spp == 0 {
		spp = 1
	}

	lastRow := blockReq.BlockY + blockReq.BlockH
	for row := blockReq.BlockY; row < lastRow; row++ {
		tr.renderScanline(row, spp)

		if tr.progress.Allow() {
			tr.logger.Infof("rendered %d/%d scanlines of block starting at row %d", row-blockReq.BlockY+1, blockReq.BlockH, blockReq.BlockY)
		}
	}

	return nil
}

// Render a single scanline. Columns are partitioned into contiguous spans,
// one per goroutine; each pixel is written exactly once.
func (tr *cpuTracer) renderScanline(row, spp uint32) {
	workers := uint32(tr.workers)
	if workers > tr.frameW {
		workers = tr.frameW
	}
	if workers == 0 {
		return
	}

	span := (tr.frameW + workers - 1) / workers
	rowOffset := 3 * row * tr.frameW

	var wg sync.WaitGroup
	for colStart := uint32(0); colStart < tr.frameW; colStart += span {
		colEnd := colStart + span
		if colEnd > tr.frameW {
			colEnd = tr.frameW
		}

		wg.Add(1)
		go func(colStart, colEnd uint32) {
			defer wg.Done()
			for col := colStart; col < colEnd; col++ {
				writePixel(tr.frameBuffer[rowOffset+3*col:], tr.samplePixel(row, col, spp), spp)
			}
		}(colStart, colEnd)
	}
	wg.Wait()
}

// Accumulate the radiance of spp stratified samples inside a pixel. A single
// sample goes through the pixel center.
func (tr *cpuTracer) samplePixel(row, col, spp uint32) types.Vec3 {
	camera := tr.world.Camera
	if spp == 1 {
		return tr.integrator.Trace(camera.Ray(row, col)).ZeroNaN()
	}

	var sum types.Vec3
	for s := uint32(0); s < spp; s++ {
		dx, dy := sampleOffset(s, spp)
		sum = sum.Add(tr.integrator.Trace(camera.RayThrough(float32(col)+dx, float32(row)+dy)).ZeroNaN())
	}
	return sum
}

// Get the sub-pixel offset of sample s out of spp. The pixel is split into a
// gridX * gridY grid with gridY = floor(sqrt(spp)) and samples are spread
// evenly over its cells; each sample sits at its cell center.
func sampleOffset(s, spp uint32) (float32, float32) {
	gridY := uint32(math.Sqrt(float64(spp)))
	gridX := (spp + gridY - 1) / gridY
	cell := uint64(s) * uint64(gridX*gridY) / uint64(spp)

	dx := (float32(cell%uint64(gridX)) + 0.5) / float32(gridX)
	dy := (float32(cell/uint64(gridX)) + 0.5) / float32(gridY)
	return dx, dy
}

// Scale the accumulated color by 1/spp and encode it as 3 bytes.
func writePixel(out []uint8, color types.Vec3, spp uint32) {
	scale := 1.0 / float32(spp)
	for ch := 0; ch < 3; ch++ {
		c := types.Clamp(color[ch]*scale, 0, 1)
		out[ch] = uint8(255.999 * c)
	}
}
