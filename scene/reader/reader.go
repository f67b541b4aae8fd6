package reader

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/achilleasa/go-raytrace/log"
	"github.com/achilleasa/go-raytrace/scene"
	"github.com/achilleasa/go-raytrace/scene/compiler"
	"github.com/achilleasa/go-raytrace/types"
)

// Max nesting level for include commands.
const maxIncludeDepth = 16

type sceneReader struct {
	logger log.Logger

	builder *compiler.Builder

	// An error stack that provides additional error information when
	// scene files include other files.
	errStack []string
}

// Read a scene description from a local file or an http/https URL and
// compile it into a world ready for rendering.
func ReadScene(pathToScene string) (*scene.World, error) {
	res, err := newResource(pathToScene, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return newSceneReader().read(res)
}

func newSceneReader() *sceneReader {
	return &sceneReader{
		logger:   log.New("sceneReader"),
		builder:  compiler.NewBuilder(compiler.PostMultiply),
		errStack: make([]string, 0),
	}
}

func (r *sceneReader) read(res *resource) (*scene.World, error) {
	r.logger.Noticef("parsing scene from %s", res.Path())
	start := time.Now()

	err := r.parse(res, 0)
	if err != nil {
		return nil, err
	}

	world := r.builder.Build()
	r.logger.Noticef(
		"parsed scene in %d ms; vertices: %d, primitives: %d, lights: %d",
		time.Since(start).Nanoseconds()/1e6,
		r.builder.VertexCount(), len(world.Primitives), len(world.Lights),
	)

	return world, nil
}

// Generate an error message that also includes any data in the error stack.
func (r *sceneReader) emitError(file string, line int, msgFormat string, args ...interface{}) error {
	msg := fmt.Sprintf(msgFormat, args...)

	var errMsg string
	if file != "" {
		errMsg = fmt.Sprintf("[%s: %d] error: %s\n%s", file, line, msg, strings.Join(r.errStack, "\n"))
	} else {
		errMsg = fmt.Sprintf("error: %s\n%s", msg, strings.Join(r.errStack, "\n"))
	}

	return fmt.Errorf("%s", strings.Trim(errMsg, "\n"))
}

// Push a frame to the error stack.
func (r *sceneReader) pushFrame(msg string) {
	r.errStack = append([]string{msg}, r.errStack...)
}

// Pop a frame from the error stack.
func (r *sceneReader) popFrame() {
	r.errStack = r.errStack[1:]
}

// Parse scene commands. Each line contains a command followed by its
// arguments. Lines starting with '#' and unknown commands are skipped.
func (r *sceneReader) parse(res *resource, depth int) error {
	var lineNum int = 0

	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		err := r.parseCommand(res, lineNum, lineTokens, depth)
		if err != nil {
			// Errors from included files already carry location info
			if _, isInclude := err.(includeError); isInclude {
				return err
			}
			return r.emitError(res.Path(), lineNum, err.Error())
		}
	}

	if err := scanner.Err(); err != nil {
		return r.emitError(res.Path(), lineNum, err.Error())
	}

	return nil
}

// Wraps an error that was generated while parsing an included resource.
type includeError struct {
	error
}

func (r *sceneReader) parseCommand(res *resource, lineNum int, lineTokens []string, depth int) error {
	b := r.builder

	switch lineTokens[0] {
	case "include":
		if err := expectArgs(lineTokens, 1); err != nil {
			return err
		}
		if depth+1 > maxIncludeDepth {
			return fmt.Errorf("max include depth of %d exceeded", maxIncludeDepth)
		}

		incRes, err := newResource(lineTokens[1], res)
		if err != nil {
			return err
		}
		defer incRes.Close()

		r.pushFrame(fmt.Sprintf("included from %s:%d", res.Path(), lineNum))
		err = r.parse(incRes, depth+1)
		if err != nil {
			return includeError{err}
		}
		r.popFrame()
	case "size":
		v, err := parseUints(lineTokens, 2)
		if err != nil {
			return err
		}
		b.Size(v[0], v[1])
	case "maxdepth":
		v, err := parseUints(lineTokens, 1)
		if err != nil {
			return err
		}
		b.MaxDepth(v[0])
	case "output":
		if err := expectArgs(lineTokens, 1); err != nil {
			return err
		}
		b.Output(lineTokens[1])
	case "camera":
		v, err := parseFloats(lineTokens, 10)
		if err != nil {
			return err
		}
		b.Camera(
			types.XYZ(v[0], v[1], v[2]),
			types.XYZ(v[3], v[4], v[5]),
			types.XYZ(v[6], v[7], v[8]),
			v[9],
		)
	case "ambient", "diffuse", "specular", "emission":
		color, err := parseVec3(lineTokens)
		if err != nil {
			return err
		}
		switch lineTokens[0] {
		case "ambient":
			b.Ambient(color)
		case "diffuse":
			b.Diffuse(color)
		case "specular":
			b.Specular(color)
		case "emission":
			b.Emission(color)
		}
	case "shininess":
		v, err := parseFloats(lineTokens, 1)
		if err != nil {
			return err
		}
		b.Shininess(v[0])
	case "attenuation":
		v, err := parseFloats(lineTokens, 3)
		if err != nil {
			return err
		}
		b.Attenuation(v[0], v[1], v[2])
	case "directional", "point":
		v, err := parseFloats(lineTokens, 6)
		if err != nil {
			return err
		}
		vec, intensity := types.XYZ(v[0], v[1], v[2]), types.XYZ(v[3], v[4], v[5])
		if lineTokens[0] == "directional" {
			b.Directional(vec, intensity)
		} else {
			b.Point(vec, intensity)
		}
	case "maxverts":
		// Vertex storage grows on demand; the hint is only validated.
		if _, err := parseUints(lineTokens, 1); err != nil {
			return err
		}
	case "vertex":
		v, err := parseVec3(lineTokens)
		if err != nil {
			return err
		}
		b.Vertex(v)
	case "tri":
		v, err := parseUints(lineTokens, 3)
		if err != nil {
			return err
		}
		return b.Tri(int(v[0]), int(v[1]), int(v[2]))
	case "sphere":
		v, err := parseFloats(lineTokens, 4)
		if err != nil {
			return err
		}
		b.Sphere(types.XYZ(v[0], v[1], v[2]), v[3])
	case "pushTransform":
		b.PushTransform()
	case "popTransform":
		return b.PopTransform()
	case "translate":
		v, err := parseVec3(lineTokens)
		if err != nil {
			return err
		}
		b.Translate(v)
	case "scale":
		v, err := parseVec3(lineTokens)
		if err != nil {
			return err
		}
		b.Scale(v)
	case "rotate":
		v, err := parseFloats(lineTokens, 4)
		if err != nil {
			return err
		}
		b.Rotate(types.XYZ(v[0], v[1], v[2]), v[3])
	default:
		r.logger.Debugf("ignoring unknown command '%s'", lineTokens[0])
	}

	return nil
}

// Ensure that the command has exactly the expected number of arguments.
func expectArgs(lineTokens []string, count int) error {
	if len(lineTokens)-1 != count {
		plural := "s"
		if count == 1 {
			plural = ""
		}
		return fmt.Errorf("unsupported syntax for '%s'; expected %d argument%s; got %d", lineTokens[0], count, plural, len(lineTokens)-1)
	}
	return nil
}

// Parse exactly count float arguments.
func parseFloats(lineTokens []string, count int) ([]float32, error) {
	if err := expectArgs(lineTokens, count); err != nil {
		return nil, err
	}

	out := make([]float32, count)
	for index := range out {
		v, err := strconv.ParseFloat(lineTokens[index+1], 32)
		if err != nil {
			return nil, err
		}
		out[index] = float32(v)
	}
	return out, nil
}

// Parse exactly count unsigned integer arguments.
func parseUints(lineTokens []string, count int) ([]uint32, error) {
	if err := expectArgs(lineTokens, count); err != nil {
		return nil, err
	}

	out := make([]uint32, count)
	for index := range out {
		v, err := strconv.ParseUint(lineTokens[index+1], 10, 32)
		if err != nil {
			return nil, err
		}
		out[index] = uint32(v)
	}
	return out, nil
}

// Parse a Vec3 row.
func parseVec3(lineTokens []string) (types.Vec3, error) {
	v, err := parseFloats(lineTokens, 3)
	if err != nil {
		return types.Vec3{}, err
	}
	return types.XYZ(v[0], v[1], v[2]), nil
}
