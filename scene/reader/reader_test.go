package reader

import (
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/achilleasa/go-raytrace/scene"
	"github.com/achilleasa/go-raytrace/types"
)

const testScene = `# A test scene
size 64 48
maxdepth 3
output frame.png
camera 0 0 5 0 0 0 0 1 0 45

ambient 0.1 0.1 0.1
directional 0 1 0 0.5 0.5 0.5
point 0 5 0 1 1 1
attenuation 1 0.1 0.05

diffuse 1 0 0
specular 0.2 0.2 0.2
shininess 20
maxverts 3
vertex -1 -1 0
vertex 1 -1 0
vertex 0 1 0
tri 0 1 2

pushTransform
translate 0 0 -3
scale 2 2 2
sphere 0 0 0 1
popTransform

unknowncommand 1 2 3
`

func approxEqualVec3(a, b types.Vec3) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(float64(a[i]-b[i])) > 1e-4 {
			return false
		}
	}
	return true
}

func TestReadScene(t *testing.T) {
	w, err := newSceneReader().read(mockResource(testScene))
	if err != nil {
		t.Fatal(err)
	}

	if err = w.Validate(); err != nil {
		t.Fatal(err)
	}
	if w.Camera.Width != 64 || w.Camera.Height != 48 {
		t.Fatalf("expected frame dims to be 64x48; got %dx%d", w.Camera.Width, w.Camera.Height)
	}
	if w.Camera.FovY != 45 {
		t.Fatalf("expected camera fov to be 45; got %f", w.Camera.FovY)
	}
	if w.MaxDepth != 3 {
		t.Fatalf("expected max depth to be 3; got %d", w.MaxDepth)
	}
	if w.OutputFile != "frame.png" {
		t.Fatalf("expected output file to be frame.png; got %s", w.OutputFile)
	}
	if w.Attenuation != types.XYZ(1, 0.1, 0.05) {
		t.Fatalf("expected attenuation (1, 0.1, 0.05); got %v", w.Attenuation)
	}

	if len(w.Lights) != 2 {
		t.Fatalf("expected 2 lights; got %d", len(w.Lights))
	}
	if w.Lights[0].Type != scene.DirectionalLight || w.Lights[1].Type != scene.PointLight {
		t.Fatalf("expected a directional and a point light; got types %d and %d", w.Lights[0].Type, w.Lights[1].Type)
	}

	if len(w.Primitives) != 2 {
		t.Fatalf("expected 2 primitives; got %d", len(w.Primitives))
	}
	if _, isTri := w.Primitives[0].(*scene.Triangle); !isTri {
		t.Fatalf("expected first primitive to be a triangle; got %T", w.Primitives[0])
	}

	sphere, isSphere := w.Primitives[1].(*scene.Sphere)
	if !isSphere {
		t.Fatalf("expected second primitive to be a sphere; got %T", w.Primitives[1])
	}
	if sphere.Material.Diffuse != types.XYZ(1, 0, 0) || sphere.Material.Shininess != 20 {
		t.Fatalf("unexpected sphere material %+v", *sphere.Material)
	}

	// The scale applies to the geometry before the translation
	bbox := sphere.BBox()
	if !approxEqualVec3(bbox.Min, types.XYZ(-2, -2, -5)) || !approxEqualVec3(bbox.Max, types.XYZ(2, 2, -1)) {
		t.Fatalf("expected sphere bbox to be [(-2, -2, -5), (2, 2, -1)]; got %v", bbox)
	}

	if stats := w.Bvh.Stats(); stats.Leaves != 2 {
		t.Fatalf("expected bvh to contain 2 leaves; got %d", stats.Leaves)
	}
}

func TestReadSceneErrors(t *testing.T) {
	type spec struct {
		payload  string
		expError string
	}
	specs := []spec{
		{
			"size 640",
			"[embedded: 1] error: unsupported syntax for 'size'; expected 2 arguments; got 1",
		},
		{
			"# comment\n\nsphere 0 0 0 abc",
			`[embedded: 3] error: strconv.ParseFloat: parsing "abc": invalid syntax`,
		},
		{
			"shininess",
			"[embedded: 1] error: unsupported syntax for 'shininess'; expected 1 argument; got 0",
		},
		{
			"vertex 0 0 0\ntri 0 0 1",
			"[embedded: 2] error: builder: vertex index 1 out of bounds; 1 vertices defined",
		},
		{
			"pushTransform\npopTransform\npopTransform",
			"[embedded: 3] error: builder: cannot pop the last transform from the stack",
		},
		{
			"camera 0 0 5 0 0 0 0 1 0",
			"[embedded: 1] error: unsupported syntax for 'camera'; expected 10 arguments; got 9",
		},
	}

	for index, s := range specs {
		_, err := newSceneReader().read(mockResource(s.payload))
		if err == nil || err.Error() != s.expError {
			t.Fatalf("[spec %d] expected error %q; got %v", index, s.expError, err)
		}
	}
}

func TestReadSceneFromFile(t *testing.T) {
	sceneFile := filepath.Join(t.TempDir(), "scene.test")
	err := os.WriteFile(sceneFile, []byte(testScene), 0644)
	if err != nil {
		t.Fatal(err)
	}

	w, err := ReadScene(sceneFile)
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Primitives) != 2 {
		t.Fatalf("expected 2 primitives; got %d", len(w.Primitives))
	}
}

func TestReadSceneIncludes(t *testing.T) {
	files := map[string]string{
		"/scenes/main.test":         "size 10 10\ncamera 0 0 5 0 0 0 0 1 0 45\ninclude geometry.test\nsphere 3 0 0 1",
		"/scenes/geometry.test":     "diffuse 0 1 0\nsphere 0 0 0 1",
		"/scenes/broken.test":       "size 10 10\n\ninclude bad-geometry.test",
		"/scenes/bad-geometry.test": "sphere 0 0 0 1\nsphere 0 0",
		"/scenes/loop.test":         "include loop.test",
	}
	serverFn := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, exists := files[r.URL.Path]
		if !exists {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(payload))
	})
	server := httptest.NewServer(serverFn)
	defer server.Close()

	w, err := ReadScene(server.URL + "/scenes/main.test")
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Primitives) != 2 {
		t.Fatalf("expected 2 primitives; got %d", len(w.Primitives))
	}
	if mat := w.Primitives[1].(*scene.Sphere).Material; mat.Diffuse != types.XYZ(0, 1, 0) {
		t.Fatalf("expected material state to carry over from included file; got diffuse %v", mat.Diffuse)
	}

	expError := fmt.Sprintf(
		"[%s/scenes/bad-geometry.test: 2] error: unsupported syntax for 'sphere'; expected 4 arguments; got 2\nincluded from %s/scenes/broken.test:3",
		server.URL, server.URL,
	)
	_, err = ReadScene(server.URL + "/scenes/broken.test")
	if err == nil || err.Error() != expError {
		t.Fatalf("expected error %q; got %v", expError, err)
	}

	_, err = ReadScene(server.URL + "/scenes/loop.test")
	expError = fmt.Sprintf("max include depth of %d exceeded", maxIncludeDepth)
	if err == nil || !strings.Contains(err.Error(), expError) {
		t.Fatalf("expected error containing %q; got %v", expError, err)
	}

	_, err = ReadScene(server.URL + "/scenes/missing.test")
	expError = fmt.Sprintf("resource: could not fetch '%s/scenes/missing.test': status 404", server.URL)
	if err == nil || err.Error() != expError {
		t.Fatalf("expected error %q; got %v", expError, err)
	}
}
