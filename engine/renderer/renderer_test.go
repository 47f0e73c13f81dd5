package renderer

import (
	"fmt"
	"testing"

	"github.com/Carmen-Shannon/oxy-flap/engine/game_object"
	"github.com/Carmen-Shannon/oxy-flap/engine/model"
	"github.com/Carmen-Shannon/oxy-flap/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-flap/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-flap/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeRendererBackend struct {
	*fakeFrameBackend
	*fakeSwapchainDevice

	setup    []string
	bound    scene.Scene
	sources  FrameSources
	released int
}

var _ rendererBackend = &fakeRendererBackend{}

func newFakeRendererBackend() *fakeRendererBackend {
	return &fakeRendererBackend{
		fakeFrameBackend:    &fakeFrameBackend{},
		fakeSwapchainDevice: newFakeSwapchainDevice(),
	}
}

func (f *fakeRendererBackend) Bind(sc scene.Scene, sources FrameSources) {
	f.bound = sc
	f.sources = sources
}

func (f *fakeRendererBackend) InitShadowMap(resolution uint32) error {
	f.setup = append(f.setup, fmt.Sprintf("shadow map %d", resolution))
	return nil
}

func (f *fakeRendererBackend) RegisterPipeline(p pipeline.Pipeline, colorFormat wgpu.TextureFormat) error {
	f.setup = append(f.setup, fmt.Sprintf("pipeline %s x%d", p.Key(), p.SampleCount()))
	return nil
}

func (f *fakeRendererBackend) InitMeshBuffers(m model.Mesh) error {
	f.setup = append(f.setup, "mesh "+m.Name())
	return nil
}

func (f *fakeRendererBackend) InitMaterial(mat material.Material) error {
	f.setup = append(f.setup, "material "+mat.Name())
	return nil
}

func (f *fakeRendererBackend) InitObject(id uint64) error {
	f.setup = append(f.setup, fmt.Sprintf("object %d", id))
	return nil
}

func (f *fakeRendererBackend) Release() {
	f.released++
}

func newTestRenderer(t *testing.T, backend *fakeRendererBackend, options ...RendererBuilderOption) *renderer {
	options = append([]RendererBuilderOption{WithLogger(zaptest.NewLogger(t)), WithWorkers(2)}, options...)
	r := newRenderer(options...)
	r.attach(&fakeWindow{sizes: [][2]int{{800, 600}}}, backend)
	return r
}

func testScene(t *testing.T) scene.Scene {
	sc := scene.NewScene(scene.WithName("test"))
	require.NoError(t, sc.AddMesh(model.NewMesh(model.WithName("Cube"))))
	require.NoError(t, sc.AddMesh(model.NewMesh(model.WithName("Plane"))))
	for range 3 {
		_, err := sc.Spawn(game_object.NewGameObject(game_object.WithMesh("Cube")))
		require.NoError(t, err)
	}
	sc.ApplyQueues()
	return sc
}

func TestRendererInit(t *testing.T) {
	backend := newFakeRendererBackend()
	r := newTestRenderer(t, backend,
		WithShadowMapResolution(2048),
		WithMaterial(material.NewMaterial(material.WithName("Atlas"))),
	)
	sc := testScene(t)

	require.NoError(t, r.Init(sc))
	assert.Equal(t, []string{
		"shadow map 2048",
		"pipeline shadow x1",
		"pipeline lit x4",
		"material Atlas",
		"mesh Cube",
		"mesh Plane",
		"object 1",
		"object 2",
		"object 3",
	}, backend.setup)
	assert.Same(t, sc, backend.bound)
	assert.NotNil(t, backend.sources.Camera)
	assert.NotNil(t, backend.sources.Light)
	assert.NotNil(t, backend.sources.Pool)

	// a second Init is a no-op
	require.NoError(t, r.Init(sc))
	assert.Len(t, backend.setup, 9)
}

func TestRendererConfiguresSwapchainOnCreate(t *testing.T) {
	backend := newFakeRendererBackend()
	r := newTestRenderer(t, backend, WithMSAA(MSAAOff), WithVSync(false))

	cfg := r.Config()
	assert.Equal(t, Extent{Width: 800, Height: 600}, cfg.Extent)
	assert.Equal(t, uint32(1), cfg.SampleCount)
	assert.Equal(t, wgpu.PresentModeImmediate, cfg.PresentMode)
	assert.Len(t, backend.configured, 1)
}

func TestRendererDraw(t *testing.T) {
	backend := newFakeRendererBackend()
	r := newTestRenderer(t, backend)
	sc := testScene(t)

	// nothing is drawn before Init
	require.NoError(t, r.Draw(sc.Capture(0, 0)))
	assert.Zero(t, backend.count("submit"))

	require.NoError(t, r.Init(sc))
	require.NoError(t, r.Draw(nil))
	assert.Zero(t, backend.count("submit"))

	for i := range 4 {
		require.NoError(t, r.Draw(sc.Capture(uint64(i), 0)))
	}
	assert.Equal(t, 4, backend.count("present"))

	r.Resize()
	require.NoError(t, r.Draw(sc.Capture(5, 0)))
	assert.Len(t, backend.configured, 2)
}

func TestRendererRelease(t *testing.T) {
	backend := newFakeRendererBackend()
	r := newTestRenderer(t, backend)
	require.NoError(t, r.Init(testScene(t)))

	r.Release()
	r.Release()
	assert.Equal(t, 1, backend.released)
	assert.Zero(t, r.swapchain.arena.Len())

	require.NoError(t, r.Draw(&scene.Snapshot{}))
	assert.Zero(t, backend.count("submit"))
}
