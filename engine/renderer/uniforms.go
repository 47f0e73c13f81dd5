package renderer

import (
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-flap/common"
	"github.com/Carmen-Shannon/oxy-flap/engine/camera"
	"github.com/Carmen-Shannon/oxy-flap/engine/light"
	"github.com/Carmen-Shannon/oxy-flap/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-flap/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-flap/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// SceneUniformSize is the byte size of the main pass per-object uniform block.
	SceneUniformSize = pipeline.SceneUniformSize

	// ShadowUniformSize is the byte size of the shadow pass per-object uniform block.
	ShadowUniformSize = pipeline.ShadowUniformSize
)

// DefaultSpecular is the specular color shared by every material.
var DefaultSpecular = mgl32.Vec3{0.3, 0.3, 0.3}

// FrameGlobals is the per-frame state shared by every object's uniforms.
type FrameGlobals struct {
	Camera   camera.View
	Shadow   light.ShadowParams
	Specular mgl32.Vec3
}

// SceneUniforms mirrors the lit shader's per-object uniform block.
type SceneUniforms struct {
	Model            mgl32.Mat4 // offset   0
	View             mgl32.Mat4 // offset  64
	Projection       mgl32.Mat4 // offset 128
	NormalMatrix     mgl32.Mat4 // offset 192
	NormalViewMatrix mgl32.Mat4 // offset 256
	LightSpace       mgl32.Mat4 // offset 320
	MaterialSpecular mgl32.Vec3 // offset 384
	LightDirection   mgl32.Vec3 // offset 400
	ViewPosition     mgl32.Vec3 // offset 416
	// ShadowMapResolution and BiasFactor are splatted across a vec3 to keep 16-byte slots.
	ShadowMapResolution float32 // offset 432
	BiasFactor          float32 // offset 448
}

// Marshal writes the block into dst, which must hold SceneUniformSize bytes.
func (u *SceneUniforms) Marshal(dst []byte) {
	off := 0
	for _, m := range []mgl32.Mat4{u.Model, u.View, u.Projection, u.NormalMatrix, u.NormalViewMatrix, u.LightSpace} {
		off += common.PutMat4(dst[off:], m)
	}
	off += common.PutVec3(dst[off:], u.MaterialSpecular)
	off += common.PutVec3(dst[off:], u.LightDirection)
	off += common.PutVec3(dst[off:], u.ViewPosition)
	r := u.ShadowMapResolution
	off += common.PutVec3(dst[off:], mgl32.Vec3{r, r, r})
	b := u.BiasFactor
	common.PutVec3(dst[off:], mgl32.Vec3{b, b, b})
}

// ObjectUniforms computes both passes' uniforms for one object.
//
// Parameters:
//   - model: the object's model matrix
//   - g: the frame's shared state
//
// Returns:
//   - mgl32.Mat4: the shadow pass transform, lightSpace * model
//   - SceneUniforms: the main pass block
func ObjectUniforms(model mgl32.Mat4, g FrameGlobals) (mgl32.Mat4, SceneUniforms) {
	lightSpace := g.Shadow.LightSpace.Mul4(model)
	return lightSpace, SceneUniforms{
		Model:               model,
		View:                g.Camera.View,
		Projection:          g.Camera.Projection,
		NormalMatrix:        common.InverseTranspose(model),
		NormalViewMatrix:    common.InverseTranspose(g.Camera.View.Mul4(model)),
		LightSpace:          lightSpace,
		MaterialSpecular:    g.Specular,
		LightDirection:      g.Shadow.Direction,
		ViewPosition:        g.Camera.Position,
		ShadowMapResolution: g.Shadow.Resolution,
		BiasFactor:          g.Shadow.BiasFactor,
	}
}

// ProviderLookup returns the shadow and main pass uniform providers of the object with the given
// ID, or ok == false if it has none yet.
type ProviderLookup func(id uint64) (shadow, main bind_group_provider.BindGroupProvider, ok bool)

// buildUniformWrites computes every object's uniform bytes for frame slot frame. The per-object
// work is spread over pool and joined before returning; each task owns two fixed slots of the
// result so no locking is needed.
func buildUniformWrites(pool worker.DynamicWorkerPool, frame int, transforms []scene.Transform, g FrameGlobals, lookup ProviderLookup) []bind_group_provider.BufferWrite {
	writes := make([]bind_group_provider.BufferWrite, 2*len(transforms))

	var wg sync.WaitGroup
	for i := range transforms {
		shadowProvider, mainProvider, ok := lookup(transforms[i].ID)
		if !ok {
			continue
		}
		wg.Add(1)
		idx := i
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()

				lightSpace, su := ObjectUniforms(transforms[idx].ModelMatrix(), g)

				shadowData := make([]byte, ShadowUniformSize)
				common.PutMat4(shadowData, lightSpace)
				mainData := make([]byte, SceneUniformSize)
				su.Marshal(mainData)

				writes[2*idx] = bind_group_provider.BufferWrite{Provider: shadowProvider, Frame: frame, Data: shadowData}
				writes[2*idx+1] = bind_group_provider.BufferWrite{Provider: mainProvider, Frame: frame, Data: mainData}
				return nil, nil
			},
		})
	}
	wg.Wait()

	out := writes[:0]
	for _, w := range writes {
		if w.Provider != nil {
			out = append(out, w)
		}
	}
	return out
}
