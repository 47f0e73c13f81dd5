package window

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow is the GLFW side of an engineWindow. All methods except requestClose must run on the
// thread that created it.
type glfwWindow struct {
	handle *glfw.Window
	closed atomic.Bool
}

// openGLFWWindow initializes GLFW, opens a window without a client API and routes its input
// callbacks into w's dispatch methods.
//
// See https://www.glfw.org/docs/latest/window_guide.html
func openGLFWWindow(w *engineWindow) (*glfwWindow, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// The surface is driven by WebGPU; no GL context.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	handle, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}
	handle.SetSizeLimits(w.minWidth, w.minHeight, glfw.DontCare, glfw.DontCare)
	gw := &glfwWindow{handle: handle}

	handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if w.handleKey(uint32(key), glfwAction(action)) {
			gw.requestClose()
		}
	})
	handle.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		w.handleMouseButton(int(button), glfwAction(action))
	})
	// Framebuffer size, not window size: they differ on high-DPI displays and the swapchain
	// is sized in pixels.
	handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.handleResize(width, height)
	})

	w.width, w.height = handle.GetFramebufferSize()
	return gw, nil
}

func glfwAction(a glfw.Action) keyAction {
	switch a {
	case glfw.Press:
		return actionPress
	case glfw.Repeat:
		return actionRepeat
	default:
		return actionRelease
	}
}

// surfaceDescriptor builds the per-platform (Win32, X11, Wayland, Metal) surface descriptor
// through the wgpuglfw bridge.
func (g *glfwWindow) surfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(g.handle)
}

func (g *glfwWindow) framebufferSize() (int, int) {
	return g.handle.GetFramebufferSize()
}

// waitEvents sleeps until an event arrives; callbacks fire before it returns.
func (g *glfwWindow) waitEvents() {
	glfw.WaitEvents()
}

// pollEvents dispatches pending events without blocking and reports whether the window is still open.
func (g *glfwWindow) pollEvents() bool {
	glfw.PollEvents()
	return g.open()
}

func (g *glfwWindow) open() bool {
	return !g.closed.Load() && !g.handle.ShouldClose()
}

func (g *glfwWindow) requestClose() {
	g.closed.Store(true)
	g.handle.SetShouldClose(true)
	// Wakes a waitEvents caller so a minimized window can still quit.
	glfw.PostEmptyEvent()
}

// destroy closes the window and shuts GLFW down.
func (g *glfwWindow) destroy() {
	g.closed.Store(true)
	g.handle.Destroy()
	glfw.Terminate()
}
