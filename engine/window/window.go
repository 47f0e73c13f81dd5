package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-flap/common"
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

// Window is the game's GLFW window: it presents the WebGPU surface and turns raw input into
// jump, quit and resize events.
type Window interface {
	// SetUpdateCallback sets the function run once per message loop iteration; the render loop
	// lives here.
	//
	// Parameters:
	//   - callback: the per-iteration function, or nil
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized. It is also
	// called from inside WaitEvents, so it must not block on the render loop.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetKeyDownCallback sets the callback for key press and repeat events. Escape never reaches
	// it; Escape closes the window.
	//
	// Parameters:
	//   - callback: function receiving the GLFW key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetJumpCallback sets the callback fired by a jump key press or a left click.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetJumpCallback(callback func())

	// SurfaceDescriptor describes the native window for WebGPU surface creation.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the descriptor, or nil before the window is open
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// FramebufferSize queries the current framebuffer size in pixels. It is 0x0 while minimized.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	FramebufferSize() (int, int)

	// WaitEvents blocks until at least one window event arrives and dispatches it.
	WaitEvents()

	// IsRunning reports whether the window is open and no close has been requested.
	//
	// Returns:
	//   - bool: false once closing
	IsRunning() bool

	// RequestClose asks the message loop to stop after the current iteration and wakes a
	// WaitEvents caller. Safe to call from any goroutine while the window is open.
	RequestClose()

	// Close destroys the window and terminates GLFW.
	//
	// Returns:
	//   - error: an error if the window is not open
	Close() error

	// ProcessMessages polls events and runs the update callback until the window closes.
	// It must run on the thread that created the window.
	ProcessMessages()

	// Width returns the last known framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the last known framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// keyAction mirrors the GLFW key and button action values.
type keyAction int

const (
	actionRelease keyAction = iota
	actionPress
	actionRepeat
)

// engineWindow is the implementation of the Window interface.
type engineWindow struct {
	logger *zap.Logger

	// title is the window title displayed in the title bar.
	title string

	// minWidth and minHeight bound the window during resize.
	minWidth  int
	minHeight int

	// width and height are the framebuffer size in pixels as of the last resize event.
	width  int
	height int

	// platform is nil until the GLFW window is open and again after Close.
	platform *glfwWindow

	onUpdate  func()
	onResize  func(width, height int)
	onKeyDown func(keyCode uint32)
	onJump    func()
}

var _ Window = &engineWindow{}

// NewWindow opens the window. It must be called from the main goroutine, which it locks to its
// OS thread; failure to open panics.
//
// Parameters:
//   - options: title, size, logger
//
// Returns:
//   - Window: the open window
func NewWindow(options ...WindowBuilderOption) Window {
	w := newEngineWindow(options...)
	gw, err := openGLFWWindow(w)
	if err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	w.platform = gw
	w.logger.Info("window created",
		zap.String("title", w.title),
		zap.Int("framebuffer_width", w.width),
		zap.Int("framebuffer_height", w.height),
	)
	return w
}

func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		logger:    zap.NewNop(),
		title:     "Flappy Bird",
		minWidth:  200,
		minHeight: 150,
		width:     800,
		height:    600,
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetJumpCallback(callback func()) {
	w.onJump = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	if w.platform == nil {
		return nil
	}
	return w.platform.surfaceDescriptor()
}

func (w *engineWindow) FramebufferSize() (int, int) {
	if w.platform == nil {
		return 0, 0
	}
	return w.platform.framebufferSize()
}

func (w *engineWindow) WaitEvents() {
	if w.platform != nil {
		w.platform.waitEvents()
	}
}

func (w *engineWindow) IsRunning() bool {
	return w.platform != nil && w.platform.open()
}

func (w *engineWindow) RequestClose() {
	if w.platform != nil {
		w.platform.requestClose()
	}
}

func (w *engineWindow) Close() error {
	if w.platform == nil {
		return errors.New("window is not open")
	}
	w.platform.destroy()
	w.platform = nil
	w.logger.Debug("window closed")
	return nil
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if !w.platform.pollEvents() {
			break
		}
		if w.onUpdate != nil {
			w.onUpdate()
		}
		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// handleKey dispatches one key event.
//
// Returns:
//   - bool: true when the event asks for the window to close
func (w *engineWindow) handleKey(key uint32, action keyAction) bool {
	if action == actionRelease {
		return false
	}
	if key == common.KeyEsc {
		return action == actionPress
	}
	if w.onKeyDown != nil {
		w.onKeyDown(key)
	}
	// Holding a jump key must not auto-repeat jumps.
	if action == actionPress && common.IsJumpKey(key) && w.onJump != nil {
		w.onJump()
	}
	return false
}

// handleMouseButton dispatches one mouse button event. Right-drag is reserved and ignored.
func (w *engineWindow) handleMouseButton(button int, action keyAction) {
	if button == common.MouseButtonLeft && action == actionPress && w.onJump != nil {
		w.onJump()
	}
}

// handleResize records the new framebuffer size and forwards it.
func (w *engineWindow) handleResize(width, height int) {
	w.width = width
	w.height = height
	w.logger.Debug("framebuffer resized", zap.Int("width", width), zap.Int("height", height))
	if w.onResize != nil {
		w.onResize(width, height)
	}
}
