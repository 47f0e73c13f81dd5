package common

// Key codes for the input the game reacts to.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeySpace = 32  // Spacebar (ASCII)
	KeyEsc   = 256 // Escape key (GLFW)
	KeyUp    = 265 // Up arrow (GLFW)
	KeyDown  = 264 // Down arrow (GLFW)
)

// Mouse button codes, matching GLFW's MouseButton values.
const (
	MouseButtonLeft   = 0
	MouseButtonRight  = 1
	MouseButtonMiddle = 2
)

// IsJumpKey reports whether keyCode triggers a jump.
func IsJumpKey(keyCode uint32) bool {
	return keyCode == KeySpace || keyCode == KeyUp
}
