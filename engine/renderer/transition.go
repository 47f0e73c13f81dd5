package renderer

import "fmt"

// TextureUsage is the role a texture plays in the current point of the frame graph.
type TextureUsage int

const (
	UsageUndefined TextureUsage = iota
	UsageDepthAttachment
	UsageShaderRead
)

func (u TextureUsage) String() string {
	switch u {
	case UsageUndefined:
		return "undefined"
	case UsageDepthAttachment:
		return "depth-attachment"
	case UsageShaderRead:
		return "shader-read"
	}
	return fmt.Sprintf("usage(%d)", int(u))
}

// usageTracker records the usage of the shadow map between passes. WebGPU synchronizes the
// write-then-sample hazard itself; the tracker makes the frame graph's expectations explicit and
// catches passes recorded out of order.
type usageTracker struct {
	label string
	usage TextureUsage
}

func newUsageTracker(label string) *usageTracker {
	return &usageTracker{label: label}
}

// Usage returns the current usage.
func (t *usageTracker) Usage() TextureUsage {
	return t.usage
}

// Transition moves the texture to usage to. Only the shadow map's cycle is legal:
// undefined or shader-read to depth-attachment, and depth-attachment to shader-read.
// Anything else is a recording bug and panics.
func (t *usageTracker) Transition(to TextureUsage) {
	from := t.usage
	switch {
	case to == UsageDepthAttachment && (from == UsageUndefined || from == UsageShaderRead):
	case to == UsageShaderRead && from == UsageDepthAttachment:
	default:
		panic(fmt.Sprintf("%s: unsupported usage transition %s -> %s", t.label, from, to))
	}
	t.usage = to
}

// Reset returns the tracker to undefined after the texture is recreated.
func (t *usageTracker) Reset() {
	t.usage = UsageUndefined
}
