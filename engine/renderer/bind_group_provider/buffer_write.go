package bind_group_provider

// BufferWrite describes a single uniform write targeting one frame's buffer on a
// BindGroupProvider at a given byte offset.
type BufferWrite struct {
	Provider BindGroupProvider
	Frame    int
	Offset   uint64
	Data     []byte
}
