package bind_group_provider

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithLabel sets the debug label for this provider.
//
// Parameters:
//   - label: the debug label
//
// Returns:
//   - BindGroupProviderOption: a function that sets the label
func WithLabel(label string) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.label = label
	}
}

// WithFrameCount sets how many in-flight frames the provider holds uniform resources for.
// Values below 1 are ignored.
//
// Parameters:
//   - n: the in-flight frame count
//
// Returns:
//   - BindGroupProviderOption: a function that sets the frame count
func WithFrameCount(n int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		if n >= 1 {
			p.frameCount = n
		}
	}
}
