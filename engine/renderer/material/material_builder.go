package material

import "github.com/Carmen-Shannon/oxy-flap/common"

// MaterialBuilderOption is a functional option for configuring a Material via NewMaterial.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the material identifier
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithTexture is an option builder that sets the staged diffuse texture.
//
// Parameters:
//   - tex: the decoded texture with its mip chain
//
// Returns:
//   - MaterialBuilderOption: a function that applies the texture option to a material
func WithTexture(tex common.TextureStagingData) MaterialBuilderOption {
	return func(m *material) {
		m.texture = tex
	}
}

// WithMaxAnisotropy sets the sampler's anisotropic filtering limit. 1 disables it.
func WithMaxAnisotropy(n uint16) MaterialBuilderOption {
	return func(m *material) {
		if n > 0 {
			m.sampler.MaxAnisotropy = n
		}
	}
}
