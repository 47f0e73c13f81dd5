package scene

import "go.uber.org/zap"

// SceneBuilderOption is a functional option for configuring a Scene via NewScene.
type SceneBuilderOption func(s *scene)

// WithName sets the scene's debug name.
func WithName(name string) SceneBuilderOption {
	return func(s *scene) {
		s.name = name
	}
}

// WithLogger sets the logger used for queue diagnostics.
//
// Parameters:
//   - l: the logger; nil keeps the no-op default
//
// Returns:
//   - SceneBuilderOption: a function that applies the logger
func WithLogger(l *zap.Logger) SceneBuilderOption {
	return func(s *scene) {
		if l != nil {
			s.logger = l.Named("scene")
		}
	}
}
