package loader

import (
	"fmt"
	"io/fs"
	"path"
	"sync"

	"github.com/Carmen-Shannon/oxy-flap/common"
	"github.com/Carmen-Shannon/oxy-flap/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	fsys   fs.FS
	logger *zap.Logger

	meshCache    map[string]model.Mesh
	textureCache map[string]common.TextureStagingData
}

// Loader loads meshes and textures from a filesystem and caches them.
// Meshes are cached by name, textures by path. A cached entry is returned without touching the
// filesystem again.
type Loader interface {
	// LoadMesh parses an OBJ file, with colors from an optional MTL file, into a mesh.
	//
	// Parameters:
	//   - name: the mesh name and cache key
	//   - objPath: the OBJ path within the loader's filesystem
	//   - mtlPath: the MTL path, or "" for white vertices
	//
	// Returns:
	//   - model.Mesh: the loaded or cached mesh
	//   - error: error if a file cannot be read or parsed
	LoadMesh(name, objPath, mtlPath string) (model.Mesh, error)

	// LoadTexture decodes an image into staging data with a full mip chain.
	//
	// Parameters:
	//   - path: the image path within the loader's filesystem
	//
	// Returns:
	//   - common.TextureStagingData: the loaded or cached texture
	//   - error: error if the image cannot be read or decoded
	LoadTexture(path string) (common.TextureStagingData, error)

	// Mesh retrieves a cached mesh by name. Returns nil if not found.
	Mesh(name string) model.Mesh

	// Meshes returns a copy of the mesh cache.
	Meshes() map[string]model.Mesh
}

var _ Loader = &loader{}

// NewLoader creates a new Loader reading from the working directory unless WithFS is given.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: the loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		logger:       zap.NewNop(),
		meshCache:    make(map[string]model.Mesh),
		textureCache: make(map[string]common.TextureStagingData),
	}
	for _, option := range options {
		option(l)
	}
	if l.fsys == nil {
		l.fsys = dirFS(".")
	}
	return l
}

// LoadMesh reads objPath and the optional mtlPath from fsys and builds a named mesh.
//
// Parameters:
//   - fsys: the filesystem holding the files
//   - name: the mesh name
//   - objPath: the OBJ path
//   - mtlPath: the MTL path, or ""
//
// Returns:
//   - model.Mesh: the mesh, without GPU buffers
//   - error: error if a file cannot be read or parsed
func LoadMesh(fsys fs.FS, name, objPath, mtlPath string) (model.Mesh, error) {
	var materials map[string]mgl32.Vec3
	if mtlPath != "" {
		f, err := fsys.Open(mtlPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", mtlPath, err)
		}
		materials, err = ParseMTL(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", mtlPath, err)
		}
	}

	f, err := fsys.Open(objPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", objPath, err)
	}
	defer f.Close()

	vertices, indices, err := ParseOBJ(f, materials)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", objPath, err)
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("%s has no faces: %w", objPath, ErrInvalidOBJ)
	}
	return model.NewMesh(model.WithName(name), model.WithGeometry(vertices, indices)), nil
}

func (l *loader) LoadMesh(name, objPath, mtlPath string) (model.Mesh, error) {
	l.mu.RLock()
	if cached, ok := l.meshCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	m, err := LoadMesh(l.fsys, name, objPath, mtlPath)
	if err != nil {
		return nil, err
	}
	l.logger.Info("loaded mesh",
		zap.String("name", name),
		zap.String("obj", objPath),
		zap.Int("vertices", len(m.Vertices())),
		zap.Int("triangles", m.IndexCount()/3),
	)

	l.mu.Lock()
	l.meshCache[name] = m
	l.mu.Unlock()
	return m, nil
}

func (l *loader) LoadTexture(p string) (common.TextureStagingData, error) {
	key := path.Clean(p)
	l.mu.RLock()
	if cached, ok := l.textureCache[key]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	tex, err := LoadTexture(l.fsys, key)
	if err != nil {
		return common.TextureStagingData{}, err
	}
	l.logger.Info("loaded texture",
		zap.String("path", key),
		zap.Uint32("width", tex.Width),
		zap.Uint32("height", tex.Height),
		zap.Uint32("mip_levels", tex.MipLevelCount()),
	)

	l.mu.Lock()
	l.textureCache[key] = tex
	l.mu.Unlock()
	return tex, nil
}

func (l *loader) Mesh(name string) model.Mesh {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.meshCache[name]
}

func (l *loader) Meshes() map[string]model.Mesh {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make(map[string]model.Mesh, len(l.meshCache))
	for k, v := range l.meshCache {
		out[k] = v
	}
	return out
}
