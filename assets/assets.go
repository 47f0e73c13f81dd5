// Package assets embeds the models and texture the game ships with.
package assets

import (
	"embed"
	"io/fs"
)

// Paths of the embedded files, relative to FS.
const (
	BirdOBJ      = "models/bird.obj"
	BirdMTL      = "models/bird.mtl"
	TubesOBJ     = "models/tubes.obj"
	TubesMTL     = "models/tubes.mtl"
	TerrainOBJ   = "models/terrain.obj"
	TerrainMTL   = "models/terrain.mtl"
	TextureAtlas = "textures/atlas.png"
)

//go:embed models/*.obj models/*.mtl textures/*.png
var files embed.FS

// FS returns the embedded asset tree.
func FS() fs.FS {
	return files
}
