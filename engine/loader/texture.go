package loader

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"

	"github.com/Carmen-Shannon/oxy-flap/common"
	xdraw "golang.org/x/image/draw"
)

// LoadTexture decodes a PNG or JPEG file from fsys into RGBA8 staging data with a full mip chain.
//
// Parameters:
//   - fsys: the filesystem holding the image
//   - path: the image path within fsys
//
// Returns:
//   - common.TextureStagingData: level 0 at the image size down to 1x1
//   - error: error if the file cannot be opened or decoded
func LoadTexture(fsys fs.FS, path string) (common.TextureStagingData, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("failed to open texture %s: %w", path, err)
	}
	defer f.Close()

	tex, err := DecodeTexture(f)
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("failed to decode texture %s: %w", path, err)
	}
	return tex, nil
}

// DecodeTexture decodes an image stream and builds its mip chain.
//
// Parameters:
//   - r: the PNG or JPEG stream
//
// Returns:
//   - common.TextureStagingData: the texture with every mip level
//   - error: error if decoding fails or the image is empty
func DecodeTexture(r io.Reader) (common.TextureStagingData, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return common.TextureStagingData{}, err
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return common.TextureStagingData{}, fmt.Errorf("image has no pixels")
	}

	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	levels := BuildMipChain(rgba)
	return common.TextureStagingData{
		Levels: levels,
		Width:  levels[0].Width,
		Height: levels[0].Height,
	}, nil
}

// BuildMipChain downsamples base by halves, each dimension clamped at 1, until it reaches 1x1.
//
// Parameters:
//   - base: level 0
//
// Returns:
//   - []common.TextureLevel: floor(log2(max(w, h))) + 1 levels, level 0 first
func BuildMipChain(base *image.RGBA) []common.TextureLevel {
	levels := []common.TextureLevel{rgbaLevel(base)}

	prev := base
	for prev.Rect.Dx() > 1 || prev.Rect.Dy() > 1 {
		w := max(prev.Rect.Dx()/2, 1)
		h := max(prev.Rect.Dy()/2, 1)
		next := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.BiLinear.Scale(next, next.Rect, prev, prev.Rect, xdraw.Src, nil)
		levels = append(levels, rgbaLevel(next))
		prev = next
	}
	return levels
}

// rgbaLevel copies img's pixels into a tightly packed level.
func rgbaLevel(img *image.RGBA) common.TextureLevel {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	pix := make([]byte, 0, w*h*4)
	for y := range h {
		start := y * img.Stride
		pix = append(pix, img.Pix[start:start+w*4]...)
	}
	return common.TextureLevel{Pixels: pix, Width: uint32(w), Height: uint32(h)}
}
