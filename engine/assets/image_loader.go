package assets

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/hubastard/railhud/engine/core"
)

// TextureFactory creates GPU textures; core.Renderer satisfies it.
type TextureFactory interface {
	CreateTexture(desc core.TextureDesc) (core.Texture, error)
}

// LoadPNG returns width, height, and tightly packed RGBA8 pixels (row-major,
// top-left origin) of Root/textures/relPath.
func LoadPNG(relPath string) (w, h int, rgba []byte, err error) {
	path := filepath.Join(Root, "textures", relPath)
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	w, h, rgba, err = DecodePNG(f)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("decode png %q: %w", path, err)
	}
	return w, h, rgba, nil
}

// DecodePNG is LoadPNG for an open stream.
func DecodePNG(r io.Reader) (w, h int, rgba []byte, err error) {
	img, err := png.Decode(r)
	if err != nil {
		return 0, 0, nil, err
	}

	rgbaImg := imageToRGBA(img)
	w, h = rgbaImg.Bounds().Dx(), rgbaImg.Bounds().Dy()

	// Repack in tight rows (stride == 4*w)
	out := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		copy(out[y*w*4:(y+1)*w*4], rgbaImg.Pix[y*rgbaImg.Stride:y*rgbaImg.Stride+w*4])
	}
	return w, h, out, nil
}

// LoadTexture uploads Root/textures/relPath with linear filtering.
func LoadTexture(f TextureFactory, relPath string) (core.Texture, error) {
	w, h, pixels, err := LoadPNG(relPath)
	if err != nil {
		return nil, err
	}
	tex, err := f.CreateTexture(core.TextureDesc{
		Width:     w,
		Height:    h,
		Format:    core.TextureRGBA8,
		Pixels:    pixels,
		MinFilter: "linear",
		MagFilter: "linear",
		WrapU:     "clamp",
		WrapV:     "clamp",
	})
	if err != nil {
		return nil, fmt.Errorf("texture %q: %w", relPath, err)
	}
	return tex, nil
}

func imageToRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok && m.Stride == m.Rect.Dx()*4 && m.Rect.Min == (image.Point{}) {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
