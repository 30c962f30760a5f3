package mask

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// FromImage extracts the alpha channel of img into an occupancy grid.
func FromImage(img image.Image) *Bitmap {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	alpha := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			_, _, _, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			alpha[y*w+x] = uint8(a >> 8)
		}
	}
	return NewBitmap(w, h, alpha)
}

// LoadPNG decodes one plating bitmap from disk.
func LoadPNG(path string) (*Bitmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open plating bitmap: %w", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return FromImage(img), nil
}

// LoadDir registers every .png in dir under its file stem as plating id.
// A missing directory is not an error: callers simply run with circular
// fallback hit-testing.
func (o *Oracle) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read plating dir: %w", err)
	}
	n := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".png") {
			continue
		}
		bm, err := LoadPNG(filepath.Join(dir, e.Name()))
		if err != nil {
			return n, err
		}
		o.Register(strings.TrimSuffix(e.Name(), ".png"), bm)
		n++
	}
	return n, nil
}
