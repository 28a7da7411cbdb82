package imagecache

import (
	"bytes"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"zwallpaper/internal/domain"
)

// MakeThumbnail decodes an image and re-encodes it as a JPEG that fits
// within the thumbnail bounds. Images already inside the bounds keep their size.
func MakeThumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: decode image: %v", domain.ErrMalformedResponse, err)
	}

	thumb := imaging.Fit(img, domain.ThumbnailMaxWidth, domain.ThumbnailMaxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(domain.ThumbnailQuality)); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// imageSize reads the pixel size of an image file without decoding it fully
func imageSize(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, &domain.StorageError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %s: %v", domain.ErrMalformedResponse, path, err)
	}
	return cfg.Width, cfg.Height, nil
}
