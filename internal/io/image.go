package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration
	"net/http"

	"golang.org/x/image/draw"
)

// ImageService prepares cover art before it is embedded in audio files.
//
// Example usage:
//
//	svc := NewImageService()
//	data, _ := os.ReadFile("cover.png")
//	cover, mime, err := svc.PrepareCover(ctx, data, 1000, true)
//	// cover is a JPEG no larger than 1000x1000, mime is "image/jpeg"
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// PrepareCover bounds cover art to maxSize pixels per side and optionally
// converts it to JPEG. A maxSize of 0 disables resizing. The returned
// string is the MIME type of the returned bytes.
func (s *ImageService) PrepareCover(ctx context.Context, data []byte, maxSize int, toJPEG bool) ([]byte, string, error) {
	var err error
	if maxSize > 0 {
		if data, err = s.ResizeImage(ctx, data, maxSize, maxSize); err != nil {
			return nil, "", err
		}
	} else if toJPEG {
		if data, err = s.ConvertToJPEG(ctx, data); err != nil {
			return nil, "", err
		}
	}
	return data, http.DetectContentType(data), nil
}

// ResizeImage resizes an image to fit within the specified maximum dimensions.
//
// The aspect ratio is preserved and smaller images are not enlarged. The
// result is always JPEG-encoded. Scaling uses Catmull-Rom.
//
// Example:
//
//	// A 1500x1000 image becomes 1000x667
//	resized, err := svc.ResizeImage(ctx, imageData, 1000, 1000)
func (s *ImageService) ResizeImage(ctx context.Context, data []byte, maxWidth, maxHeight int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > maxWidth || height > maxHeight {
		ratio := float64(width) / float64(height)
		if float64(maxWidth)/float64(maxHeight) > ratio {
			width = int(float64(maxHeight) * ratio)
			height = maxHeight
		} else {
			height = int(float64(maxWidth) / ratio)
			width = maxWidth
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ConvertToJPEG re-encodes an image as JPEG with quality 90.
func (s *ImageService) ConvertToJPEG(ctx context.Context, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
