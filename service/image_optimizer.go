package service

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// ErrInvalidUpload is returned for uploads that are empty, too large or not
// a decodable image
var ErrInvalidUpload = errors.New("invalid upload")

// ImageSize is an output preset of OptimizeImage
type ImageSize string

const (
	SizeThumb   ImageSize = "thumb"
	SizeMedium  ImageSize = "medium"
	SizeGallery ImageSize = "gallery"
)

type imagePreset struct {
	maxDim  int
	quality int
}

var imagePresets = map[ImageSize]imagePreset{
	SizeThumb:   {maxDim: 300, quality: 60},
	SizeMedium:  {maxDim: 800, quality: 75},
	SizeGallery: {maxDim: 1600, quality: 82},
}

// OptimizeImage decodes an image, fits it inside the preset's maximum
// dimension keeping its aspect ratio and re-encodes it as JPEG. Images
// already within bounds are only re-encoded.
func OptimizeImage(imageData []byte, size ImageSize, logger *zap.Logger) ([]byte, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.Sugar()

	preset, ok := imagePresets[size]
	if !ok {
		log.Warnf("⚠️  Unknown size '%s', defaulting to medium", size)
		preset = imagePresets[SizeMedium]
	}

	img, err := imaging.Decode(bytes.NewReader(imageData), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode image: %v", ErrInvalidUpload, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	log.Debugf("📸 Image decoded: bounds=%v", bounds)

	if width > preset.maxDim || height > preset.maxDim {
		img = imaging.Fit(img, preset.maxDim, preset.maxDim, imaging.Lanczos)
		log.Debugf("🔄 Resized image: %dx%d -> %dx%d", width, height, img.Bounds().Dx(), img.Bounds().Dy())
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(preset.quality)); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	log.Debugf("✓ Image optimized: size=%s, quality=%d, output_size=%d bytes", size, preset.quality, buf.Len())
	return buf.Bytes(), nil
}
