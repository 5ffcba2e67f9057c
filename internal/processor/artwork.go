package processor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG format support
	_ "image/png"  // PNG format support
	"os"

	"github.com/disintegration/imaging"
	"github.com/genricoloni/mprisnotify/internal/domain"
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"
)

const (
	defaultIconSize    = 128
	defaultPlaceholder = "#3c3c46"
)

// Config holds configuration for artwork processing
type Config struct {
	// IconSize is the bounding box artwork is fitted into
	IconSize int
	// PlaceholderPath is an image shown while artwork loads; empty generates one
	PlaceholderPath string
	// PlaceholderColor is the hex base color of the generated placeholder
	PlaceholderColor string
}

// ArtworkProcessor scales album art for the image-data hint
type ArtworkProcessor struct {
	logger      *zap.Logger
	size        int
	placeholder []byte
}

// NewArtworkProcessor creates a processor. A placeholder file that cannot be
// used falls back to the generated one.
func NewArtworkProcessor(logger *zap.Logger, cfg Config) *ArtworkProcessor {
	if cfg.IconSize <= 0 {
		cfg.IconSize = defaultIconSize
	}
	p := &ArtworkProcessor{logger: logger, size: cfg.IconSize}

	if cfg.PlaceholderPath != "" {
		data, err := loadPlaceholder(cfg.PlaceholderPath)
		if err == nil {
			p.placeholder = data
			return p
		}
		logger.Warn("Placeholder artwork unusable, generating one",
			zap.String("path", cfg.PlaceholderPath), zap.Error(err))
	}

	data, err := generatePlaceholder(cfg.IconSize, cfg.PlaceholderColor)
	if err != nil {
		logger.Error("Failed to generate placeholder artwork", zap.Error(err))
	}
	p.placeholder = data
	return p
}

// Placeholder returns the encoded placeholder image
func (p *ArtworkProcessor) Placeholder() []byte {
	return p.placeholder
}

// Thumbnail decodes image data, fits it into the icon box and returns raw RGBA
func (p *ArtworkProcessor) Thumbnail(ctx context.Context, imageData []byte) (domain.RawImage, error) {
	img, err := imaging.Decode(bytes.NewReader(imageData), imaging.AutoOrientation(true))
	if err != nil {
		return domain.RawImage{}, fmt.Errorf("failed to decode image: %w", err)
	}

	// Validate image dimensions to prevent division by zero
	bounds := img.Bounds()
	if bounds.Dy() == 0 || bounds.Dx() == 0 {
		return domain.RawImage{}, fmt.Errorf("invalid image dimensions: %dx%d", bounds.Dx(), bounds.Dy())
	}

	fitted := imaging.Fit(img, p.size, p.size, imaging.Lanczos)
	p.logger.Debug("Artwork scaled",
		zap.Int("w", fitted.Bounds().Dx()), zap.Int("h", fitted.Bounds().Dy()))
	return toRaw(fitted), nil
}

// toRaw converts to the non-premultiplied RGBA layout of the image-data hint
func toRaw(img *image.NRGBA) domain.RawImage {
	b := img.Bounds()
	return domain.RawImage{
		Width:         int32(b.Dx()),
		Height:        int32(b.Dy()),
		RowStride:     int32(img.Stride),
		HasAlpha:      true,
		BitsPerSample: 8,
		Channels:      4,
		Data:          img.Pix[:img.Stride*b.Dy()],
	}
}

func loadPlaceholder(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to decode placeholder: %w", err)
	}
	return data, nil
}

// generatePlaceholder draws a vertical HCL gradient from the base color
// towards black and encodes it as PNG
func generatePlaceholder(size int, hex string) ([]byte, error) {
	base, err := colorful.Hex(hex)
	if err != nil {
		base, _ = colorful.Hex(defaultPlaceholder)
	}
	dark := base.BlendHcl(colorful.Color{}, 0.6).Clamped()

	img := imaging.New(size, size, color.Transparent)
	for y := 0; y < size; y++ {
		t := float64(y) / float64(max(size-1, 1))
		row := base.BlendHcl(dark, t).Clamped()
		r, g, b := row.RGB255()
		c := color.NRGBA{R: r, G: g, B: b, A: 255}
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, c)
		}
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode placeholder: %w", err)
	}
	return buf.Bytes(), nil
}
