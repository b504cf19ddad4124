// Package imaging validates, optimizes and describes the image payloads that
// feed the analysis pipeline. Optimization is best effort: it never fails a
// request, it only improves what gets sent to the model.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const (
	// MaxDimension bounds the longest edge of an optimized image.
	MaxDimension = 1200
	jpegQuality  = 85
)

// AllowedExtensions lists the upload filename extensions accepted by Validate.
var AllowedExtensions = []string{".png", ".jpg", ".jpeg"}

// Processor holds the fixed limits applied to every image. It carries no
// per-request state.
type Processor struct {
	maxSize int64
	logger  zerolog.Logger
}

// NewProcessor creates a processor enforcing the given byte-size ceiling.
func NewProcessor(maxSize int64, logger zerolog.Logger) *Processor {
	if maxSize <= 0 {
		maxSize = 5 * 1024 * 1024
	}
	return &Processor{maxSize: maxSize, logger: logger}
}

// MaxSize returns the configured byte-size ceiling.
func (p *Processor) MaxSize() int64 {
	return p.maxSize
}

// Validate checks an uploaded file: size ceiling first, then filename
// extension, then whether the bytes decode as an image. The returned error
// carries the user-facing message; Validate never panics.
func (p *Processor) Validate(data []byte, filename string) error {
	if int64(len(data)) > p.maxSize {
		return fmt.Errorf("Arquivo muito grande. Máximo permitido: %dMB", p.maxSize/(1024*1024))
	}

	ext := strings.ToLower(filepath.Ext(filename))
	allowed := false
	for _, candidate := range AllowedExtensions {
		if ext == candidate {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("Formato não suportado. Use: %s", strings.Join(AllowedExtensions, ", "))
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return errors.New("Arquivo não é uma imagem válida")
	}
	return nil
}

// Optimize re-encodes the image as RGB JPEG at quality 85, downscaling so the
// longest edge stays within MaxDimension. Alpha is flattened over white. On
// any failure the original bytes are returned unchanged.
func (p *Processor) Optimize(data []byte) []byte {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		p.logger.Warn().Err(err).Msg("imaging: decode failed, keeping original bytes")
		return data
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return data
	}

	targetWidth, targetHeight := width, height
	if longest := maxInt(width, height); longest > MaxDimension {
		ratio := float64(MaxDimension) / float64(longest)
		targetWidth = maxInt(1, int(float64(width)*ratio))
		targetHeight = maxInt(1, int(float64(height)*ratio))
	}

	dst := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		p.logger.Warn().Err(err).Msg("imaging: jpeg encode failed, keeping original bytes")
		return data
	}

	p.logger.Debug().
		Str("source_format", format).
		Int("width", targetWidth).
		Int("height", targetHeight).
		Int("bytes_in", len(data)).
		Int("bytes_out", buf.Len()).
		Msg("imaging: optimized image")

	return buf.Bytes()
}

// Metadata describes an image payload. It is advisory only and attached to
// responses verbatim.
type Metadata struct {
	Format   string `json:"format,omitempty"`
	Mode     string `json:"mode,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Info extracts metadata from the raw (pre-optimization) bytes. A payload
// that does not decode yields an error-tagged metadata value, never a failure.
func (p *Processor) Info(data []byte) Metadata {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Metadata{Error: fmt.Sprintf("Erro ao obter informações: %v", err)}
	}
	return Metadata{
		Format:   strings.ToUpper(format),
		Mode:     colorMode(cfg.ColorModel),
		Width:    cfg.Width,
		Height:   cfg.Height,
		FileSize: int64(len(data)),
	}
}

func colorMode(m color.Model) string {
	switch m {
	case color.RGBAModel, color.RGBA64Model, color.NRGBAModel, color.NRGBA64Model:
		return "RGBA"
	case color.YCbCrModel, color.NYCbCrAModel:
		return "RGB"
	case color.GrayModel, color.Gray16Model:
		return "L"
	case color.CMYKModel:
		return "CMYK"
	}
	if _, ok := m.(color.Palette); ok {
		return "P"
	}
	return "RGB"
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
