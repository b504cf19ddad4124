// Package analysis coordinates the interface-critique pipeline: acquire an
// image, normalize it, run the vision model once, and shape the result.
package analysis

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/rs/zerolog"

	"audito/internal/capture"
	"audito/internal/imaging"
	"audito/internal/providers/vision"
)

// Resolver acquires image bytes for a URL input.
type Resolver interface {
	Resolve(ctx context.Context, rawURL string) (*capture.Acquired, error)
}

// VisionClient runs one analysis call against the model and returns its raw
// text output.
type VisionClient interface {
	Analyze(ctx context.Context, imageData []byte, productContext string) (string, error)
}

// Service drives acquisition, normalization, model invocation and response
// shaping. It is stateless with respect to request data.
type Service struct {
	images   *imaging.Processor
	resolver Resolver
	vision   VisionClient
	logger   zerolog.Logger
}

// NewService wires the pipeline components together.
func NewService(images *imaging.Processor, resolver Resolver, visionClient VisionClient, logger zerolog.Logger) *Service {
	return &Service{images: images, resolver: resolver, vision: visionClient, logger: logger}
}

// Analyze runs the pipeline for any source variant.
func (s *Service) Analyze(ctx context.Context, src Source, productContext string) (map[string]any, error) {
	switch v := src.(type) {
	case Upload:
		return s.AnalyzeUpload(ctx, v.Data, v.Filename, productContext)
	case URL:
		return s.AnalyzeFromURL(ctx, v.Address, productContext)
	default:
		return nil, fmt.Errorf("fonte de análise desconhecida")
	}
}

// AnalyzeUpload validates the uploaded file, then runs the pipeline on it.
// The returned map is the coerced model output annotated with image metadata.
func (s *Service) AnalyzeUpload(ctx context.Context, data []byte, filename, productContext string) (map[string]any, error) {
	if err := s.images.Validate(data, filename); err != nil {
		return nil, err
	}

	result, err := s.invoke(ctx, data, productContext)
	if err != nil {
		return nil, fmt.Errorf("Erro na análise da imagem: %w", err)
	}

	result["image_info"] = s.images.Info(data)

	s.logger.Info().
		Str("source", string(capture.ProvenanceUpload)).
		Str("filename", filename).
		Int("bytes", len(data)).
		Msg("analysis: upload analyzed")

	return result, nil
}

// AnalyzeFromURL resolves the URL into image bytes (direct fetch or page
// screenshot) and runs the pipeline. Screenshot-sourced results additionally
// carry the capture as a base64 data URI.
func (s *Service) AnalyzeFromURL(ctx context.Context, rawURL, productContext string) (map[string]any, error) {
	acquired, err := s.resolver.Resolve(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	result, err := s.invoke(ctx, acquired.Data, productContext)
	if err != nil {
		return nil, fmt.Errorf("Erro na análise da URL: %w", err)
	}

	result["image_info"] = s.images.Info(acquired.Data)
	result["source_url"] = acquired.SourceURL
	if acquired.Provenance == capture.ProvenanceScreenshot {
		result["screenshot_data"] = "data:image/png;base64," + base64.StdEncoding.EncodeToString(acquired.Data)
	}

	s.logger.Info().
		Str("source", string(acquired.Provenance)).
		Str("url", acquired.SourceURL).
		Int("bytes", len(acquired.Data)).
		Msg("analysis: url analyzed")

	return result, nil
}

// invoke optimizes the image, performs the single model call, and coerces the
// raw output. Optimization never fails the pipeline; the model call can.
func (s *Service) invoke(ctx context.Context, data []byte, productContext string) (map[string]any, error) {
	optimized := s.images.Optimize(data)

	raw, err := s.vision.Analyze(ctx, optimized, productContext)
	if err != nil {
		return nil, err
	}

	return vision.Coerce(raw), nil
}
