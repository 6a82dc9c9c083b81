package assets

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Image is raw generated image data.
type Image struct {
	Data []byte
	MIME string
}

// Imager generates one image from a text prompt.
type Imager interface {
	GenerateImage(ctx context.Context, prompt, aspectRatio string) (Image, error)
}

// GeminiImager uses an Imagen model through the GenAI SDK.
type GeminiImager struct {
	client *genai.Client
	model  string
}

// NewGeminiImager shares an existing GenAI client.
func NewGeminiImager(client *genai.Client, model string) *GeminiImager {
	if model == "" {
		model = "imagen-3.0-generate-002"
	}
	return &GeminiImager{client: client, model: model}
}

// NewGeminiImagerFromKey creates its own GenAI client.
func NewGeminiImagerFromKey(ctx context.Context, apiKey, model string) (*GeminiImager, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required for asset generation")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return NewGeminiImager(client, model), nil
}

func (g *GeminiImager) GenerateImage(ctx context.Context, prompt, aspectRatio string) (Image, error) {
	resp, err := g.client.Models.GenerateImages(ctx, g.model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    aspectRatio,
		OutputMIMEType: "image/png",
	})
	if err != nil {
		return Image{}, fmt.Errorf("imagen: %w", err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return Image{}, fmt.Errorf("imagen: no image returned")
	}
	img := resp.GeneratedImages[0].Image
	mime := img.MIMEType
	if mime == "" {
		mime = "image/png"
	}
	return Image{Data: img.ImageBytes, MIME: mime}, nil
}
