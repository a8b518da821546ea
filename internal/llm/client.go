// Package llm wraps the Gemini API client for banner image generation.
package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// DefaultImageModel is used when GEMINI_MODEL_IMAGE is not configured.
const DefaultImageModel = "gemini-2.0-flash-exp-image-generation"

// Client wraps the Gemini API client
type Client struct {
	apiKey      string
	modelImage  string // image generation, e.g. gemini-2.0-flash-exp-image-generation
	genaiClient *genai.Client
}

// Image is a generated image returned by the API.
type Image struct {
	Data     []byte
	Size     int64
	Model    string
	MimeType string // e.g. "image/png", "image/jpeg" (from Gemini blob.MIMEType)
}

// NewClient creates a new Gemini client for image generation.
// apiEndpoint: optional Gemini API base URL; when set, all calls use this
// endpoint (useful for proxies and local stubs).
func NewClient(ctx context.Context, apiKey, modelImage, apiEndpoint string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if modelImage == "" {
		modelImage = DefaultImageModel
	}

	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if apiEndpoint != "" {
		opts = append(opts, option.WithEndpoint(apiEndpoint))
	}
	genaiClient, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	log.Info().
		Str("model_image", modelImage).
		Str("api_endpoint", apiEndpoint).
		Msg("Gemini client initialized")

	return &Client{
		apiKey:      apiKey,
		modelImage:  modelImage,
		genaiClient: genaiClient,
	}, nil
}

// Close releases the underlying API client.
func (c *Client) Close() error {
	if c.genaiClient == nil {
		return nil
	}
	return c.genaiClient.Close()
}
