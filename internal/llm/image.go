package llm

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
)

// ErrNoImage indicates the API answered without any image blob.
var ErrNoImage = errors.New("no image blob in response")

// GenerateImage generates one image from a prompt using the configured image
// model with strict IMAGE modality. The call is made exactly once; any API
// error or image-free response is returned to the caller without retry.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (*Image, error) {
	log.Debug().
		Str("prompt", prompt[:min(50, len(prompt))]+"...").
		Msg("Generating image")

	model := c.genaiClient.GenerativeModel(c.modelImage)
	// Request native image output; required for image-preview models.
	setResponseModality(model, []string{"Text", "Image"})

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).
			Str("model", c.modelImage).
			Str("prompt_preview", prompt[:min(80, len(prompt))]).
			Msg("Gemini image generation failed")
		return nil, fmt.Errorf("image generation request failed: %w", err)
	}

	img, err := imageFromResponse(resp, c.modelImage)
	if err != nil {
		log.Warn().
			Str("model", c.modelImage).
			Int("candidates", len(resp.Candidates)).
			Msg("No image blob in Gemini response")
		return nil, err
	}
	return img, nil
}

// imageFromResponse scans the response candidates for the first non-empty
// image blob.
func imageFromResponse(resp *genai.GenerateContentResponse, model string) (*Image, error) {
	for i, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for j, part := range cand.Content.Parts {
			blob, ok := part.(genai.Blob)
			if !ok || len(blob.Data) == 0 {
				continue
			}
			mimeType := blob.MIMEType
			if mimeType == "" {
				mimeType = "image/png"
			}
			log.Info().
				Int64("image_size_bytes", int64(len(blob.Data))).
				Str("mime_type", mimeType).
				Int("candidate", i).
				Int("part", j).
				Msg("Gemini response (image blob)")
			return &Image{
				Data:     blob.Data,
				Size:     int64(len(blob.Data)),
				Model:    model,
				MimeType: mimeType,
			}, nil
		}
	}
	return nil, ErrNoImage
}

// setResponseModality sets model.ResponseModality when the genai SDK exposes
// it. Uses reflection so it no-ops on SDK versions without the field.
func setResponseModality(model *genai.GenerativeModel, modalities []string) {
	v := reflect.ValueOf(model).Elem()
	f := v.FieldByName("ResponseModality")
	if !f.IsValid() || !f.CanSet() {
		log.Debug().Msg("ResponseModality not available on GenerativeModel (SDK may not support it yet)")
		return
	}
	if f.Kind() == reflect.Slice && f.Type().Elem().Kind() == reflect.String {
		f.Set(reflect.ValueOf(modalities))
		log.Debug().Strs("modality", modalities).Msg("Set ResponseModality on GenerativeModel")
	}
}
