// Package run orchestrates a single banner generation: prompt in, request,
// normalize, persist, confirm.
package run

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/snappy-loop/bannergen/internal/banner"
	"github.com/snappy-loop/bannergen/internal/llm"
	"github.com/snappy-loop/bannergen/internal/prompt"
)

// Generator issues the single image-generation request of a run.
type Generator interface {
	GenerateImage(ctx context.Context, prompt string) (*llm.Image, error)
}

// Persister writes the finished banner to local storage.
type Persister interface {
	Save(data []byte) (string, error)
}

// Mirror uploads the finished banner to remote storage. Optional; a mirror
// failure never fails the run, the local file is the contract.
type Mirror interface {
	UploadBanner(ctx context.Context, filename string, data []byte) (string, error)
	PublicURL(key string) string
}

// Result describes a completed run.
type Result struct {
	Filename string
	Width    int
	Height   int
}

// Runner wires the stages of one invocation together.
type Runner struct {
	Generator Generator
	Store     Persister
	Mirror    Mirror // nil when no S3 mirror is configured
	In        io.Reader
	Out       io.Writer
}

// Run executes one generation end to end. Exactly one API request is made,
// and only after a non-empty prompt has been collected; no file is written
// unless normalization fully succeeded. No stage is retried.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	fmt.Fprintln(r.Out, "Enter your image prompt (finish by entering an empty line):")
	text, err := prompt.Read(r.In)
	if err != nil {
		return nil, &StageError{Stage: StagePrompt, Err: err}
	}
	log.Info().Int("prompt_len", len(text)).Msg("Prompt collected")

	fmt.Fprintln(r.Out, "Generating image…")
	img, err := r.Generator.GenerateImage(ctx, text)
	if err != nil {
		return nil, &StageError{Stage: StageRequest, Err: err}
	}
	fmt.Fprintf(r.Out, "Image received (%d bytes, %s)\n", img.Size, img.MimeType)

	normalized, err := banner.Normalize(img.Data)
	if err != nil {
		return nil, &StageError{Stage: StageNormalize, Err: err}
	}
	fmt.Fprintf(r.Out, "Resized to %d×%d\n", banner.Width, banner.Height)

	filename, err := r.Store.Save(normalized)
	if err != nil {
		return nil, &StageError{Stage: StagePersist, Err: err}
	}

	r.mirror(ctx, filename, normalized)

	fmt.Fprintf(r.Out, "Saved as %s (%d×%d)\n", filename, banner.Width, banner.Height)

	return &Result{
		Filename: filename,
		Width:    banner.Width,
		Height:   banner.Height,
	}, nil
}

// mirror uploads the banner when a mirror is configured. Best effort only.
func (r *Runner) mirror(ctx context.Context, filename string, data []byte) {
	if r.Mirror == nil {
		return
	}
	key, err := r.Mirror.UploadBanner(ctx, filename, data)
	if err != nil {
		log.Warn().Err(err).Str("filename", filename).Msg("Banner mirror upload failed, local copy kept")
		return
	}
	if url := r.Mirror.PublicURL(key); url != "" {
		fmt.Fprintf(r.Out, "Mirrored to %s\n", url)
	}
}
