package recommend

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/luvit/moodfit/internal/domain/profile"
	apperrors "github.com/luvit/moodfit/pkg/errors"
)

// RequestKind tells a provider client which structured shape is expected,
// so it can attach its schema or shape hint.
type RequestKind string

const (
	KindLifestyle RequestKind = "lifestyle"
	KindStyle     RequestKind = "style"
	KindRecipe    RequestKind = "recipe"
)

// AspectRatio constrains generated image dimensions.
type AspectRatio string

const (
	AspectSquare    AspectRatio = "1:1"
	AspectPortrait  AspectRatio = "3:4"
	AspectLandscape AspectRatio = "16:9"
)

// StructuredRequest is a provider-agnostic structured generation request.
type StructuredRequest struct {
	System string
	Prompt string
	Kind   RequestKind
}

// ProviderClient is the capability interface both AI vendors implement.
// A client without credentials fails closed from every method without
// touching the network.
type ProviderClient interface {
	GenerateStructured(ctx context.Context, req StructuredRequest) ([]byte, error)
	GenerateImage(ctx context.Context, prompt string, aspect AspectRatio) (string, error)
}

// Gateway issues generation requests against the profile's selected
// provider and reshapes the output into the engine's result schema.
type Gateway struct {
	clients     map[profile.Provider]ProviderClient
	imageDelays map[profile.Provider]time.Duration
	seed        func() int
	sleep       func(ctx context.Context, d time.Duration)
	logger      *slog.Logger
}

// NewGateway wires the provider registry. imageDelays holds per-provider
// pauses required between consecutive image calls (rate-limit contract).
func NewGateway(clients map[profile.Provider]ProviderClient, imageDelays map[profile.Provider]time.Duration, logger *slog.Logger) *Gateway {
	return &Gateway{
		clients:     clients,
		imageDelays: imageDelays,
		seed:        func() int { return rand.IntN(10000) },
		sleep:       sleepCtx,
		logger:      logger.With("component", "recommend.gateway"),
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func (g *Gateway) client(p profile.Provider) (ProviderClient, error) {
	client, ok := g.clients[p]
	if !ok || client == nil {
		return nil, apperrors.Wrap(apperrors.CodeNotConfigured, "provider not available: "+string(p), nil)
	}
	return client, nil
}

type textResult struct {
	raw []byte
	err error
}

// Fetch generates a full recommendation. Generation is split into two
// concurrent structured requests — lifestyle (quote, recipe, workout) and
// style (outfit). The split works around unreliable field population when
// a single combined request is used and must be preserved.
func (g *Gateway) Fetch(ctx context.Context, p profile.Profile) (Result, error) {
	client, err := g.client(p.Provider)
	if err != nil {
		return Result{}, err
	}

	seed := g.seed()
	system := systemInstruction(p)

	lifestyleCh := make(chan textResult, 1)
	styleCh := make(chan textResult, 1)
	go func() {
		raw, genErr := client.GenerateStructured(ctx, StructuredRequest{System: system, Prompt: lifestylePrompt(p, seed), Kind: KindLifestyle})
		lifestyleCh <- textResult{raw: raw, err: genErr}
	}()
	go func() {
		raw, genErr := client.GenerateStructured(ctx, StructuredRequest{System: system, Prompt: stylePrompt(p, seed), Kind: KindStyle})
		styleCh <- textResult{raw: raw, err: genErr}
	}()

	lifestyle := <-lifestyleCh
	style := <-styleCh

	// Text generation failure is fatal to the whole call.
	if lifestyle.err != nil {
		return Result{}, wrapProviderErr(lifestyle.err, "lifestyle generation failed")
	}
	if style.err != nil {
		return Result{}, wrapProviderErr(style.err, "style generation failed")
	}

	env := mergeEnvelopes(decodeEnvelope(lifestyle.raw), decodeEnvelope(style.raw))
	result := Normalize(env, p)

	g.attachImages(ctx, client, p, &result)
	return result, nil
}

// attachImages runs the two image generations concurrently. Failures are
// non-fatal: the normalizer already placed placeholder assets.
func (g *Gateway) attachImages(ctx context.Context, client ProviderClient, p profile.Profile, result *Result) {
	outfitCh := make(chan string, 1)
	recipeCh := make(chan string, 1)

	go func() {
		image, err := client.GenerateImage(ctx, outfitImagePrompt(result.Outfit, p), AspectPortrait)
		if err != nil {
			g.logger.Warn("outfit image generation failed", "provider", p.Provider, "error", err)
			image = ""
		}
		outfitCh <- image
	}()
	go func() {
		g.sleep(ctx, g.imageDelays[p.Provider])
		image, err := client.GenerateImage(ctx, recipeImagePrompt(result.Recipe), AspectSquare)
		if err != nil {
			g.logger.Warn("recipe image generation failed", "provider", p.Provider, "error", err)
			image = ""
		}
		recipeCh <- image
	}()

	if image := <-outfitCh; image != "" {
		result.Outfit.Image = image
	}
	if image := <-recipeCh; image != "" {
		result.Recipe.Image = image
	}
}

// FromIngredients generates a recipe from the user's fridge contents.
func (g *Gateway) FromIngredients(ctx context.Context, ingredients string, p profile.Profile) (Recipe, error) {
	if strings.TrimSpace(ingredients) == "" {
		return Recipe{}, apperrors.Wrap(apperrors.CodeInvalidInput, "ingredients cannot be empty", nil)
	}
	client, err := g.client(p.Provider)
	if err != nil {
		return Recipe{}, err
	}

	raw, err := client.GenerateStructured(ctx, StructuredRequest{
		System: fridgeSystemInstruction(p),
		Prompt: fridgePrompt(ingredients, p),
		Kind:   KindRecipe,
	})
	if err != nil {
		return Recipe{}, wrapProviderErr(err, "fridge recipe generation failed")
	}

	recipe := NormalizeRecipe(raw, p)

	image, imgErr := client.GenerateImage(ctx, fridgeImagePrompt(recipe), AspectSquare)
	if imgErr != nil {
		g.logger.Warn("fridge recipe image generation failed", "provider", p.Provider, "error", imgErr)
	} else if image != "" {
		recipe.Image = image
	}
	return recipe, nil
}

// Image exposes raw image generation for direct callers.
func (g *Gateway) Image(ctx context.Context, prompt string, aspect AspectRatio, provider profile.Provider) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", apperrors.Wrap(apperrors.CodeInvalidInput, "prompt cannot be empty", nil)
	}
	client, err := g.client(provider)
	if err != nil {
		return "", err
	}
	image, err := client.GenerateImage(ctx, prompt, aspect)
	if err != nil {
		return "", wrapProviderErr(err, "image generation failed")
	}
	return image, nil
}

func wrapProviderErr(err error, message string) error {
	if apperrors.IsCode(err, apperrors.CodeNotConfigured) {
		return err
	}
	return apperrors.Wrap(apperrors.CodeLLMError, message, err)
}
