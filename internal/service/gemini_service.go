package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"github.com/lshigami/Lukman/config"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
)

// Generation is a successful completion.
type Generation struct {
	Text  string
	Model string
}

// Generator performs one completion round-trip per call. Failures are
// returned as *GenerationError. Implementations never retry.
type Generator interface {
	Generate(ctx context.Context, prompt string) (*Generation, error)
}

// contentGenerator is the slice of *genai.GenerativeModel we depend on.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type GeminiGenerator struct {
	client    *genai.Client
	model     contentGenerator
	modelName string
	timeout   time.Duration
}

// NewGeminiGenerator builds the model with the configured generation and
// safety settings. It fails when no API key is configured.
func NewGeminiGenerator(cfg *config.Config) (*GeminiGenerator, error) {
	if cfg.Gemini.ApiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.Gemini.ApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Gemini.Model)
	model.SetTemperature(cfg.Gemini.Temperature)
	model.SetTopP(cfg.Gemini.TopP)
	model.SetTopK(cfg.Gemini.TopK)
	model.SetMaxOutputTokens(cfg.Gemini.MaxOutputTokens)
	model.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockNone},
	}

	log.Info().Str("model", cfg.Gemini.Model).Dur("timeout", cfg.Gemini.Timeout).Msg("Gemini client initialized")
	g := newGeminiGenerator(model, cfg.Gemini.Model, cfg.Gemini.Timeout)
	g.client = client
	return g, nil
}

func newGeminiGenerator(model contentGenerator, modelName string, timeout time.Duration) *GeminiGenerator {
	return &GeminiGenerator{model: model, modelName: modelName, timeout: timeout}
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (*Generation, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		gerr := classifyError(err)
		log.Error().Err(err).Str("reason", gerr.Reason).Dur("latency", time.Since(start)).Msg("Gemini API error")
		return nil, gerr
	}

	text, gerr := interpretResponse(resp)
	if gerr != nil {
		log.Warn().Str("reason", gerr.Reason).Dur("latency", time.Since(start)).Msg("Gemini response not usable")
		return nil, gerr
	}

	log.Debug().Int("chars", len(text)).Dur("latency", time.Since(start)).Msg("Gemini generation completed")
	return &Generation{Text: text, Model: g.modelName}, nil
}

func (g *GeminiGenerator) ModelName() string {
	return g.modelName
}

func (g *GeminiGenerator) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

// interpretResponse applies the result checks in order: a candidate must
// exist, it must have stopped naturally, and it must carry text.
func interpretResponse(resp *genai.GenerateContentResponse) (string, *GenerationError) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", rejected(ReasonNoCandidates, nil)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason != genai.FinishReasonStop {
		return "", rejected(finishReasonName(candidate.FinishReason), nil)
	}

	var b strings.Builder
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				b.WriteString(string(txt))
			}
		}
	}
	text := b.String()
	if strings.TrimSpace(text) == "" {
		return "", &GenerationError{Kind: KindEmpty, Reason: ReasonEmptyText}
	}
	return text, nil
}

func finishReasonName(r genai.FinishReason) string {
	switch r {
	case genai.FinishReasonSafety:
		return ReasonSafety
	case genai.FinishReasonMaxTokens:
		return ReasonMaxTokens
	case genai.FinishReasonRecitation:
		return ReasonRecitation
	case genai.FinishReasonUnspecified:
		return ReasonUnspecified
	default:
		return ReasonOther
	}
}

// classifyError maps an SDK error onto a GenerationError. Typed errors are
// checked first; the message text is only a last resort.
func classifyError(err error) *GenerationError {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		if blocked.Candidate != nil {
			return rejected(finishReasonName(blocked.Candidate.FinishReason), err)
		}
		return rejected(ReasonPromptBlocked, err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return unavailable(ReasonTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return unavailable(ReasonCanceled, err)
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPCode() == http.StatusTooManyRequests,
			apiErr.GRPCStatus().Code() == codes.ResourceExhausted:
			return unavailable(throttleReason(apiErr.Error()+" "+apiErr.Reason()), err)
		case apiErr.GRPCStatus().Code() == codes.DeadlineExceeded,
			apiErr.HTTPCode() == http.StatusGatewayTimeout:
			return unavailable(ReasonTimeout, err)
		}
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) && gErr.Code == http.StatusTooManyRequests {
		return unavailable(throttleReason(gErr.Message), err)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "quota"):
		return unavailable(ReasonQuota, err)
	case strings.Contains(msg, "429"), strings.Contains(msg, "rate limit"):
		return unavailable(ReasonRateLimited, err)
	}
	return unavailable(ReasonProviderError, err)
}

func throttleReason(msg string) string {
	if strings.Contains(strings.ToLower(msg), "quota") {
		return ReasonQuota
	}
	return ReasonRateLimited
}
