package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lshigami/Lukman/internal/dto"
	"github.com/lshigami/Lukman/internal/logger"
	"github.com/lshigami/Lukman/internal/model"
	"github.com/lshigami/Lukman/internal/repository"
	"github.com/rs/zerolog/log"
)

// Disclaimer is attached unchanged to every successful advice response.
const Disclaimer = "⚠️ MÖHÜM DUÝDURYŞ: \n" +
	"Bu maslahat diňe maglumat maksady bilen berilýär we hakyky lukmançylyk diagnozyny ýa-da bejergini çalyşmaýar. \n" +
	"Hassalyk ýüze çyksa ýa-da alamatlaryňyz dowam etse, HÖKMANY SURATDA ýerli lukmana ýa-da keselhanä ýüz tutuň.\n" +
	"Gyssagly ýagdaýlarda derrew tiz kömek çagyryň!"

const questionLogRunes = 50

type AdviceService interface {
	GetAdvice(ctx context.Context, req dto.AdviceRequest) (*dto.AdviceResponse, error)
	Available() bool
}

type adviceService struct {
	queryRepo repository.QueryRepository
	generator Generator
}

// NewAdviceService accepts a nil generator; the service then reports itself
// unavailable and rejects every request without side effects.
func NewAdviceService(queryRepo repository.QueryRepository, generator Generator) AdviceService {
	return &adviceService{queryRepo: queryRepo, generator: generator}
}

func (s *adviceService) Available() bool {
	return s.generator != nil
}

// GetAdvice expects a request that already passed binding validation.
func (s *adviceService) GetAdvice(ctx context.Context, req dto.AdviceRequest) (*dto.AdviceResponse, error) {
	logEvent := log.Info().Str("question", logger.Truncate(req.Question, questionLogRunes))
	if req.Age != nil {
		logEvent = logEvent.Int("age", *req.Age)
	}
	logEvent.Msg("Advice requested")

	if s.generator == nil {
		log.Warn().Msg("Advice requested while Gemini client is not initialized")
		return nil, unavailable(ReasonNotInitialized, nil)
	}

	prompt := BuildMedicalPrompt(req.Question, req.Age, req.Gender)
	generation, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	query := &model.Query{
		Question:  req.Question,
		Age:       req.Age,
		Gender:    req.Gender,
		CreatedAt: now,
	}
	response := &model.Response{
		Advice:    generation.Text,
		ModelUsed: generation.Model,
		CreatedAt: now,
	}
	if err := s.queryRepo.CreateWithResponse(ctx, query, response); err != nil {
		log.Error().Err(err).Msg("Failed to store advice")
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	log.Info().Uint("queryID", query.ID).Int("advice_chars", len(generation.Text)).Msg("Advice stored")
	return &dto.AdviceResponse{
		ID:         query.ID,
		Advice:     generation.Text,
		Disclaimer: Disclaimer,
	}, nil
}
