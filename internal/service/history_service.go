package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Lukman/internal/dto"
	"github.com/lshigami/Lukman/internal/model"
	"github.com/lshigami/Lukman/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 100
)

type HistoryService interface {
	List(ctx context.Context, limit, offset int) (*dto.HistoryResponse, error)
	Get(ctx context.Context, id uint) (*dto.HistoryItem, error)
}

type historyService struct {
	queryRepo repository.QueryRepository
}

func NewHistoryService(queryRepo repository.QueryRepository) HistoryService {
	return &historyService{queryRepo: queryRepo}
}

// List pages through answered queries, newest first. A limit above
// MaxHistoryLimit is clamped; a non-positive limit falls back to the default.
func (s *historyService) List(ctx context.Context, limit, offset int) (*dto.HistoryResponse, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	total, err := s.queryRepo.CountAnswered(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to count history")
		return nil, fmt.Errorf("error counting history: %w", err)
	}

	queries, err := s.queryRepo.FindAnswered(ctx, limit, offset)
	if err != nil {
		log.Error().Err(err).Int("limit", limit).Int("offset", offset).Msg("Failed to list history")
		return nil, fmt.Errorf("error fetching history: %w", err)
	}

	items := make([]dto.HistoryItem, 0, len(queries))
	for i := range queries {
		item, err := toHistoryItem(&queries[i])
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return &dto.HistoryResponse{Total: total, Queries: items}, nil
}

func (s *historyService) Get(ctx context.Context, id uint) (*dto.HistoryItem, error) {
	query, err := s.queryRepo.FindAnsweredByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("query %d: %w", id, ErrNotFound)
	}
	if err != nil {
		log.Error().Err(err).Uint("queryID", id).Msg("Failed to get history item")
		return nil, fmt.Errorf("error fetching query %d: %w", id, err)
	}
	return toHistoryItem(query)
}

func toHistoryItem(query *model.Query) (*dto.HistoryItem, error) {
	var item dto.HistoryItem
	if err := copier.Copy(&item, query); err != nil {
		log.Error().Err(err).Uint("queryID", query.ID).Msg("Failed to copy Query model to HistoryItem")
		return nil, fmt.Errorf("error preparing history item: %w", err)
	}
	if query.Response != nil {
		item.Advice = query.Response.Advice
		item.AIModel = query.Response.ModelUsed
	}
	return &item, nil
}
