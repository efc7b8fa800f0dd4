package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/lshigami/Lukman/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("record not found")

// QueryRepository stores question/advice pairs. There is no update or delete
// path: both tables are write-once.
type QueryRepository interface {
	CreateWithResponse(ctx context.Context, query *model.Query, response *model.Response) error
	FindAnswered(ctx context.Context, limit, offset int) ([]model.Query, error)
	CountAnswered(ctx context.Context) (int64, error)
	FindAnsweredByID(ctx context.Context, id uint) (*model.Query, error)
}

type queryRepository struct {
	db *gorm.DB
}

func NewQueryRepository(db *gorm.DB) QueryRepository {
	return &queryRepository{db: db}
}

// CreateWithResponse writes the query, then the response referencing its id,
// in one transaction. On any error neither row is kept.
func (r *queryRepository) CreateWithResponse(ctx context.Context, query *model.Query, response *model.Response) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(query).Error; err != nil {
			return fmt.Errorf("failed to create query record: %w", err)
		}
		response.QueryID = query.ID
		if err := tx.Create(response).Error; err != nil {
			return fmt.Errorf("failed to create response record: %w", err)
		}
		return nil
	})
	if err != nil {
		query.ID = 0
		response.ID = 0
		response.QueryID = 0
		return err
	}
	query.Response = response
	return nil
}

func (r *queryRepository) FindAnswered(ctx context.Context, limit, offset int) ([]model.Query, error) {
	var queries []model.Query
	err := r.db.WithContext(ctx).
		InnerJoins("Response").
		Order("medical_queries.created_at DESC").
		Order("medical_queries.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&queries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list answered queries: %w", err)
	}
	return queries, nil
}

func (r *queryRepository) CountAnswered(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Query{}).
		Joins("JOIN ai_responses ON ai_responses.query_id = medical_queries.id").
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count answered queries: %w", err)
	}
	return total, nil
}

// FindAnsweredByID returns ErrNotFound for an unknown id and for a query that
// has no response.
func (r *queryRepository) FindAnsweredByID(ctx context.Context, id uint) (*model.Query, error) {
	var query model.Query
	err := r.db.WithContext(ctx).
		InnerJoins("Response").
		Where("medical_queries.id = ?", id).
		First(&query).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find query %d: %w", id, err)
	}
	return &query, nil
}
