package repository

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/dustinvannguyen13-max/sparkandmend-api/internal/data/entity"
	"github.com/dustinvannguyen13-max/sparkandmend-api/pkg/supabase"

	"go.uber.org/zap"
)

type IntegrationRepository interface {
	Get(ctx context.Context) (*entity.GoogleIntegration, error)
	Save(ctx context.Context, integration *entity.GoogleIntegration) error
}

type integrationRepository struct {
	db  *supabase.Client
	log *zap.Logger
}

const integrationsTable = "google_integrations"

func NewIntegrationRepository(db *supabase.Client, log *zap.Logger) IntegrationRepository {
	return &integrationRepository{
		db:  db,
		log: log.With(zap.String("repository", "integration")),
	}
}

func (r *integrationRepository) Get(ctx context.Context) (*entity.GoogleIntegration, error) {
	filters := url.Values{}
	filters.Set("order", "id.asc")
	filters.Set("limit", "1")

	var rows []*entity.GoogleIntegration
	if err := r.db.Select(ctx, integrationsTable, filters, &rows); err != nil {
		r.log.Error("Failed to get google integration", zap.Error(err))
		return nil, fmt.Errorf("get google integration: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *integrationRepository) Save(ctx context.Context, integration *entity.GoogleIntegration) error {
	integration.UpdatedAt = time.Now().UTC()

	// Single-row table, keyed on id
	if integration.ID == 0 {
		integration.ID = 1
	}

	if err := r.db.Upsert(ctx, integrationsTable, []*entity.GoogleIntegration{integration}, "id"); err != nil {
		r.log.Error("Failed to save google integration", zap.Error(err))
		return fmt.Errorf("save google integration: %w", err)
	}

	return nil
}
