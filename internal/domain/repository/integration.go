package repository

import (
	"context"

	"github.com/glimmerco/lumiere/internal/domain/model"
)

// IntegrationRepository stores per-service integration configuration.
type IntegrationRepository interface {
	Get(ctx context.Context, service string) (*model.Integration, error)
	Upsert(ctx context.Context, integration model.Integration) (*model.Integration, error)
}
