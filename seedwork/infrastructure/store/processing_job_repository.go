package store

import (
	"context"

	"gorm.io/gorm"

	"gitscribe/seedwork/domain"
	"gitscribe/seedwork/domain/entities"
)

// ProcessingJobRepository backs the async /process-transcript →
// /get-summary/{process_id} polling flow (spec.md SUPPLEMENTED FEATURES).
type ProcessingJobRepository struct {
	db *gorm.DB
}

func NewProcessingJobRepository(db *gorm.DB) *ProcessingJobRepository {
	return &ProcessingJobRepository{db: db}
}

func (r *ProcessingJobRepository) Save(ctx context.Context, job *entities.ProcessingJob) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *ProcessingJobRepository) Update(ctx context.Context, job *entities.ProcessingJob) error {
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *ProcessingJobRepository) FindByID(ctx context.Context, id string) (*entities.ProcessingJob, error) {
	var job entities.ProcessingJob
	err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}
