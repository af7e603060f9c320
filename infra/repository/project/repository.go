package project

import (
	"context"
	"time"

	infrarepo "github.com/amirasaad/crowdfund/infra/repository"
	"github.com/amirasaad/crowdfund/infra/repository/model"
	"github.com/amirasaad/crowdfund/pkg/domain/project"
	repo "github.com/amirasaad/crowdfund/pkg/repository/project"
	"gorm.io/gorm"
)

const newestFirst = "created_at DESC, id DESC"

type repository struct {
	db *gorm.DB
}

// New creates a project cache backed by db.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Upsert(ctx context.Context, p *project.Project) error {
	return infrarepo.Upsert(ctx, r.db, []model.Project{mapDomainToModel(p)})
}

func (r *repository) UpsertMany(ctx context.Context, ps []*project.Project) error {
	rows := make([]model.Project, 0, len(ps))
	for _, p := range ps {
		rows = append(rows, mapDomainToModel(p))
	}
	return infrarepo.Upsert(ctx, r.db, rows)
}

func (r *repository) Get(ctx context.Context, id int64) (*project.Project, error) {
	var m model.Project
	if err := infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	}); err != nil {
		return nil, err
	}
	return mapModelToDomain(&m), nil
}

func (r *repository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Project{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) List(ctx context.Context) ([]*project.Project, error) {
	return r.find(r.db.WithContext(ctx).Order(newestFirst))
}

func (r *repository) Find(ctx context.Context, f repo.Filter) ([]*project.Project, error) {
	q := r.db.WithContext(ctx)
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	if f.Search != "" {
		q = q.Where(infrarepo.LikeClause("title"), infrarepo.ContainsPattern(f.Search))
	}
	return r.find(q.Order(newestFirst))
}

func (r *repository) ListByCreator(ctx context.Context, creatorID int64) ([]*project.Project, error) {
	return r.find(r.db.WithContext(ctx).Where("creator_id = ?", creatorID).Order(newestFirst))
}

func (r *repository) ListActive(ctx context.Context, now time.Time) ([]*project.Project, error) {
	return r.find(r.db.WithContext(ctx).
		Where("status = ? AND end_date > ?", string(project.StatusActive), now).
		Order("end_date ASC"))
}

func (r *repository) ListPopular(ctx context.Context, limit int) ([]*project.Project, error) {
	return r.find(r.db.WithContext(ctx).Order("current_amount DESC, id ASC").Limit(limit))
}

func (r *repository) CountByStatus(ctx context.Context, status project.Status) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Project{}).Where("status = ?", string(status)).Count(&count).Error
	return count, err
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("project_id = ?", id).Delete(&model.Investment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
				return err
			}
			return tx.Delete(&model.Project{}, "id = ?", id).Error
		})
	})
}

func (r *repository) DeleteAll(ctx context.Context) error {
	return infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
			if err := all.Delete(&model.Investment{}).Error; err != nil {
				return err
			}
			if err := all.Delete(&model.Comment{}).Error; err != nil {
				return err
			}
			return all.Delete(&model.Project{}).Error
		})
	})
}

func (r *repository) find(q *gorm.DB) ([]*project.Project, error) {
	var rows []model.Project
	if err := q.Find(&rows).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	out := make([]*project.Project, 0, len(rows))
	for i := range rows {
		out = append(out, mapModelToDomain(&rows[i]))
	}
	return out, nil
}

func mapDomainToModel(p *project.Project) model.Project {
	return model.Project{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		TargetAmount:  p.TargetAmount,
		CurrentAmount: p.CurrentAmount,
		Status:        string(p.Status),
		CreatorID:     p.CreatorID,
		CategoryID:    p.CategoryID,
		ImageURL:      p.ImageURL,
		CreatedAt:     p.CreatedAt,
		EndDate:       p.EndDate,
		UpdatedAt:     p.UpdatedAt,
	}
}

func mapModelToDomain(m *model.Project) *project.Project {
	return &project.Project{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		TargetAmount:  m.TargetAmount,
		CurrentAmount: m.CurrentAmount,
		Status:        project.Status(m.Status),
		CreatorID:     m.CreatorID,
		CategoryID:    m.CategoryID,
		ImageURL:      m.ImageURL,
		CreatedAt:     m.CreatedAt,
		EndDate:       m.EndDate,
		UpdatedAt:     m.UpdatedAt,
	}
}

var _ repo.Repository = (*repository)(nil)
