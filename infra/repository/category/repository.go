package category

import (
	"context"

	infrarepo "github.com/amirasaad/crowdfund/infra/repository"
	"github.com/amirasaad/crowdfund/infra/repository/model"
	"github.com/amirasaad/crowdfund/pkg/domain/category"
	repo "github.com/amirasaad/crowdfund/pkg/repository/category"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a category cache backed by db.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Upsert(ctx context.Context, c *category.Category) error {
	return infrarepo.Upsert(ctx, r.db, []model.Category{mapDomainToModel(c)})
}

func (r *repository) UpsertMany(ctx context.Context, cs []*category.Category) error {
	rows := make([]model.Category, 0, len(cs))
	for _, c := range cs {
		rows = append(rows, mapDomainToModel(c))
	}
	return infrarepo.Upsert(ctx, r.db, rows)
}

func (r *repository) Get(ctx context.Context, id int64) (*category.Category, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *repository) GetByName(ctx context.Context, name string) (*category.Category, error) {
	return r.first(r.db.WithContext(ctx).Where("name = ?", name))
}

func (r *repository) List(ctx context.Context) ([]*category.Category, error) {
	var rows []model.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	out := make([]*category.Category, 0, len(rows))
	for i := range rows {
		out = append(out, mapModelToDomain(&rows[i]))
	}
	return out, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).Count(&count).Error
	return count, err
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Delete(&model.Category{}, "id = ?", id).Error
	})
}

func (r *repository) DeleteAll(ctx context.Context) error {
	return infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).
			Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&model.Category{}).Error
	})
}

func (r *repository) first(q *gorm.DB) (*category.Category, error) {
	var m model.Category
	if err := infrarepo.WrapError(func() error { return q.First(&m).Error }); err != nil {
		return nil, err
	}
	return mapModelToDomain(&m), nil
}

func mapDomainToModel(c *category.Category) model.Category {
	return model.Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		IconURL:     c.IconURL,
		Color:       c.Color,
		CreatedAt:   c.CreatedAt,
	}
}

func mapModelToDomain(m *model.Category) *category.Category {
	return &category.Category{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		IconURL:     m.IconURL,
		Color:       m.Color,
		CreatedAt:   m.CreatedAt,
	}
}

var _ repo.Repository = (*repository)(nil)
