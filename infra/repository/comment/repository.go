package comment

import (
	"context"

	infrarepo "github.com/amirasaad/crowdfund/infra/repository"
	"github.com/amirasaad/crowdfund/infra/repository/model"
	"github.com/amirasaad/crowdfund/pkg/domain/comment"
	repo "github.com/amirasaad/crowdfund/pkg/repository/comment"
	"gorm.io/gorm"
)

const newestFirst = "created_at DESC, id DESC"

type repository struct {
	db *gorm.DB
}

// New creates a comment cache backed by db.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Upsert(ctx context.Context, c *comment.Comment) error {
	return infrarepo.Upsert(ctx, r.db, []model.Comment{mapDomainToModel(c)})
}

func (r *repository) UpsertMany(ctx context.Context, cs []*comment.Comment) error {
	rows := make([]model.Comment, 0, len(cs))
	for _, c := range cs {
		rows = append(rows, mapDomainToModel(c))
	}
	return infrarepo.Upsert(ctx, r.db, rows)
}

func (r *repository) Get(ctx context.Context, id int64) (*comment.Comment, error) {
	var m model.Comment
	if err := infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	}); err != nil {
		return nil, err
	}
	return mapModelToDomain(&m), nil
}

func (r *repository) ListByProject(ctx context.Context, projectID int64) ([]*comment.Comment, error) {
	return r.find(r.db.WithContext(ctx).
		Where("project_id = ? AND is_deleted = ?", projectID, false).
		Order(newestFirst))
}

func (r *repository) ListByUser(ctx context.Context, userID int64) ([]*comment.Comment, error) {
	return r.find(r.db.WithContext(ctx).
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order(newestFirst))
}

func (r *repository) MarkReported(ctx context.Context, id int64) error {
	return r.flag(ctx, id, "is_reported")
}

func (r *repository) MarkDeleted(ctx context.Context, id int64) error {
	return r.flag(ctx, id, "is_deleted")
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Delete(&model.Comment{}, "id = ?", id).Error
	})
}

func (r *repository) DeleteAll(ctx context.Context) error {
	return infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).
			Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&model.Comment{}).Error
	})
}

func (r *repository) flag(ctx context.Context, id int64, column string) error {
	return infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Model(&model.Comment{}).
			Where("id = ?", id).
			Update(column, true).Error
	})
}

func (r *repository) find(q *gorm.DB) ([]*comment.Comment, error) {
	var rows []model.Comment
	if err := q.Find(&rows).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	out := make([]*comment.Comment, 0, len(rows))
	for i := range rows {
		out = append(out, mapModelToDomain(&rows[i]))
	}
	return out, nil
}

func mapDomainToModel(c *comment.Comment) model.Comment {
	return model.Comment{
		ID:            c.ID,
		ProjectID:     c.ProjectID,
		UserID:        c.UserID,
		Content:       c.Content,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
		IsReported:    c.IsReported,
		IsDeleted:     c.IsDeleted,
		UserName:      c.UserName,
		UserAvatarURL: c.UserAvatarURL,
	}
}

func mapModelToDomain(m *model.Comment) *comment.Comment {
	return &comment.Comment{
		ID:            m.ID,
		ProjectID:     m.ProjectID,
		UserID:        m.UserID,
		Content:       m.Content,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		IsReported:    m.IsReported,
		IsDeleted:     m.IsDeleted,
		UserName:      m.UserName,
		UserAvatarURL: m.UserAvatarURL,
	}
}

var _ repo.Repository = (*repository)(nil)
