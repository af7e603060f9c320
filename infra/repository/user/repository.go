package user

import (
	"context"
	"encoding/json"

	infrarepo "github.com/amirasaad/crowdfund/infra/repository"
	"github.com/amirasaad/crowdfund/infra/repository/model"
	"github.com/amirasaad/crowdfund/pkg/domain/user"
	repo "github.com/amirasaad/crowdfund/pkg/repository/user"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a user cache backed by db.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Upsert(
	ctx context.Context,
	u *user.User,
) error {
	return infrarepo.Upsert(ctx, r.db, []model.User{mapDomainToModel(u)})
}

func (r *repository) Get(
	ctx context.Context,
	id int64,
) (*user.User, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*user.User, error) {
	return r.first(r.db.WithContext(ctx).Where("email = ?", email))
}

func (r *repository) GetByUsername(
	ctx context.Context,
	username string,
) (*user.User, error) {
	return r.first(r.db.WithContext(ctx).Where("username = ?", username))
}

func (r *repository) Exists(
	ctx context.Context,
	id int64,
) (bool, error) {
	var count int64
	err := r.db.WithContext(
		ctx,
	).Model(&model.User{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) Delete(
	ctx context.Context,
	id int64,
) error {
	return infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return deleteUsers(tx.Where("id = ?", id), tx.Where("user_id = ?", id))
		})
	})
}

func (r *repository) DeleteAll(ctx context.Context) error {
	return infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var ids []int64
			if err := tx.Model(&model.User{}).Pluck("id", &ids).Error; err != nil {
				return err
			}
			if len(ids) == 0 {
				return nil
			}
			return deleteUsers(tx.Where("id IN ?", ids), tx.Where("user_id IN ?", ids))
		})
	})
}

// deleteUsers removes the users selected by byID together with the
// investments and comments selected by byOwner.
func deleteUsers(byID, byOwner *gorm.DB) error {
	if err := byOwner.Session(&gorm.Session{}).Delete(&model.Investment{}).Error; err != nil {
		return err
	}
	if err := byOwner.Session(&gorm.Session{}).Delete(&model.Comment{}).Error; err != nil {
		return err
	}
	return byID.Delete(&model.User{}).Error
}

func (r *repository) first(q *gorm.DB) (*user.User, error) {
	var m model.User
	if err := infrarepo.WrapError(func() error { return q.First(&m).Error }); err != nil {
		return nil, err
	}
	return mapModelToDomain(&m), nil
}

func mapDomainToModel(u *user.User) model.User {
	return model.User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Profile:      string(u.Profile),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func mapModelToDomain(m *model.User) *user.User {
	u := &user.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Profile != "" {
		u.Profile = json.RawMessage(m.Profile)
	}
	return u
}

var _ repo.Repository = (*repository)(nil)
