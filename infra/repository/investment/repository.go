package investment

import (
	"context"

	infrarepo "github.com/amirasaad/crowdfund/infra/repository"
	"github.com/amirasaad/crowdfund/infra/repository/model"
	"github.com/amirasaad/crowdfund/pkg/domain/investment"
	repo "github.com/amirasaad/crowdfund/pkg/repository/investment"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const newestFirst = "created_at DESC, id DESC"

type repository struct {
	db *gorm.DB
}

// New creates an investment cache backed by db.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Upsert(ctx context.Context, inv *investment.Investment) error {
	return infrarepo.Upsert(ctx, r.db, []model.Investment{mapDomainToModel(inv)})
}

func (r *repository) UpsertMany(ctx context.Context, invs []*investment.Investment) error {
	rows := make([]model.Investment, 0, len(invs))
	for _, inv := range invs {
		rows = append(rows, mapDomainToModel(inv))
	}
	return infrarepo.Upsert(ctx, r.db, rows)
}

func (r *repository) Get(ctx context.Context, id int64) (*investment.Investment, error) {
	var m model.Investment
	if err := infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	}); err != nil {
		return nil, err
	}
	return mapModelToDomain(&m), nil
}

func (r *repository) UpdateStatus(ctx context.Context, inv *investment.Investment) error {
	return infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Model(&model.Investment{}).
			Where("id = ?", inv.ID).
			Updates(map[string]any{
				"status":     string(inv.Status),
				"updated_at": inv.UpdatedAt,
			}).Error
	})
}

func (r *repository) ListByUser(ctx context.Context, userID int64) ([]*investment.Investment, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID).Order(newestFirst))
}

func (r *repository) ListByProject(ctx context.Context, projectID int64) ([]*investment.Investment, error) {
	return r.find(r.db.WithContext(ctx).Where("project_id = ?", projectID).Order(newestFirst))
}

func (r *repository) ListByStatus(ctx context.Context, status investment.Status) ([]*investment.Investment, error) {
	return r.find(r.db.WithContext(ctx).Where("status = ?", string(status)).Order(newestFirst))
}

func (r *repository) ListByUserAndProject(
	ctx context.Context,
	userID, projectID int64,
) ([]*investment.Investment, error) {
	return r.find(r.db.WithContext(ctx).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Order(newestFirst))
}

func (r *repository) RecentByUser(ctx context.Context, userID int64, limit int) ([]*investment.Investment, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID).Order(newestFirst).Limit(limit))
}

func (r *repository) TotalInvestedByUser(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return r.sum(r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, string(investment.StatusCompleted)))
}

func (r *repository) TotalCollectedForProject(ctx context.Context, projectID int64) (decimal.Decimal, error) {
	return r.sum(r.db.WithContext(ctx).
		Where("project_id = ? AND status = ?", projectID, string(investment.StatusCompleted)))
}

func (r *repository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Investment{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *repository) CountByUserAndStatus(
	ctx context.Context,
	userID int64,
	status investment.Status,
) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Investment{}).
		Where("user_id = ? AND status = ?", userID, string(status)).
		Count(&count).Error
	return count, err
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Delete(&model.Investment{}, "id = ?", id).Error
	})
}

func (r *repository) DeleteAll(ctx context.Context) error {
	return infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).
			Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&model.Investment{}).Error
	})
}

// sum adds amounts in Go so that precision does not depend on the backend's
// SUM over decimal columns.
func (r *repository) sum(q *gorm.DB) (decimal.Decimal, error) {
	var rows []model.Investment
	if err := q.Select("amount").Find(&rows).Error; err != nil {
		return decimal.Zero, infrarepo.MapGormErrorToDomain(err)
	}
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Amount)
	}
	return total, nil
}

func (r *repository) find(q *gorm.DB) ([]*investment.Investment, error) {
	var rows []model.Investment
	if err := q.Find(&rows).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	out := make([]*investment.Investment, 0, len(rows))
	for i := range rows {
		out = append(out, mapModelToDomain(&rows[i]))
	}
	return out, nil
}

func mapDomainToModel(inv *investment.Investment) model.Investment {
	return model.Investment{
		ID:            inv.ID,
		ProjectID:     inv.ProjectID,
		UserID:        inv.UserID,
		Amount:        inv.Amount,
		Status:        string(inv.Status),
		PaymentMethod: inv.PaymentMethod,
		TransactionID: inv.TransactionID,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

func mapModelToDomain(m *model.Investment) *investment.Investment {
	return &investment.Investment{
		ID:            m.ID,
		ProjectID:     m.ProjectID,
		UserID:        m.UserID,
		Amount:        m.Amount,
		Status:        investment.Status(m.Status),
		PaymentMethod: m.PaymentMethod,
		TransactionID: m.TransactionID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

var _ repo.Repository = (*repository)(nil)
