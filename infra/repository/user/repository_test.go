package user_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/amirasaad/crowdfund/infra/repository/comment"
	"github.com/amirasaad/crowdfund/infra/repository/investment"
	"github.com/amirasaad/crowdfund/infra/repository/user"
	"github.com/amirasaad/crowdfund/pkg/domain"
	commentdomain "github.com/amirasaad/crowdfund/pkg/domain/comment"
	investmentdomain "github.com/amirasaad/crowdfund/pkg/domain/investment"
	userdomain "github.com/amirasaad/crowdfund/pkg/domain/user"
	"github.com/amirasaad/crowdfund/pkg/testutils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

func TestUserRepository_Lookups(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	repo := user.New(testutils.NewTestDB(t))

	require.NoError(repo.Upsert(ctx, &userdomain.User{
		ID:        5,
		Username:  "alice",
		Email:     "alice@example.com",
		Profile:   json.RawMessage(`{"bio":"hi"}`),
		CreatedAt: base,
		UpdatedAt: base,
	}))

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(err)
	assert.Equal(t, int64(5), byEmail.ID)
	assert.JSONEq(t, `{"bio":"hi"}`, string(byEmail.Profile))

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(err)
	assert.Equal(t, "alice@example.com", byName.Email)

	exists, err := repo.Exists(ctx, 5)
	require.NoError(err)
	assert.True(t, exists)

	_, err = repo.Get(ctx, 6)
	require.ErrorIs(err, domain.ErrNotFound)
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := testutils.NewTestDB(t)
	users := user.New(db)
	investments := investment.New(db)
	comments := comment.New(db)

	for _, id := range []int64{5, 6} {
		require.NoError(t, users.Upsert(ctx, &userdomain.User{
			ID: id, Username: "user" + string(rune('a'+id)), Email: string(rune('a'+id)) + "@example.com",
			CreatedAt: base, UpdatedAt: base,
		}))
		require.NoError(t, investments.Upsert(ctx, &investmentdomain.Investment{
			ID: id * 10, ProjectID: 1, UserID: id, Amount: decimal.NewFromInt(10),
			Status: investmentdomain.StatusCompleted, CreatedAt: base, UpdatedAt: base,
		}))
		require.NoError(t, comments.Upsert(ctx, &commentdomain.Comment{
			ID: id * 10, ProjectID: 1, UserID: id, Content: "nice one", CreatedAt: base, UpdatedAt: base,
		}))
	}

	require.NoError(t, users.Delete(ctx, 5))

	_, err := users.Get(ctx, 5)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = investments.Get(ctx, 50)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = comments.Get(ctx, 50)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = investments.Get(ctx, 60)
	require.NoError(t, err)

	require.NoError(t, users.DeleteAll(ctx))
	_, err = users.Get(ctx, 6)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = comments.Get(ctx, 60)
	require.ErrorIs(t, err, domain.ErrNotFound)

	// empty store is a no-op
	require.NoError(t, users.DeleteAll(ctx))
}
