package platform_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/crowdfund/infra/provider/platform"
	"github.com/amirasaad/crowdfund/pkg/config"
	"github.com/amirasaad/crowdfund/pkg/domain"
	"github.com/amirasaad/crowdfund/pkg/domain/project"
	"github.com/amirasaad/crowdfund/pkg/dto"
	"github.com/amirasaad/crowdfund/pkg/provider/api"
	"github.com/amirasaad/crowdfund/pkg/testutils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProject(id int64, title string) *project.Project {
	created := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(id) * time.Hour)
	return &project.Project{
		ID:            id,
		Title:         title,
		TargetAmount:  decimal.NewFromInt(1000),
		CurrentAmount: decimal.RequireFromString("250.50"),
		Status:        project.StatusActive,
		CategoryID:    1,
		CreatedAt:     created,
		UpdatedAt:     created,
		EndDate:       created.Add(30 * 24 * time.Hour),
	}
}

func TestListProjects_QueryAndPagination(t *testing.T) {
	fake := testutils.NewFakePlatform(t)
	for i := int64(1); i <= 3; i++ {
		fake.AddProject(newProject(i, "Project"))
	}
	fake.AddProject(newProject(4, "Solar Roof"))
	client := fake.Client(testutils.NewLogger())

	page, err := client.ListProjects(context.Background(), dto.ProjectQuery{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, page.Count)
	assert.Len(t, page.Results, 2)
	require.NotNil(t, page.Next)
	assert.Nil(t, page.Previous)

	solar, err := client.ListProjects(context.Background(), dto.ProjectQuery{Search: "solar"})
	require.NoError(t, err)
	require.Len(t, solar.Results, 1)
	assert.Equal(t, "Solar Roof", solar.Results[0].Title)
	assert.True(t, decimal.RequireFromString("250.50").Equal(solar.Results[0].CurrentAmount))
	assert.Contains(t, fake.Requests(), "GET /api/projects/")
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, domain.ErrUnauthorized},
		{http.StatusForbidden, domain.ErrForbidden},
		{http.StatusNotFound, domain.ErrNotFound},
		{http.StatusBadRequest, domain.ErrValidation},
		{http.StatusInternalServerError, domain.ErrServer},
		{http.StatusServiceUnavailable, domain.ErrServer},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			fake := testutils.NewFakePlatform(t)
			fake.FailWith(tt.status)
			client := fake.Client(testutils.NewLogger())

			_, err := client.GetProject(context.Background(), 1)
			require.ErrorIs(t, err, tt.want)

			var apiErr *api.Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Contains(t, apiErr.Message, "forced failure")
		})
	}
}

func TestNetworkFailure(t *testing.T) {
	fake := testutils.NewFakePlatform(t)
	fake.SetDown(true)
	client := fake.Client(testutils.NewLogger())

	_, err := client.ListCategories(context.Background())
	require.ErrorIs(t, err, domain.ErrNetwork)
	assert.Equal(t, domain.KindNetwork, domain.KindOf(err))
}

func TestTimeoutIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	client := platform.New(&config.API{BaseURL: srv.URL, Timeout: 20 * time.Millisecond}, nil, testutils.NewLogger())
	_, err := client.GetProject(context.Background(), 1)
	require.ErrorIs(t, err, domain.ErrNetwork)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"id":1,"name":"Art"}]}`))
	}))
	defer srv.Close()

	client := platform.New(&config.API{BaseURL: srv.URL + "/", Timeout: time.Second}, nil, testutils.NewLogger())
	invs, err := client.ListMyInvestments(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Len(t, invs, 1)
	assert.Equal(t, "Bearer tok-123", got.Get("Authorization"))
	assert.NotEmpty(t, got.Get("X-Request-ID"))

	_, err = client.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Get("Authorization"))
}

func TestAuthFlowAgainstFake(t *testing.T) {
	fake := testutils.NewFakePlatform(t)
	fake.AddUser(5, "alice", "alice@example.com")
	fake.AddProject(newProject(7, "Solar Roof"))
	client := fake.Client(testutils.NewLogger())
	ctx := context.Background()

	_, err := client.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "wrong"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	session, err := client.Login(ctx, &dto.LoginRequest{Username: "alice", Password: testutils.FakePassword})
	require.NoError(t, err)
	require.NotEmpty(t, session.AccessToken)
	require.NotNil(t, session.User)
	assert.Equal(t, int64(5), session.User.ID)

	profile, err := client.GetProfile(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)

	follow, err := client.FollowProject(ctx, session.AccessToken, 7)
	require.NoError(t, err)
	assert.True(t, follow.IsFollowing)
	unfollow, err := client.UnfollowProject(ctx, session.AccessToken, 7)
	require.NoError(t, err)
	assert.False(t, unfollow.IsFollowing)

	require.NoError(t, client.AddFavorite(ctx, session.AccessToken, 7))
	favs, err := client.ListFavorites(ctx, session.AccessToken)
	require.NoError(t, err)
	require.Len(t, favs, 1)

	refreshed, err := client.Refresh(ctx, &dto.RefreshRequest{RefreshToken: session.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	require.NoError(t, client.Logout(ctx, session.AccessToken))
}
