package webapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	infracache "github.com/amirasaad/crowdfund/infra/cache"
	categorystore "github.com/amirasaad/crowdfund/infra/repository/category"
	commentstore "github.com/amirasaad/crowdfund/infra/repository/comment"
	investmentstore "github.com/amirasaad/crowdfund/infra/repository/investment"
	projectstore "github.com/amirasaad/crowdfund/infra/repository/project"
	userstore "github.com/amirasaad/crowdfund/infra/repository/user"
	"github.com/amirasaad/crowdfund/pkg/app"
	"github.com/amirasaad/crowdfund/pkg/config"
	"github.com/amirasaad/crowdfund/pkg/domain/category"
	"github.com/amirasaad/crowdfund/pkg/domain/project"
	"github.com/amirasaad/crowdfund/pkg/provider/payment"
	"github.com/amirasaad/crowdfund/pkg/testutils"
	"github.com/amirasaad/crowdfund/webapi"
	"github.com/amirasaad/crowdfund/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) ResolveOutcome(ctx context.Context, id, secret string) (*payment.Outcome, error) {
	args := m.Called(ctx, id, secret)
	out, _ := args.Get(0).(*payment.Outcome)
	return out, args.Error(1)
}

type GatewayTestSuite struct {
	suite.Suite
	h        *testutils.Harness
	resolver *mockResolver
	app      *app.App
	fiber    *fiber.App
}

func TestGatewayTestSuite(t *testing.T) {
	suite.Run(t, new(GatewayTestSuite))
}

func (s *GatewayTestSuite) SetupTest() {
	s.h = testutils.NewHarness(s.T())
	s.resolver = new(mockResolver)
	now := time.Now().UTC().Truncate(time.Second)
	for i, title := range []string{"Solar Roof", "Community Garden", "Wind Farm"} {
		id := int64(i + 1)
		s.h.Fake.AddProject(&project.Project{
			ID:            id,
			Title:         title,
			TargetAmount:  decimal.NewFromInt(1000),
			CurrentAmount: decimal.Zero,
			Status:        project.StatusActive,
			CategoryID:    1,
			CreatedAt:     now.Add(time.Duration(id) * time.Minute),
			UpdatedAt:     now,
			EndDate:       now.Add(30 * 24 * time.Hour),
		})
	}
	s.h.Fake.AddUser(5, "alice", "alice@example.com")

	deps := &app.Deps{
		Platform:    s.h.Client,
		Projects:    projectstore.New(s.h.DB),
		Categories:  categorystore.New(s.h.DB),
		Investments: investmentstore.New(s.h.DB),
		Comments:    commentstore.New(s.h.DB),
		Users:       userstore.New(s.h.DB),
		Tokens:      infracache.NewMemoryTokenStore(),
		Writes:      s.h.Queue,
		Payments:    s.resolver,
		Logger:      s.h.Logger,
	}
	cfg := &config.App{
		Env:       "test",
		Session:   &config.Session{ExpirySkew: 30 * time.Second},
		RateLimit: &config.RateLimit{MaxRequests: 1000, Window: time.Minute},
	}
	s.app = app.New(deps, cfg)
	s.fiber = webapi.SetupApp(s.app)
}

func (s *GatewayTestSuite) request(method, path, body string) *http.Response {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.fiber.Test(req, 5000)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](s *GatewayTestSuite, resp *http.Response) T {
	var out T
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (s *GatewayTestSuite) login() {
	resp := s.request(fiber.MethodPost, "/auth/login",
		`{"username":"alice","password":"`+testutils.FakePassword+`"}`)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.h.Flush(s.T())
}

func (s *GatewayTestSuite) TestHealthAndMetrics() {
	resp := s.request(fiber.MethodGet, "/health", "")
	s.Equal(fiber.StatusOK, resp.StatusCode)
	health := decode[map[string]any](s, resp)
	s.Equal("ok", health["status"])

	s.request(fiber.MethodGet, "/projects", "")
	resp = s.request(fiber.MethodGet, "/metrics", "")
	s.Equal(fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Contains(string(body), "crowdfund_sync_remote_requests_total")
}

func (s *GatewayTestSuite) TestProjects_OfflineSearch() {
	resp := s.request(fiber.MethodGet, "/projects", "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.Equal("remote", resp.Header.Get(common.HeaderDataSource))
	s.h.Flush(s.T())

	s.h.Fake.SetDown(true)
	resp = s.request(fiber.MethodGet, "/projects?search=solar", "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.Equal("cache", resp.Header.Get(common.HeaderDataSource))
	page := decode[map[string]any](s, resp)
	s.Equal(true, page["offline"])
	s.Len(page["results"], 1)
	s.Nil(page["next"])
}

func (s *GatewayTestSuite) TestProblemDetails() {
	resp := s.request(fiber.MethodGet, "/projects/abc", "")
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	s.Equal("application/problem+json", resp.Header.Get(fiber.HeaderContentType))
	pd := decode[common.ProblemDetails](s, resp)
	s.Equal("validation", pd.Code)
	s.Equal("/projects/abc", pd.Instance)

	s.h.Fake.SetDown(true)
	resp = s.request(fiber.MethodGet, "/categories", "")
	s.Equal(fiber.StatusServiceUnavailable, resp.StatusCode)
	pd = decode[common.ProblemDetails](s, resp)
	s.Equal("not_cached", pd.Code)
	s.Equal("This content is not available offline.", pd.Title)

	resp = s.request(fiber.MethodPost, "/investments", `{"project_id":1,"amount":"10","payment_method":"CARD"}`)
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
	s.Equal("no_credential", decode[common.ProblemDetails](s, resp).Code)
}

func (s *GatewayTestSuite) TestCategories_LocalLookups() {
	s.h.Fake.AddCategory(&category.Category{ID: 1, Name: "Art"})
	s.h.Fake.AddCategory(&category.Category{ID: 2, Name: "Green"})

	resp := s.request(fiber.MethodGet, "/categories", "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.Len(decode[common.Response](s, resp).Data, 2)
	s.h.Flush(s.T())

	s.h.Fake.SetDown(true)
	resp = s.request(fiber.MethodGet, "/categories/name/Green", "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.Equal("cache", resp.Header.Get(common.HeaderDataSource))
	data := decode[common.Response](s, resp).Data.(map[string]any)
	s.Equal(float64(2), data["id"])

	resp = s.request(fiber.MethodGet, "/categories/9", "")
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *GatewayTestSuite) TestValidationErrorsListed() {
	s.login()
	resp := s.request(fiber.MethodPost, "/comments", `{"project_id":1,"content":"hey"}`)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	pd := decode[map[string]any](s, resp)
	s.Equal("validation", pd["code"])
	errs, ok := pd["errors"].([]any)
	s.Require().True(ok)
	s.Len(errs, 1)
}

func (s *GatewayTestSuite) TestPlatformMessageIsDetail() {
	s.login()
	s.h.Fake.FailWith(fiber.StatusForbidden)
	resp := s.request(fiber.MethodDelete, "/projects/1", "")
	s.Equal(fiber.StatusForbidden, resp.StatusCode)
	pd := decode[common.ProblemDetails](s, resp)
	s.Equal("forbidden", pd.Code)
	s.Equal("forced failure 403", pd.Detail)
}

func (s *GatewayTestSuite) TestProfile_FallsBack() {
	s.login()
	resp := s.request(fiber.MethodGet, "/auth/profile", "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.Equal("remote", resp.Header.Get(common.HeaderDataSource))

	s.h.Fake.SetDown(true)
	resp = s.request(fiber.MethodGet, "/auth/profile", "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.Equal("cache", resp.Header.Get(common.HeaderDataSource))
	body := decode[common.Response](s, resp)
	s.True(body.Offline)

	resp = s.request(fiber.MethodPost, "/auth/logout", "")
	s.Equal(fiber.StatusNoContent, resp.StatusCode)
	resp = s.request(fiber.MethodGet, "/auth/profile", "")
	s.Equal(fiber.StatusServiceUnavailable, resp.StatusCode)
}

func (s *GatewayTestSuite) createInvestment() int64 {
	resp := s.request(fiber.MethodPost, "/investments", `{"project_id":1,"amount":"50","payment_method":"CARD"}`)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	body := decode[common.Response](s, resp)
	data, ok := body.Data.(map[string]any)
	s.Require().True(ok)
	s.Equal("PENDING", data["status"])
	s.NotEmpty(data["client_secret"])
	s.h.Flush(s.T())
	return int64(data["id"].(float64))
}

func (s *GatewayTestSuite) TestPaymentOutcomes() {
	s.login()
	id := s.createInvestment()
	path := "/investments/" + jsonID(id)

	resp := s.request(fiber.MethodPost, path+"/outcome", `{"status":"failure","message":"card declined"}`)
	s.Equal(fiber.StatusPaymentRequired, resp.StatusCode)
	s.Equal("payment_failed", decode[common.ProblemDetails](s, resp).Code)

	resp = s.request(fiber.MethodPost, path+"/outcome", `{"status":"success","payment_intent_id":"pi_abc"}`)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	data := decode[common.Response](s, resp).Data.(map[string]any)
	s.Equal("COMPLETED", data["status"])
	s.h.Flush(s.T())

	resp = s.request(fiber.MethodPost, path+"/cancel", "")
	s.Equal(fiber.StatusConflict, resp.StatusCode)
	s.Equal("invalid_transition", decode[common.ProblemDetails](s, resp).Code)

	resp = s.request(fiber.MethodGet, "/investments/dashboard", "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	summary := decode[common.Response](s, resp).Data.(map[string]any)
	s.Equal("50", summary["total_invested"])
}

func (s *GatewayTestSuite) TestPaymentOutcomeResolved() {
	s.login()
	id := s.createInvestment()
	s.resolver.On("ResolveOutcome", mock.Anything, "pi_xyz", "pi_xyz_secret").
		Return(&payment.Outcome{Status: payment.OutcomeCanceled, PaymentIntentID: "pi_xyz"}, nil).
		Once()

	resp := s.request(fiber.MethodPost, "/investments/"+jsonID(id)+"/outcome",
		`{"payment_intent_id":"pi_xyz","client_secret":"pi_xyz_secret"}`)
	s.Equal(fiber.StatusNoContent, resp.StatusCode)
	s.resolver.AssertExpectations(s.T())

	inv, ok := s.h.Fake.Investment(id)
	s.Require().True(ok)
	s.Equal("CANCELLED", string(inv.Status))
}

func (s *GatewayTestSuite) TestCommentsAndFollow() {
	s.login()
	resp := s.request(fiber.MethodPost, "/comments", `{"project_id":1,"content":"Love this project"}`)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

	resp = s.request(fiber.MethodGet, "/projects/1/comments", "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.Len(decode[common.Response](s, resp).Data, 1)

	resp = s.request(fiber.MethodPost, "/projects/1/follow", "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	data := decode[common.Response](s, resp).Data.(map[string]any)
	s.Equal(true, data["is_following"])
}

func jsonID(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
