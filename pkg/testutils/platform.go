package testutils

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amirasaad/crowdfund/infra/provider/platform"
	"github.com/amirasaad/crowdfund/pkg/config"
	"github.com/amirasaad/crowdfund/pkg/domain/category"
	"github.com/amirasaad/crowdfund/pkg/domain/comment"
	"github.com/amirasaad/crowdfund/pkg/domain/investment"
	"github.com/amirasaad/crowdfund/pkg/domain/project"
	"github.com/amirasaad/crowdfund/pkg/domain/user"
	"github.com/amirasaad/crowdfund/pkg/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/golang-jwt/jwt/v5"
)

// FakePassword is the password of every user created with AddUser.
const FakePassword = "Secret123!"

var fakeSecret = []byte("fake-platform-secret")

type fakeClaims struct {
	UserID int64  `json:"user_id"`
	Type   string `json:"token_type"`
	jwt.RegisteredClaims
}

type fakeUser struct {
	user     *user.User
	password string
}

// FakePlatform is an in-memory crowdfunding platform served over HTTP. It
// can be taken down to simulate a lost network, or made to fail every call
// with a fixed status.
type FakePlatform struct {
	Server *httptest.Server

	// AccessTTL is the lifetime of issued access tokens.
	AccessTTL time.Duration

	mu          sync.Mutex
	nextID      int64
	users       map[int64]*fakeUser
	projects    map[int64]*project.Project
	categories  map[int64]*category.Category
	investments map[int64]*investment.Investment
	comments    map[int64]*comment.Comment
	favorites   map[int64]map[int64]bool
	follows     map[int64]map[int64]bool
	requests    []string

	down         atomic.Bool
	failStatus   atomic.Int32
	refreshCalls atomic.Int32
}

// NewFakePlatform starts a fake platform that is stopped when t ends.
func NewFakePlatform(t testing.TB) *FakePlatform {
	t.Helper()
	f := &FakePlatform{
		AccessTTL:   time.Hour,
		nextID:      1000,
		users:       map[int64]*fakeUser{},
		projects:    map[int64]*project.Project{},
		categories:  map[int64]*category.Category{},
		investments: map[int64]*investment.Investment{},
		comments:    map[int64]*comment.Comment{},
		favorites:   map[int64]map[int64]bool{},
		follows:     map[int64]map[int64]bool{},
	}
	handler := adaptor.FiberApp(f.app())
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, r.Method+" "+r.URL.Path)
		f.mu.Unlock()
		if f.down.Load() {
			if hj, ok := w.(http.Hijacker); ok {
				if conn, _, err := hj.Hijack(); err == nil {
					_ = conn.Close()
					return
				}
			}
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		if status := int(f.failStatus.Load()); status != 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = fmt.Fprintf(w, `{"detail":"forced failure %d"}`, status)
			return
		}
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(f.Server.Close)
	return f
}

// Client returns a platform client pointed at the fake.
func (f *FakePlatform) Client(logger *slog.Logger) *platform.Client {
	return platform.New(&config.API{
		BaseURL: f.Server.URL,
		Timeout: 2 * time.Second,
	}, f.Server.Client(), logger)
}

// SetDown makes every request fail at the transport level while down is true.
func (f *FakePlatform) SetDown(down bool) {
	f.down.Store(down)
}

// FailWith answers every request with status until called with 0.
func (f *FakePlatform) FailWith(status int) {
	f.failStatus.Store(int32(status))
}

// Requests returns the "METHOD /path" of every request received so far.
func (f *FakePlatform) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

// RefreshCalls returns how many refresh requests were served.
func (f *FakePlatform) RefreshCalls() int {
	return int(f.refreshCalls.Load())
}

// AddUser registers a user with FakePassword and returns it.
func (f *FakePlatform) AddUser(id int64, username, email string) *user.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC().Truncate(time.Second)
	u := &user.User{ID: id, Username: username, Email: email, CreatedAt: now, UpdatedAt: now}
	f.users[id] = &fakeUser{user: u, password: FakePassword}
	return u
}

// AddProject stores p on the platform.
func (f *FakePlatform) AddProject(p *project.Project) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.projects[p.ID] = &cp
}

// AddCategory stores c on the platform.
func (f *FakePlatform) AddCategory(c *category.Category) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *c
	f.categories[c.ID] = &cp
}

// AddInvestment stores inv on the platform.
func (f *FakePlatform) AddInvestment(inv *investment.Investment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *inv
	f.investments[inv.ID] = &cp
}

// AddComment stores c on the platform.
func (f *FakePlatform) AddComment(c *comment.Comment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *c
	f.comments[c.ID] = &cp
}

// Investment returns the platform's copy of an investment.
func (f *FakePlatform) Investment(id int64) (investment.Investment, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.investments[id]
	if !ok {
		return investment.Investment{}, false
	}
	return *inv, true
}

// IssueToken signs a token of the given type ("access" or "refresh").
func (f *FakePlatform) IssueToken(userID int64, tokenType string, ttl time.Duration) string {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, fakeClaims{
		UserID: userID,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        fmt.Sprintf("%d-%d", userID, now.UnixNano()),
		},
	})
	signed, err := token.SignedString(fakeSecret)
	if err != nil {
		panic(err)
	}
	return signed
}

func (f *FakePlatform) app() *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	app.Post("/api/auth/login", f.login)
	app.Post("/api/auth/register", f.register)
	app.Post("/api/auth/refresh", f.refresh)
	app.Post("/api/auth/logout", f.authed(func(c *fiber.Ctx, _ int64) error {
		return c.SendStatus(fiber.StatusNoContent)
	}))
	app.Get("/api/users/profile", f.authed(f.profile))
	app.Put("/api/users/profile", f.authed(f.updateProfile))

	app.Get("/api/categories", f.listCategories)
	app.Get("/api/projects", f.listProjects)
	app.Post("/api/projects", f.authed(f.createProject))
	app.Get("/api/projects/favorites", f.authed(f.listFavorites))
	app.Get("/api/projects/:id", f.getProject)
	app.Put("/api/projects/:id", f.authed(f.updateProject))
	app.Delete("/api/projects/:id", f.authed(f.deleteProject))
	app.Post("/api/projects/:id/favorite", f.authed(f.toggle(f.favorites, true, false)))
	app.Delete("/api/projects/:id/favorite", f.authed(f.toggle(f.favorites, false, false)))
	app.Post("/api/projects/:id/follow", f.authed(f.toggle(f.follows, true, true)))
	app.Delete("/api/projects/:id/follow", f.authed(f.toggle(f.follows, false, true)))
	app.Get("/api/projects/:id/investments", f.listProjectInvestments)
	app.Get("/api/projects/:id/comments", f.listComments)

	app.Post("/api/investments", f.authed(f.createInvestment))
	app.Get("/api/investments", f.authed(f.listMyInvestments))
	app.Get("/api/investments/:id", f.authed(f.getInvestment))
	app.Post("/api/investments/:id/confirm-payment", f.authed(f.confirmPayment))
	app.Post("/api/investments/:id/cancel", f.authed(f.cancelInvestment))

	app.Post("/api/comments", f.authed(f.postComment))
	app.Post("/api/comments/:id/report", f.authed(f.reportComment))
	app.Delete("/api/comments/:id", f.authed(f.deleteComment))
	return app
}

func detail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"detail": msg})
}

func (f *FakePlatform) parse(raw, tokenType string) (int64, error) {
	claims := &fakeClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return fakeSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, err
	}
	if claims.Type != tokenType {
		return 0, errors.New("wrong token type")
	}
	return claims.UserID, nil
}

func (f *FakePlatform) authed(next func(c *fiber.Ctx, userID int64) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		userID, err := f.parse(raw, "access")
		if err != nil {
			return detail(c, fiber.StatusUnauthorized, "Authentication credentials were not provided.")
		}
		return next(c, userID)
	}
}

func (f *FakePlatform) session(userID int64) fiber.Map {
	return fiber.Map{
		"access_token":  f.IssueToken(userID, "access", f.AccessTTL),
		"refresh_token": f.IssueToken(userID, "refresh", 24*time.Hour),
		"user":          f.users[userID].user,
	}
}

func (f *FakePlatform) login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, u := range f.users {
		if u.user.Username == req.Username && u.password == req.Password {
			return c.JSON(f.session(id))
		}
	}
	return detail(c, fiber.StatusUnauthorized, "Invalid credentials")
}

func (f *FakePlatform) register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.user.Username == req.Username {
			return detail(c, fiber.StatusBadRequest, "username already taken")
		}
	}
	f.nextID++
	now := time.Now().UTC().Truncate(time.Second)
	u := &user.User{ID: f.nextID, Username: req.Username, Email: req.Email, CreatedAt: now, UpdatedAt: now}
	f.users[u.ID] = &fakeUser{user: u, password: req.Password}
	return c.Status(fiber.StatusCreated).JSON(f.session(u.ID))
}

func (f *FakePlatform) refresh(c *fiber.Ctx) error {
	f.refreshCalls.Add(1)
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}
	userID, err := f.parse(req.RefreshToken, "refresh")
	if err != nil {
		return detail(c, fiber.StatusUnauthorized, "Token is invalid or expired")
	}
	// slow enough for concurrent callers to overlap
	time.Sleep(20 * time.Millisecond)
	return c.JSON(dto.TokenResponse{AccessToken: f.IssueToken(userID, "access", f.AccessTTL)})
}

func (f *FakePlatform) profile(c *fiber.Ctx, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return detail(c, fiber.StatusNotFound, "Not found.")
	}
	return c.JSON(u.user)
}

func (f *FakePlatform) updateProfile(c *fiber.Ctx, userID int64) error {
	var in dto.ProfileUpdate
	if err := c.BodyParser(&in); err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return detail(c, fiber.StatusNotFound, "Not found.")
	}
	if in.Email != nil {
		u.user.Email = *in.Email
	}
	if len(in.Profile) > 0 {
		u.user.Profile = in.Profile
	}
	u.user.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	return c.JSON(u.user)
}

func (f *FakePlatform) listCategories(c *fiber.Ctx) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*category.Category, 0, len(f.categories))
	for _, cat := range f.categories {
		out = append(out, cat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return c.JSON(out)
}

func (f *FakePlatform) listProjects(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	size := c.QueryInt("page_size", 10)
	categoryID := int64(c.QueryInt("category"))
	search := strings.ToLower(c.Query("search"))
	status := c.Query("status")

	f.mu.Lock()
	defer f.mu.Unlock()
	all := make([]*project.Project, 0, len(f.projects))
	for _, p := range f.projects {
		if categoryID > 0 && p.CategoryID != categoryID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Title), search) {
			continue
		}
		if status != "" && string(p.Status) != status {
			continue
		}
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	start := min((page-1)*size, len(all))
	end := min(start+size, len(all))
	resp := dto.ProjectListResponse{Count: len(all), Results: all[start:end]}
	if end < len(all) {
		next := fmt.Sprintf("%s/api/projects/?page=%d", f.Server.URL, page+1)
		resp.Next = &next
	}
	if page > 1 {
		prev := fmt.Sprintf("%s/api/projects/?page=%d", f.Server.URL, page-1)
		resp.Previous = &prev
	}
	return c.JSON(resp)
}

func (f *FakePlatform) getProject(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("id")
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[int64(id)]
	if !ok {
		return detail(c, fiber.StatusNotFound, "Not found.")
	}
	return c.JSON(p)
}

func (f *FakePlatform) createProject(c *fiber.Ctx, userID int64) error {
	var in dto.ProjectInput
	if err := c.BodyParser(&in); err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	now := time.Now().UTC().Truncate(time.Second)
	p := &project.Project{
		ID:           f.nextID,
		Title:        in.Title,
		Description:  in.Description,
		TargetAmount: in.TargetAmount,
		Status:       project.StatusActive,
		CreatorID:    userID,
		CategoryID:   in.CategoryID,
		ImageURL:     in.ImageURL,
		EndDate:      in.EndDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.projects[p.ID] = p
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (f *FakePlatform) updateProject(c *fiber.Ctx, userID int64) error {
	id, _ := c.ParamsInt("id")
	var in dto.ProjectInput
	if err := c.BodyParser(&in); err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[int64(id)]
	if !ok {
		return detail(c, fiber.StatusNotFound, "Not found.")
	}
	if p.CreatorID != userID {
		return detail(c, fiber.StatusForbidden, "You do not have permission to perform this action.")
	}
	p.Title, p.Description, p.TargetAmount = in.Title, in.Description, in.TargetAmount
	p.CategoryID, p.ImageURL, p.EndDate = in.CategoryID, in.ImageURL, in.EndDate
	p.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	return c.JSON(p)
}

func (f *FakePlatform) deleteProject(c *fiber.Ctx, userID int64) error {
	id, _ := c.ParamsInt("id")
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[int64(id)]
	if !ok {
		return detail(c, fiber.StatusNotFound, "Not found.")
	}
	if p.CreatorID != userID {
		return detail(c, fiber.StatusForbidden, "You do not have permission to perform this action.")
	}
	delete(f.projects, p.ID)
	return c.SendStatus(fiber.StatusNoContent)
}

func (f *FakePlatform) listFavorites(c *fiber.Ctx, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*project.Project{}
	for id := range f.favorites[userID] {
		if p, ok := f.projects[id]; ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return c.JSON(out)
}

// toggle flips a per-user project flag. report decides whether the new
// state is echoed back as {"is_following": ...}.
func (f *FakePlatform) toggle(set map[int64]map[int64]bool, on, report bool) func(*fiber.Ctx, int64) error {
	return func(c *fiber.Ctx, userID int64) error {
		id, _ := c.ParamsInt("id")
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, ok := f.projects[int64(id)]; !ok {
			return detail(c, fiber.StatusNotFound, "Not found.")
		}
		if set[userID] == nil {
			set[userID] = map[int64]bool{}
		}
		if on {
			set[userID][int64(id)] = true
		} else {
			delete(set[userID], int64(id))
		}
		if report {
			return c.JSON(dto.FollowResponse{IsFollowing: on})
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func (f *FakePlatform) createInvestment(c *fiber.Ctx, userID int64) error {
	var req dto.InvestmentRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[req.ProjectID]
	if !ok {
		return detail(c, fiber.StatusNotFound, "Project not found.")
	}
	if !p.IsActive() {
		return detail(c, fiber.StatusBadRequest, "Project is not accepting investments.")
	}
	f.nextID++
	now := time.Now().UTC().Truncate(time.Second)
	inv := &investment.Investment{
		ID:            f.nextID,
		ProjectID:     req.ProjectID,
		UserID:        userID,
		Amount:        req.Amount,
		Status:        investment.StatusPending,
		PaymentMethod: req.PaymentMethod,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	f.investments[inv.ID] = inv
	out := *inv
	out.ClientSecret = fmt.Sprintf("pi_%d_secret_test", inv.ID)
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (f *FakePlatform) listMyInvestments(c *fiber.Ctx, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*investment.Investment{}
	for _, inv := range f.investments {
		if inv.UserID == userID {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return c.JSON(out)
}

func (f *FakePlatform) listProjectInvestments(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("id")
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*investment.Investment{}
	for _, inv := range f.investments {
		if inv.ProjectID == int64(id) {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return c.JSON(fiber.Map{"count": len(out), "results": out})
}

func (f *FakePlatform) ownInvestment(c *fiber.Ctx, userID int64) (*investment.Investment, error) {
	id, _ := c.ParamsInt("id")
	inv, ok := f.investments[int64(id)]
	if !ok || inv.UserID != userID {
		return nil, detail(c, fiber.StatusNotFound, "Not found.")
	}
	return inv, nil
}

func (f *FakePlatform) getInvestment(c *fiber.Ctx, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, err := f.ownInvestment(c, userID)
	if inv == nil {
		return err
	}
	return c.JSON(inv)
}

func (f *FakePlatform) confirmPayment(c *fiber.Ctx, userID int64) error {
	var req dto.PaymentConfirmationRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, err := f.ownInvestment(c, userID)
	if inv == nil {
		return err
	}
	if err := inv.Transition(investment.StatusCompleted, time.Now().UTC().Truncate(time.Second)); err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}
	txID := req.PaymentIntentID
	inv.TransactionID = &txID
	if p, ok := f.projects[inv.ProjectID]; ok {
		p.CurrentAmount = p.CurrentAmount.Add(inv.Amount)
	}
	out := *inv
	return c.JSON(dto.PaymentConfirmationResponse{Success: true, Message: "Payment confirmed", Investment: &out})
}

func (f *FakePlatform) cancelInvestment(c *fiber.Ctx, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, err := f.ownInvestment(c, userID)
	if inv == nil {
		return err
	}
	if err := inv.Transition(investment.StatusCancelled, time.Now().UTC().Truncate(time.Second)); err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (f *FakePlatform) listComments(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("id")
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*comment.Comment{}
	for _, cm := range f.comments {
		if cm.ProjectID == int64(id) && !cm.IsDeleted {
			out = append(out, cm)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return c.JSON(out)
}

func (f *FakePlatform) postComment(c *fiber.Ctx, userID int64) error {
	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.projects[req.ProjectID]; !ok {
		return detail(c, fiber.StatusNotFound, "Project not found.")
	}
	f.nextID++
	now := time.Now().UTC().Truncate(time.Second)
	cm := &comment.Comment{
		ID:        f.nextID,
		ProjectID: req.ProjectID,
		UserID:    userID,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if u, ok := f.users[userID]; ok {
		cm.UserName = u.user.Username
	}
	f.comments[cm.ID] = cm
	return c.Status(fiber.StatusCreated).JSON(cm)
}

func (f *FakePlatform) reportComment(c *fiber.Ctx, _ int64) error {
	id, _ := c.ParamsInt("id")
	f.mu.Lock()
	defer f.mu.Unlock()
	cm, ok := f.comments[int64(id)]
	if !ok {
		return detail(c, fiber.StatusNotFound, "Not found.")
	}
	cm.IsReported = true
	return c.SendStatus(fiber.StatusNoContent)
}

func (f *FakePlatform) deleteComment(c *fiber.Ctx, userID int64) error {
	id, _ := c.ParamsInt("id")
	f.mu.Lock()
	defer f.mu.Unlock()
	cm, ok := f.comments[int64(id)]
	if !ok {
		return detail(c, fiber.StatusNotFound, "Not found.")
	}
	if cm.UserID != userID {
		return detail(c, fiber.StatusForbidden, "You do not have permission to perform this action.")
	}
	cm.IsDeleted = true
	return c.SendStatus(fiber.StatusNoContent)
}
