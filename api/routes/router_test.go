package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	internalcart "github.com/brewdeck/brewdeck-backend/internal/cart"
	internalkitchen "github.com/brewdeck/brewdeck-backend/internal/kitchen"
	internalmenu "github.com/brewdeck/brewdeck-backend/internal/menu"
	internalorders "github.com/brewdeck/brewdeck-backend/internal/orders"
	"github.com/brewdeck/brewdeck-backend/internal/realtime"
	internalreports "github.com/brewdeck/brewdeck-backend/internal/reports"
	internalusers "github.com/brewdeck/brewdeck-backend/internal/users"
	pkgauth "github.com/brewdeck/brewdeck-backend/pkg/auth"
	"github.com/brewdeck/brewdeck-backend/pkg/auth/session"
	"github.com/brewdeck/brewdeck-backend/pkg/config"
	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
	"github.com/brewdeck/brewdeck-backend/pkg/enums"
	"github.com/brewdeck/brewdeck-backend/pkg/logger"
	"github.com/brewdeck/brewdeck-backend/pkg/pagination"
	"github.com/brewdeck/brewdeck-backend/pkg/redis"
	"github.com/brewdeck/brewdeck-backend/pkg/types"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionManager struct{}

func (stubSessionManager) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

func (stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	return "refresh-token", nil
}

func (stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	return session.NewAccessID(), "rotated-refresh-token", nil
}

func (stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	return nil
}

type stubMenuService struct{}

func (stubMenuService) GetSnapshot(ctx context.Context) (*internalmenu.Snapshot, error) {
	return &internalmenu.Snapshot{}, nil
}

func (stubMenuService) ReplaceSnapshot(ctx context.Context, snapshot internalmenu.Snapshot) error {
	panic("unimplemented")
}

func (stubMenuService) CreateDrink(ctx context.Context, drink models.Drink) (*models.Drink, error) {
	panic("unimplemented")
}

func (stubMenuService) UpdateDrink(ctx context.Context, drink models.Drink) (*models.Drink, error) {
	panic("unimplemented")
}

func (stubMenuService) DeleteDrink(ctx context.Context, id string) error {
	panic("unimplemented")
}

func (stubMenuService) CreateCategory(ctx context.Context, category models.Category) (*models.Category, error) {
	panic("unimplemented")
}

func (stubMenuService) UpdateCategory(ctx context.Context, category models.Category) (*models.Category, error) {
	panic("unimplemented")
}

func (stubMenuService) DeleteCategory(ctx context.Context, id string) error {
	panic("unimplemented")
}

func (stubMenuService) CreateModifierGroup(ctx context.Context, group models.ModifierGroup) (*models.ModifierGroup, error) {
	panic("unimplemented")
}

func (stubMenuService) UpdateModifierGroup(ctx context.Context, group models.ModifierGroup) (*models.ModifierGroup, error) {
	panic("unimplemented")
}

func (stubMenuService) DeleteModifierGroup(ctx context.Context, id string) error {
	panic("unimplemented")
}

func (stubMenuService) SeedIfEmpty(ctx context.Context) error {
	panic("unimplemented")
}

type stubOrdersService struct{}

func (stubOrdersService) Place(ctx context.Context, input internalorders.PlaceOrderInput) (*models.Order, error) {
	panic("unimplemented")
}

func (stubOrdersService) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	panic("unimplemented")
}

func (stubOrdersService) VerifyPayment(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return &models.Order{ID: id, Status: enums.OrderStatusPending}, nil
}

func (stubOrdersService) Complete(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	panic("unimplemented")
}

func (stubOrdersService) Requeue(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	panic("unimplemented")
}

func (stubOrdersService) ToggleItemCompletion(ctx context.Context, orderID uuid.UUID, itemID string) (*models.Order, error) {
	panic("unimplemented")
}

func (stubOrdersService) ActivateScheduled(ctx context.Context, now time.Time) (int, error) {
	panic("unimplemented")
}

func (stubOrdersService) Feed(ctx context.Context) ([]models.Order, error) {
	return []models.Order{}, nil
}

func (stubOrdersService) History(ctx context.Context, params pagination.Params, filters internalorders.HistoryFilters) (*internalorders.OrderList, error) {
	panic("unimplemented")
}

type stubKitchenService struct{}

func (stubKitchenService) Board(ctx context.Context, search string) (*internalkitchen.Board, error) {
	panic("unimplemented")
}

type stubCartService struct{}

func (stubCartService) Get(ctx context.Context, customerID string) (types.OrderItems, error) {
	return types.OrderItems{}, nil
}

func (stubCartService) AddLine(ctx context.Context, customerID string, input internalcart.AddLineInput) (types.OrderItems, error) {
	panic("unimplemented")
}

func (stubCartService) UpdateLine(ctx context.Context, customerID, lineID string, input internalcart.AddLineInput) (types.OrderItems, error) {
	panic("unimplemented")
}

func (stubCartService) RemoveLine(ctx context.Context, customerID, lineID string) (types.OrderItems, error) {
	panic("unimplemented")
}

func (stubCartService) Clear(ctx context.Context, customerID string) error {
	panic("unimplemented")
}

type stubUsersService struct{}

func (stubUsersService) List(ctx context.Context) ([]models.User, error) {
	panic("unimplemented")
}

func (stubUsersService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	panic("unimplemented")
}

func (stubUsersService) Register(ctx context.Context, input internalusers.RegisterInput) (*models.User, error) {
	panic("unimplemented")
}

func (stubUsersService) Login(ctx context.Context, name string) (*models.User, error) {
	panic("unimplemented")
}

func (stubUsersService) UpdateRole(ctx context.Context, actorID, targetID uuid.UUID, role enums.UserRole) (*models.User, error) {
	panic("unimplemented")
}

func (stubUsersService) Delete(ctx context.Context, actorID, targetID uuid.UUID) error {
	panic("unimplemented")
}

func (stubUsersService) SaveFavourite(ctx context.Context, userID uuid.UUID, item types.OrderItem) (*models.User, error) {
	panic("unimplemented")
}

func (stubUsersService) RemoveFavourite(ctx context.Context, userID uuid.UUID, itemID string) (*models.User, error) {
	panic("unimplemented")
}

func (stubUsersService) CompleteTutorial(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	panic("unimplemented")
}

type stubDiscountsService struct{}

func (stubDiscountsService) List(ctx context.Context) ([]models.Discount, error) {
	panic("unimplemented")
}

func (stubDiscountsService) Create(ctx context.Context, discount models.Discount) (*models.Discount, error) {
	panic("unimplemented")
}

func (stubDiscountsService) Update(ctx context.Context, discount models.Discount) (*models.Discount, error) {
	panic("unimplemented")
}

func (stubDiscountsService) Delete(ctx context.Context, id string) error {
	panic("unimplemented")
}

func (stubDiscountsService) ApplyCode(ctx context.Context, code string) (*types.DiscountSnapshot, error) {
	panic("unimplemented")
}

type stubFeedbackService struct{}

func (stubFeedbackService) Submit(ctx context.Context, rating int, message string) (*models.Feedback, error) {
	panic("unimplemented")
}

func (stubFeedbackService) List(ctx context.Context) ([]models.Feedback, error) {
	return []models.Feedback{}, nil
}

type stubTutorialsService struct{}

func (stubTutorialsService) List(ctx context.Context) ([]models.TutorialStep, error) {
	return []models.TutorialStep{}, nil
}

func (stubTutorialsService) Replace(ctx context.Context, steps []models.TutorialStep) ([]models.TutorialStep, error) {
	panic("unimplemented")
}

type stubReportsService struct{}

func (stubReportsService) Summarize(ctx context.Context, from, to time.Time) (*internalreports.Summary, error) {
	panic("unimplemented")
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
			SessionTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		(*redis.Client)(nil),
		stubSessionManager{},
		stubMenuService{},
		stubOrdersService{},
		stubKitchenService{},
		stubCartService{},
		stubUsersService{},
		stubDiscountsService{},
		stubFeedbackService{},
		stubTutorialsService{},
		stubReportsService{},
		nil, // assistant disabled
		realtime.NewHub(),
		nil, // bridge unused outside the SSE stream
	)
}

func buildToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	userID := uuid.New()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		CustomerID: uuid.NewString(),
		UserID:     &userID,
		Name:       "casey",
		Role:       role,
		JTI:        session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveNeedsNoToken(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestPublicMenuNeedsNoToken(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/menu", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for public menu got %d", resp.Code)
	}
}

func TestSessionStartMintsTokens(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/session", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Data struct {
			Token        string `json:"token"`
			RefreshToken string `json:"refreshToken"`
			CustomerID   string `json:"customerId"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Data.Token == "" || body.Data.RefreshToken == "" {
		t.Fatal("expected a minted token pair")
	}
	if body.Data.CustomerID == "" {
		t.Fatal("expected a customer id")
	}
}

func TestAuthedGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestAuthedGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleCustomer))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for authed cart got %d", resp.Code)
	}
}

func TestStaffGroupRequiresStaffRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	customer := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders/feed", nil)
	customer.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleCustomer))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, customer)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer got %d", resp.Code)
	}

	staff := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders/feed", nil)
	staff.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleKitchenStaff))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, staff)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for kitchen staff got %d", resp.Code)
	}
}

func TestVerifyPaymentIsStaffOnly(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	path := "/api/admin/v1/orders/" + uuid.NewString() + "/verify-payment"

	customer := httptest.NewRequest(http.MethodPost, path, nil)
	customer.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleCustomer))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, customer)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer got %d", resp.Code)
	}

	// The customer order subtree no longer exposes payment verification.
	old := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+uuid.NewString()+"/verify-payment", nil)
	old.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleCustomer))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, old)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on retired customer path got %d", resp.Code)
	}

	staff := httptest.NewRequest(http.MethodPost, path, nil)
	staff.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleKitchenStaff))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, staff)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for kitchen staff got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	staff := httptest.NewRequest(http.MethodGet, "/api/admin/v1/feedback", nil)
	staff.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleKitchenStaff))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, staff)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for kitchen staff got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/admin/v1/feedback", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}
