package impl

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var errInvalidFakeToken = errors.New("token is malformed")

// Hand-written in-memory fakes shared by the service tests. They implement
// the repository and domain service interfaces over plain maps, so the
// services under test run their real orchestration logic end to end.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- transaction manager ---

type fakeTxManager struct {
	factory repository.RepositoryFactory
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

type fakeRepositoryFactory struct {
	users         *fakeUserRepo
	roles         *fakeRoleRepo
	profiles      *fakeProfileRepo
	addresses     *fakeAddressRepo
	activities    *fakeActivityRepo
	refreshTokens *fakeRefreshTokenRepo
	categories    *fakeCategoryRepo
	brands        *fakeBrandRepo
	products      *fakeProductRepo
	reviews       *fakeReviewRepo
}

func newFakeRepositoryFactory() *fakeRepositoryFactory {
	roles := newFakeRoleRepo()
	users := newFakeUserRepo()
	users.roles = roles

	return &fakeRepositoryFactory{
		users:         users,
		roles:         roles,
		profiles:      newFakeProfileRepo(),
		addresses:     newFakeAddressRepo(),
		activities:    newFakeActivityRepo(),
		refreshTokens: newFakeRefreshTokenRepo(),
		categories:    newFakeCategoryRepo(),
		brands:        newFakeBrandRepo(),
		products:      newFakeProductRepo(),
		reviews:       newFakeReviewRepo(),
	}
}

func (f *fakeRepositoryFactory) UserRepo() repository.UserRepository         { return f.users }
func (f *fakeRepositoryFactory) RoleRepo() repository.RoleRepository         { return f.roles }
func (f *fakeRepositoryFactory) ProfileRepo() repository.ProfileRepository   { return f.profiles }
func (f *fakeRepositoryFactory) AddressRepo() repository.AddressRepository   { return f.addresses }
func (f *fakeRepositoryFactory) ActivityRepo() repository.ActivityRepository { return f.activities }
func (f *fakeRepositoryFactory) CategoryRepo() repository.CategoryRepository { return f.categories }
func (f *fakeRepositoryFactory) BrandRepo() repository.BrandRepository       { return f.brands }
func (f *fakeRepositoryFactory) ProductRepo() repository.ProductRepository   { return f.products }
func (f *fakeRepositoryFactory) ReviewRepo() repository.ReviewRepository     { return f.reviews }
func (f *fakeRepositoryFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	return f.refreshTokens
}

// --- user repo ---

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
	roles *fakeRoleRepo
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cloned := *user
	if r.roles != nil {
		cloned.Roles = r.roles.rolesOf(id)
	}

	return &cloned, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			cloned := *user
			if r.roles != nil {
				cloned.Roles = r.roles.rolesOf(user.ID)
			}

			return &cloned, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.DateJoined = time.Now()
	cloned := *user
	r.users[user.ID] = &cloned

	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	user.UpdatedAt = time.Now()
	cloned := *user
	r.users[user.ID] = &cloned

	return nil
}

// --- role repo ---

type fakeRoleRepo struct {
	mu          sync.Mutex
	roles       map[entity.Role]bool
	assignments map[uuid.UUID]entity.Roles
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{
		roles:       make(map[entity.Role]bool),
		assignments: make(map[uuid.UUID]entity.Roles),
	}
}

func (r *fakeRoleRepo) EnsureRole(_ context.Context, role entity.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roles[role] = true

	return nil
}

func (r *fakeRoleRepo) AssignRole(_ context.Context, userID uuid.UUID, role entity.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.roles[role] {
		return repository.ErrRoleNotFound
	}
	if r.assignments[userID].Contains(role) {
		return nil
	}
	r.assignments[userID] = append(r.assignments[userID], role)

	return nil
}

func (r *fakeRoleRepo) FindRolesByUserID(_ context.Context, userID uuid.UUID) (entity.Roles, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.rolesOf(userID), nil
}

func (r *fakeRoleRepo) rolesOf(userID uuid.UUID) entity.Roles {
	return append(entity.Roles(nil), r.assignments[userID]...)
}

// --- profile repo ---

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*entity.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*entity.Profile)}
}

func (r *fakeProfileRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}
	cloned := *profile

	return &cloned, nil
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *entity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile.CreatedAt = time.Now()
	cloned := *profile
	r.profiles[profile.UserID] = &cloned

	return nil
}

func (r *fakeProfileRepo) Update(_ context.Context, profile *entity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile.UpdatedAt = time.Now()
	cloned := *profile
	r.profiles[profile.UserID] = &cloned

	return nil
}

// --- address repo ---

type fakeAddressRepo struct {
	mu        sync.Mutex
	addresses map[uuid.UUID]*entity.Address
	seq       int
}

func newFakeAddressRepo() *fakeAddressRepo {
	return &fakeAddressRepo{addresses: make(map[uuid.UUID]*entity.Address)}
}

func (r *fakeAddressRepo) Create(_ context.Context, address *entity.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if address.ID == uuid.Nil {
		address.ID = uuid.New()
	}
	r.seq++
	address.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	cloned := *address
	r.addresses[address.ID] = &cloned

	return nil
}

func (r *fakeAddressRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	address, ok := r.addresses[id]
	if !ok {
		return nil, repository.ErrAddressNotFound
	}
	cloned := *address

	return &cloned, nil
}

func (r *fakeAddressRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Address
	for _, address := range r.addresses {
		if address.UserID == userID {
			cloned := *address
			out = append(out, &cloned)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}

		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *fakeAddressRepo) Update(_ context.Context, address *entity.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.addresses[address.ID]; !ok {
		return repository.ErrAddressNotFound
	}
	address.UpdatedAt = time.Now()
	cloned := *address
	r.addresses[address.ID] = &cloned

	return nil
}

func (r *fakeAddressRepo) ClearDefault(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, address := range r.addresses {
		if address.UserID == userID {
			address.IsDefault = false
		}
	}

	return nil
}

// --- activity repo ---

type fakeActivityRepo struct {
	mu      sync.Mutex
	entries []*entity.ActivityLog
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{}
}

func (r *fakeActivityRepo) Append(_ context.Context, entry *entity.ActivityLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	cloned := *entry
	r.entries = append(r.entries, &cloned)

	return nil
}

func (r *fakeActivityRepo) ListByUserID(_ context.Context, userID uuid.UUID, limit int) ([]*entity.ActivityLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.ActivityLog
	for _, entry := range r.entries {
		if entry.UserID == userID {
			cloned := *entry
			out = append(out, &cloned)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

// --- refresh token repo ---

type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	byHash map[string]*entity.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{byHash: make(map[string]*entity.RefreshToken)}
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, token *entity.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	token.CreatedAt = time.Now()
	cloned := *token
	r.byHash[token.TokenHash] = &cloned

	return nil
}

func (r *fakeRefreshTokenRepo) FindByHash(_ context.Context, tokenHash string) (*entity.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, ok := r.byHash[tokenHash]
	if !ok {
		return nil, repository.ErrRefreshTokenNotFound
	}
	cloned := *token

	return &cloned, nil
}

func (r *fakeRefreshTokenRepo) DeleteByHash(_ context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byHash[tokenHash]; !ok {
		return repository.ErrRefreshTokenNotFound
	}
	delete(r.byHash, tokenHash)

	return nil
}

func (r *fakeRefreshTokenRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for hash, token := range r.byHash {
		if token.UserID == userID {
			delete(r.byHash, hash)
		}
	}

	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for hash, token := range r.byHash {
		if token.Expired(now) {
			delete(r.byHash, hash)
		}
	}

	return nil
}

// --- category repo ---

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]*entity.Category)}
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.categories {
		if existing.Slug == category.Slug {
			return domainerrors.ErrDuplicateSlug
		}
	}
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	category.CreatedAt = time.Now()
	cloned := *category
	r.categories[category.ID] = &cloned

	return nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	category, ok := r.categories[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	cloned := *category

	return &cloned, nil
}

func (r *fakeCategoryRepo) FindBySlug(_ context.Context, slug string) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, category := range r.categories {
		if category.Slug == slug {
			cloned := *category

			return &cloned, nil
		}
	}

	return nil, repository.ErrCategoryNotFound
}

func (r *fakeCategoryRepo) FindAll(_ context.Context) ([]*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*entity.Category, 0, len(r.categories))
	for _, category := range r.categories {
		cloned := *category
		out = append(out, &cloned)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.Compare(out[i].Name, out[j].Name) < 0
	})

	return out, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.categories {
		if id != category.ID && existing.Slug == category.Slug {
			return domainerrors.ErrDuplicateSlug
		}
	}
	if _, ok := r.categories[category.ID]; !ok {
		return repository.ErrCategoryNotFound
	}
	category.UpdatedAt = time.Now()
	cloned := *category
	r.categories[category.ID] = &cloned

	return nil
}

// --- brand repo ---

type fakeBrandRepo struct {
	mu     sync.Mutex
	brands map[uuid.UUID]*entity.Brand
}

func newFakeBrandRepo() *fakeBrandRepo {
	return &fakeBrandRepo{brands: make(map[uuid.UUID]*entity.Brand)}
}

func (r *fakeBrandRepo) Create(_ context.Context, brand *entity.Brand) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.brands {
		if existing.Name == brand.Name {
			return domainerrors.ErrDuplicateName
		}
	}
	if brand.ID == uuid.Nil {
		brand.ID = uuid.New()
	}
	brand.CreatedAt = time.Now()
	cloned := *brand
	r.brands[brand.ID] = &cloned

	return nil
}

func (r *fakeBrandRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Brand, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	brand, ok := r.brands[id]
	if !ok {
		return nil, repository.ErrBrandNotFound
	}
	cloned := *brand

	return &cloned, nil
}

func (r *fakeBrandRepo) FindAll(_ context.Context) ([]*entity.Brand, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*entity.Brand, 0, len(r.brands))
	for _, brand := range r.brands {
		cloned := *brand
		out = append(out, &cloned)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.Compare(out[i].Name, out[j].Name) < 0
	})

	return out, nil
}

func (r *fakeBrandRepo) Update(_ context.Context, brand *entity.Brand) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.brands[brand.ID]; !ok {
		return repository.ErrBrandNotFound
	}
	brand.UpdatedAt = time.Now()
	cloned := *brand
	r.brands[brand.ID] = &cloned

	return nil
}

// --- product repo ---

type fakeProductRepo struct {
	mu       sync.Mutex
	products []*entity.Product
	seq      int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{}
}

func (r *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.products {
		if existing.Slug == product.Slug {
			return domainerrors.ErrDuplicateSlug
		}
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.seq++
	product.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	cloned := *product
	r.products = append(r.products, &cloned)

	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, product := range r.products {
		if product.ID == id {
			cloned := *product

			return &cloned, nil
		}
	}

	return nil, repository.ErrProductNotFound
}

func (r *fakeProductRepo) FindBySlug(_ context.Context, slug string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, product := range r.products {
		if product.Slug == slug {
			cloned := *product

			return &cloned, nil
		}
	}

	return nil, repository.ErrProductNotFound
}

func (r *fakeProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*entity.Product, 0, len(r.products))
	for _, product := range r.products {
		cloned := *product
		out = append(out, &cloned)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.products {
		if existing.ID == product.ID {
			product.UpdatedAt = time.Now()
			cloned := *product
			r.products[i] = &cloned

			return nil
		}
	}

	return repository.ErrProductNotFound
}

// --- review repo ---

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews []*entity.Review
	seq     int
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{}
}

func (r *fakeReviewRepo) Create(_ context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	r.seq++
	review.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	cloned := *review
	r.reviews = append(r.reviews, &cloned)

	return nil
}

func (r *fakeReviewRepo) ListByProductID(_ context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Review
	for _, review := range r.reviews {
		if review.ProductID == productID {
			cloned := *review
			out = append(out, &cloned)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

// --- domain services ---

type fakeHasher struct{}

func (h *fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (h *fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

type fakeTokenService struct {
	mu     sync.Mutex
	seq    int
	tokens map[string]*service.Claims
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{tokens: make(map[string]*service.Claims)}
}

func (s *fakeTokenService) GenerateTokens(user *entity.User) (string, string, uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	refreshID := uuid.New()
	access := "access-" + user.ID.String() + "-" + refreshID.String()
	refresh := "refresh-" + user.ID.String() + "-" + refreshID.String()

	now := time.Now()
	s.tokens[access] = &service.Claims{
		UserID:  user.ID,
		Email:   user.Email,
		Name:    user.Name,
		IsStaff: user.IsStaff,
		Roles:   user.Roles.ToStrings(),
		Type:    service.TokenTypeAccess,
	}
	refreshClaims := &service.Claims{
		UserID: user.ID,
		Type:   service.TokenTypeRefresh,
	}
	refreshClaims.ID = refreshID.String()
	refreshClaims.ExpiresAt = jwt.NewNumericDate(now.Add(time.Hour))
	s.tokens[refresh] = refreshClaims

	return access, refresh, refreshID, nil
}

func (s *fakeTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	claims, ok := s.tokens[tokenString]
	if !ok {
		return nil, errInvalidFakeToken
	}

	return claims, nil
}

func (s *fakeTokenService) HashToken(tokenString string) string {
	return "hash:" + tokenString
}

func (s *fakeTokenService) GetAccessTokenDuration() time.Duration {
	return 15 * time.Minute
}

func (s *fakeTokenService) GetRefreshTokenDuration() time.Duration {
	return time.Hour
}

// capturePublisher records published audit events for assertions.
type capturePublisher struct {
	mu     sync.Mutex
	events []*service.AuditEvent
	err    error
}

func (p *capturePublisher) PublishAuditEvent(_ context.Context, event *service.AuditEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return p.err
	}
	cloned := *event
	p.events = append(p.events, &cloned)

	return nil
}

func (p *capturePublisher) Close() error { return nil }

func (p *capturePublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, 0, len(p.events))
	for _, event := range p.events {
		out = append(out, event.Action)
	}

	return out
}

// fakeRevocationStore is a TTL-less denylist for tests.
type fakeRevocationStore struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func newFakeRevocationStore() *fakeRevocationStore {
	return &fakeRevocationStore{revoked: make(map[string]bool)}
}

func (s *fakeRevocationStore) Revoke(_ context.Context, tokenID string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenID] = true

	return nil
}

func (s *fakeRevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.revoked[tokenID], nil
}
