package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnsphere/learnsphere-api/internal/domain/entity"
	repo "github.com/learnsphere/learnsphere-api/internal/domain/repository"
	"github.com/learnsphere/learnsphere-api/pkg/helpers"
)

// memUserRepo is an in-memory credential store. Like the real store, it
// enforces email uniqueness atomically, so concurrent Create calls with the
// same email get exactly one success.
type memUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*entity.User
	byEmail map[string]*entity.User
	nextID  int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[string]*entity.User{}, byEmail: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return repo.ErrDuplicateEmail
	}
	r.nextID++
	u.ID = fmt.Sprintf("u-%d", r.nextID)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.byID))
	for _, u := range r.byID {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.byID[u.ID]
	if !ok {
		return repo.ErrNotFound
	}
	delete(r.byEmail, old.Email)
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	delete(r.byEmail, u.Email)
	delete(r.byID, id)
	return nil
}

var _ repo.UserRepository = (*memUserRepo)(nil)

// capturePublisher records published jobs; failPublisher always errors.
type capturePublisher struct {
	mu   sync.Mutex
	jobs []any
}

func (p *capturePublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobs = append(p.jobs, body)
	return nil
}

func (p *capturePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.jobs)
}

type failPublisher struct{}

func (failPublisher) PublishJSON(context.Context, any) error {
	return errors.New("broker unavailable")
}

func newTestAuthService(users repo.UserRepository, pub EmailPublisher) *AuthService {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	return NewAuthService(users, jwt, pub, nil, 4, true)
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Name:     "A",
		Email:    "a@x.com",
		Password: "p1",
		Phone:    "111",
	}
}

func TestRegisterThenLogin(t *testing.T) {
	t.Parallel()

	users := newMemUserRepo()
	pub := &capturePublisher{}
	svc := newTestAuthService(users, pub)
	ctx := context.Background()

	res, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.NotEmpty(t, res.User.ID)
	assert.Equal(t, entity.RoleStudent, res.User.Role, "role defaults to Student")
	assert.Equal(t, 1, pub.count(), "welcome email enqueued")

	login, err := svc.Login(ctx, "a@x.com", "p1")
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, res.User.ID, login.User.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newMemUserRepo(), nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	_, err = svc.Register(ctx, validRegisterInput())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_ConcurrentDuplicates(t *testing.T) {
	t.Parallel()

	users := newMemUserRepo()
	svc := newTestAuthService(users, nil)
	ctx := context.Background()

	const n = 16
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(ctx, validRegisterInput())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	successes := 0
	for err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, ErrEmailTaken)
		}
	}
	assert.Equal(t, 1, successes, "exactly one registration wins")

	all, err := users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRegister_InvalidRole(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newMemUserRepo(), nil)
	in := validRegisterInput()
	in.Role = "Superuser"

	_, err := svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestRegister_AdminRole(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newMemUserRepo(), nil)
	in := validRegisterInput()
	in.Role = "Admin"

	res, err := svc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, res.User.Role)
}

func TestRegister_EmailFailureDoesNotRollBack(t *testing.T) {
	t.Parallel()

	users := newMemUserRepo()
	svc := newTestAuthService(users, failPublisher{})
	ctx := context.Background()

	res, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err, "broker failure must not fail registration")
	assert.NotEmpty(t, res.Token)

	_, err = users.GetByEmail(ctx, "a@x.com")
	assert.NoError(t, err, "user record persisted")
}

func TestLogin_IndistinguishableFailures(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newMemUserRepo(), nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	_, wrongPwd := svc.Login(ctx, "a@x.com", "wrong")
	_, unknown := svc.Login(ctx, "nobody@x.com", "p1")

	assert.ErrorIs(t, wrongPwd, ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, ErrInvalidCredentials)
	assert.Equal(t, wrongPwd, unknown, "no hint which field was wrong")
}

func TestCurrentUser(t *testing.T) {
	t.Parallel()

	users := newMemUserRepo()
	svc := newTestAuthService(users, nil)
	ctx := context.Background()

	res, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	u, err := svc.CurrentUser(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)

	// Deleted after token issuance: token still parses, lookup 404s.
	require.NoError(t, users.Delete(ctx, res.User.ID))
	_, err = svc.CurrentUser(ctx, res.User.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
