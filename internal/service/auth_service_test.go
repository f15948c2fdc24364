package service

import (
	"context"
	"testing"

	"notesum-be/internal/dto"
	"notesum-be/internal/entity"
	"notesum-be/internal/repository/contract"
	"notesum-be/internal/repository/specification"
	"notesum-be/internal/repository/unitofwork"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users map[string]*entity.User // keyed by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	copied := *user
	r.users[user.Email] = &copied
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, spec := range specs {
		if byEmail, ok := spec.(specification.ByEmail); ok {
			if user, exists := r.users[byEmail.Email]; exists {
				copied := *user
				return &copied, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.users)), nil
}

type fakeAuthUow struct {
	fakeUow
	userRepo *fakeUserRepo
}

func (u *fakeAuthUow) UserRepository() contract.UserRepository { return u.userRepo }

type authFactory struct {
	uow *fakeAuthUow
}

func (f *authFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func newAuthFixture() (IAuthService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewAuthService(&authFactory{uow: &fakeAuthUow{userRepo: repo}}), repo
}

func TestRegisterAndLoginRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc, repo := newAuthFixture()

	res, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "a@example.com",
		Password: "hunter2hunter2",
		FullName: "Alex",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Id)

	stored := repo.users["a@example.com"]
	require.NotNil(t, stored)
	require.NotNil(t, stored.PasswordHash)
	assert.NotEqual(t, "hunter2hunter2", *stored.PasswordHash)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "a@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
	assert.Equal(t, "Alex", login.FullName)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "b@example.com",
		Password: "correct-password",
		FullName: "Bo",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "b@example.com",
		Password: "wrong-password",
	})
	assert.Error(t, err)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "c@example.com",
		Password: "some-password",
		FullName: "Cam",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "c@example.com",
		Password: "other-password",
		FullName: "Cam Again",
	})
	assert.Error(t, err)
}

func TestLoginUnknownUserFails(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.Error(t, err)
}
