package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"urbanserve/database/repository"
	"urbanserve/models"
	"urbanserve/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func newService(t *testing.T) *DefaultUserService {
	t.Helper()
	return &DefaultUserService{UserRepo: repository.NewGormUserRepo(newTestDB(t))}
}

func TestRegister_CreatesAccountWithToken(t *testing.T) {
	svc := newService(t)
	res, err := svc.Register(context.Background(), RegisterInput{
		Name: "Asha", Email: "asha@test.local", Password: "secret123", Role: models.RoleCustomer,
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	require.NotZero(t, res.User.ID)
	require.Equal(t, models.RoleCustomer, res.User.Role)
	// Stored hash must verify and never equal the plaintext.
	require.NotEqual(t, "secret123", res.User.PasswordHash)
	require.True(t, utils.CheckPassword(res.User.PasswordHash, "secret123"))

	sub, err := utils.ExtractIDFromToken(res.Token)
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("%d", res.User.ID), sub)
}

func TestRegister_RejectsUnknownRole(t *testing.T) {
	svc := newService(t)
	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "X", Email: "x@test.local", Password: "secret123", Role: "admin",
	})
	require.IsType(t, ValidationError{}, err)
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	svc := newService(t)
	input := RegisterInput{Name: "A", Email: "dup@test.local", Password: "secret123", Role: models.RoleWorker}
	_, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), input)
	require.IsType(t, ValidationError{}, err)
}

func TestLogin_Success(t *testing.T) {
	svc := newService(t)
	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "A", Email: "a@test.local", Password: "secret123", Role: models.RoleTutor,
	})
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), "a@test.local", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	require.Equal(t, "a@test.local", res.User.Email)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	svc := newService(t)
	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "A", Email: "a@test.local", Password: "secret123", Role: models.RoleCustomer,
	})
	require.NoError(t, err)

	_, wrongPass := svc.Login(context.Background(), "a@test.local", "wrong")
	_, noAccount := svc.Login(context.Background(), "nobody@test.local", "secret123")
	require.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	require.ErrorIs(t, noAccount, ErrInvalidCredentials)
}
