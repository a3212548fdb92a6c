package users

import (
	"context"
	"testing"

	"github.com/joe700619/SmartFirm/internal/constants"
	"github.com/joe700619/SmartFirm/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupUsersTest(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return &Service{DB: db}
}

func TestCreateUser(t *testing.T) {
	svc := setupUsersTest(t)

	user, err := svc.Create(context.Background(), CreateInput{
		Fullname: "測試員工",
		Email:    "staff@smartfirm.tw",
		Password: "Passw0rd!",
		Role:     constants.Staff,
	})
	require.NoError(t, err)
	assert.Equal(t, constants.Staff, user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Passw0rd!")))

	// default role when none given
	viewer, err := svc.Create(context.Background(), CreateInput{
		Fullname: "新人",
		Email:    "viewer@smartfirm.tw",
		Password: "Passw0rd!",
	})
	require.NoError(t, err)
	assert.Equal(t, constants.Viewer, viewer.Role)
}

func TestCreateUser_Validation(t *testing.T) {
	svc := setupUsersTest(t)

	_, err := svc.Create(context.Background(), CreateInput{
		Fullname: "x",
		Email:    "not-an-email",
		Password: "Passw0rd!",
	})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Create(context.Background(), CreateInput{
		Fullname: "x",
		Email:    "a@b.tw",
		Password: "short",
	})
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = svc.Create(context.Background(), CreateInput{
		Fullname: "x",
		Email:    "a@b.tw",
		Password: "Passw0rd!",
		Role:     "superadmin",
	})
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc := setupUsersTest(t)

	_, err := svc.Create(context.Background(), CreateInput{
		Fullname: "甲",
		Email:    "staff@smartfirm.tw",
		Password: "Passw0rd!",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateInput{
		Fullname: "乙",
		Email:    "staff@smartfirm.tw",
		Password: "Passw0rd!",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUpdateRole(t *testing.T) {
	svc := setupUsersTest(t)

	user, err := svc.Create(context.Background(), CreateInput{
		Fullname: "測試員工",
		Email:    "staff@smartfirm.tw",
		Password: "Passw0rd!",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateRole(context.Background(), user.UserID, constants.Manager)
	require.NoError(t, err)
	assert.Equal(t, constants.Manager, updated.Role)

	_, err = svc.UpdateRole(context.Background(), user.UserID, "root")
	assert.ErrorIs(t, err, ErrUnknownRole)

	_, err = svc.UpdateRole(context.Background(), uuid.New(), constants.Staff)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUser_RefusesSelf(t *testing.T) {
	svc := setupUsersTest(t)

	admin, err := svc.Create(context.Background(), CreateInput{
		Fullname: "管理員",
		Email:    "admin@smartfirm.tw",
		Password: "Passw0rd!",
		Role:     constants.Admin,
	})
	require.NoError(t, err)
	other, err := svc.Create(context.Background(), CreateInput{
		Fullname: "員工",
		Email:    "staff@smartfirm.tw",
		Password: "Passw0rd!",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), admin.UserID, admin.UserID), ErrSelfDeactivated)
	require.NoError(t, svc.Delete(context.Background(), other.UserID, admin.UserID))

	staff, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, staff, 1)
	assert.Equal(t, "admin@smartfirm.tw", staff[0].Email)
}
