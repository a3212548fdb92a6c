package hr

import (
	"context"
	"testing"

	"github.com/joe700619/SmartFirm/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupHRTest(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Employee{}))
	return &Service{DB: db}
}

func strPtr(s string) *string { return &s }

func TestCreateEmployee_Uniqueness(t *testing.T) {
	svc := setupHRTest(t)

	created, err := svc.Create(context.Background(), EmployeeInput{
		EmployeeID: "E001",
		Name:       "王小明",
		IDNumber:   "A123456789",
		Mobile:     "0912345678",
		Address:    "台北市信義區",
	})
	require.NoError(t, err)
	assert.Equal(t, models.EmployeeActive, created.Status)

	_, err = svc.Create(context.Background(), EmployeeInput{
		EmployeeID: "E001",
		Name:       "另一人",
		IDNumber:   "B123456789",
	})
	assert.ErrorIs(t, err, ErrEmployeeIDTaken)

	_, err = svc.Create(context.Background(), EmployeeInput{
		EmployeeID: "E002",
		Name:       "另一人",
		IDNumber:   "A123456789",
	})
	assert.ErrorIs(t, err, ErrIDNumberTaken)
}

func TestCreateEmployee_UnknownStatus(t *testing.T) {
	svc := setupHRTest(t)

	_, err := svc.Create(context.Background(), EmployeeInput{
		EmployeeID: "E001",
		Name:       "王小明",
		IDNumber:   "A123456789",
		Status:     "retired",
	})
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestList_Filters(t *testing.T) {
	svc := setupHRTest(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, EmployeeInput{
		EmployeeID: "E002", Name: "王小明", IDNumber: "A123456789",
		Status: models.EmployeeActive, Group: strPtr("記帳組"),
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, EmployeeInput{
		EmployeeID: "E001", Name: "李小華", IDNumber: "B123456789",
		Status: models.EmployeeResigned, Group: strPtr("記帳組"),
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, EmployeeInput{
		EmployeeID: "E003", Name: "張大同", IDNumber: "C123456789",
		Status: models.EmployeeActive, Group: strPtr("登記組"),
	})
	require.NoError(t, err)

	all, err := svc.List(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	// ordered by employee ID
	assert.Equal(t, "E001", all[0].EmployeeID)
	assert.Equal(t, "E003", all[2].EmployeeID)

	active, err := svc.List(ctx, models.EmployeeActive, "")
	require.NoError(t, err)
	assert.Len(t, active, 2)

	group, err := svc.List(ctx, models.EmployeeActive, "記帳組")
	require.NoError(t, err)
	require.Len(t, group, 1)
	assert.Equal(t, "王小明", group[0].Name)

	_, err = svc.List(ctx, "vacation", "")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestUpdateEmployee_IdentityImmutable(t *testing.T) {
	svc := setupHRTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, EmployeeInput{
		EmployeeID: "E001",
		Name:       "王小明",
		IDNumber:   "A123456789",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, EmployeeInput{
		EmployeeID: "E999",
		Name:       "王大明",
		IDNumber:   "Z999999999",
		Status:     models.EmployeeOnLeave,
		JobTitle:   strPtr("資深記帳士"),
	})
	require.NoError(t, err)
	assert.Equal(t, "王大明", updated.Name)
	assert.Equal(t, models.EmployeeOnLeave, updated.Status)
	assert.Equal(t, "E001", updated.EmployeeID)
	assert.Equal(t, "A123456789", updated.IDNumber)
}

func TestDeleteEmployee(t *testing.T) {
	svc := setupHRTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, EmployeeInput{
		EmployeeID: "E001",
		Name:       "王小明",
		IDNumber:   "A123456789",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrEmployeeNotFound)

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)

	_, err = svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrEmployeeNotFound)

	// the deleted employee no longer blocks the identifiers
	_, err = svc.Create(ctx, EmployeeInput{
		EmployeeID: "E001",
		Name:       "王小明",
		IDNumber:   "A123456789",
	})
	assert.NoError(t, err)
}
