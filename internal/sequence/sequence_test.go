package sequence

import (
	"errors"
	"testing"
	"time"

	"github.com/joe700619/SmartFirm/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSequenceTest(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.IncomingMail{}, &models.RegistrationCase{}))
	return db
}

func TestFormat(t *testing.T) {
	date := time.Date(2026, 1, 27, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "20260127-001", MailSerials.Format(date, 1))
	assert.Equal(t, "20260127-042", MailSerials.Format(date, 42))
	assert.Equal(t, "RO-20260127-R001", RegistrationCases.Format(date, 1))
	// past 999 the counter grows a digit
	assert.Equal(t, "20260127-1000", MailSerials.Format(date, 1000))
}

func TestNext_FirstOfDay(t *testing.T) {
	db := setupSequenceTest(t)
	date := time.Date(2026, 1, 27, 10, 30, 0, 0, time.UTC)

	code, err := Next(db, MailSerials, date)
	require.NoError(t, err)
	assert.Equal(t, "20260127-001", code)
}

func TestNext_Monotonic(t *testing.T) {
	db := setupSequenceTest(t)
	date := time.Date(2026, 1, 27, 0, 0, 0, 0, time.UTC)

	for i := 1; i <= 5; i++ {
		code, err := Next(db, MailSerials, date)
		require.NoError(t, err)
		assert.Equal(t, MailSerials.Format(date, i), code)
		require.NoError(t, db.Create(&models.IncomingMail{Date: date, SerialNumber: code}).Error)
	}
}

func TestNext_DateIsolation(t *testing.T) {
	db := setupSequenceTest(t)
	day1 := time.Date(2026, 1, 27, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)

	code, err := Next(db, MailSerials, day1)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.IncomingMail{Date: day1, SerialNumber: code}).Error)

	code, err = Next(db, MailSerials, day2)
	require.NoError(t, err)
	assert.Equal(t, "20260128-001", code)
}

// A soft-deleted record keeps its serial; the counter never reuses it.
func TestNext_DeletedRecordsStillCount(t *testing.T) {
	db := setupSequenceTest(t)
	date := time.Date(2026, 1, 27, 0, 0, 0, 0, time.UTC)

	code, err := Next(db, MailSerials, date)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.IncomingMail{Date: date, SerialNumber: code, IsDeleted: true}).Error)

	code, err = Next(db, MailSerials, date)
	require.NoError(t, err)
	assert.Equal(t, "20260127-002", code)
}

func TestNext_CaseSeries(t *testing.T) {
	db := setupSequenceTest(t)
	date := time.Date(2026, 1, 27, 0, 0, 0, 0, time.UTC)

	code, err := Next(db, RegistrationCases, date)
	require.NoError(t, err)
	assert.Equal(t, "RO-20260127-R001", code)
	require.NoError(t, db.Create(&models.RegistrationCase{
		CaseNumber: code,
		CaseTypeID: uuid.New(),
		CompanyID:  uuid.New(),
		FilingDate: date,
	}).Error)

	code, err = Next(db, RegistrationCases, date)
	require.NoError(t, err)
	assert.Equal(t, "RO-20260127-R002", code)
}

func TestAsCollision(t *testing.T) {
	assert.NoError(t, AsCollision(nil))
	assert.Equal(t, ErrCodeCollision, AsCollision(gorm.ErrDuplicatedKey))
	assert.Equal(t, ErrCodeCollision, AsCollision(errors.New("UNIQUE constraint failed: incoming_mail.serial_number")))
	assert.Equal(t, ErrCodeCollision, AsCollision(errors.New(`duplicate key value violates unique constraint "idx_serial"`)))

	other := errors.New("connection refused")
	assert.Equal(t, other, AsCollision(other))
}

// Duplicate insert on the code column surfaces as a collision the caller
// can retry.
func TestNext_CollisionOnInsert(t *testing.T) {
	db := setupSequenceTest(t)
	date := time.Date(2026, 1, 27, 0, 0, 0, 0, time.UTC)

	code, err := Next(db, MailSerials, date)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.IncomingMail{Date: date, SerialNumber: code}).Error)

	err = db.Create(&models.IncomingMail{Date: date, SerialNumber: code}).Error
	require.Error(t, err)
	assert.Equal(t, ErrCodeCollision, AsCollision(err))
}
