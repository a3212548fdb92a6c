package cases

import (
	"context"
	"testing"
	"time"

	"github.com/joe700619/SmartFirm/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type progressCall struct {
	CaseNumber string
	Status     string
}

type fakeSender struct {
	progress []progressCall
}

func (f *fakeSender) SendMailNotice(ctx context.Context, toEmail, customerName, serialNumber, message string) error {
	return nil
}

func (f *fakeSender) SendFilingNotice(ctx context.Context, toEmail, companyName, fileNumber, subject string) error {
	return nil
}

func (f *fakeSender) SendCaseProgress(ctx context.Context, toEmail, companyName, caseNumber, status string) error {
	f.progress = append(f.progress, progressCall{CaseNumber: caseNumber, Status: status})
	return nil
}

func setupCaseTest(t *testing.T) (*Service, *fakeSender, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Company{},
		&models.CaseType{},
		&models.RegistrationCase{},
	))
	sender := &fakeSender{}
	return &Service{DB: db, Sender: sender}, sender, db
}

func caseFixtures(t *testing.T, db *gorm.DB) (models.Company, models.CaseType) {
	email := "boss@customer.tw"
	company := models.Company{
		CompanyID:           "12345678",
		CompanyName:         "新設公司",
		ContactPerson:       "陳老闆",
		Email:               &email,
		RegistrationAddress: "高雄市",
	}
	require.NoError(t, db.Create(&company).Error)
	caseType := models.CaseType{Name: "公司設立登記"}
	require.NoError(t, db.Create(&caseType).Error)
	return company, caseType
}

func TestCreateCase(t *testing.T) {
	svc, _, db := setupCaseTest(t)
	company, caseType := caseFixtures(t, db)
	filing := time.Date(2026, 1, 27, 0, 0, 0, 0, time.UTC)

	view, err := svc.Create(context.Background(), CaseInput{
		CaseTypeID: caseType.ID,
		CompanyID:  company.ID,
		FilingDate: filing,
	})
	require.NoError(t, err)
	assert.Equal(t, "RO-20260127-R001", view.CaseNumber)
	assert.Equal(t, models.CaseStatusPending, view.Status)
	assert.Equal(t, 7, view.ExpectedDays)
	assert.Equal(t, filing.AddDate(0, 0, 7), view.Deadline)

	second, err := svc.Create(context.Background(), CaseInput{
		CaseTypeID:   caseType.ID,
		CompanyID:    company.ID,
		FilingDate:   filing,
		ExpectedDays: 14,
	})
	require.NoError(t, err)
	assert.Equal(t, "RO-20260127-R002", second.CaseNumber)
	assert.Equal(t, 14, second.ExpectedDays)
}

func TestCreateCase_UnknownCaseType(t *testing.T) {
	svc, _, db := setupCaseTest(t)
	company, _ := caseFixtures(t, db)

	_, err := svc.Create(context.Background(), CaseInput{
		CaseTypeID: uuid.New(),
		CompanyID:  company.ID,
		FilingDate: time.Now(),
	})
	assert.ErrorIs(t, err, ErrCaseTypeNotFound)
}

func TestCreateCase_UnknownStatus(t *testing.T) {
	svc, _, db := setupCaseTest(t)
	company, caseType := caseFixtures(t, db)

	_, err := svc.Create(context.Background(), CaseInput{
		CaseTypeID: caseType.ID,
		CompanyID:  company.ID,
		FilingDate: time.Now(),
		Status:     "archived",
	})
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestList_OverdueFilter(t *testing.T) {
	svc, _, db := setupCaseTest(t)
	company, caseType := caseFixtures(t, db)

	// filed long ago with a short window: overdue
	_, err := svc.Create(context.Background(), CaseInput{
		CaseTypeID:   caseType.ID,
		CompanyID:    company.ID,
		FilingDate:   time.Now().AddDate(0, 0, -30),
		ExpectedDays: 7,
	})
	require.NoError(t, err)

	// filed today: on track
	_, err = svc.Create(context.Background(), CaseInput{
		CaseTypeID:   caseType.ID,
		CompanyID:    company.ID,
		FilingDate:   time.Now(),
		ExpectedDays: 7,
	})
	require.NoError(t, err)

	all, err := svc.List(context.Background(), "", false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	overdue, err := svc.List(context.Background(), "", true)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.True(t, overdue[0].Overdue)
	assert.Negative(t, overdue[0].RemainingDays)
}

func TestUpdateStatus_SendsProgressNotice(t *testing.T) {
	svc, sender, db := setupCaseTest(t)
	company, caseType := caseFixtures(t, db)

	view, err := svc.Create(context.Background(), CaseInput{
		CaseTypeID: caseType.ID,
		CompanyID:  company.ID,
		FilingDate: time.Now(),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), view.ID, models.CaseStatusProcessing, nil)
	require.NoError(t, err)
	assert.Equal(t, models.CaseStatusProcessing, updated.Status)
	assert.Equal(t, view.CaseNumber, updated.CaseNumber)

	require.Len(t, sender.progress, 1)
	assert.Equal(t, view.CaseNumber, sender.progress[0].CaseNumber)
	assert.Equal(t, models.CaseStatusProcessing, sender.progress[0].Status)

	_, err = svc.UpdateStatus(context.Background(), view.ID, "lost", nil)
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestDeleteCase(t *testing.T) {
	svc, _, db := setupCaseTest(t)
	company, caseType := caseFixtures(t, db)

	view, err := svc.Create(context.Background(), CaseInput{
		CaseTypeID: caseType.ID,
		CompanyID:  company.ID,
		FilingDate: time.Now(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), view.ID))
	_, err = svc.Get(context.Background(), view.ID)
	assert.ErrorIs(t, err, ErrCaseNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), view.ID), ErrCaseNotFound)
}
