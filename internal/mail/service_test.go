package mail

import (
	"context"
	"testing"
	"time"

	"github.com/joe700619/SmartFirm/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type noticeCall struct {
	Email  string
	Serial string
}

type fakeSender struct {
	notices []noticeCall
}

func (f *fakeSender) SendMailNotice(ctx context.Context, toEmail, customerName, serialNumber, message string) error {
	f.notices = append(f.notices, noticeCall{Email: toEmail, Serial: serialNumber})
	return nil
}

func (f *fakeSender) SendFilingNotice(ctx context.Context, toEmail, companyName, fileNumber, subject string) error {
	return nil
}

func (f *fakeSender) SendCaseProgress(ctx context.Context, toEmail, companyName, caseNumber, status string) error {
	return nil
}

func setupMailTest(t *testing.T) (*Service, *fakeSender, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Company{},
		&models.IncomingMail{},
		&models.IncomingMailItem{},
	))
	sender := &fakeSender{}
	return &Service{DB: db, Sender: sender}, sender, db
}

func createMailCompany(t *testing.T, db *gorm.DB, businessNo, name string, email *string) models.Company {
	company := models.Company{
		CompanyID:           businessNo,
		CompanyName:         name,
		ContactPerson:       "負責人",
		Email:               email,
		RegistrationAddress: "台北市",
	}
	require.NoError(t, db.Create(&company).Error)
	return company
}

func mailDay(n int) time.Time {
	return time.Date(2026, 1, 27, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestCreate_AllocatesSerials(t *testing.T) {
	svc, _, db := setupMailTest(t)
	company := createMailCompany(t, db, "12345678", "甲公司", nil)

	first, err := svc.Create(context.Background(), CreateInput{
		Date: mailDay(0),
		Items: []ItemInput{{
			Sender:      "國稅局",
			CompanyID:   company.ID.String(),
			ContentType: models.MailContentNTAChinese,
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "20260127-001", first.SerialNumber)
	require.Len(t, first.Items, 1)
	assert.Equal(t, "甲公司", first.Items[0].CustomerName)
	assert.Equal(t, 0, first.Items[0].SortOrder)

	second, err := svc.Create(context.Background(), CreateInput{
		Date: mailDay(0),
		Items: []ItemInput{{
			Sender:      "客戶",
			CompanyID:   company.ID.String(),
			ContentType: models.MailContentAccountingVoucher,
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "20260127-002", second.SerialNumber)

	// a new day restarts the counter
	nextDay, err := svc.Create(context.Background(), CreateInput{
		Date: mailDay(1),
		Items: []ItemInput{{
			Sender:      "客戶",
			CompanyID:   company.ID.String(),
			ContentType: models.MailContentAccountingVoucher,
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "20260128-001", nextDay.SerialNumber)
}

func TestCreate_Validation(t *testing.T) {
	svc, _, db := setupMailTest(t)
	company := createMailCompany(t, db, "12345678", "甲公司", nil)

	_, err := svc.Create(context.Background(), CreateInput{Date: mailDay(0)})
	assert.ErrorIs(t, err, ErrNoItems)

	_, err = svc.Create(context.Background(), CreateInput{
		Date: mailDay(0),
		Items: []ItemInput{{
			Sender:      "客戶",
			CompanyID:   company.ID.String(),
			ContentType: "postcard",
		}},
	})
	assert.ErrorIs(t, err, ErrUnknownContentType)
}

func TestCreate_NotifiesFlaggedItems(t *testing.T) {
	svc, sender, db := setupMailTest(t)
	email := "a@customer.tw"
	withEmail := createMailCompany(t, db, "12345678", "甲公司", &email)
	noEmail := createMailCompany(t, db, "87654321", "乙公司", nil)

	msg := "您的憑證已送達"
	record, err := svc.Create(context.Background(), CreateInput{
		Date: mailDay(0),
		Items: []ItemInput{
			{
				Sender:         "國稅局",
				CompanyID:      withEmail.ID.String(),
				ContentType:    models.MailContentNTAChinese,
				NotifyCustomer: true,
				MessageContent: &msg,
			},
			{
				Sender:         "國稅局",
				CompanyID:      noEmail.ID.String(),
				ContentType:    models.MailContentNTAChinese,
				NotifyCustomer: true,
			},
			{
				Sender:      "客戶",
				CompanyID:   withEmail.ID.String(),
				ContentType: models.MailContentAccountingVoucher,
			},
		},
	})
	require.NoError(t, err)

	// only the flagged item with a customer email triggers a notice
	require.Len(t, sender.notices, 1)
	assert.Equal(t, "a@customer.tw", sender.notices[0].Email)
	assert.Equal(t, record.SerialNumber, sender.notices[0].Serial)
}

func TestUpdateItems_SerialImmutable(t *testing.T) {
	svc, _, db := setupMailTest(t)
	company := createMailCompany(t, db, "12345678", "甲公司", nil)

	record, err := svc.Create(context.Background(), CreateInput{
		Date: mailDay(0),
		Items: []ItemInput{{
			Sender:      "國稅局",
			CompanyID:   company.ID.String(),
			ContentType: models.MailContentNTAChinese,
		}},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateItems(context.Background(), record.ID, []ItemInput{
		{
			Sender:      "客戶A",
			CompanyID:   company.ID.String(),
			ContentType: models.MailContentAccountingVoucher,
		},
		{
			Sender:      "客戶B",
			CompanyID:   company.ID.String(),
			ContentType: models.MailContentAccountingVoucher,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, record.SerialNumber, updated.SerialNumber)
	require.Len(t, updated.Items, 2)
	assert.Equal(t, "客戶A", updated.Items[0].Sender)
	assert.Equal(t, 1, updated.Items[1].SortOrder)

	// the old item rows are gone
	var count int64
	require.NoError(t, db.Model(&models.IncomingMailItem{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

// Deleting a record keeps its serial burned: the next record on the same
// day continues the count.
func TestDelete_SerialSurvives(t *testing.T) {
	svc, _, db := setupMailTest(t)
	company := createMailCompany(t, db, "12345678", "甲公司", nil)

	record, err := svc.Create(context.Background(), CreateInput{
		Date: mailDay(0),
		Items: []ItemInput{{
			Sender:      "國稅局",
			CompanyID:   company.ID.String(),
			ContentType: models.MailContentNTAChinese,
		}},
	})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), record.ID))

	_, err = svc.Get(context.Background(), record.ID)
	assert.ErrorIs(t, err, ErrMailNotFound)

	next, err := svc.Create(context.Background(), CreateInput{
		Date: mailDay(0),
		Items: []ItemInput{{
			Sender:      "客戶",
			CompanyID:   company.ID.String(),
			ContentType: models.MailContentAccountingVoucher,
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "20260127-002", next.SerialNumber)
}

func TestList_DateRange(t *testing.T) {
	svc, _, db := setupMailTest(t)
	company := createMailCompany(t, db, "12345678", "甲公司", nil)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), CreateInput{
			Date: mailDay(i),
			Items: []ItemInput{{
				Sender:      "客戶",
				CompanyID:   company.ID.String(),
				ContentType: models.MailContentAccountingVoucher,
			}},
		})
		require.NoError(t, err)
	}

	from := mailDay(1)
	to := mailDay(2)
	records, err := svc.List(context.Background(), ListFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, records, 2)
	// newest first
	assert.Equal(t, "20260129-001", records[0].SerialNumber)
	assert.Equal(t, "20260128-001", records[1].SerialNumber)
}
