package taxfilings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/joe700619/SmartFirm/internal/emails"
	"github.com/joe700619/SmartFirm/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRecordNotFound  = errors.New("Filing record not found")
	ErrInvalidPeriod   = errors.New("Filing period must be between 1 and 6")
	ErrUnknownTaxReply = errors.New("Unknown tax payment state")
	ErrUnknownSource   = errors.New("Unknown filing source")
)

// periodLabels maps the bimonthly filing period to its display label.
var periodLabels = map[int]string{
	1: "1-2月",
	2: "3-4月",
	3: "5-6月",
	4: "7-8月",
	5: "9-10月",
	6: "11-12月",
}

// paymentMethodMap converts filing-record payment states to the
// customer-portal vocabulary.
var paymentMethodMap = map[string]string{
	models.TaxPaidByCustomer: "customer",
	models.TaxPaidByOffice:   "office",
	models.TaxNotReplied:     "no_reply",
}

type Service struct {
	DB     *gorm.DB
	Sender emails.Sender
}

func validTaxReply(s string) bool {
	switch s {
	case models.TaxPaidByCustomer, models.TaxPaidByOffice, models.TaxNotReplied:
		return true
	}
	return false
}

func validSource(s string) bool {
	switch s {
	case models.FilingSourceGoogle, models.FilingSourceManual, models.FilingSourceNA:
		return true
	}
	return false
}

type VATRecordInput struct {
	CompanyID           uuid.UUID
	FilingYear          string
	FilingPeriod        int
	InvoiceReceivedDate *time.Time
	ReplyTime           *time.Time
	TaxDeadline         *time.Time
	TaxPaymentCompleted string
	Source              string
	DeclarationURL      *string
	PaymentSlipURL      *string
}

func (s *Service) ListVATRecords(ctx context.Context, year string, period int) ([]models.VATRecord, error) {
	q := s.DB.WithContext(ctx).Where("is_deleted = ?", false)
	if year != "" {
		q = q.Where("filing_year = ?", year)
	}
	if period != 0 {
		q = q.Where("filing_period = ?", period)
	}
	var records []models.VATRecord
	if err := q.Preload("Company").
		Order("filing_year DESC, filing_period DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Service) GetVATRecord(ctx context.Context, id uuid.UUID) (*models.VATRecord, error) {
	var record models.VATRecord
	err := s.DB.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		Preload("Company").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Service) CreateVATRecord(ctx context.Context, in VATRecordInput) (*models.VATRecord, error) {
	if in.FilingPeriod < 1 || in.FilingPeriod > 6 {
		return nil, ErrInvalidPeriod
	}
	record := &models.VATRecord{
		CompanyID:           in.CompanyID,
		FilingYear:          in.FilingYear,
		FilingPeriod:        in.FilingPeriod,
		InvoiceReceivedDate: in.InvoiceReceivedDate,
		ReplyTime:           in.ReplyTime,
		TaxDeadline:         in.TaxDeadline,
		TaxPaymentCompleted: defaulted(in.TaxPaymentCompleted, models.TaxNotReplied),
		Source:              defaulted(in.Source, models.FilingSourceManual),
		DeclarationURL:      in.DeclarationURL,
		PaymentSlipURL:      in.PaymentSlipURL,
	}
	if !validTaxReply(record.TaxPaymentCompleted) {
		return nil, ErrUnknownTaxReply
	}
	if !validSource(record.Source) {
		return nil, ErrUnknownSource
	}
	if err := s.DB.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) UpdateVATRecord(ctx context.Context, id uuid.UUID, in VATRecordInput) (*models.VATRecord, error) {
	if in.FilingPeriod < 1 || in.FilingPeriod > 6 {
		return nil, ErrInvalidPeriod
	}
	record, err := s.GetVATRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	record.FilingYear = in.FilingYear
	record.FilingPeriod = in.FilingPeriod
	record.InvoiceReceivedDate = in.InvoiceReceivedDate
	record.ReplyTime = in.ReplyTime
	record.TaxDeadline = in.TaxDeadline
	record.TaxPaymentCompleted = defaulted(in.TaxPaymentCompleted, models.TaxNotReplied)
	record.Source = defaulted(in.Source, models.FilingSourceManual)
	record.DeclarationURL = in.DeclarationURL
	record.PaymentSlipURL = in.PaymentSlipURL
	if !validTaxReply(record.TaxPaymentCompleted) {
		return nil, ErrUnknownTaxReply
	}
	if !validSource(record.Source) {
		return nil, ErrUnknownSource
	}
	if err := s.DB.WithContext(ctx).Save(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) DeleteVATRecord(ctx context.Context, id uuid.UUID) error {
	return s.softDelete(ctx, &models.VATRecord{}, id)
}

type IncomeTaxRecordInput struct {
	CompanyID           uuid.UUID
	FilingYear          string
	ReplyTime           *time.Time
	TaxDeadline         *time.Time
	TaxPaymentCompleted string
	Source              string
	DeclarationURL      *string
	PaymentSlipURL      *string
}

func (s *Service) ListIncomeTaxRecords(ctx context.Context, year string) ([]models.IncomeTaxRecord, error) {
	q := s.DB.WithContext(ctx).Where("is_deleted = ?", false)
	if year != "" {
		q = q.Where("filing_year = ?", year)
	}
	var records []models.IncomeTaxRecord
	if err := q.Preload("Company").
		Order("filing_year DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Service) GetIncomeTaxRecord(ctx context.Context, id uuid.UUID) (*models.IncomeTaxRecord, error) {
	var record models.IncomeTaxRecord
	err := s.DB.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		Preload("Company").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Service) CreateIncomeTaxRecord(ctx context.Context, in IncomeTaxRecordInput) (*models.IncomeTaxRecord, error) {
	record := &models.IncomeTaxRecord{
		CompanyID:           in.CompanyID,
		FilingYear:          in.FilingYear,
		ReplyTime:           in.ReplyTime,
		TaxDeadline:         in.TaxDeadline,
		TaxPaymentCompleted: defaulted(in.TaxPaymentCompleted, models.TaxNotReplied),
		Source:              defaulted(in.Source, models.FilingSourceManual),
		DeclarationURL:      in.DeclarationURL,
		PaymentSlipURL:      in.PaymentSlipURL,
	}
	if !validTaxReply(record.TaxPaymentCompleted) {
		return nil, ErrUnknownTaxReply
	}
	if !validSource(record.Source) {
		return nil, ErrUnknownSource
	}
	if err := s.DB.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) UpdateIncomeTaxRecord(ctx context.Context, id uuid.UUID, in IncomeTaxRecordInput) (*models.IncomeTaxRecord, error) {
	record, err := s.GetIncomeTaxRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	record.FilingYear = in.FilingYear
	record.ReplyTime = in.ReplyTime
	record.TaxDeadline = in.TaxDeadline
	record.TaxPaymentCompleted = defaulted(in.TaxPaymentCompleted, models.TaxNotReplied)
	record.Source = defaulted(in.Source, models.FilingSourceManual)
	record.DeclarationURL = in.DeclarationURL
	record.PaymentSlipURL = in.PaymentSlipURL
	if !validTaxReply(record.TaxPaymentCompleted) {
		return nil, ErrUnknownTaxReply
	}
	if !validSource(record.Source) {
		return nil, ErrUnknownSource
	}
	if err := s.DB.WithContext(ctx).Save(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) DeleteIncomeTaxRecord(ctx context.Context, id uuid.UUID) error {
	return s.softDelete(ctx, &models.IncomeTaxRecord{}, id)
}

// VATFileNumber derives the customer-portal file number for a VAT
// filing: unified business number + "V" + year + period digit.
func VATFileNumber(companyID, year string, period int) string {
	return companyID + "V" + year + strconv.Itoa(period)
}

// IncomeTaxFileNumber derives the file number for an income-tax filing:
// unified business number + "T" + year.
func IncomeTaxFileNumber(companyID, year string) string {
	return companyID + "T" + year
}

// SendVATToCustomer upserts the customer-download snapshot for a VAT
// record (keyed by file number) and emails the customer when an address
// is on file.
func (s *Service) SendVATToCustomer(ctx context.Context, id uuid.UUID) (*models.DownloadData, error) {
	record, err := s.GetVATRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Company == nil {
		return nil, ErrRecordNotFound
	}

	fileNumber := VATFileNumber(record.Company.CompanyID, record.FilingYear, record.FilingPeriod)
	row := models.DownloadData{
		FileNumber:          fileNumber,
		Year:                record.FilingYear,
		Period:              periodLabels[record.FilingPeriod],
		Category:            models.DownloadCategoryVAT,
		CompanyID:           record.Company.CompanyID,
		CompanyName:         record.Company.CompanyName,
		Email:               record.Company.Email,
		Status:              "current",
		Source:              record.Source,
		InvoiceReceivedDate: record.InvoiceReceivedDate,
		ReplyTime:           record.ReplyTime,
		TaxDeadline:         record.TaxDeadline,
		DeclarationURL:      record.DeclarationURL,
		PaymentSlipURL:      record.PaymentSlipURL,
	}
	if method, ok := paymentMethodMap[record.TaxPaymentCompleted]; ok {
		row.PaymentMethod = &method
	}

	if err := s.upsertDownload(ctx, &row); err != nil {
		return nil, err
	}

	s.notifyFiling(ctx, record.Company, fileNumber,
		fmt.Sprintf("%s年 %s 營業稅申報資料", record.FilingYear, periodLabels[record.FilingPeriod]))
	return &row, nil
}

// SendIncomeTaxToCustomer does the same for an income-tax record.
func (s *Service) SendIncomeTaxToCustomer(ctx context.Context, id uuid.UUID) (*models.DownloadData, error) {
	record, err := s.GetIncomeTaxRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Company == nil {
		return nil, ErrRecordNotFound
	}

	fileNumber := IncomeTaxFileNumber(record.Company.CompanyID, record.FilingYear)
	row := models.DownloadData{
		FileNumber:     fileNumber,
		Year:           record.FilingYear,
		Period:         record.FilingYear + "年度",
		Category:       models.DownloadCategoryIncomeTax,
		CompanyID:      record.Company.CompanyID,
		CompanyName:    record.Company.CompanyName,
		Email:          record.Company.Email,
		Status:         "current",
		Source:         record.Source,
		ReplyTime:      record.ReplyTime,
		TaxDeadline:    record.TaxDeadline,
		DeclarationURL: record.DeclarationURL,
		PaymentSlipURL: record.PaymentSlipURL,
	}
	if method, ok := paymentMethodMap[record.TaxPaymentCompleted]; ok {
		row.PaymentMethod = &method
	}

	if err := s.upsertDownload(ctx, &row); err != nil {
		return nil, err
	}

	s.notifyFiling(ctx, record.Company, fileNumber,
		fmt.Sprintf("%s年度 營利事業所得稅申報資料", record.FilingYear))
	return &row, nil
}

func (s *Service) ListDownloads(ctx context.Context, companyID string) ([]models.DownloadData, error) {
	q := s.DB.WithContext(ctx)
	if companyID != "" {
		q = q.Where("company_id = ?", companyID)
	}
	var rows []models.DownloadData
	if err := q.Order("updated_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) upsertDownload(ctx context.Context, row *models.DownloadData) error {
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "file_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"year", "period", "category", "company_id", "company_name",
			"email", "status", "source", "invoice_received_date",
			"reply_time", "tax_deadline", "payment_method",
			"declaration_url", "payment_slip_url", "updated_at",
		}),
	}).Create(row).Error
}

func (s *Service) notifyFiling(ctx context.Context, company *models.Company, fileNumber, subject string) {
	if s.Sender == nil || company.Email == nil || *company.Email == "" {
		return
	}
	if err := s.Sender.SendFilingNotice(ctx, *company.Email, company.CompanyName, fileNumber, subject); err != nil {
		log.Warn().Err(err).
			Str("file_number", fileNumber).
			Str("company_id", company.CompanyID).
			Msg("filing notice email failed")
	}
}

func (s *Service) softDelete(ctx context.Context, model interface{}, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Model(model).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func defaulted(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
