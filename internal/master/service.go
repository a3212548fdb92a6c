package master

import (
	"context"
	"errors"

	"github.com/joe700619/SmartFirm/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrServiceItemNotFound = errors.New("Service item not found")
	ErrServiceCodeTaken    = errors.New("Service code already registered")
	ErrCaseTypeNotFound    = errors.New("Case type not found")
	ErrCaseTypeNameTaken   = errors.New("Case type name already registered")
	ErrNoteNotFound        = errors.New("Knowledge note not found")
)

type Service struct {
	DB *gorm.DB
}

type ServiceItemInput struct {
	ServiceCode    string  `json:"service_code"`
	ServiceName    string  `json:"service_name"`
	ReferencePrice int     `json:"reference_price"`
	Department     *string `json:"department"`
	IsAMLRequired  bool    `json:"is_aml_required"`
	Remarks        *string `json:"remarks"`
}

func (s *Service) ListServiceItems(ctx context.Context, department string) ([]models.ServiceItem, error) {
	q := s.DB.WithContext(ctx)
	if department != "" {
		q = q.Where("department = ?", department)
	}
	var items []models.ServiceItem
	if err := q.Order("service_code ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service) CreateServiceItem(ctx context.Context, in ServiceItemInput) (*models.ServiceItem, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.ServiceItem{}).
		Where("service_code = ?", in.ServiceCode).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrServiceCodeTaken
	}
	item := &models.ServiceItem{
		ServiceCode:    in.ServiceCode,
		ServiceName:    in.ServiceName,
		ReferencePrice: in.ReferencePrice,
		Department:     in.Department,
		IsAMLRequired:  in.IsAMLRequired,
		Remarks:        in.Remarks,
	}
	if err := s.DB.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) UpdateServiceItem(ctx context.Context, id uuid.UUID, in ServiceItemInput) (*models.ServiceItem, error) {
	var item models.ServiceItem
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrServiceItemNotFound
	}
	if err != nil {
		return nil, err
	}
	item.ServiceName = in.ServiceName
	item.ReferencePrice = in.ReferencePrice
	item.Department = in.Department
	item.IsAMLRequired = in.IsAMLRequired
	item.Remarks = in.Remarks
	if err := s.DB.WithContext(ctx).Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) DeleteServiceItem(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.ServiceItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrServiceItemNotFound
	}
	return nil
}

func (s *Service) ListCaseTypes(ctx context.Context) ([]models.CaseType, error) {
	var types []models.CaseType
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (s *Service) CreateCaseType(ctx context.Context, name string) (*models.CaseType, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.CaseType{}).
		Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCaseTypeNameTaken
	}
	caseType := &models.CaseType{Name: name}
	if err := s.DB.WithContext(ctx).Create(caseType).Error; err != nil {
		return nil, err
	}
	return caseType, nil
}

func (s *Service) DeleteCaseType(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.CaseType{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCaseTypeNotFound
	}
	return nil
}

type KnowledgeNoteInput struct {
	Title     string  `json:"title"`
	Tags      string  `json:"tags"`
	Checklist *string `json:"checklist"`
	Steps     *string `json:"steps"`
	Warnings  *string `json:"warnings"`
}

func (s *Service) ListKnowledgeNotes(ctx context.Context, search string) ([]models.KnowledgeNote, error) {
	q := s.DB.WithContext(ctx)
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("title LIKE ? OR tags LIKE ?", like, like)
	}
	var notes []models.KnowledgeNote
	if err := q.Order("updated_at DESC").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (s *Service) CreateKnowledgeNote(ctx context.Context, in KnowledgeNoteInput) (*models.KnowledgeNote, error) {
	note := &models.KnowledgeNote{
		Title:     in.Title,
		Tags:      in.Tags,
		Checklist: in.Checklist,
		Steps:     in.Steps,
		Warnings:  in.Warnings,
	}
	if err := s.DB.WithContext(ctx).Create(note).Error; err != nil {
		return nil, err
	}
	return note, nil
}

func (s *Service) UpdateKnowledgeNote(ctx context.Context, id uuid.UUID, in KnowledgeNoteInput) (*models.KnowledgeNote, error) {
	var note models.KnowledgeNote
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, err
	}
	note.Title = in.Title
	note.Tags = in.Tags
	note.Checklist = in.Checklist
	note.Steps = in.Steps
	note.Warnings = in.Warnings
	if err := s.DB.WithContext(ctx).Save(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *Service) DeleteKnowledgeNote(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.KnowledgeNote{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoteNotFound
	}
	return nil
}

type SystemParameterInput struct {
	GeminiAPIKey    *string `json:"gemini_api_key"`
	LineAccessToken *string `json:"line_access_token"`
	LineWebURL      *string `json:"line_web_url"`
	ECPayMerchantID *string `json:"ecpay_merchant_id"`
	ECPayHashKey    *string `json:"ecpay_hash_key"`
	ECPayHashIV     *string `json:"ecpay_hash_iv"`
}

func (s *Service) GetSystemParameter(ctx context.Context) (*models.SystemParameter, error) {
	return models.LoadSystemParameter(s.DB.WithContext(ctx))
}

// UpdateSystemParameter patches the singleton settings row; nil fields
// are left unchanged.
func (s *Service) UpdateSystemParameter(ctx context.Context, in SystemParameterInput) (*models.SystemParameter, error) {
	param, err := models.LoadSystemParameter(s.DB.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	if in.GeminiAPIKey != nil {
		param.GeminiAPIKey = *in.GeminiAPIKey
	}
	if in.LineAccessToken != nil {
		param.LineAccessToken = *in.LineAccessToken
	}
	if in.LineWebURL != nil {
		param.LineWebURL = *in.LineWebURL
	}
	if in.ECPayMerchantID != nil {
		param.ECPayMerchantID = *in.ECPayMerchantID
	}
	if in.ECPayHashKey != nil {
		param.ECPayHashKey = *in.ECPayHashKey
	}
	if in.ECPayHashIV != nil {
		param.ECPayHashIV = *in.ECPayHashIV
	}
	if err := s.DB.WithContext(ctx).Save(param).Error; err != nil {
		return nil, err
	}
	return param, nil
}
