package hr

import (
	"context"
	"errors"

	"github.com/joe700619/SmartFirm/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmployeeNotFound = errors.New("Employee not found")
	ErrEmployeeIDTaken  = errors.New("Employee ID already registered")
	ErrIDNumberTaken    = errors.New("ID number already registered")
	ErrUnknownStatus    = errors.New("Unknown employee status")
)

type Service struct {
	DB *gorm.DB
}

type EmployeeInput struct {
	EmployeeID string  `json:"employee_id"`
	Name       string  `json:"name"`
	IDNumber   string  `json:"id_number"`
	Mobile     string  `json:"mobile"`
	Address    string  `json:"address"`
	LineID     *string `json:"line_id"`
	Email      *string `json:"email"`
	Status     string  `json:"status"`
	Group      *string `json:"group"`
	JobTitle   *string `json:"job_title"`
	Extension  *string `json:"extension"`
}

func validStatus(s string) bool {
	switch s {
	case models.EmployeeActive, models.EmployeeResigned, models.EmployeeOnLeave:
		return true
	}
	return false
}

func (s *Service) List(ctx context.Context, status, group string) ([]models.Employee, error) {
	if status != "" && !validStatus(status) {
		return nil, ErrUnknownStatus
	}
	q := s.DB.WithContext(ctx).Where("is_deleted = ?", false)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if group != "" {
		q = q.Where("work_group = ?", group)
	}
	var employees []models.Employee
	if err := q.Order("employee_id ASC").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	var employee models.Employee
	err := s.DB.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&employee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (s *Service) Create(ctx context.Context, in EmployeeInput) (*models.Employee, error) {
	status := in.Status
	if status == "" {
		status = models.EmployeeActive
	}
	if !validStatus(status) {
		return nil, ErrUnknownStatus
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Employee{}).
		Where("employee_id = ? AND is_deleted = ?", in.EmployeeID, false).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmployeeIDTaken
	}
	if err := s.DB.WithContext(ctx).Model(&models.Employee{}).
		Where("id_number = ? AND is_deleted = ?", in.IDNumber, false).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrIDNumberTaken
	}

	employee := &models.Employee{
		EmployeeID: in.EmployeeID,
		Name:       in.Name,
		IDNumber:   in.IDNumber,
		Mobile:     in.Mobile,
		Address:    in.Address,
		LineID:     in.LineID,
		Email:      in.Email,
		Status:     status,
		Group:      in.Group,
		JobTitle:   in.JobTitle,
		Extension:  in.Extension,
	}
	if err := s.DB.WithContext(ctx).Create(employee).Error; err != nil {
		return nil, err
	}
	return employee, nil
}

// Update modifies an HR record. EmployeeID and IDNumber are immutable.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in EmployeeInput) (*models.Employee, error) {
	status := in.Status
	if status == "" {
		status = models.EmployeeActive
	}
	if !validStatus(status) {
		return nil, ErrUnknownStatus
	}

	employee, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	employee.Name = in.Name
	employee.Mobile = in.Mobile
	employee.Address = in.Address
	employee.LineID = in.LineID
	employee.Email = in.Email
	employee.Status = status
	employee.Group = in.Group
	employee.JobTitle = in.JobTitle
	employee.Extension = in.Extension
	if err := s.DB.WithContext(ctx).Save(employee).Error; err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Model(&models.Employee{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}
