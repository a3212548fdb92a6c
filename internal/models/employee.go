package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee statuses.
const (
	EmployeeActive   = "active"
	EmployeeResigned = "resigned"
	EmployeeOnLeave  = "leave"
)

// Employee is an HR record. EmployeeID and IDNumber are immutable
// natural keys; removal is a soft delete so payroll history keeps its
// references.
type Employee struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	EmployeeID string    `gorm:"column:employee_id;type:varchar(20);not null;uniqueIndex" json:"employee_id"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	IDNumber   string    `gorm:"column:id_number;type:varchar(20);not null;uniqueIndex" json:"id_number"`
	Mobile     string    `gorm:"column:mobile;not null" json:"mobile"`
	Address    string    `gorm:"column:address;not null" json:"address"`
	LineID     *string   `gorm:"column:line_id" json:"line_id"`
	Email      *string   `gorm:"column:email" json:"email"`
	Status     string    `gorm:"column:status;type:varchar(20);not null;default:active" json:"status"`
	Group      *string   `gorm:"column:work_group;type:varchar(10)" json:"group"`
	JobTitle   *string   `gorm:"column:job_title;type:varchar(20)" json:"job_title"`
	Extension  *string   `gorm:"column:extension;type:varchar(10)" json:"extension"`
	IsDeleted  bool      `gorm:"column:is_deleted;not null;default:false" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Employee) TableName() string {
	return "employee"
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
