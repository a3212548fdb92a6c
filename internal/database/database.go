package database

import (
	"github.com/joe700619/SmartFirm/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB from DSN. PreferSimpleProtocol disables prepared
// statement caching to avoid 42P05 ("prepared statement already exists")
// behind connection poolers (PgBouncer and friends).
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{TranslateError: true})
}

// AutoMigrate runs migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Contact{},
		&models.IncomingMail{},
		&models.IncomingMailItem{},
		&models.CustomerChange{},
		&models.VATCheck{},
		&models.VATCheckItem{},
		&models.BookkeepingChecklist{},
		&models.Shareholder{},
		&models.Shareholding{},
		&models.StockTransaction{},
		&models.Employee{},
		&models.ServiceItem{},
		&models.CaseType{},
		&models.KnowledgeNote{},
		&models.SystemParameter{},
		&models.VATRecord{},
		&models.IncomeTaxRecord{},
		&models.DownloadData{},
		&models.RegistrationCase{},
		&models.PaymentProvider{},
		&models.PaymentTransaction{},
	)
}
