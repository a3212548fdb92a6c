package app

import (
	"github.com/joe700619/SmartFirm/internal/auth"
	"github.com/joe700619/SmartFirm/internal/bookkeeping"
	"github.com/joe700619/SmartFirm/internal/cases"
	"github.com/joe700619/SmartFirm/internal/config"
	"github.com/joe700619/SmartFirm/internal/constants"
	"github.com/joe700619/SmartFirm/internal/contacts"
	"github.com/joe700619/SmartFirm/internal/customerchanges"
	"github.com/joe700619/SmartFirm/internal/customers"
	"github.com/joe700619/SmartFirm/internal/database"
	"github.com/joe700619/SmartFirm/internal/emails"
	"github.com/joe700619/SmartFirm/internal/health"
	"github.com/joe700619/SmartFirm/internal/hr"
	"github.com/joe700619/SmartFirm/internal/ledger"
	"github.com/joe700619/SmartFirm/internal/mail"
	"github.com/joe700619/SmartFirm/internal/master"
	"github.com/joe700619/SmartFirm/internal/middleware"
	"github.com/joe700619/SmartFirm/internal/payments"
	"github.com/joe700619/SmartFirm/internal/shareholders"
	"github.com/joe700619/SmartFirm/internal/taxfilings"
	"github.com/joe700619/SmartFirm/internal/users"
	"github.com/joe700619/SmartFirm/internal/vatchecks"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. Returns the DB and Redis handles so main can verify
// connections before listening.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	// CORS (before session)
	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
	}))

	// Session (Redis)
	sessionCfg := middleware.SessionConfig{
		Secret:       cfg.SessionSecret,
		RedisURL:     cfg.RedisURL,
		IsProduction: cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)

	// Tracing + route logger
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	// --- Routes (no auth) ---
	healthHandlers := &health.Handlers{Rdb: rdb}
	if db != nil {
		raw, errDB := db.DB()
		if errDB != nil {
			return nil, nil, nil, errDB
		}
		healthHandlers.DB = raw
	}
	app.Get("/health", healthHandlers.Check)

	// Auth: POST login, GET me, DELETE logout
	var userFinder auth.UserFinder
	if db != nil {
		userFinder = &auth.GormUserFinder{DB: db}
	}
	authHandlers := &auth.Handlers{
		UserFinder: userFinder,
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Get("/me", authHandlers.Me)
	authGroup.Delete("/logout", authHandlers.Logout)

	// --- Protected modules (auth required) ---
	if db != nil && rdb != nil {
		brevo := &emails.BrevoClient{
			APIKey:   cfg.SendinblueAPIKey,
			MailFrom: cfg.MailFrom,
		}

		// Customers module
		customerService := &customers.Service{DB: db}
		customerHandlers := &customers.Handlers{Service: customerService}
		customerGroup := app.Group("/api/v1/customers", middleware.RequireAuth())
		customerGroup.Get("/", middleware.AuthorizePermission(constants.ViewData), customerHandlers.List)
		customerGroup.Get("/:id", middleware.AuthorizePermission(constants.ViewData), customerHandlers.Get)
		customerGroup.Post("/", middleware.AuthorizePermission(constants.ManageCustomers), customerHandlers.Create)
		customerGroup.Put("/:id", middleware.AuthorizePermission(constants.ManageCustomers), customerHandlers.Update)
		customerGroup.Delete("/:id", middleware.AuthorizePermission(constants.ManageCustomers), customerHandlers.Delete)

		// Contacts module
		contactService := &contacts.Service{DB: db}
		contactHandlers := &contacts.Handlers{Service: contactService}
		contactGroup := app.Group("/api/v1/contacts", middleware.RequireAuth())
		contactGroup.Get("/", middleware.AuthorizePermission(constants.ViewData), contactHandlers.List)
		contactGroup.Get("/:id", middleware.AuthorizePermission(constants.ViewData), contactHandlers.Get)
		contactGroup.Post("/", middleware.AuthorizePermission(constants.ManageCustomers), contactHandlers.Create)
		contactGroup.Put("/:id", middleware.AuthorizePermission(constants.ManageCustomers), contactHandlers.Update)
		contactGroup.Delete("/:id", middleware.AuthorizePermission(constants.ManageCustomers), contactHandlers.Delete)

		// Customer changes module
		changeService := &customerchanges.Service{DB: db}
		changeHandlers := &customerchanges.Handlers{Service: changeService}
		changeGroup := app.Group("/api/v1/customer-changes", middleware.RequireAuth())
		changeGroup.Get("/", middleware.AuthorizePermission(constants.ViewData), changeHandlers.List)
		changeGroup.Get("/:id", middleware.AuthorizePermission(constants.ViewData), changeHandlers.Get)
		changeGroup.Post("/", middleware.AuthorizePermission(constants.ManageCustomers), changeHandlers.Create)
		changeGroup.Put("/:id", middleware.AuthorizePermission(constants.ManageCustomers), changeHandlers.Update)
		changeGroup.Delete("/:id", middleware.AuthorizePermission(constants.ManageCustomers), changeHandlers.Delete)

		// Incoming mail module
		mailService := &mail.Service{DB: db, Sender: brevo}
		mailHandlers := &mail.Handlers{Service: mailService}
		mailGroup := app.Group("/api/v1/mail", middleware.RequireAuth())
		mailGroup.Get("/", middleware.AuthorizePermission(constants.ViewData), mailHandlers.List)
		mailGroup.Get("/:id", middleware.AuthorizePermission(constants.ViewData), mailHandlers.Get)
		mailGroup.Post("/", middleware.AuthorizePermission(constants.ManageMail), mailHandlers.Create)
		mailGroup.Put("/:id/items", middleware.AuthorizePermission(constants.ManageMail), mailHandlers.UpdateItems)
		mailGroup.Delete("/:id", middleware.AuthorizePermission(constants.ManageMail), mailHandlers.Delete)

		// VAT check module
		checkService := &vatchecks.Service{DB: db}
		checkHandlers := &vatchecks.Handlers{Service: checkService}
		checkGroup := app.Group("/api/v1/vat-checks", middleware.RequireAuth())
		checkGroup.Get("/", middleware.AuthorizePermission(constants.ViewData), checkHandlers.List)
		checkGroup.Get("/:id", middleware.AuthorizePermission(constants.ViewData), checkHandlers.Get)
		checkGroup.Post("/", middleware.AuthorizePermission(constants.ManageFilings), checkHandlers.Create)
		checkGroup.Put("/:id", middleware.AuthorizePermission(constants.ManageFilings), checkHandlers.Update)
		checkGroup.Delete("/:id", middleware.AuthorizePermission(constants.ManageFilings), checkHandlers.Delete)

		// Bookkeeping checklist module
		checklistService := &bookkeeping.Service{DB: db}
		checklistHandlers := &bookkeeping.Handlers{Service: checklistService}
		checklistGroup := app.Group("/api/v1/bookkeeping", middleware.RequireAuth())
		checklistGroup.Get("/", middleware.AuthorizePermission(constants.ViewData), checklistHandlers.List)
		checklistGroup.Get("/:id", middleware.AuthorizePermission(constants.ViewData), checklistHandlers.Get)
		checklistGroup.Post("/", middleware.AuthorizePermission(constants.ManageFilings), checklistHandlers.Create)
		checklistGroup.Put("/:id", middleware.AuthorizePermission(constants.ManageFilings), checklistHandlers.Update)
		checklistGroup.Delete("/:id", middleware.AuthorizePermission(constants.ManageFilings), checklistHandlers.Delete)

		// Tax filings module (VAT + income tax + downloads)
		filingService := &taxfilings.Service{DB: db, Sender: brevo}
		filingHandlers := &taxfilings.Handlers{Service: filingService}
		filingGroup := app.Group("/api/v1/tax-filings", middleware.RequireAuth())
		filingGroup.Get("/vat", middleware.AuthorizePermission(constants.ViewData), filingHandlers.ListVAT)
		filingGroup.Get("/vat/:id", middleware.AuthorizePermission(constants.ViewData), filingHandlers.GetVAT)
		filingGroup.Post("/vat", middleware.AuthorizePermission(constants.ManageFilings), filingHandlers.CreateVAT)
		filingGroup.Put("/vat/:id", middleware.AuthorizePermission(constants.ManageFilings), filingHandlers.UpdateVAT)
		filingGroup.Delete("/vat/:id", middleware.AuthorizePermission(constants.ManageFilings), filingHandlers.DeleteVAT)
		filingGroup.Post("/vat/:id/send", middleware.AuthorizePermission(constants.ManageFilings), filingHandlers.SendVAT)
		filingGroup.Get("/income-tax", middleware.AuthorizePermission(constants.ViewData), filingHandlers.ListIncomeTax)
		filingGroup.Get("/income-tax/:id", middleware.AuthorizePermission(constants.ViewData), filingHandlers.GetIncomeTax)
		filingGroup.Post("/income-tax", middleware.AuthorizePermission(constants.ManageFilings), filingHandlers.CreateIncomeTax)
		filingGroup.Put("/income-tax/:id", middleware.AuthorizePermission(constants.ManageFilings), filingHandlers.UpdateIncomeTax)
		filingGroup.Delete("/income-tax/:id", middleware.AuthorizePermission(constants.ManageFilings), filingHandlers.DeleteIncomeTax)
		filingGroup.Post("/income-tax/:id/send", middleware.AuthorizePermission(constants.ManageFilings), filingHandlers.SendIncomeTax)
		filingGroup.Get("/downloads", middleware.AuthorizePermission(constants.ViewData), filingHandlers.ListDownloads)

		// Registration case module
		caseService := &cases.Service{DB: db, Sender: brevo}
		caseHandlers := &cases.Handlers{Service: caseService}
		caseGroup := app.Group("/api/v1/cases", middleware.RequireAuth())
		caseGroup.Get("/", middleware.AuthorizePermission(constants.ViewData), caseHandlers.List)
		caseGroup.Get("/:id", middleware.AuthorizePermission(constants.ViewData), caseHandlers.Get)
		caseGroup.Post("/", middleware.AuthorizePermission(constants.ManageCases), caseHandlers.Create)
		caseGroup.Patch("/:id/status", middleware.AuthorizePermission(constants.ManageCases), caseHandlers.UpdateStatus)
		caseGroup.Delete("/:id", middleware.AuthorizePermission(constants.ManageCases), caseHandlers.Delete)

		// Shareholders module (registry + equity ledger)
		shareholderService := &shareholders.Service{DB: db}
		shareholderHandlers := &shareholders.Handlers{
			Service: shareholderService,
			Ledger:  &ledger.Service{DB: db},
		}
		shGroup := app.Group("/api/v1/shareholders", middleware.RequireAuth())
		shGroup.Get("/", middleware.AuthorizePermission(constants.ViewData), shareholderHandlers.List)
		shGroup.Post("/", middleware.AuthorizePermission(constants.ManageShareholders), shareholderHandlers.Create)
		shGroup.Post("/transactions", middleware.AuthorizePermission(constants.ManageShareholders), shareholderHandlers.RecordTransaction)
		shGroup.Delete("/transactions/:id", middleware.AuthorizePermission(constants.ManageShareholders), shareholderHandlers.RemoveTransaction)
		shGroup.Get("/holdings/:id/balance", middleware.AuthorizePermission(constants.ViewData), shareholderHandlers.Balance)
		shGroup.Get("/holdings/:id/history", middleware.AuthorizePermission(constants.ViewData), shareholderHandlers.History)
		shGroup.Get("/holdings/:id/consistency", middleware.AuthorizePermission(constants.ViewData), shareholderHandlers.CheckConsistency)
		shGroup.Get("/companies/:companyID/roster", middleware.AuthorizePermission(constants.ViewData), shareholderHandlers.Roster)
		shGroup.Get("/companies/:companyID/timeline", middleware.AuthorizePermission(constants.ViewData), shareholderHandlers.Timeline)
		shGroup.Get("/:id/holdings", middleware.AuthorizePermission(constants.ViewData), shareholderHandlers.Holdings)
		shGroup.Get("/:id", middleware.AuthorizePermission(constants.ViewData), shareholderHandlers.Get)
		shGroup.Put("/:id", middleware.AuthorizePermission(constants.ManageShareholders), shareholderHandlers.Update)
		shGroup.Delete("/:id", middleware.AuthorizePermission(constants.ManageShareholders), shareholderHandlers.Delete)

		// HR module
		hrService := &hr.Service{DB: db}
		hrHandlers := &hr.Handlers{Service: hrService}
		hrGroup := app.Group("/api/v1/hr", middleware.RequireAuth())
		hrGroup.Get("/employees", middleware.AuthorizePermission(constants.ManageHR), hrHandlers.List)
		hrGroup.Get("/employees/:id", middleware.AuthorizePermission(constants.ManageHR), hrHandlers.Get)
		hrGroup.Post("/employees", middleware.AuthorizePermission(constants.ManageHR), hrHandlers.Create)
		hrGroup.Put("/employees/:id", middleware.AuthorizePermission(constants.ManageHR), hrHandlers.Update)
		hrGroup.Delete("/employees/:id", middleware.AuthorizePermission(constants.ManageHR), hrHandlers.Delete)

		// Master data module
		masterService := &master.Service{DB: db}
		masterHandlers := &master.Handlers{Service: masterService}
		masterGroup := app.Group("/api/v1/master", middleware.RequireAuth())
		masterGroup.Get("/service-items", middleware.AuthorizePermission(constants.ViewData), masterHandlers.ListServiceItems)
		masterGroup.Post("/service-items", middleware.AuthorizePermission(constants.ManageMaster), masterHandlers.CreateServiceItem)
		masterGroup.Put("/service-items/:id", middleware.AuthorizePermission(constants.ManageMaster), masterHandlers.UpdateServiceItem)
		masterGroup.Delete("/service-items/:id", middleware.AuthorizePermission(constants.ManageMaster), masterHandlers.DeleteServiceItem)
		masterGroup.Get("/case-types", middleware.AuthorizePermission(constants.ViewData), masterHandlers.ListCaseTypes)
		masterGroup.Post("/case-types", middleware.AuthorizePermission(constants.ManageMaster), masterHandlers.CreateCaseType)
		masterGroup.Delete("/case-types/:id", middleware.AuthorizePermission(constants.ManageMaster), masterHandlers.DeleteCaseType)
		masterGroup.Get("/knowledge-notes", middleware.AuthorizePermission(constants.ViewData), masterHandlers.ListKnowledgeNotes)
		masterGroup.Post("/knowledge-notes", middleware.AuthorizePermission(constants.ManageMaster), masterHandlers.CreateKnowledgeNote)
		masterGroup.Put("/knowledge-notes/:id", middleware.AuthorizePermission(constants.ManageMaster), masterHandlers.UpdateKnowledgeNote)
		masterGroup.Delete("/knowledge-notes/:id", middleware.AuthorizePermission(constants.ManageMaster), masterHandlers.DeleteKnowledgeNote)
		masterGroup.Get("/system-parameters", middleware.AuthorizePermission(constants.ManageMaster), masterHandlers.GetSystemParameter)
		masterGroup.Patch("/system-parameters", middleware.AuthorizePermission(constants.ManageMaster), masterHandlers.UpdateSystemParameter)

		// Payments module. The gateway callback is server-to-server and
		// signature-verified, so it stays outside the session.
		paymentService := &payments.Service{
			DB:         db,
			NewGateway: payments.NewECPayFactory(db, cfg.ECPayMerchantID, cfg.ECPayHashKey, cfg.ECPayHashIV),
		}
		paymentHandlers := &payments.Handlers{Service: paymentService, DB: db}
		app.Post("/api/v1/payments/callback/ecpay", paymentHandlers.Callback)
		paymentGroup := app.Group("/api/v1/payments", middleware.RequireAuth())
		paymentGroup.Post("/cases", middleware.AuthorizePermission(constants.ManagePayments), paymentHandlers.CreateForCase)
		paymentGroup.Get("/", middleware.AuthorizePermission(constants.ViewData), paymentHandlers.List)
		paymentGroup.Get("/:id", middleware.AuthorizePermission(constants.ViewData), paymentHandlers.Get)

		// Users module
		userService := &users.Service{DB: db}
		userHandlers := &users.Handlers{Service: userService}
		userGroup := app.Group("/api/v1/users", middleware.RequireAuth())
		userGroup.Get("/", middleware.AuthorizePermission(constants.ManageUsers), userHandlers.List)
		userGroup.Post("/", middleware.AuthorizePermission(constants.ManageUsers), userHandlers.Create)
		userGroup.Patch("/:id/role", middleware.AuthorizePermission(constants.ManageUsers), userHandlers.UpdateRole)
		userGroup.Delete("/:id", middleware.AuthorizePermission(constants.ManageUsers), userHandlers.Delete)
	}

	return app, db, rdb, nil
}
