package constants

const (
	ViewData           = "view_data"
	ManageCustomers    = "manage_customers"
	ManageMail         = "manage_mail"
	ManageFilings      = "manage_filings"
	ManageShareholders = "manage_shareholders"
	ManageCases        = "manage_cases"
	ManageHR           = "manage_hr"
	ManagePayments     = "manage_payments"
	ManageMaster       = "manage_master"
	ManageUsers        = "manage_users"
)
