package constants

// Staff roles, least to most privileged.
const (
	Viewer  = "viewer"
	Staff   = "staff"
	Manager = "manager"
	Admin   = "admin"
)
