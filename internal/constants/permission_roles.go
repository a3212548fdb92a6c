package constants

// PermissionRoles maps each permission to the roles allowed to perform it.
var PermissionRoles = map[string][]string{
	ViewData:           {Viewer, Staff, Manager, Admin},
	ManageCustomers:    {Staff, Manager, Admin},
	ManageMail:         {Staff, Manager, Admin},
	ManageFilings:      {Staff, Manager, Admin},
	ManageShareholders: {Staff, Manager, Admin},
	ManageCases:        {Staff, Manager, Admin},
	ManageHR:           {Manager, Admin},
	ManagePayments:     {Manager, Admin},
	ManageMaster:       {Admin},
	ManageUsers:        {Admin},
}

// AllowedRole returns true if role is allowed the permission.
func AllowedRole(permission, role string) bool {
	for _, r := range PermissionRoles[permission] {
		if r == role {
			return true
		}
	}
	return false
}
