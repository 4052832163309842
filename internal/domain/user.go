package domain

// Role represents the kind of authenticated user acting on the system.
// Identity is verified upstream; the engine trusts the id and role it
// receives.
type Role string

// List of user roles.
const (
	RoleDriver  Role = "DRIVER"
	RoleShipper Role = "SHIPPER"
)

// Valid checks if the Role is valid.
func (r Role) Valid() bool {
	return r == RoleDriver || r == RoleShipper
}

// Assignment is the outcome of a successful load assignment.
type Assignment struct {
	LoadID    int64
	DriverID  int64
	TruckID   int64
	TruckType TruckType
}
