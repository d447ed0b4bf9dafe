package model

import "github.com/google/uuid"

// UserRole is the discipline a user works in.
type UserRole int

const (
	RoleAdministrator UserRole = iota
	RoleModerator
	RoleEnergyNetworkOperator
	RoleEnergySupplier
	RoleBuildingDeveloper
	RoleBuildingOperator
	RoleArchitecture
	RoleFireSafety
	RoleBuildingPhysics
	RoleMEPHVAC
	RoleProcessMeasuringControl
	RoleBuildingContractor
	RoleGuest
)

// User is an account of the project user list.
type User struct {
	ID           uuid.UUID
	Name         string
	PasswordHash []byte
	Role         UserRole
	// EncryptedKey is the project key encrypted with the user password.
	EncryptedKey []byte
}
