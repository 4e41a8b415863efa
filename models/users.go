package models

import "time"

const (
	RoleUser    = "User"
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
	RoleBarista = "Barista"
)

// EmployeeRoles are the roles an employee account may be registered with.
var EmployeeRoles = []string{RoleAdmin, RoleManager, RoleBarista}

type User struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Name       string          `gorm:"type:varchar(255);not null" json:"name"`
	Email      string          `gorm:"type:varchar(255);unique;not null" json:"email"`
	Phone      string          `gorm:"type:varchar(20)" json:"phone"`
	Role       string          `gorm:"type:varchar(20);not null;default:'User'" json:"role"`
	Credential *UserCredential `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

type UserCredential struct {
	UserID       uint   `gorm:"primaryKey;autoIncrement:false"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Employee struct {
	ID         uint                `gorm:"primaryKey" json:"id"`
	Name       string              `gorm:"type:varchar(255);not null" json:"name"`
	Email      string              `gorm:"type:varchar(255);unique;not null" json:"email"`
	Phone      string              `gorm:"type:varchar(20)" json:"phone"`
	Role       string              `gorm:"type:varchar(20);not null" json:"role"`
	Credential *EmployeeCredential `gorm:"foreignKey:EmployeeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

type EmployeeCredential struct {
	EmployeeID   uint   `gorm:"primaryKey;autoIncrement:false"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsEmployeeRole reports whether role can be assigned to an employee.
func IsEmployeeRole(role string) bool {
	for _, r := range EmployeeRoles {
		if r == role {
			return true
		}
	}
	return false
}
