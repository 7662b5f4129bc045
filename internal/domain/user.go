package domain

import (
	"time"
)

type Role string

const (
	RoleDispatcher Role = "dispatcher"
	RoleManager    Role = "manager"
	RoleOwner      Role = "owner"
)

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageFrench  Language = "fr"
)

// User is a staff account of the station (dispatchers and managers), not a
// driver. Drivers are Employee rows and never log in to this service.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Language     Language  `json:"language"`
	DSPCode      string    `json:"dsp_code"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
