package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Name           string `json:"name"`
	Email          string `gorm:"uniqueIndex" json:"email"`
	Password       string `json:"-"`
	OrganizationID uint   `json:"organization_id"`

	Organization Organization `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
