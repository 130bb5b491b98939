package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LinkedAccount is a bank account linked through the upstream provider.
//
// The access token is a durable credential and must never leave the backend.
type LinkedAccount struct {
	DefaultModel
	UserID          uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_linked_account_user_account" example:"9b5b2b3f-5a55-4a4b-9d4f-0c8f2dc5a17e"`
	User            User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	AccessToken     string    `json:"-"`
	ItemID          string    `json:"itemId" example:"eVBnVMp7zdTJLkRNr33Rs6zr7KNJqBFL9DrE6"`                                                     // Upstream item the account belongs to
	AccountID       string    `json:"accountId" gorm:"not null;uniqueIndex:idx_linked_account_user_account" example:"BxBXxLj1m4HMXBm9WZZmCWVbPjX16EHwv99vp"` // Upstream account ID
	InstitutionID   string    `json:"institutionId" example:"ins_109508"`
	InstitutionName string    `json:"institutionName" example:"First Platypus Bank"`
	AccountType     string    `json:"accountType" example:"Plaid Checking"`
	Cursor          string    `json:"-"` // Cursor of the last transaction sync
}

func (a LinkedAccount) Self() string {
	return "Linked Account"
}

// BeforeSave trims whitespace from string fields.
func (a *LinkedAccount) BeforeSave(_ *gorm.DB) error {
	a.ItemID = strings.TrimSpace(a.ItemID)
	a.AccountID = strings.TrimSpace(a.AccountID)
	a.InstitutionID = strings.TrimSpace(a.InstitutionID)
	a.InstitutionName = strings.TrimSpace(a.InstitutionName)
	a.AccountType = strings.TrimSpace(a.AccountType)

	return nil
}
