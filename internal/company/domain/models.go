// Package domain contains the company profile used on exported documents.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Profile is the single-row company settings record. Its fields feed the
// header, footer, and bank-details block of exported PDFs.
type Profile struct {
	ID      snowflake.ID `gorm:"primaryKey" json:"id"`
	Name    string       `gorm:"not null" json:"name"`
	Address string       `gorm:"type:text" json:"address,omitempty"`
	Email   string       `gorm:"type:text" json:"email,omitempty"`
	Phone   string       `gorm:"type:text" json:"phone,omitempty"`
	Website string       `gorm:"type:text" json:"website,omitempty"`
	TaxID   string       `gorm:"column:tax_id;type:text" json:"tax_id,omitempty"`

	BankName          string `gorm:"type:text" json:"bank_name,omitempty"`
	BankAccountHolder string `gorm:"type:text" json:"bank_account_holder,omitempty"`
	BankAccountNumber string `gorm:"type:text" json:"bank_account_number,omitempty"`
	BankIFSC          string `gorm:"column:bank_ifsc;type:text" json:"bank_ifsc,omitempty"`
	BankBranch        string `gorm:"type:text" json:"bank_branch,omitempty"`
	BankSwiftCode     string `gorm:"type:text" json:"bank_swift_code,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Profile) TableName() string { return "company_profiles" }
