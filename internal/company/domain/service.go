package domain

import "context"

type UpdateProfileRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
	TaxID   string `json:"tax_id"`

	BankName          string `json:"bank_name"`
	BankAccountHolder string `json:"bank_account_holder"`
	BankAccountNumber string `json:"bank_account_number"`
	BankIFSC          string `json:"bank_ifsc"`
	BankBranch        string `json:"bank_branch"`
	BankSwiftCode     string `json:"bank_swift_code"`
}

type Service interface {
	Get(ctx context.Context) (Profile, error)
	Update(ctx context.Context, req UpdateProfileRequest) (Profile, error)
}
