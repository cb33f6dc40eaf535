package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	companydomain "github.com/smallbiznis/billora/internal/company/domain"
)

type companyProfileRequest struct {
	Name              string `json:"name"`
	Address           string `json:"address"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Website           string `json:"website"`
	TaxID             string `json:"tax_id"`
	BankName          string `json:"bank_name"`
	BankAccountHolder string `json:"bank_account_holder"`
	BankAccountNumber string `json:"bank_account_number"`
	BankIFSC          string `json:"bank_ifsc"`
	BankBranch        string `json:"bank_branch"`
	BankSwiftCode     string `json:"bank_swift_code"`
}

func (s *Server) GetCompanyProfile(c *gin.Context) {
	resp, err := s.companySvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateCompanyProfile(c *gin.Context) {
	var req companyProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.companySvc.Update(c.Request.Context(), companydomain.UpdateProfileRequest{
		Name:              strings.TrimSpace(req.Name),
		Address:           strings.TrimSpace(req.Address),
		Email:             strings.TrimSpace(req.Email),
		Phone:             strings.TrimSpace(req.Phone),
		Website:           strings.TrimSpace(req.Website),
		TaxID:             strings.TrimSpace(req.TaxID),
		BankName:          strings.TrimSpace(req.BankName),
		BankAccountHolder: strings.TrimSpace(req.BankAccountHolder),
		BankAccountNumber: strings.TrimSpace(req.BankAccountNumber),
		BankIFSC:          strings.TrimSpace(req.BankIFSC),
		BankBranch:        strings.TrimSpace(req.BankBranch),
		BankSwiftCode:     strings.TrimSpace(req.BankSwiftCode),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isCompanyValidationError(err error) bool {
	switch err {
	case companydomain.ErrInvalidName:
		return true
	default:
		return false
	}
}
