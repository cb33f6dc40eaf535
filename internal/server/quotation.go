package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/billora/internal/providers/pdf"
	quotationdomain "github.com/smallbiznis/billora/internal/quotation/domain"
	"github.com/smallbiznis/billora/pkg/db/pagination"
)

type quotationRequest struct {
	CustomerID    string                          `json:"customer_id"`
	IssueDate     string                          `json:"issue_date"`
	ValidUntil    string                          `json:"valid_until"`
	TaxApplicable bool                            `json:"tax_applicable"`
	TaxRate       decimal.Decimal                 `json:"tax_rate"`
	Notes         string                          `json:"notes"`
	Items         []quotationdomain.LineItemInput `json:"items"`
}

func (s *Server) CreateQuotation(c *gin.Context) {
	var req quotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	issueDate, err := parseOptionalTime(req.IssueDate, false)
	if err != nil {
		AbortWithError(c, newValidationError("issue_date", "invalid_issue_date", "invalid issue_date"))
		return
	}
	validUntil, err := parseOptionalTime(req.ValidUntil, true)
	if err != nil {
		AbortWithError(c, newValidationError("valid_until", "invalid_valid_until", "invalid valid_until"))
		return
	}

	resp, err := s.quotationSvc.Create(c.Request.Context(), quotationdomain.CreateQuotationRequest{
		CustomerID:    strings.TrimSpace(req.CustomerID),
		IssueDate:     issueDate,
		ValidUntil:    validUntil,
		TaxApplicable: req.TaxApplicable,
		TaxRate:       req.TaxRate,
		Notes:         req.Notes,
		Items:         req.Items,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateQuotation(c *gin.Context) {
	var req quotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	issueDate, err := parseOptionalTime(req.IssueDate, false)
	if err != nil {
		AbortWithError(c, newValidationError("issue_date", "invalid_issue_date", "invalid issue_date"))
		return
	}
	validUntil, err := parseOptionalTime(req.ValidUntil, true)
	if err != nil {
		AbortWithError(c, newValidationError("valid_until", "invalid_valid_until", "invalid valid_until"))
		return
	}

	resp, err := s.quotationSvc.Update(c.Request.Context(), quotationdomain.UpdateQuotationRequest{
		ID:            strings.TrimSpace(c.Param("id")),
		CustomerID:    strings.TrimSpace(req.CustomerID),
		IssueDate:     issueDate,
		ValidUntil:    validUntil,
		TaxApplicable: req.TaxApplicable,
		TaxRate:       req.TaxRate,
		Notes:         req.Notes,
		Items:         req.Items,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListQuotations(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Status      string `form:"status"`
		CustomerID  string `form:"customer_id"`
		CreatedFrom string `form:"created_from"`
		CreatedTo   string `form:"created_to"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var status *quotationdomain.QuotationStatus
	if value := strings.TrimSpace(query.Status); value != "" {
		parsed := quotationdomain.QuotationStatus(strings.ToUpper(value))
		status = &parsed
	}

	createdFrom, err := parseOptionalTime(query.CreatedFrom, false)
	if err != nil {
		AbortWithError(c, newValidationError("created_from", "invalid_created_from", "invalid created_from"))
		return
	}
	createdTo, err := parseOptionalTime(query.CreatedTo, true)
	if err != nil {
		AbortWithError(c, newValidationError("created_to", "invalid_created_to", "invalid created_to"))
		return
	}

	resp, err := s.quotationSvc.List(c.Request.Context(), quotationdomain.ListQuotationRequest{
		PageToken:   query.PageToken,
		PageSize:    int32(query.PageSize),
		Status:      status,
		CustomerID:  strings.TrimSpace(query.CustomerID),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetQuotationByID(c *gin.Context) {
	resp, err := s.quotationSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteQuotation(c *gin.Context) {
	if err := s.quotationSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) SendQuotation(c *gin.Context) {
	resp, err := s.quotationSvc.Send(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) AcceptQuotation(c *gin.Context) {
	resp, err := s.quotationSvc.Accept(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ConvertQuotation(c *gin.Context) {
	resp, err := s.invoiceSvc.ConvertFromQuotation(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DownloadQuotationPDF(c *gin.Context) {
	ctx := c.Request.Context()

	quotation, err := s.quotationSvc.GetByID(ctx, strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	customer, err := s.customerSvc.GetByID(ctx, customerGetRequest(quotation.CustomerID.String()))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	profile, err := s.companyProfileOrEmpty(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc := pdf.BuildQuotationDocument(quotation, customer, profile)
	s.servePDF(c, doc, quotation.QuotationNumber)
}

func isQuotationValidationError(err error) bool {
	switch err {
	case quotationdomain.ErrInvalidID,
		quotationdomain.ErrNoCustomerSelected,
		quotationdomain.ErrCustomerNotFound,
		quotationdomain.ErrNoValidItems,
		quotationdomain.ErrInvalidTaxRate,
		quotationdomain.ErrUnknownStatus:
		return true
	default:
		return false
	}
}
