package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	invoicedomain "github.com/smallbiznis/billora/internal/invoice/domain"
	"github.com/smallbiznis/billora/internal/providers/pdf"
	"github.com/smallbiznis/billora/pkg/db/pagination"
)

type invoiceRequest struct {
	CustomerID    string                        `json:"customer_id"`
	IssueDate     string                        `json:"issue_date"`
	DueDate       string                        `json:"due_date"`
	TaxApplicable bool                          `json:"tax_applicable"`
	TaxRate       decimal.Decimal               `json:"tax_rate"`
	Notes         string                        `json:"notes"`
	Items         []invoicedomain.LineItemInput `json:"items"`
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	issueDate, err := parseOptionalTime(req.IssueDate, false)
	if err != nil {
		AbortWithError(c, newValidationError("issue_date", "invalid_issue_date", "invalid issue_date"))
		return
	}
	dueDate, err := parseOptionalTime(req.DueDate, true)
	if err != nil {
		AbortWithError(c, newValidationError("due_date", "invalid_due_date", "invalid due_date"))
		return
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), invoicedomain.CreateInvoiceRequest{
		CustomerID:    strings.TrimSpace(req.CustomerID),
		IssueDate:     issueDate,
		DueDate:       dueDate,
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

func (s *Server) UpdateInvoice(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	issueDate, err := parseOptionalTime(req.IssueDate, false)
	if err != nil {
		AbortWithError(c, newValidationError("issue_date", "invalid_issue_date", "invalid issue_date"))
		return
	}
	dueDate, err := parseOptionalTime(req.DueDate, true)
	if err != nil {
		AbortWithError(c, newValidationError("due_date", "invalid_due_date", "invalid due_date"))
		return
	}

	resp, err := s.invoiceSvc.Update(c.Request.Context(), invoicedomain.UpdateInvoiceRequest{
		ID:            strings.TrimSpace(c.Param("id")),
		CustomerID:    strings.TrimSpace(req.CustomerID),
		IssueDate:     issueDate,
		DueDate:       dueDate,
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

func (s *Server) ListInvoices(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Status      string `form:"status"`
		CustomerID  string `form:"customer_id"`
		QuotationID string `form:"quotation_id"`
		CreatedFrom string `form:"created_from"`
		CreatedTo   string `form:"created_to"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var status *invoicedomain.InvoiceStatus
	if value := strings.TrimSpace(query.Status); value != "" {
		parsed := invoicedomain.InvoiceStatus(strings.ToUpper(value))
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

	resp, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListInvoiceRequest{
		PageToken:   query.PageToken,
		PageSize:    int32(query.PageSize),
		Status:      status,
		CustomerID:  strings.TrimSpace(query.CustomerID),
		QuotationID: strings.TrimSpace(query.QuotationID),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	if err := s.invoiceSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) SendInvoice(c *gin.Context) {
	resp, err := s.invoiceSvc.Send(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) MarkInvoicePaid(c *gin.Context) {
	resp, err := s.invoiceSvc.MarkPaid(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DownloadInvoicePDF(c *gin.Context) {
	ctx := c.Request.Context()

	invoice, err := s.invoiceSvc.GetByID(ctx, strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	customer, err := s.customerSvc.GetByID(ctx, customerGetRequest(invoice.CustomerID.String()))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	profile, err := s.companyProfileOrEmpty(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc := pdf.BuildInvoiceDocument(invoice, customer, profile)
	s.servePDF(c, doc, invoice.InvoiceNumber)
}

func isInvoiceValidationError(err error) bool {
	switch err {
	case invoicedomain.ErrInvalidID,
		invoicedomain.ErrNoCustomerSelected,
		invoicedomain.ErrCustomerNotFound,
		invoicedomain.ErrNoValidItems,
		invoicedomain.ErrInvalidTaxRate,
		invoicedomain.ErrUnknownStatus:
		return true
	default:
		return false
	}
}
