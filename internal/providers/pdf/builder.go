package pdf

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	companydomain "github.com/smallbiznis/billora/internal/company/domain"
	customerdomain "github.com/smallbiznis/billora/internal/customer/domain"
	invoicedomain "github.com/smallbiznis/billora/internal/invoice/domain"
	quotationdomain "github.com/smallbiznis/billora/internal/quotation/domain"
)

const dateLayout = "02 Jan 2006"

// BuildQuotationDocument assembles the printable view of a quotation.
// Only valid item rows are printed; half-filled editor rows are not.
func BuildQuotationDocument(quotation quotationdomain.Quotation, customer customerdomain.Customer, profile companydomain.Profile) Document {
	doc := Document{
		Title:          "Quotation",
		Number:         quotation.QuotationNumber,
		IssueDateLabel: "Date of issue",
		IssueDate:      quotation.IssueDate.Format(dateLayout),
		DueDateLabel:   "Valid until",
		DueDate:        quotation.ValidUntil.Format(dateLayout),
		Subtotal:       formatAmount(quotation.SubtotalAmount),
		Total:          formatAmount(quotation.TotalAmount),
		Notes:          quotation.Notes,
	}
	if quotation.TaxApplicable {
		doc.TaxLabel = taxLabel(quotation.TaxRate)
		doc.Tax = formatAmount(quotation.TaxAmount)
	}
	for _, item := range quotation.Items {
		if !printable(item.Description, item.Quantity, item.Rate) {
			continue
		}
		doc.Items = append(doc.Items, DocumentItem{
			Description: item.Description,
			Qty:         item.Quantity,
			Rate:        formatAmount(item.Rate),
			Amount:      formatAmount(item.Amount),
		})
	}
	applyCompany(&doc, profile)
	applyCustomer(&doc, customer)
	return doc
}

// BuildInvoiceDocument assembles the printable view of an invoice.
func BuildInvoiceDocument(invoice invoicedomain.Invoice, customer customerdomain.Customer, profile companydomain.Profile) Document {
	doc := Document{
		Title:          "Invoice",
		Number:         invoice.InvoiceNumber,
		IssueDateLabel: "Date of issue",
		IssueDate:      invoice.IssueDate.Format(dateLayout),
		DueDateLabel:   "Date due",
		DueDate:        invoice.DueDate.Format(dateLayout),
		Subtotal:       formatAmount(invoice.SubtotalAmount),
		Total:          formatAmount(invoice.TotalAmount),
		Notes:          invoice.Notes,
	}
	if invoice.TaxApplicable {
		doc.TaxLabel = taxLabel(invoice.TaxRate)
		doc.Tax = formatAmount(invoice.TaxAmount)
	}
	for _, item := range invoice.Items {
		if !printable(item.Description, item.Quantity, item.Rate) {
			continue
		}
		doc.Items = append(doc.Items, DocumentItem{
			Description: item.Description,
			Qty:         item.Quantity,
			Rate:        formatAmount(item.Rate),
			Amount:      formatAmount(item.Amount),
		})
	}
	applyCompany(&doc, profile)
	applyCustomer(&doc, customer)
	return doc
}

func applyCompany(doc *Document, profile companydomain.Profile) {
	doc.CompanyName = profile.Name
	doc.CompanyAddress = profile.Address
	doc.CompanyEmail = profile.Email
	doc.CompanyPhone = profile.Phone
	if profile.TaxID != "" {
		doc.CompanyTaxID = "Tax ID: " + profile.TaxID
	}
	doc.BankDetails = bankDetails(profile)
}

func applyCustomer(doc *Document, customer customerdomain.Customer) {
	doc.BillToName = customer.Name
	doc.BillToCompany = customer.Company
	doc.BillToAddress = customer.Address
	doc.BillToEmail = customer.Email
	if customer.GSTNumber != "" {
		doc.BillToGST = "GSTIN: " + customer.GSTNumber
	}
}

func bankDetails(profile companydomain.Profile) string {
	parts := make([]string, 0, 6)
	if profile.BankName != "" {
		parts = append(parts, "Bank: "+profile.BankName)
	}
	if profile.BankAccountHolder != "" {
		parts = append(parts, "Account holder: "+profile.BankAccountHolder)
	}
	if profile.BankAccountNumber != "" {
		parts = append(parts, "Account number: "+profile.BankAccountNumber)
	}
	if profile.BankIFSC != "" {
		parts = append(parts, "IFSC: "+profile.BankIFSC)
	}
	if profile.BankBranch != "" {
		parts = append(parts, "Branch: "+profile.BankBranch)
	}
	if profile.BankSwiftCode != "" {
		parts = append(parts, "SWIFT: "+profile.BankSwiftCode)
	}
	return strings.Join(parts, "\n")
}

func printable(description string, qty int64, rate decimal.Decimal) bool {
	return strings.TrimSpace(description) != "" && qty > 0 && rate.IsPositive()
}

func taxLabel(rate decimal.Decimal) string {
	return "Tax (" + rate.StringFixed(2) + "%)"
}

func formatAmount(value decimal.Decimal) string {
	return value.StringFixed(2)
}

func formatQty(qty int64) string {
	return strconv.FormatInt(qty, 10)
}
