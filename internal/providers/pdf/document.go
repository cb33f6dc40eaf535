package pdf

import (
	"bytes"
	"context"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"go.uber.org/zap"
)

type PDFProvider struct {
	log *zap.Logger
}

func New(log *zap.Logger) Provider {
	return &PDFProvider{log: log.Named("pdf.provider")}
}

func (p *PDFProvider) Generate(ctx context.Context, doc Document) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, doc.Title, props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	// Document meta
	m.AddRow(18,
		col.New(6).Add(
			text.New("Number: "+doc.Number, props.Text{Top: 0}),
			text.New(doc.IssueDateLabel+": "+doc.IssueDate, props.Text{Top: 4}),
			text.New(doc.DueDateLabel+": "+doc.DueDate, props.Text{Top: 8}),
		),
		col.New(6),
	)

	// Addresses
	m.AddRow(40,
		col.New(6).Add(companyLines(doc)...),
		col.New(6).Add(billToLines(doc)...),
	)

	// Table header
	m.AddRow(10,
		text.NewCol(6, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Rate", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range doc.Items {
		m.AddRow(8,
			text.NewCol(6, item.Description, props.Text{Size: 9}),
			text.NewCol(2, formatQty(item.Qty), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.Rate, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.Amount, props.Text{Size: 9, Align: align.Right}),
		)
	}

	// Totals
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, doc.Subtotal, props.Text{Size: 9, Align: align.Right}),
	)
	if doc.TaxLabel != "" {
		m.AddRow(8,
			col.New(8),
			text.NewCol(2, doc.TaxLabel, props.Text{Size: 9}),
			text.NewCol(2, doc.Tax, props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, doc.Total, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	if doc.BankDetails != "" {
		m.AddRow(20,
			col.New(12).Add(
				text.New("Payment details", props.Text{Style: fontstyle.Bold, Size: 9}),
				text.New(doc.BankDetails, props.Text{Size: 9, Top: 5}),
			),
		)
	}

	if doc.Notes != "" {
		m.AddRow(20,
			col.New(12).Add(
				text.New("Notes", props.Text{Style: fontstyle.Bold, Size: 9}),
				text.New(doc.Notes, props.Text{Size: 9, Top: 5}),
			),
		)
	}

	generated, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(generated.GetBytes()), nil
}

func companyLines(doc Document) []core.Component {
	lines := []core.Component{
		text.New(doc.CompanyName, props.Text{Style: fontstyle.Bold}),
	}
	top := 5.0
	for _, value := range []string{doc.CompanyAddress, doc.CompanyEmail, doc.CompanyPhone, doc.CompanyTaxID} {
		if value == "" {
			continue
		}
		lines = append(lines, text.New(value, props.Text{Top: top, Size: 9}))
		top += 4
	}
	return lines
}

func billToLines(doc Document) []core.Component {
	lines := []core.Component{
		text.New("Bill to", props.Text{Style: fontstyle.Bold}),
		text.New(doc.BillToName, props.Text{Top: 5, Size: 9}),
	}
	top := 9.0
	for _, value := range []string{doc.BillToCompany, doc.BillToAddress, doc.BillToEmail, doc.BillToGST} {
		if value == "" {
			continue
		}
		lines = append(lines, text.New(value, props.Text{Top: top, Size: 9}))
		top += 4
	}
	return lines
}
