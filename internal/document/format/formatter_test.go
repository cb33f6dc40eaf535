package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDocumentNumber_Defaults(t *testing.T) {
	issuedAt := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)

	quo, err := FormatDocumentNumber(DefaultQuotationNumberTemplate, issuedAt, 12)
	require.NoError(t, err)
	assert.Equal(t, "QUO-20250307-0012", quo)

	inv, err := FormatDocumentNumber(DefaultInvoiceNumberTemplate, issuedAt, 3)
	require.NoError(t, err)
	assert.Equal(t, "INV-20250307-0003", inv)
}

func TestFormatDocumentNumber_Tokens(t *testing.T) {
	issuedAt := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	got, err := FormatDocumentNumber("{YY}/{MM}/{SEQ}", issuedAt, 42)
	require.NoError(t, err)
	assert.Equal(t, "24/12/42", got)
}

func TestFormatDocumentNumber_Errors(t *testing.T) {
	issuedAt := time.Now().UTC()

	_, err := FormatDocumentNumber("", issuedAt, 1)
	assert.Error(t, err)

	_, err = FormatDocumentNumber("INV-{SEQ4}", issuedAt, 0)
	assert.Error(t, err)

	_, err = FormatDocumentNumber("INV-{BOGUS}", issuedAt, 1)
	assert.Error(t, err)
}
