// =============================================================================
// QRMS Invoice Export - Row Derivation Engine
// =============================================================================
//
// This module maps a validated batch onto the ordered row set of the
// accounting export file. For every invoice it emits one summary row
// followed by one row per line item:
//
//   - The summary row carries the invoice header fields, the QRMS
//     reference, the summary posting key, and the signed total of all
//     line amounts. Line-specific columns stay blank.
//   - Line rows carry the GL account, tax code, item text, the
//     cost-object columns, the line posting key, and the signed line
//     amount. CUSTOMER stays blank on line rows, which is how the two
//     row kinds are told apart downstream.
//
// The engine performs no validation. It must only ever be called on a
// batch the validation engine accepted; calling it on anything else is a
// caller contract violation, not a handled error path. On accepted input
// it is total and deterministic (given a fixed posting date).
//
// =============================================================================

package derive

import (
	"strconv"
	"strings"
	"time"

	"github.com/ginjaninja78/QRMS-invoice-export/internal/batch"
	"github.com/ginjaninja78/QRMS-invoice-export/internal/catalog"
)

// Row maps technical header keys to formatted cell values. Keys absent
// from the map render as empty cells; only non-blank columns are set.
type Row map[string]string

// RowKind distinguishes the two row roles per invoice.
type RowKind int

const (
	// SummaryRow is the aggregate header row of an invoice.
	SummaryRow RowKind = iota

	// LineRow is one posting line of an invoice.
	LineRow
)

// =============================================================================
// POSTING KEYS AND SIGN CONVENTION
// =============================================================================

// isCreditNoteType reports whether the document type posts as a credit
// note: types starting with '2', and DG.
func isCreditNoteType(docType string) bool {
	return strings.HasPrefix(docType, "2") || docType == "DG"
}

// PostingKey derives the two-character posting key for a row.
//
// Summary rows use 01 for invoice-like types and 11 for credit notes.
// Line rows use 50 for invoice-like types and 40 for credit notes.
func PostingKey(docType string, kind RowKind) string {
	cn := isCreditNoteType(docType)

	if kind == SummaryRow {
		if cn {
			return "11"
		}
		return "01"
	}
	if cn {
		return "40"
	}
	return "50"
}

// negatedKey reports whether amounts posted under the given key carry a
// negative sign in the export: line key 50 (invoice-like) and summary key
// 11 (credit note). Earlier revisions of the upload rules negated every
// line unconditionally; the key-dependent form is the current contract.
func negatedKey(key string) bool {
	return key == "50" || key == "11"
}

// =============================================================================
// VALUE FORMATTING
// =============================================================================

// FormatAmount renders a non-negative amount as a US-locale decimal with
// exactly two fraction digits and thousands separators, e.g. "1,234.56".
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)

	intPart, fracPart, _ := strings.Cut(s, ".")
	if len(intPart) <= 3 {
		return intPart + "." + fracPart
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String() + "." + fracPart
}

// signedAmount formats an amount and prefixes "-" when negate is set.
func signedAmount(v float64, negate bool) string {
	s := FormatAmount(v)
	if negate {
		return "-" + s
	}
	return s
}

// dateLayouts are the input layouts FormatDate accepts, tried in order.
// YYYY-MM-DD is what the form produces; RFC 3339 covers documents written
// by other tooling; DD.MM.YYYY passes through already-formatted values.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02.01.2006",
}

// FormatDate renders a date string as DD.MM.YYYY. Unparseable input is
// returned unchanged so derivation stays total after validation.
func FormatDate(dateStr string) string {
	if dateStr == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, dateStr); err == nil {
			return d.Format("02.01.2006")
		}
	}
	return dateStr
}

// =============================================================================
// ROW DERIVATION
// =============================================================================

// Rows derives the ordered export row sequence for a validated batch.
//
// PARAMETERS:
//   - b: The batch; must already have passed validation.
//   - postingDate: The posting date for all rows, normally the generation
//     day. Passed in rather than read from the clock so derivation is
//     reproducible.
//
// RETURNS:
//   - One summary row plus one row per line item for every invoice, in
//     batch order. For a batch with line counts n1..nk the result holds
//     sum(ni + 1) rows.
func Rows(b *batch.Batch, postingDate time.Time) []Row {
	formattedPostingDate := postingDate.Format("02.01.2006")
	qrmsRef := "QRMS " + b.Reference

	var rows []Row
	for i := range b.Invoices {
		inv := &b.Invoices[i]
		invoiceID := strconv.Itoa(i + 1)

		rows = append(rows, summaryRow(inv, invoiceID, qrmsRef, formattedPostingDate))
		for j := range inv.Lines {
			rows = append(rows, lineRow(inv, &inv.Lines[j], invoiceID, qrmsRef, formattedPostingDate))
		}
	}
	return rows
}

// summaryRow builds the aggregate header row of one invoice. WRBTR is the
// signed total of all line amounts; GL account, tax code, and the
// cost-object columns stay blank.
func summaryRow(inv *batch.Invoice, invoiceID, qrmsRef, postingDate string) Row {
	key := PostingKey(inv.DocumentType, SummaryRow)

	var total float64
	for _, line := range inv.Lines {
		total += line.Amount
	}

	return Row{
		"ID":         invoiceID,
		"COMP_CODE":  inv.CompanyCode,
		"DOC_DATE":   FormatDate(inv.DocumentDate),
		"PSTNG_DATE": postingDate,
		"DOC_TYPE":   inv.DocumentType,
		"HEADER_TXT": inv.HeaderText,
		"REF_DOC_NO": qrmsRef,
		"POST_KEY":   key,
		"CUSTOMER":   inv.Customer,
		"CURRENCY":   inv.Currency,
		"WRBTR":      signedAmount(total, negatedKey(key)),
		"ALLOC_NMBR": qrmsRef,
	}
}

// lineRow builds one posting line row. CUSTOMER and HEADER_TXT belong to
// the summary row and stay blank here; CROSS_COCODE is only populated for
// rebilling tax codes regardless of what the line carries.
func lineRow(inv *batch.Invoice, line *batch.LineItem, invoiceID, qrmsRef, postingDate string) Row {
	key := PostingKey(inv.DocumentType, LineRow)

	row := Row{
		"ID":          invoiceID,
		"COMP_CODE":   inv.CompanyCode,
		"DOC_DATE":    FormatDate(inv.DocumentDate),
		"PSTNG_DATE":  postingDate,
		"DOC_TYPE":    inv.DocumentType,
		"REF_DOC_NO":  qrmsRef,
		"POST_KEY":    key,
		"GL_ACCOUNT":  line.GLAccount,
		"CURRENCY":    inv.Currency,
		"WRBTR":       signedAmount(line.Amount, negatedKey(key)),
		"TAX_CODE":    line.TaxCode,
		"ALLOC_NMBR":  qrmsRef,
		"ITEM_TEXT":   line.ItemText,
		"TRADE_ID":    line.TradingPartner,
		"COSTCENTER":  line.CostCenter,
		"PROFIT_CTR":  line.ProfitCenter,
		"WBS_ELEMENT": line.WBSElement,
		"COPA_PRCTR":  line.COPAProfitCenter,
		"COPA_WW050":  line.COPABRSChannel,
		"COPA_VKORG":  line.COPASalesOrganization,
		"COPA_KMVKBU": line.COPASalesOffice,
		"COPA_KNDNR":  line.COPACustomer,
		"COPA_ARTNR":  line.COPAProduct,
		"COPA_WW040":  line.COPAProductGroup,
	}

	if catalog.IsRebillingTaxCode(line.TaxCode) {
		row["CROSS_COCODE"] = line.CrossCompanyCode
	}

	return row
}
