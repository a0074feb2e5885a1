// =============================================================================
// QRMS Invoice Export - Validation Engine
// =============================================================================
//
// This module decides whether a batch is well-formed enough to export.
// It validates at four levels:
//   1. Batch-level: reference shape, at least one invoice
//   2. Invoice-level: header field shape and allowed-value membership
//   3. Line-level: field shape checks on each line item
//   4. Conditional groups: the at-least-one-cost-object invariant
//
// ERROR HANDLING:
//   - Violations are collected, never thrown; validation always inspects
//     the whole batch so the caller can surface every issue at once
//   - Each violation carries the invoice index, line index, and field name
//     so it can be attached to the exact form control
//   - An invalid batch is an expected, recoverable state; there is no
//     fatal category here
//
// The engine is a pure function of its input: no I/O, no retained state.
// Calling it repeatedly on unchanged input yields identical results, which
// is what makes it usable for per-keystroke feedback as well as the final
// submit gate.
//
// =============================================================================

package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/ginjaninja78/QRMS-invoice-export/internal/batch"
	"github.com/ginjaninja78/QRMS-invoice-export/internal/catalog"
)

// groupErrorMessage is the line-level message for a failed conditional
// group check. No single field is "wrong" in that case, so the violation
// is reported against the line as a whole.
const groupErrorMessage = "At least one conditional group (COPA / Rebilling / Profit Center / Cost Center / WBS Element) must be valid"

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single rule violation.
type ValidationError struct {
	// InvoiceIndex is the 0-based invoice position, or -1 for batch-level
	// violations.
	InvoiceIndex int

	// LineIndex is the 0-based line position within the invoice, or -1 for
	// batch- and invoice-level violations.
	LineIndex int

	// Field is the name of the violating field. Empty for violations that
	// concern a whole line.
	Field string

	// Value is the offending value, if meaningful.
	Value string

	// Rule is the identifier of the violated rule.
	Rule string

	// Message is the human-readable description.
	Message string
}

// Path returns a stable path identifying the violating element, e.g.
// "reference", "invoices[0].companyCode", "invoices[1].lines[2].glAccount",
// or "invoices[1].lines[2]" for line-level group violations.
func (e *ValidationError) Path() string {
	if e.InvoiceIndex < 0 {
		return e.Field
	}

	path := fmt.Sprintf("invoices[%d]", e.InvoiceIndex)
	if e.LineIndex >= 0 {
		path += fmt.Sprintf(".lines[%d]", e.LineIndex)
	}
	if e.Field != "" {
		path += "." + e.Field
	}
	return path
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path(), e.Message)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// Result contains the outcome of validating one batch.
type Result struct {
	// IsValid is true when no violations were found.
	IsValid bool

	// Errors contains every violation found, in document order.
	Errors []*ValidationError

	// InvoicesValidated is the number of invoices inspected.
	InvoicesValidated int

	// LinesValidated is the total number of line items inspected.
	LinesValidated int
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Options contains optional validator behavior.
type Options struct {
	// TaxCodeAllowlist optionally restricts tax codes per document type.
	// Keys are document types, values the tax codes allowed for them.
	// The restriction is only enforced for document types present in the
	// map; an empty map disables it entirely. This rule was inconsistent
	// across revisions of the business rules, so it ships off by default
	// and is enabled through configuration.
	TaxCodeAllowlist map[string][]string
}

// Validator validates batches against the catalog and the rule set.
type Validator struct {
	options Options
}

// New creates a Validator with default options.
func New() *Validator {
	return &Validator{}
}

// NewWithOptions creates a Validator with custom options.
func NewWithOptions(options Options) *Validator {
	return &Validator{options: options}
}

// Validate validates a batch with default options. This is the main entry
// point for callers that do not need the configurable extensions.
func Validate(b *batch.Batch) *Result {
	return New().Validate(b)
}

// Validate inspects the whole batch and returns every violation found.
// It never stops at the first error.
func (v *Validator) Validate(b *batch.Batch) *Result {
	result := &Result{IsValid: true}

	add := func(e *ValidationError) {
		result.Errors = append(result.Errors, e)
		result.IsValid = false
	}

	// =========================================================================
	// BATCH-LEVEL RULES
	// =========================================================================

	if len(b.Reference) < 2 {
		add(&ValidationError{
			InvoiceIndex: -1,
			LineIndex:    -1,
			Field:        "reference",
			Value:        b.Reference,
			Rule:         "min_length",
			Message:      "QRMS reference must be at least 2 characters",
		})
	}

	if len(b.Invoices) == 0 {
		add(&ValidationError{
			InvoiceIndex: -1,
			LineIndex:    -1,
			Field:        "invoices",
			Rule:         "min_invoices",
			Message:      "at least one invoice is required",
		})
	}

	// =========================================================================
	// INVOICE- AND LINE-LEVEL RULES
	// =========================================================================

	for i := range b.Invoices {
		for _, e := range v.validateInvoice(&b.Invoices[i], i) {
			add(e)
		}
		result.LinesValidated += len(b.Invoices[i].Lines)
	}
	result.InvoicesValidated = len(b.Invoices)

	return result
}

// validateInvoice checks one invoice's header fields and its lines.
func (v *Validator) validateInvoice(inv *batch.Invoice, invoiceIndex int) []*ValidationError {
	var errors []*ValidationError

	add := func(field, value, rule, message string) {
		errors = append(errors, &ValidationError{
			InvoiceIndex: invoiceIndex,
			LineIndex:    -1,
			Field:        field,
			Value:        value,
			Rule:         rule,
			Message:      message,
		})
	}

	if len(inv.CompanyCode) != 4 {
		add("companyCode", inv.CompanyCode, "length", "company code must be exactly 4 characters")
	} else if !catalog.IsCompanyCode(inv.CompanyCode) {
		add("companyCode", inv.CompanyCode, "allowed_value", "company code is not in the allowed set")
	}

	if len(inv.DocumentType) != 2 {
		add("documentType", inv.DocumentType, "length", "document type must be exactly 2 characters")
	} else if !catalog.IsDocumentType(inv.DocumentType) {
		add("documentType", inv.DocumentType, "allowed_value", "document type is not in the allowed set")
	}

	if inv.DocumentDate == "" {
		add("documentDate", "", "required", "document date is required")
	}

	if len(inv.Customer) < 4 {
		add("customer", inv.Customer, "min_length", "customer number must be at least 4 characters")
	}
	if inv.Customer != "" && !isDigits(inv.Customer) {
		add("customer", inv.Customer, "numeric", "customer number must contain only digits")
	}

	if len(inv.Currency) != 3 {
		add("currency", inv.Currency, "length", "currency must be exactly 3 characters")
	} else if !catalog.IsCurrency(inv.Currency) {
		add("currency", inv.Currency, "allowed_value", "currency is not in the allowed set")
	}

	if len(inv.Lines) == 0 {
		add("lines", "", "min_lines", "at least one line item is required")
	}

	for j := range inv.Lines {
		errors = append(errors, v.validateLine(inv, &inv.Lines[j], invoiceIndex, j)...)
	}

	return errors
}

// validateLine checks one line item's fields and its conditional-group
// invariant. All field checks run before the group check; none of them
// short-circuits the others.
func (v *Validator) validateLine(inv *batch.Invoice, line *batch.LineItem, invoiceIndex, lineIndex int) []*ValidationError {
	var errors []*ValidationError

	add := func(field, value, rule, message string) {
		errors = append(errors, &ValidationError{
			InvoiceIndex: invoiceIndex,
			LineIndex:    lineIndex,
			Field:        field,
			Value:        value,
			Rule:         rule,
			Message:      message,
		})
	}

	if math.IsNaN(line.Amount) || math.IsInf(line.Amount, 0) {
		add("amount", fmt.Sprintf("%v", line.Amount), "numeric", "amount must be a finite number")
	} else if line.Amount <= 0 {
		add("amount", fmt.Sprintf("%v", line.Amount), "positive", "amount must be positive")
	}

	if len(line.ItemText) < 2 {
		add("itemText", line.ItemText, "min_length", "item text must be at least 2 characters")
	}

	if len(line.GLAccount) != 8 || !isDigits(line.GLAccount) {
		add("glAccount", line.GLAccount, "format", "GL account must be exactly 8 digits")
	}

	if line.TaxCode != "" {
		if len(line.TaxCode) != 2 {
			add("taxCode", line.TaxCode, "length", "tax code must be exactly 2 characters")
		} else if !catalog.IsTaxCode(line.TaxCode) {
			add("taxCode", line.TaxCode, "allowed_value", "tax code is not in the allowed set")
		} else if allowed, restricted := v.options.TaxCodeAllowlist[inv.DocumentType]; restricted && !containsString(allowed, line.TaxCode) {
			add("taxCode", line.TaxCode, "doc_type_allowlist",
				fmt.Sprintf("tax code %s is not allowed for document type %s", line.TaxCode, inv.DocumentType))
		}
	}

	// Conditional-group invariant, evaluated after the field checks and
	// reported against the line as a whole.
	if !anyGroupSatisfied(line) {
		add("", "", "conditional_group", groupErrorMessage)
	}

	return errors
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// isDigits reports whether s is non-empty and contains only ASCII decimal
// digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// containsString reports whether value is present in set.
func containsString(set []string, value string) bool {
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}

// FormatErrors formats validation errors for display or logging.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Validation found %d error(s):\n", len(errors)))
	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}
	return builder.String()
}
