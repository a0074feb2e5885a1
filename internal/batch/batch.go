// =============================================================================
// QRMS Invoice Export - Batch Model
// =============================================================================
//
// This package defines the in-memory model for an invoice batch: the QRMS
// reference plus a list of invoices, each carrying header fields and line
// items. The model is shared by the validation engine, the row derivation
// engine, and the exporter, and mirrors the batch documents users submit.
//
// OWNERSHIP:
//   The Batch is the sole top-level aggregate. Invoices belong exclusively
//   to their Batch and line items to their Invoice; positions within the
//   slices are the only identifiers the export needs.
//
// =============================================================================

package batch

// Batch is a single export request: one QRMS reference covering one or
// more invoices.
type Batch struct {
	// Reference is the QRMS reference propagated into the export file
	// (REF_DOC_NO and ALLOC_NMBR columns, prefixed with "QRMS ").
	Reference string `yaml:"reference" json:"reference"`

	// Invoices are exported in order; an invoice's 1-based position is its
	// identification number in the export file.
	Invoices []Invoice `yaml:"invoices" json:"invoices"`
}

// Invoice carries the header fields shared by all rows of one invoice.
type Invoice struct {
	// CompanyCode is the four-character posting company code.
	CompanyCode string `yaml:"company_code" json:"companyCode"`

	// DocumentType is the two-character accounting document type. Types
	// starting with '2', and DG, post as credit notes.
	DocumentType string `yaml:"document_type" json:"documentType"`

	// DocumentDate is the invoice date as entered, typically YYYY-MM-DD.
	DocumentDate string `yaml:"document_date" json:"documentDate"`

	// Customer is the customer account number (digits only).
	Customer string `yaml:"customer" json:"customer"`

	// Currency is the three-character document currency.
	Currency string `yaml:"currency" json:"currency"`

	// HeaderText is optional free text for the summary row.
	HeaderText string `yaml:"header_text,omitempty" json:"headerText,omitempty"`

	// Lines are the invoice's line items, exported in order.
	Lines []LineItem `yaml:"lines" json:"lines"`
}

// LineItem is a single posting line. Besides the always-required fields
// (amount, item text, GL account) it carries the conditional cost-object
// groups; at least one group must be fully populated for the line to be
// valid (see the validation package).
type LineItem struct {
	// Amount is the line amount in document currency. Always entered as a
	// positive number; the sign in the export follows the posting key.
	Amount float64 `yaml:"amount" json:"amount"`

	// ItemText is the posting line text.
	ItemText string `yaml:"item_text" json:"itemText"`

	// GLAccount is the eight-digit general ledger account.
	GLAccount string `yaml:"gl_account" json:"glAccount"`

	// TaxCode is optional; S3 and S4 mark inter-company rebilling lines.
	TaxCode string `yaml:"tax_code,omitempty" json:"taxCode,omitempty"`

	// COPA group. The six fields below (product group included, product
	// excluded) are required together.
	COPAProfitCenter      string `yaml:"copa_profit_center,omitempty" json:"copaProfitCenter,omitempty"`
	COPABRSChannel        string `yaml:"copa_brs_channel,omitempty" json:"copaBRSChannel,omitempty"`
	COPASalesOrganization string `yaml:"copa_sales_organization,omitempty" json:"copaSalesOrganization,omitempty"`
	COPASalesOffice       string `yaml:"copa_sales_office,omitempty" json:"copaSalesOffice,omitempty"`
	COPACustomer          string `yaml:"copa_customer,omitempty" json:"copaCustomer,omitempty"`
	COPAProductGroup      string `yaml:"copa_product_group,omitempty" json:"copaProductGroup,omitempty"`

	// COPAProduct is the only optional member of the COPA group.
	COPAProduct string `yaml:"copa_product,omitempty" json:"copaProduct,omitempty"`

	// Rebilling group, required together when the tax code is S3 or S4.
	CrossCompanyCode string `yaml:"cross_company_code,omitempty" json:"crossCompanyCode,omitempty"`
	TradingPartner   string `yaml:"trading_partner,omitempty" json:"tradingPartner,omitempty"`

	// Singleton cost objects; any one of them alone satisfies the line's
	// conditional requirement.
	ProfitCenter string `yaml:"profit_center,omitempty" json:"profitCenter,omitempty"`
	CostCenter   string `yaml:"cost_center,omitempty" json:"costCenter,omitempty"`
	WBSElement   string `yaml:"wbs_element,omitempty" json:"wbsElement,omitempty"`
}

// COPAComplete reports whether all six required COPA fields are present.
func (l *LineItem) COPAComplete() bool {
	return l.COPAProfitCenter != "" &&
		l.COPABRSChannel != "" &&
		l.COPASalesOrganization != "" &&
		l.COPASalesOffice != "" &&
		l.COPACustomer != "" &&
		l.COPAProductGroup != ""
}

// RebillingComplete reports whether both rebilling fields are present.
func (l *LineItem) RebillingComplete() bool {
	return l.CrossCompanyCode != "" && l.TradingPartner != ""
}
