// =============================================================================
// QRMS Invoice Export - Field Catalog
// =============================================================================
//
// This package is the single source of truth for the static reference data
// used by the validation and row derivation engines:
//   - Allowed value sets (company codes, document types, currencies, tax codes)
//   - The export column set: technical header keys and their human-readable
//     labels, in the fixed order required by the accounting upload
//   - The mandatory field sets for invoices and line items
//
// All data in this package is immutable after process start. The column
// arrays are parallel: position i of LabelHeaders describes position i of
// TechnicalHeaders. Labels for mandatory columns carry a trailing '*'.
//
// =============================================================================

package catalog

// =============================================================================
// ALLOWED VALUE SETS
// =============================================================================

// CompanyCodes lists the company codes accepted on an invoice header.
// Company codes are exactly four characters.
var CompanyCodes = []string{
	"CBG1",
	"CBG2",
	"CBG3",
	"CBN1",
	"CBF1",
	"CBP1",
}

// DocumentTypes lists the accepted accounting document types.
// Types starting with '2', and DG, post as credit notes.
var DocumentTypes = []string{
	"DR", // customer invoice
	"DG", // customer credit memo
	"2A",
	"2B",
	"2C",
}

// Currencies lists the accepted ISO 4217 currency codes.
var Currencies = []string{
	"EUR",
	"USD",
	"GBP",
	"CHF",
	"SEK",
	"NOK",
	"DKK",
	"PLN",
	"CZK",
	"HUF",
}

// TaxCodes lists the accepted tax codes. S3 and S4 mark inter-company
// rebilling lines and require the rebilling field pair.
var TaxCodes = []string{
	"S0",
	"S1",
	"S2",
	"S3",
	"S4",
}

// RebillingTaxCodes are the tax codes that make the rebilling field group
// (cross-company code + trading partner) a blocking requirement.
var RebillingTaxCodes = []string{"S3", "S4"}

// =============================================================================
// MANDATORY FIELD SETS
// =============================================================================

// MandatoryInvoiceFields names the invoice header fields that must always
// be present.
var MandatoryInvoiceFields = []string{
	"companyCode",
	"documentType",
	"documentDate",
	"customer",
	"currency",
}

// MandatoryLineFields names the line item fields that must always be present.
// The conditional cost-object groups are checked separately.
var MandatoryLineFields = []string{
	"amount",
	"itemText",
	"glAccount",
}

// =============================================================================
// EXPORT COLUMN SET
// =============================================================================

// TechnicalHeaders contains the machine column keys of the export file in
// their fixed order. The accounting upload matches columns by these keys,
// so order and spelling must not change.
var TechnicalHeaders = []string{
	"ID",
	"LEDGER_GROUP",
	"COMP_CODE",
	"DOC_DATE",
	"PSTNG_DATE",
	"FIS_PERIOD",
	"DOC_TYPE",
	"HEADER_TXT",
	"REF_DOC_NO",
	"REASON_REV",
	"PLANNED_REV_DATE",
	"EXCH_RATE",
	"POST_KEY",
	"GL_ACCOUNT",
	"ZZALTACC",
	"CUSTOMER",
	"VENDOR_NO",
	"SP_GL_IND",
	"PMNTTRMS",
	"BLINE_DATE",
	"PMNT_BLOCK",
	"CURRENCY",
	"WRBTR",
	"DMBTR",
	"DMBE3",
	"TAX_CODE",
	"ALLOC_NMBR",
	"ITEM_TEXT",
	"XREF2",
	"TRADE_ID",
	"COSTCENTER",
	"FKBER",
	"PROFIT_CTR",
	"WBS_ELEMENT",
	"ORDERID",
	"PERSON_NO",
	"QUANTITY",
	"BASE_UOM",
	"MATERIAL",
	"PLANT",
	"CROSS_COCODE",
	"COCO_NUM",
	"COPA_PRCTR",
	"COPA_WW050",
	"COPA_VKORG",
	"COPA_KMVKBU",
	"COPA_WERKS",
	"COPA_WW110",
	"COPA_KNDNR",
	"COPA_KDGRP",
	"COPA_WW210",
	"COPA_KUNRG",
	"COPA_ARTNR",
	"COPA_WW040",
	"COPA_WW080",
	"COPA_MATKL",
	"COPA_EXTWG",
	"COPA_WW010",
	"COPA_WW020",
	"COPA_WW030",
	"COPA_WW070",
	"COPA_WW100",
	"COPA_AUGRU",
	"COPA_ZZLUR",
	"COPA_WW090",
}

// LabelHeaders contains the human-readable labels for the export columns,
// index-aligned with TechnicalHeaders. Mandatory columns are marked with a
// trailing '*'.
var LabelHeaders = []string{
	"Identification *",
	"Ledger",
	"Company Code*",
	"Document date*",
	"Posting date*",
	"Fiscal Period",
	"Doc type*",
	"Header text",
	"Reference",
	"Reason for reversal",
	"Reverse Posting Date",
	"Exchange rate",
	"Posting Key",
	"GL Account",
	"Local Alt account",
	"Customer",
	"Vendor",
	"Special G/L Indicator",
	"Payment terms",
	"Baseline Date",
	"Payment block",
	"Currency*",
	"Amount in Document Crcy*",
	"Amount in Local Crcy",
	"Grp cur./GpVal",
	"Tax Code *",
	"Assignment No.",
	"Item Text",
	"Key2",
	"Trading Partner",
	"Cost Center",
	"Functional Area",
	"Profit center",
	"WBS Element",
	"Internal Order",
	"Personnel Number",
	"Quantity",
	"Unit of Measure",
	"Material",
	"Plant",
	"Cross-Company Code",
	"Condition Contract",
	"COPA-Profit Center",
	"COPA-BRS Channel",
	"COPA-Sales Organization",
	"COPA-Sales Office",
	"COPA-Plant",
	"COPA-Valuation Type",
	"COPA-Customer",
	"COPA-Customer Group",
	"COPA-Group Key Account",
	"COPA-Payer",
	"COPA-Product",
	"COPA-Product Group",
	"COPA-Req/stock Segment",
	"COPA-Material Group",
	"COPA-Ext. Material Group",
	"COPA-Rim Diameter",
	"COPA-Pattern Code",
	"COPA-Season",
	"COPA-Group Brand",
	"COPA-Europool",
	"COPA-Order Reason",
	"COPA-Third Party Vendor",
	"COPA-Group Source",
}

// =============================================================================
// MEMBERSHIP HELPERS
// =============================================================================

// contains reports whether value is present in set.
func contains(set []string, value string) bool {
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}

// IsCompanyCode reports whether code is an allowed company code.
func IsCompanyCode(code string) bool { return contains(CompanyCodes, code) }

// IsDocumentType reports whether docType is an allowed document type.
func IsDocumentType(docType string) bool { return contains(DocumentTypes, docType) }

// IsCurrency reports whether currency is an allowed currency code.
func IsCurrency(currency string) bool { return contains(Currencies, currency) }

// IsTaxCode reports whether taxCode is an allowed tax code.
func IsTaxCode(taxCode string) bool { return contains(TaxCodes, taxCode) }

// IsRebillingTaxCode reports whether taxCode marks an inter-company
// rebilling line.
func IsRebillingTaxCode(taxCode string) bool { return contains(RebillingTaxCodes, taxCode) }
