package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeaderArraysAreAligned(t *testing.T) {
	// The column arrays are parallel; a length mismatch would shift every
	// label after the gap against the wrong technical key.
	assert.Equal(t, len(TechnicalHeaders), len(LabelHeaders))
}

func TestTechnicalHeadersHaveNoDuplicates(t *testing.T) {
	seen := make(map[string]int)
	for i, key := range TechnicalHeaders {
		if prev, ok := seen[key]; ok {
			t.Errorf("technical header %q appears at both %d and %d", key, prev, i)
		}
		seen[key] = i
	}
}

func TestHeaderSpotChecks(t *testing.T) {
	// A few fixed anchors of the upload contract. If one of these moves,
	// the upload maps columns to the wrong fields.
	index := make(map[string]int, len(TechnicalHeaders))
	for i, key := range TechnicalHeaders {
		index[key] = i
	}

	tests := []struct {
		key   string
		label string
	}{
		{"ID", "Identification *"},
		{"COMP_CODE", "Company Code*"},
		{"WRBTR", "Amount in Document Crcy*"},
		{"TAX_CODE", "Tax Code *"},
		{"XREF2", "Key2"},
		{"CROSS_COCODE", "Cross-Company Code"},
		{"COPA_WW090", "COPA-Group Source"},
	}

	for _, tt := range tests {
		i, ok := index[tt.key]
		if assert.True(t, ok, "missing technical header %s", tt.key) {
			assert.Equal(t, tt.label, LabelHeaders[i], "label for %s", tt.key)
		}
	}
}

func TestMandatoryColumnsAreStarred(t *testing.T) {
	mandatory := map[string]bool{
		"ID": true, "COMP_CODE": true, "DOC_DATE": true, "PSTNG_DATE": true,
		"DOC_TYPE": true, "CURRENCY": true, "WRBTR": true, "TAX_CODE": true,
	}

	for i, key := range TechnicalHeaders {
		starred := strings.HasSuffix(LabelHeaders[i], "*")
		assert.Equal(t, mandatory[key], starred, "star marker for %s (%q)", key, LabelHeaders[i])
	}
}

func TestMembershipHelpers(t *testing.T) {
	assert.True(t, IsCompanyCode("CBG1"))
	assert.False(t, IsCompanyCode("XXXX"))
	assert.False(t, IsCompanyCode("cbg1"))

	assert.True(t, IsDocumentType("DR"))
	assert.True(t, IsDocumentType("2A"))
	assert.False(t, IsDocumentType("ZZ"))

	assert.True(t, IsCurrency("EUR"))
	assert.False(t, IsCurrency("eur"))
	assert.False(t, IsCurrency("XYZ"))

	assert.True(t, IsTaxCode("S0"))
	assert.False(t, IsTaxCode("S9"))

	assert.True(t, IsRebillingTaxCode("S3"))
	assert.True(t, IsRebillingTaxCode("S4"))
	assert.False(t, IsRebillingTaxCode("S1"))
	assert.False(t, IsRebillingTaxCode(""))
}

func TestRebillingCodesAreTaxCodes(t *testing.T) {
	for _, code := range RebillingTaxCodes {
		assert.True(t, IsTaxCode(code), "rebilling code %s must be in the tax code set", code)
	}
}
