package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlDocument = `reference: AB12
invoices:
  - company_code: CBG1
    document_type: DR
    document_date: "2024-01-15"
    customer: "1234567"
    currency: EUR
    header_text: January services
    lines:
      - amount: 100.5
        item_text: Service fee
        gl_account: "12345678"
        tax_code: S1
        profit_center: PC100
`

const jsonDocument = `{
  "reference": "AB12",
  "invoices": [
    {
      "companyCode": "CBG1",
      "documentType": "DR",
      "documentDate": "2024-01-15",
      "customer": "1234567",
      "currency": "EUR",
      "lines": [
        {
          "amount": 100.5,
          "itemText": "Service fee",
          "glAccount": "12345678",
          "taxCode": "S1",
          "profitCenter": "PC100"
        }
      ]
    }
  ]
}`

func writeDocument(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func assertLoadedBatch(t *testing.T, b *Batch) {
	t.Helper()
	assert.Equal(t, "AB12", b.Reference)
	require.Len(t, b.Invoices, 1)

	inv := b.Invoices[0]
	assert.Equal(t, "CBG1", inv.CompanyCode)
	assert.Equal(t, "DR", inv.DocumentType)
	assert.Equal(t, "2024-01-15", inv.DocumentDate)
	assert.Equal(t, "1234567", inv.Customer)
	assert.Equal(t, "EUR", inv.Currency)

	require.Len(t, inv.Lines, 1)
	line := inv.Lines[0]
	assert.Equal(t, 100.5, line.Amount)
	assert.Equal(t, "Service fee", line.ItemText)
	assert.Equal(t, "12345678", line.GLAccount)
	assert.Equal(t, "S1", line.TaxCode)
	assert.Equal(t, "PC100", line.ProfitCenter)
}

func TestLoadYAML(t *testing.T) {
	path := writeDocument(t, "batch.yaml", yamlDocument)

	b, err := Load(path)
	require.NoError(t, err)
	assertLoadedBatch(t, b)
}

func TestLoadYMLExtension(t *testing.T) {
	path := writeDocument(t, "batch.yml", yamlDocument)

	b, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "AB12", b.Reference)
}

func TestLoadJSON(t *testing.T) {
	path := writeDocument(t, "batch.json", jsonDocument)

	b, err := Load(path)
	require.NoError(t, err)
	assertLoadedBatch(t, b)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeDocument(t, "batch.csv", "not a batch")
		_, err := Load(path)
		assert.ErrorContains(t, err, "unsupported batch document extension")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeDocument(t, "batch.yaml", "reference: [unclosed")
		_, err := Load(path)
		assert.ErrorContains(t, err, "failed to parse batch document")
	})

	t.Run("malformed json", func(t *testing.T) {
		path := writeDocument(t, "batch.json", "{")
		_, err := Load(path)
		assert.ErrorContains(t, err, "failed to parse batch document")
	})
}

func TestLoadDoesNotValidate(t *testing.T) {
	// Decodability is the loader's only concern; rule violations are the
	// validation engine's job.
	path := writeDocument(t, "batch.yaml", "reference: X\ninvoices: []\n")

	b, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "X", b.Reference)
	assert.Empty(t, b.Invoices)
}

func TestIsBatchDocument(t *testing.T) {
	assert.True(t, IsBatchDocument("input/batch.yaml"))
	assert.True(t, IsBatchDocument("input/batch.yml"))
	assert.True(t, IsBatchDocument("input/batch.json"))
	assert.True(t, IsBatchDocument("input/BATCH.YAML"))
	assert.False(t, IsBatchDocument("input/batch.csv"))
	assert.False(t, IsBatchDocument("input/batch"))
}

func TestGroupCompleteness(t *testing.T) {
	l := LineItem{
		COPAProfitCenter:      "PC100",
		COPABRSChannel:        "CH1",
		COPASalesOrganization: "SO01",
		COPASalesOffice:       "OF01",
		COPACustomer:          "1234567",
		COPAProductGroup:      "PG01",
	}
	assert.True(t, l.COPAComplete())

	// COPAProduct is the only optional member of the group.
	l.COPAProduct = "PROD-9"
	assert.True(t, l.COPAComplete())

	l.COPACustomer = ""
	assert.False(t, l.COPAComplete())

	r := LineItem{CrossCompanyCode: "CBG2", TradingPartner: "TP01"}
	assert.True(t, r.RebillingComplete())
	r.TradingPartner = ""
	assert.False(t, r.RebillingComplete())
}
