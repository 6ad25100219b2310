package domain

// TaxType selects which GST regime applies to an invoice.
type TaxType string

const (
	TaxTypeIGST     TaxType = "IGST"
	TaxTypeCGSTSGST TaxType = "CGST_SGST"
)

// ParseTaxType maps a raw string onto a known TaxType. Anything outside the
// known set falls back to IGST; the permissive default matches how historical
// invoices were produced.
func ParseTaxType(raw string) TaxType {
	switch TaxType(raw) {
	case TaxTypeIGST, TaxTypeCGSTSGST:
		return TaxType(raw)
	default:
		return TaxTypeIGST
	}
}

// Valid reports whether t is one of the known tax types.
func (t TaxType) Valid() bool {
	return t == TaxTypeIGST || t == TaxTypeCGSTSGST
}

// ArtifactFormat identifies a generated invoice artifact type.
type ArtifactFormat string

const (
	ArtifactXLSX ArtifactFormat = "xlsx"
	ArtifactPDF  ArtifactFormat = "pdf"
)
