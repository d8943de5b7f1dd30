package types

import "strings"

// =============================================================================
// RECORD
// =============================================================================

// Record is a sanitized row: every known column as a trimmed string, plus the
// set of columns the source row actually carried. Both invoice dialects map
// onto the same Invoice fields; presence is tracked per header text, so a
// lookup by the other dialect's header reports the column as absent.
type Record struct {
	Organization              string
	GivenName                 string
	FamilyName                string
	Language                  string
	Gender                    string
	FormalSalutation          string
	InformalSalutation        string
	Title                     string
	Street                    string
	AddressSupplement         string
	PostalCode                string
	Locality                  string
	Country                   string
	CoupleCategory            string
	PartnerFormalSalutation   string
	PartnerInformalSalutation string
	PartnerGivenName          string
	PartnerFamilyName         string
	Email1                    string
	Email2                    string
	MemberID                  string

	Invoice Invoice

	present map[string]struct{}
}

// Invoice holds the accounting columns of an invoicing export.
type Invoice struct {
	Status     string
	Created    string
	Title      string
	Amount     string
	Balance    string
	DocumentNo string
	ID         string
}

// recordFields resolves a header to the field that stores it.
var recordFields = map[string]func(*Record) *string{
	ColumnOrganization:              func(r *Record) *string { return &r.Organization },
	ColumnGivenName:                 func(r *Record) *string { return &r.GivenName },
	ColumnFamilyName:                func(r *Record) *string { return &r.FamilyName },
	ColumnLanguage:                  func(r *Record) *string { return &r.Language },
	ColumnGender:                    func(r *Record) *string { return &r.Gender },
	ColumnFormalSalutation:          func(r *Record) *string { return &r.FormalSalutation },
	ColumnInformalSalutation:        func(r *Record) *string { return &r.InformalSalutation },
	ColumnTitle:                     func(r *Record) *string { return &r.Title },
	ColumnStreet:                    func(r *Record) *string { return &r.Street },
	ColumnAddressSupplement:         func(r *Record) *string { return &r.AddressSupplement },
	ColumnPostalCode:                func(r *Record) *string { return &r.PostalCode },
	ColumnLocality:                  func(r *Record) *string { return &r.Locality },
	ColumnCountry:                   func(r *Record) *string { return &r.Country },
	ColumnCoupleCategory:            func(r *Record) *string { return &r.CoupleCategory },
	ColumnPartnerFormalSalutation:   func(r *Record) *string { return &r.PartnerFormalSalutation },
	ColumnPartnerInformalSalutation: func(r *Record) *string { return &r.PartnerInformalSalutation },
	ColumnPartnerGivenName:          func(r *Record) *string { return &r.PartnerGivenName },
	ColumnPartnerFamilyName:         func(r *Record) *string { return &r.PartnerFamilyName },
	ColumnEmail1:                    func(r *Record) *string { return &r.Email1 },
	ColumnEmail2:                    func(r *Record) *string { return &r.Email2 },
	ColumnMemberID:                  func(r *Record) *string { return &r.MemberID },

	ColumnInvoiceStatusDE:     func(r *Record) *string { return &r.Invoice.Status },
	ColumnInvoiceCreatedDE:    func(r *Record) *string { return &r.Invoice.Created },
	ColumnInvoiceTitleDE:      func(r *Record) *string { return &r.Invoice.Title },
	ColumnInvoiceAmountDE:     func(r *Record) *string { return &r.Invoice.Amount },
	ColumnInvoiceBalanceDE:    func(r *Record) *string { return &r.Invoice.Balance },
	ColumnInvoiceDocumentNoDE: func(r *Record) *string { return &r.Invoice.DocumentNo },
	ColumnInvoiceIDDE:         func(r *Record) *string { return &r.Invoice.ID },

	ColumnInvoiceStatusFR:     func(r *Record) *string { return &r.Invoice.Status },
	ColumnInvoiceCreatedFR:    func(r *Record) *string { return &r.Invoice.Created },
	ColumnInvoiceTitleFR:      func(r *Record) *string { return &r.Invoice.Title },
	ColumnInvoiceAmountFR:     func(r *Record) *string { return &r.Invoice.Amount },
	ColumnInvoiceBalanceFR:    func(r *Record) *string { return &r.Invoice.Balance },
	ColumnInvoiceDocumentNoFR: func(r *Record) *string { return &r.Invoice.DocumentNo },
	ColumnInvoiceIDFR:         func(r *Record) *string { return &r.Invoice.ID },
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{present: make(map[string]struct{})}
}

// IsRecordColumn reports whether the header is a base or invoice column.
func IsRecordColumn(column string) bool {
	_, ok := recordFields[column]
	return ok
}

// Set stores a value for a known column and marks it present. Unknown
// columns are ignored and reported with false.
func (r *Record) Set(column, value string) bool {
	field, ok := recordFields[column]
	if !ok {
		return false
	}
	if r.present == nil {
		r.present = make(map[string]struct{})
	}
	*field(r) = value
	r.present[column] = struct{}{}
	return true
}

// Get returns the value of a column and whether the row carried it.
func (r *Record) Get(column string) (string, bool) {
	if !r.Has(column) {
		return "", false
	}
	return *recordFields[column](r), true
}

// Has reports whether the row carried the column.
func (r *Record) Has(column string) bool {
	_, ok := r.present[column]
	return ok
}

// IsBlank is the single emptiness test used by classification and greeting
// rules: a column is blank when it is absent or holds only whitespace.
func (r *Record) IsBlank(column string) bool {
	v, ok := r.Get(column)
	return !ok || strings.TrimSpace(v) == ""
}

// =============================================================================
// OUTPUT ROW
// =============================================================================

// Generated holds the columns derived by the mailing engine. Nil pointers are
// absent values and are written as empty cells.
type Generated struct {
	AddressLine1     *string
	AddressLine2     string
	GreetingInformal string
	GreetingFormal   string

	// Account and Reference are only set for invoicing runs.
	Account   *string
	Reference *string
}

// OutputRow is a sanitized record merged with its generated columns.
type OutputRow struct {
	Type   RecordType
	Lang   RecordLang
	Record *Record
	Generated
}

// Value returns the cell for an output column and whether it is present.
// Generated columns take precedence over same-named input columns.
func (o OutputRow) Value(column string) (string, bool) {
	switch column {
	case ColumnAddressLine1:
		return deref(o.AddressLine1)
	case ColumnAddressLine2:
		return o.AddressLine2, true
	case ColumnGreetingInformal:
		return o.GreetingInformal, true
	case ColumnGreetingFormal:
		return o.GreetingFormal, true
	case ColumnAccount:
		return deref(o.Account)
	case ColumnReference:
		return deref(o.Reference)
	}
	if o.Record == nil {
		return "", false
	}
	return o.Record.Get(column)
}

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}
