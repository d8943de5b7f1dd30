package mailing

import (
	"strings"

	"github.com/ginjaninja78/mailing-converter/internal/types"
)

// FirstAddressLine returns the line printed above the names: the company for
// a contact person, the salutation(s) otherwise. The bool is false when the
// line is absent.
func FirstAddressLine(r *types.Record, t types.RecordType) (string, bool) {
	switch t {
	case types.RecordCompanyPerson:
		if r.IsBlank(types.ColumnOrganization) {
			return "", false
		}
		return r.Organization, true

	case types.RecordCompany:
		return "", false

	case types.RecordPartnerIdenticalName, types.RecordPartner:
		if r.IsBlank(types.ColumnFormalSalutation) || r.IsBlank(types.ColumnPartnerFormalSalutation) {
			return "", false
		}
		return r.FormalSalutation + " & " + r.PartnerFormalSalutation, true

	default:
		if r.IsBlank(types.ColumnFormalSalutation) {
			return "", false
		}
		return r.FormalSalutation, true
	}
}

// SecondAddressLine returns the name line. Missing names count as empty
// strings.
func SecondAddressLine(r *types.Record, t types.RecordType) string {
	switch t {
	case types.RecordCompany:
		return r.Organization

	case types.RecordPartnerIdenticalName:
		return strings.TrimSpace(r.GivenName + " & " + r.PartnerGivenName + " " + r.FamilyName)

	case types.RecordPartner:
		return r.GivenName + " " + r.FamilyName + " & " + r.PartnerGivenName + " " + r.PartnerFamilyName

	default:
		// company_person and single
		return strings.TrimSpace(r.GivenName + " " + r.FamilyName)
	}
}
