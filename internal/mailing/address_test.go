package mailing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ginjaninja78/mailing-converter/internal/types"
)

func TestFirstAddressLine(t *testing.T) {
	tests := []struct {
		name   string
		rec    *types.Record
		typ    types.RecordType
		want   string
		wantOK bool
	}{
		{"company person", record(types.ColumnOrganization, "Acme"), types.RecordCompanyPerson, "Acme", true},
		{"company person without organization", record(), types.RecordCompanyPerson, "", false},
		{"company", record(types.ColumnOrganization, "Acme", types.ColumnFormalSalutation, "Frau"), types.RecordCompany, "", false},
		{
			"partner both salutations",
			record(types.ColumnFormalSalutation, "Frau", types.ColumnPartnerFormalSalutation, "Herr"),
			types.RecordPartner, "Frau & Herr", true,
		},
		{
			"partner identical name both salutations",
			record(types.ColumnFormalSalutation, "Madame", types.ColumnPartnerFormalSalutation, "Monsieur"),
			types.RecordPartnerIdenticalName, "Madame & Monsieur", true,
		},
		{"partner one salutation", record(types.ColumnFormalSalutation, "Frau"), types.RecordPartner, "", false},
		{"single", record(types.ColumnFormalSalutation, "Herr"), types.RecordSingle, "Herr", true},
		{"single blank salutation", record(types.ColumnFormalSalutation, " "), types.RecordSingle, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FirstAddressLine(tt.rec, tt.typ)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSecondAddressLine(t *testing.T) {
	full := record(
		types.ColumnOrganization, "Acme",
		types.ColumnGivenName, "Anna",
		types.ColumnFamilyName, "Muster",
		types.ColumnPartnerGivenName, "Beat",
		types.ColumnPartnerFamilyName, "Beispiel",
	)

	tests := []struct {
		name string
		rec  *types.Record
		typ  types.RecordType
		want string
	}{
		{"company person", full, types.RecordCompanyPerson, "Anna Muster"},
		{"company", full, types.RecordCompany, "Acme"},
		{"partner identical name", full, types.RecordPartnerIdenticalName, "Anna & Beat Muster"},
		{"partner", full, types.RecordPartner, "Anna Muster & Beat Beispiel"},
		{"single", full, types.RecordSingle, "Anna Muster"},
		{"single without given name", record(types.ColumnFamilyName, "Muster"), types.RecordSingle, "Muster"},
		{"company without organization", record(), types.RecordCompany, ""},
		{"partner with missing names", record(types.ColumnGivenName, "Anna"), types.RecordPartner, "Anna  &  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SecondAddressLine(tt.rec, tt.typ))
		})
	}
}
