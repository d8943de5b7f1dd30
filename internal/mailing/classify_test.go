package mailing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ginjaninja78/mailing-converter/internal/types"
)

// record builds a sanitized record from column/value pairs.
func record(pairs ...string) *types.Record {
	r := types.NewRecord()
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i], pairs[i+1])
	}
	return r
}

func TestDetectRecordType(t *testing.T) {
	tests := []struct {
		name string
		rec  *types.Record
		want types.RecordType
	}{
		{
			name: "company with contact person",
			rec: record(types.ColumnOrganization, "Acme",
				types.ColumnGivenName, "Anna", types.ColumnFamilyName, "Muster"),
			want: types.RecordCompanyPerson,
		},
		{
			name: "company only",
			rec:  record(types.ColumnOrganization, "Acme"),
			want: types.RecordCompany,
		},
		{
			name: "company with incomplete contact",
			rec:  record(types.ColumnOrganization, "Acme", types.ColumnGivenName, "Anna"),
			want: types.RecordCompany,
		},
		{
			name: "partner without own family name",
			rec: record(types.ColumnGivenName, "Anna", types.ColumnFamilyName, "Muster",
				types.ColumnPartnerGivenName, "Beat"),
			want: types.RecordPartnerIdenticalName,
		},
		{
			name: "partner with same family name",
			rec: record(types.ColumnGivenName, "Anna", types.ColumnFamilyName, "Muster",
				types.ColumnPartnerGivenName, "Beat", types.ColumnPartnerFamilyName, "Muster"),
			want: types.RecordPartnerIdenticalName,
		},
		{
			name: "partner with other family name",
			rec: record(types.ColumnGivenName, "Anna", types.ColumnFamilyName, "Muster",
				types.ColumnPartnerGivenName, "Beat", types.ColumnPartnerFamilyName, "Beispiel"),
			want: types.RecordPartner,
		},
		{
			name: "partner but own name incomplete",
			rec:  record(types.ColumnGivenName, "Anna", types.ColumnPartnerGivenName, "Beat"),
			want: types.RecordSingle,
		},
		{
			name: "whitespace organization is blank",
			rec: record(types.ColumnOrganization, "  ",
				types.ColumnGivenName, "Anna", types.ColumnFamilyName, "Muster"),
			want: types.RecordSingle,
		},
		{
			name: "empty row",
			rec:  record(),
			want: types.RecordSingle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectRecordType(tt.rec)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, DetectRecordType(tt.rec), "detection must be idempotent")
		})
	}
}

func TestDetectLang(t *testing.T) {
	tests := []struct {
		name string
		rec  *types.Record
		want types.RecordLang
	}{
		{"explicit german", record(types.ColumnLanguage, "d", types.ColumnFormalSalutation, "Madame"), types.LangGerman},
		{"explicit french", record(types.ColumnLanguage, "f"), types.LangFrench},
		{"unknown code falls through", record(types.ColumnLanguage, "i", types.ColumnFormalSalutation, "Monsieur"), types.LangFrench},
		{"french formal salutation", record(types.ColumnFormalSalutation, "Madame & Monsieur"), types.LangFrench},
		{"french informal salutation", record(types.ColumnInformalSalutation, "Chère"), types.LangFrench},
		{"german salutation", record(types.ColumnFormalSalutation, "Frau", types.ColumnInformalSalutation, "Liebe"), types.LangGerman},
		{"nothing known", record(), types.LangGerman},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLang(tt.rec))
		})
	}
}
