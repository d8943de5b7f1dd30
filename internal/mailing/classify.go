package mailing

import (
	"github.com/ginjaninja78/mailing-converter/internal/types"
)

// frenchFormalSalutations and frenchInformalSalutations identify French rows
// whose language column is empty or unknown.
var (
	frenchFormalSalutations   = []string{"Madame", "Monsieur", "Madame & Monsieur"}
	frenchInformalSalutations = []string{"Chère", "Cher", "Chères & Chers"}
)

// DetectRecordType classifies a row. The rules are evaluated in priority
// order and the first match wins, so a company row with a complete contact
// person is always company_person.
func DetectRecordType(r *types.Record) types.RecordType {
	hasOrg := !r.IsBlank(types.ColumnOrganization)
	hasGiven := !r.IsBlank(types.ColumnGivenName)
	hasFamily := !r.IsBlank(types.ColumnFamilyName)
	hasPartnerGiven := !r.IsBlank(types.ColumnPartnerGivenName)
	hasPartnerFamily := !r.IsBlank(types.ColumnPartnerFamilyName)

	switch {
	case hasOrg && hasGiven && hasFamily:
		return types.RecordCompanyPerson
	case hasOrg:
		return types.RecordCompany
	case hasPartnerGiven && !hasPartnerFamily && hasGiven && hasFamily:
		return types.RecordPartnerIdenticalName
	case hasPartnerGiven && hasPartnerFamily && hasGiven && hasFamily:
		if r.PartnerFamilyName == r.FamilyName {
			return types.RecordPartnerIdenticalName
		}
		return types.RecordPartner
	default:
		return types.RecordSingle
	}
}

// DetectLang returns the explicit language of a row, falls back to French
// when a salutation is French, and defaults to German.
func DetectLang(r *types.Record) types.RecordLang {
	if !r.IsBlank(types.ColumnLanguage) {
		switch lang := types.RecordLang(r.Language); lang {
		case types.LangGerman, types.LangFrench:
			return lang
		}
	}

	if !r.IsBlank(types.ColumnFormalSalutation) && contains(frenchFormalSalutations, r.FormalSalutation) {
		return types.LangFrench
	}

	if !r.IsBlank(types.ColumnInformalSalutation) && contains(frenchInformalSalutations, r.InformalSalutation) {
		return types.LangFrench
	}

	return types.LangGerman
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
