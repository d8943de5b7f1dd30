package mailing

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ginjaninja78/mailing-converter/internal/types"
)

// =============================================================================
// GREETING TABLE
// =============================================================================
// Each (record type, language) pair owns an ordered decision list. A rule
// applies when every column it requires is non-blank; the last rule of every
// list requires nothing and is the generic greeting. The templates are
// user-facing copy.
//
// PLACEHOLDERS:
//   {org} {given} {family} {formal} {informal}
//   {partnerGiven} {partnerFamily} {partnerFormal}
//   {partnerInformal}   partner's informal salutation, lower-cased

type greetingRule struct {
	requires []string
	template string
}

type greetingKey struct {
	recordType types.RecordType
	lang       types.RecordLang
}

type greetingTable map[greetingKey][]greetingRule

const (
	colOrg             = types.ColumnOrganization
	colGiven           = types.ColumnGivenName
	colFamily          = types.ColumnFamilyName
	colFormal          = types.ColumnFormalSalutation
	colInformal        = types.ColumnInformalSalutation
	colPartnerGiven    = types.ColumnPartnerGivenName
	colPartnerFamily   = types.ColumnPartnerFamilyName
	colPartnerFormal   = types.ColumnPartnerFormalSalutation
	colPartnerInformal = types.ColumnPartnerInformalSalutation
)

func rule(template string, requires ...string) greetingRule {
	return greetingRule{requires: requires, template: template}
}

var (
	informalPersonDE = []greetingRule{
		rule("{informal} {given}", colGiven, colInformal),
		rule("Hallo {given}", colGiven),
		rule("Guten Tag"),
	}
	informalPersonFR = []greetingRule{
		rule("{informal} {given},", colGiven, colInformal),
		rule("Bonjour,"),
	}
	informalPartnerDE = []greetingRule{
		rule("{informal} {given}, {partnerInformal} {partnerGiven}", colGiven, colInformal, colPartnerGiven, colPartnerInformal),
		rule("Hallo {given} & {partnerGiven}", colGiven, colPartnerGiven),
		rule("Guten Tag"),
	}
	informalPartnerFR = []greetingRule{
		rule("{informal} {given}, {partnerInformal} {partnerGiven},", colGiven, colInformal, colPartnerGiven, colPartnerInformal),
		rule("Chers {given} & {partnerGiven},", colGiven, colPartnerGiven),
		rule("Bonjour,"),
	}

	formalPartnerDE = []greetingRule{
		rule("{informal} {formal} {family}, {partnerInformal} {partnerFormal} {partnerFamily}",
			colFamily, colInformal, colFormal, colPartnerFamily, colPartnerInformal, colPartnerFormal),
		rule("Guten Tag {given} {family} & {partnerGiven} {partnerFamily}",
			colGiven, colPartnerGiven, colPartnerFamily, colFamily),
		rule("Guten Tag"),
	}
	formalPartnerFR = []greetingRule{
		rule("{informal} {formal} {family}, {partnerInformal} {partnerFormal} {partnerFamily},",
			colFamily, colInformal, colFormal, colPartnerFamily, colPartnerInformal, colPartnerFormal),
		rule("Bonjour {given} {family} & {partnerGiven} {partnerFamily},",
			colGiven, colPartnerGiven, colPartnerFamily, colFamily),
		rule("Mesdames et Messieurs,"),
	}
)

var informalGreetings = greetingTable{
	{types.RecordCompanyPerson, types.LangGerman}: informalPersonDE,
	{types.RecordCompanyPerson, types.LangFrench}: informalPersonFR,
	{types.RecordCompany, types.LangGerman}: {
		rule("Hallo {org}", colOrg),
		rule("Guten Tag"),
	},
	{types.RecordCompany, types.LangFrench}: {
		rule("Bonjour,"),
	},
	{types.RecordPartnerIdenticalName, types.LangGerman}: informalPartnerDE,
	{types.RecordPartnerIdenticalName, types.LangFrench}: informalPartnerFR,
	{types.RecordPartner, types.LangGerman}:              informalPartnerDE,
	{types.RecordPartner, types.LangFrench}:              informalPartnerFR,
	{types.RecordSingle, types.LangGerman}:               informalPersonDE,
	{types.RecordSingle, types.LangFrench}:               informalPersonFR,
}

var formalGreetings = greetingTable{
	{types.RecordCompanyPerson, types.LangGerman}: {
		rule("{informal} {formal} {family}", colFamily, colFormal, colInformal),
		rule("Guten Tag {given} {family}", colGiven, colFamily),
		rule("Sehr geehrte Damen und Herren"),
	},
	{types.RecordCompanyPerson, types.LangFrench}: {
		rule("{formal} {family},", colFamily, colFormal),
		rule("Mesdames et Messieurs,"),
	},
	{types.RecordCompany, types.LangGerman}: {
		rule("Sehr geehrte Damen und Herren"),
	},
	{types.RecordCompany, types.LangFrench}: {
		rule("Mesdames et Messieurs,"),
	},
	{types.RecordPartnerIdenticalName, types.LangGerman}: formalPartnerDE,
	{types.RecordPartnerIdenticalName, types.LangFrench}: formalPartnerFR,
	{types.RecordPartner, types.LangGerman}:              formalPartnerDE,
	{types.RecordPartner, types.LangFrench}:              formalPartnerFR,
	{types.RecordSingle, types.LangGerman}: {
		rule("{informal} {formal} {family}", colFamily, colFormal, colInformal),
		rule("Guten Tag {given} {family}", colFamily, colGiven),
		rule("Guten Tag"),
	},
	{types.RecordSingle, types.LangFrench}: {
		rule("{informal} {formal} {family},", colFamily, colFormal, colInformal),
		rule("Bonjour,"),
	},
}

// =============================================================================
// GREETING FUNCTIONS
// =============================================================================

// InformalGreeting returns the first-name greeting of a row.
func InformalGreeting(r *types.Record, t types.RecordType, lang types.RecordLang) string {
	return informalGreetings.render(r, t, lang)
}

// FormalGreeting returns the surname greeting of a row.
func FormalGreeting(r *types.Record, t types.RecordType, lang types.RecordLang) string {
	return formalGreetings.render(r, t, lang)
}

func (g greetingTable) render(r *types.Record, t types.RecordType, lang types.RecordLang) string {
	for _, rl := range g[greetingKey{t, lang}] {
		if rl.applies(r) {
			return placeholders(r, lang).Replace(rl.template)
		}
	}
	return ""
}

func (rl greetingRule) applies(r *types.Record) bool {
	for _, column := range rl.requires {
		if r.IsBlank(column) {
			return false
		}
	}
	return true
}

// placeholders builds the substitutions for one row. The caser is created per
// call because cases.Caser is not safe for concurrent use.
func placeholders(r *types.Record, lang types.RecordLang) *strings.Replacer {
	tag := language.German
	if lang == types.LangFrench {
		tag = language.French
	}

	return strings.NewReplacer(
		"{org}", r.Organization,
		"{given}", r.GivenName,
		"{family}", r.FamilyName,
		"{formal}", r.FormalSalutation,
		"{informal}", r.InformalSalutation,
		"{partnerGiven}", r.PartnerGivenName,
		"{partnerFamily}", r.PartnerFamilyName,
		"{partnerFormal}", r.PartnerFormalSalutation,
		"{partnerInformal}", cases.Lower(tag).String(r.PartnerInformalSalutation),
	)
}
