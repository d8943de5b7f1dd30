// =============================================================================
// Mailing Converter - Column Definitions
// =============================================================================
//
// Column headers of the membership export and of the generated mailing sheet.
// The header texts are bilingual (German / French) exactly as the membership
// administration exports them; they are matched byte for byte after NFC
// normalization.
//
// =============================================================================

package types

// =============================================================================
// BASE COLUMNS
// =============================================================================

const (
	ColumnOrganization              = "Firma / organisation"
	ColumnGivenName                 = "Vorname / prénom"
	ColumnFamilyName                = "Name / nom"
	ColumnLanguage                  = "Sprache / langue"
	ColumnGender                    = "Geschlecht / genre"
	ColumnFormalSalutation          = "Anrede / appel (formel)"
	ColumnInformalSalutation        = "Anrede / appel (informel)"
	ColumnTitle                     = "Titel / titre"
	ColumnStreet                    = "Strasse / rue"
	ColumnAddressSupplement         = "Adresszusatz / complément d’adresse"
	ColumnPostalCode                = "PLZ / code postal"
	ColumnLocality                  = "Ort / localité"
	ColumnCountry                   = "Land / pays"
	ColumnCoupleCategory            = "Paar-Kategorie / type de couple"
	ColumnPartnerFormalSalutation   = "Partnerin-Anrede / appel de la partenaire (formel)"
	ColumnPartnerInformalSalutation = "Partnerin-Anrede / appel de la partenaire (informel)"
	ColumnPartnerGivenName          = "Wohnt mit (Vorname) / habite avec (prénom)"
	ColumnPartnerFamilyName         = "Wohnt mit (Name) / habite avec (nom)"
	ColumnEmail1                    = "E-Mail / courriel 1"
	ColumnEmail2                    = "E-Mail / courriel 2"
	ColumnMemberID                  = "Mitglieder ID / n° de membre"
)

// BaseColumns must all be present in every sheet, in this canonical order.
var BaseColumns = []string{
	ColumnOrganization,
	ColumnGivenName,
	ColumnFamilyName,
	ColumnLanguage,
	ColumnGender,
	ColumnFormalSalutation,
	ColumnInformalSalutation,
	ColumnTitle,
	ColumnStreet,
	ColumnAddressSupplement,
	ColumnPostalCode,
	ColumnLocality,
	ColumnCountry,
	ColumnCoupleCategory,
	ColumnPartnerFormalSalutation,
	ColumnPartnerInformalSalutation,
	ColumnPartnerGivenName,
	ColumnPartnerFamilyName,
	ColumnEmail1,
	ColumnEmail2,
	ColumnMemberID,
}

// =============================================================================
// INVOICE COLUMNS
// =============================================================================
// The accounting export exists in two header dialects with identical
// semantics. A sheet carries one dialect in full, or none.

const (
	ColumnInvoiceStatusDE     = "Status"
	ColumnInvoiceCreatedDE    = "Erstellt am"
	ColumnInvoiceTitleDE      = "Titel"
	ColumnInvoiceAmountDE     = "Betrag"
	ColumnInvoiceBalanceDE    = "Restbetrag"
	ColumnInvoiceDocumentNoDE = "Beleg Nr."
	ColumnInvoiceIDDE         = "Rechnungs ID"

	ColumnInvoiceStatusFR     = "Statut"
	ColumnInvoiceCreatedFR    = "créé le"
	ColumnInvoiceTitleFR      = "Titre"
	ColumnInvoiceAmountFR     = "montant"
	ColumnInvoiceBalanceFR    = "solde"
	ColumnInvoiceDocumentNoFR = "pièce comptable n°"
	ColumnInvoiceIDFR         = "n° (ID) de la facture"
)

// InvoiceColumnsDE is the German invoice dialect.
var InvoiceColumnsDE = []string{
	ColumnInvoiceStatusDE,
	ColumnInvoiceCreatedDE,
	ColumnInvoiceTitleDE,
	ColumnInvoiceAmountDE,
	ColumnInvoiceBalanceDE,
	ColumnInvoiceDocumentNoDE,
	ColumnInvoiceIDDE,
}

// InvoiceColumnsFR is the French invoice dialect.
var InvoiceColumnsFR = []string{
	ColumnInvoiceStatusFR,
	ColumnInvoiceCreatedFR,
	ColumnInvoiceTitleFR,
	ColumnInvoiceAmountFR,
	ColumnInvoiceBalanceFR,
	ColumnInvoiceDocumentNoFR,
	ColumnInvoiceIDFR,
}

// =============================================================================
// GENERATED COLUMNS
// =============================================================================

const (
	ColumnAddressLine1     = "Adressline 1"
	ColumnAddressLine2     = "Adressline 2"
	ColumnGreetingInformal = "Greeting informal"
	ColumnGreetingFormal   = "Greeting formal"
	ColumnAccount          = "Account"
	ColumnReference        = "Reference"
)

// GeneratedColumns are computed for every row.
var GeneratedColumns = []string{
	ColumnAddressLine1,
	ColumnAddressLine2,
	ColumnGreetingInformal,
	ColumnGreetingFormal,
}

// GeneratedInvoiceColumns are computed only for invoicing runs.
var GeneratedInvoiceColumns = []string{
	ColumnAccount,
	ColumnReference,
}
