// =============================================================================
// Mailing Converter - User-Facing Messages
// =============================================================================
//
// This file holds the German and French translations of everything the CLI
// prints for people (progress, summaries, errors). Log entries stay English.
//
// LOCALE SELECTION:
//   1. The "locale" configuration key (de, fr, en)
//   2. The LANG environment variable (de_CH.UTF-8, fr_CH, ...)
//   3. English
//
// Message keys are the English texts; English needs no catalog entry.
//
// =============================================================================

package cmd

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ginjaninja78/mailing-converter/internal/converter"
	"github.com/ginjaninja78/mailing-converter/internal/validation"
	"github.com/ginjaninja78/mailing-converter/internal/xlsxparser"
)

// supportedLocales lists the UI languages; the first one is the fallback.
var supportedLocales = []language.Tag{language.English, language.German, language.French}

var localeMatcher = language.NewMatcher(supportedLocales)

// resolveLocale picks the UI language from the configured locale, falling
// back to a POSIX LANG value such as "fr_CH.UTF-8".
func resolveLocale(configured, lang string) language.Tag {
	want := configured
	if want == "" {
		want = lang
		if i := strings.IndexAny(want, ".@"); i >= 0 {
			want = want[:i]
		}
		want = strings.ReplaceAll(want, "_", "-")
	}

	tag, err := language.Parse(want)
	if err != nil {
		return supportedLocales[0]
	}
	_, index, _ := localeMatcher.Match(tag)
	return supportedLocales[index]
}

func newPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// =============================================================================
// ERROR DESCRIPTIONS
// =============================================================================

// describeError renders err for people, in the printer's language.
func describeError(p *message.Printer, err error) string {
	var missing *validation.MissingColumnsError
	var partial *validation.PartialInvoiceColumnsError
	var sheet *xlsxparser.SheetError

	switch {
	case errors.Is(err, validation.ErrEmptyTable):
		return p.Sprintf("The sheet contains no data rows.")
	case errors.As(err, &missing):
		return p.Sprintf("Required columns are missing: %s", strings.Join(missing.Missing, ", "))
	case errors.Is(err, validation.ErrNoInvoiceColumns):
		return p.Sprintf("The sheet contains no invoice columns.")
	case errors.As(err, &partial):
		return p.Sprintf("Invoice columns are incomplete, missing: %s", strings.Join(partial.Missing, ", "))
	case errors.Is(err, validation.ErrAccountEmpty):
		return p.Sprintf("Please enter an account number.")
	case errors.Is(err, validation.ErrAccountFormat):
		return p.Sprintf("The account number is not a valid IBAN.")
	case errors.Is(err, validation.ErrAccountChecksum):
		return p.Sprintf("The account number has an invalid checksum.")
	case errors.Is(err, validation.ErrNotQRIBAN):
		return p.Sprintf("The account number is not a QR-IBAN.")
	case errors.Is(err, converter.ErrUnsupportedFile):
		return p.Sprintf("Unsupported file type, use .xlsx or .csv.")
	case errors.Is(err, converter.ErrSkipped):
		return p.Sprintf("Skipped after an earlier failure.")
	case errors.Is(err, ErrInvalidReferences):
		return p.Sprintf("Some payment references are invalid.")
	case errors.Is(err, ErrAborted):
		return p.Sprintf("Aborted.")
	case errors.As(err, &sheet):
		return p.Sprintf("Could not read %s: %v", sheet.Path, sheet.Err)
	default:
		return err.Error()
	}
}

func dialectName(p *message.Printer, d validation.Dialect) string {
	switch d {
	case validation.DialectGerman:
		return p.Sprintf("German")
	case validation.DialectFrench:
		return p.Sprintf("French")
	default:
		return p.Sprintf("none")
	}
}

// =============================================================================
// CATALOG
// =============================================================================

var translations = map[string][2]string{
	// key: {German, French}
	"The sheet contains no data rows.": {
		"Die Tabelle enthält keine Datenzeilen.",
		"Le tableau ne contient aucune ligne de données.",
	},
	"Required columns are missing: %s": {
		"Folgende Spalten fehlen: %s",
		"Les colonnes suivantes manquent : %s",
	},
	"The sheet contains no invoice columns.": {
		"Die Tabelle enthält keine Rechnungsspalten.",
		"Le tableau ne contient aucune colonne de facture.",
	},
	"Invoice columns are incomplete, missing: %s": {
		"Rechnungsspalten unvollständig, es fehlen: %s",
		"Colonnes de facture incomplètes, il manque : %s",
	},
	"Please enter an account number.": {
		"Bitte eine Kontonummer eingeben.",
		"Veuillez saisir un numéro de compte.",
	},
	"The account number is not a valid IBAN.": {
		"Die Kontonummer ist keine gültige IBAN.",
		"Le numéro de compte n'est pas un IBAN valide.",
	},
	"The account number has an invalid checksum.": {
		"Die Prüfziffer der Kontonummer ist falsch.",
		"Le chiffre de contrôle du numéro de compte est faux.",
	},
	"The account number is not a QR-IBAN.": {
		"Die Kontonummer ist keine QR-IBAN.",
		"Le numéro de compte n'est pas un QR-IBAN.",
	},
	"Unsupported file type, use .xlsx or .csv.": {
		"Dateityp nicht unterstützt, bitte .xlsx oder .csv verwenden.",
		"Type de fichier non pris en charge, utilisez .xlsx ou .csv.",
	},
	"Skipped after an earlier failure.": {
		"Nach einem früheren Fehler übersprungen.",
		"Ignoré après une erreur précédente.",
	},
	"Could not read %s: %v": {
		"%s konnte nicht gelesen werden: %v",
		"Impossible de lire %s : %v",
	},
	"%d of %d file(s) failed": {
		"%d von %d Datei(en) fehlgeschlagen",
		"%d fichier(s) sur %d en échec",
	},
	"Some payment references are invalid.": {
		"Einige Zahlungsreferenzen sind ungültig.",
		"Certaines références de paiement sont invalides.",
	},
	"Aborted.": {"Abgebrochen.", "Interrompu."},

	"German": {"Deutsch", "allemand"},
	"French": {"Französisch", "français"},
	"none":   {"keine", "aucune"},

	"No export files found in %s": {
		"Keine Exportdateien in %s gefunden",
		"Aucun fichier d'export trouvé dans %s",
	},
	"Found %d file(s) to process": {
		"%d Datei(en) zu verarbeiten",
		"%d fichier(s) à traiter",
	},
	"Dry run: nothing will be written": {
		"Testlauf: es wird nichts geschrieben",
		"Essai : rien ne sera écrit",
	},
	"Processing complete": {
		"Verarbeitung abgeschlossen",
		"Traitement terminé",
	},
	"Files: %d  Successful: %d  Failed: %d": {
		"Dateien: %d  Erfolgreich: %d  Fehlgeschlagen: %d",
		"Fichiers : %d  Réussis : %d  Échecs : %d",
	},
	"Rows: %d": {"Zeilen: %d", "Lignes : %d"},
	"Time elapsed: %s": {
		"Dauer: %s",
		"Durée : %s",
	},
	"Summary written to %s": {
		"Zusammenfassung gespeichert unter %s",
		"Résumé enregistré dans %s",
	},
	"%d rows, invoice columns: %s": {
		"%d Zeilen, Rechnungsspalten: %s",
		"%d lignes, colonnes de facture : %s",
	},
	"All required columns are present.": {
		"Alle benötigten Spalten sind vorhanden.",
		"Toutes les colonnes requises sont présentes.",
	},
	"The sheet has no %s column.": {
		"Die Tabelle hat keine Spalte %s.",
		"Le tableau n'a pas de colonne %s.",
	},
	"Row %d: invalid reference %q": {
		"Zeile %d: ungültige Referenz %q",
		"Ligne %d : référence invalide %q",
	},
	"%d reference(s) checked, %d invalid": {
		"%d Referenz(en) geprüft, %d ungültig",
		"%d référence(s) vérifiée(s), %d invalide(s)",
	},
	"What do you want to create?": {
		"Was möchtest du erstellen?",
		"Que veux-tu créer ?",
	},
	"Addresses only": {
		"Nur Adressen",
		"Adresses seulement",
	},
	"Addresses and invoices": {
		"Adressen und Rechnungen",
		"Adresses et factures",
	},
	"QR-IBAN of the receiving account:": {
		"QR-IBAN des Empfängerkontos:",
		"QR-IBAN du compte bénéficiaire :",
	},
}

func init() {
	for key, t := range translations {
		_ = message.SetString(language.German, key, t[0])
		_ = message.SetString(language.French, key, t[1])
	}
}
