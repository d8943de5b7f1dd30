package validation

import (
	"regexp"
	"strings"
)

// =============================================================================
// QR-IBAN VALIDATION
// =============================================================================
// Invoicing runs need a QR-IBAN: a Swiss or Liechtenstein IBAN whose
// institution code (IID) lies in 30000-31999. Only those accounts accept the
// 27-digit structured reference the mailing engine generates.

// ibanPattern is the general shape of an IBAN after normalization.
var ibanPattern = regexp.MustCompile(`^[A-Z]{2}\d{2}[A-Z0-9]{11,30}$`)

// qrIBANPattern restricts the IID to the 30xxx-31xxx block.
var qrIBANPattern = regexp.MustCompile(`^(CH|LI)\d{2}3[01]\d{2}\d{12}\d$`)

// NormalizeAccount strips spaces and upper-cases an account number.
func NormalizeAccount(account string) string {
	return strings.ToUpper(strings.Join(strings.Fields(account), ""))
}

// ValidateQRIBAN checks that account is a syntactically valid IBAN with a
// correct ISO 13616 checksum and that it is a QR-IBAN.
func ValidateQRIBAN(account string) error {
	iban := NormalizeAccount(account)
	if iban == "" {
		return ErrAccountEmpty
	}
	if !ibanPattern.MatchString(iban) {
		return ErrAccountFormat
	}
	if ibanMod97(iban) != 1 {
		return ErrAccountChecksum
	}
	if !qrIBANPattern.MatchString(iban) {
		return ErrNotQRIBAN
	}
	return nil
}

// ibanMod97 moves the country code and check digits to the end, maps letters
// to 10..35 and reduces the resulting number modulo 97 digit by digit.
func ibanMod97(iban string) int {
	rearranged := iban[4:] + iban[:4]

	remainder := 0
	for _, ch := range rearranged {
		switch {
		case ch >= '0' && ch <= '9':
			remainder = (remainder*10 + int(ch-'0')) % 97
		case ch >= 'A' && ch <= 'Z':
			remainder = (remainder*100 + int(ch-'A') + 10) % 97
		}
	}
	return remainder
}
