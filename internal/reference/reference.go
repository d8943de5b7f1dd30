// =============================================================================
// Mailing Converter - Payment Reference Numbers
// =============================================================================
//
// This module builds the structured payment reference printed on QR-bills
// (formerly the orange ISR slip). The reference is the invoice identifier
// followed by a modulo 10 recursive check digit, left-padded with zeros to
// 27 digits and grouped in blocks of five from the right:
//
//   invoice id "987"  ->  "00 00000 00000 00000 00000 09874"
//
// The digit table and the width are fixed by the payment slip standard
// ("Recordstrukturen Elektronische Dienstleistungen", PostFinance).
//
// =============================================================================

package reference

import (
	"strings"
)

// Width is the number of digits of a reference number.
const Width = 27

const groupSize = 5

// carryTable is the substitution table of the modulo 10 recursive method.
var carryTable = [10]int{0, 9, 4, 6, 8, 2, 7, 1, 3, 5}

// Checksum returns the modulo 10 recursive check digit of number. Characters
// other than ASCII digits do not contribute to the carry.
func Checksum(number string) int {
	carry := 0
	for _, ch := range number {
		if ch < '0' || ch > '9' {
			continue
		}
		carry = carryTable[(carry+int(ch-'0'))%10]
	}
	return (10 - carry) % 10
}

// Generate returns the formatted reference for an invoice identifier. An
// empty identifier means the row has no invoice and yields "".
func Generate(invoiceID string) string {
	if invoiceID == "" {
		return ""
	}

	ref := invoiceID + string(rune('0'+Checksum(invoiceID)))
	if len(ref) < Width {
		ref = strings.Repeat("0", Width-len(ref)) + ref
	}

	return Group(ref)
}

// Group inserts a space every five characters counted from the end of s.
func Group(s string) string {
	var groups []string
	for end := len(s); end > 0; end -= groupSize {
		start := end - groupSize
		if start < 0 {
			start = 0
		}
		groups = append([]string{s[start:end]}, groups...)
	}
	return strings.TrimSpace(strings.Join(groups, " "))
}

// Validate reports whether ref is a well-formed 27 digit reference whose last
// digit is the check digit of the others. Spaces are ignored.
func Validate(ref string) bool {
	digits := strings.ReplaceAll(ref, " ", "")
	if len(digits) != Width {
		return false
	}
	for _, ch := range digits {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return Checksum(digits[:Width-1]) == int(digits[Width-1]-'0')
}
