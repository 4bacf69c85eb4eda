package product

import "regexp"

// UPCLength is the GTIN-14 length every stored code uses.
const UPCLength = 14

var upcPattern = regexp.MustCompile(`^[0-9]{14}$`)

// ValidUPC reports whether s is a 14 digit GTIN-14 code.
func ValidUPC(s string) bool {
	return upcPattern.MatchString(s)
}
