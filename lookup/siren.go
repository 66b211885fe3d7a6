package lookup

// sirenLength is the fixed length of a SIREN identifier.
const sirenLength = 9

// ValidSIREN reports whether id is a well-formed SIREN: a 9-digit numeric
// string whose Luhn checksum (mod-10, doubling every second digit from the
// right) is zero. Identifiers are validated here, at the wizard boundary,
// so malformed ones never reach the pipeline.
func ValidSIREN(id string) bool {
	if len(id) != sirenLength {
		return false
	}

	sum := 0
	for i := 0; i < sirenLength; i++ {
		c := id[sirenLength-1-i]
		if c < '0' || c > '9' {
			return false
		}
		digit := int(c - '0')
		if i%2 == 1 {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
	}

	return sum%10 == 0
}
