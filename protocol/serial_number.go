package protocol

import "fmt"

// serialNumberLen is the fixed width of a formatted serial number:
// "XX-MMYY-PPPPP".
const serialNumberLen = 13

// SerialNumber is a structured device identifier: a two-character model
// code, the two-digit production month and year, and a five-character
// production number.
//
// ParseSerialNumber and String round-trip: String(ParseSerialNumber(s)) == s
// for any well-formed s.
type SerialNumber struct {
	ModelCode        string
	Month            int
	Year             int
	ProductionNumber string
}

// ParseSerialNumber parses a serial number in the fixed hyphenated layout
// "XX-MMYY-PPPPP", where XX is the model code and PPPPP the production
// number. Both hyphens are required and month/year must be digits.
func ParseSerialNumber(raw []byte) (SerialNumber, error) {
	if len(raw) != serialNumberLen {
		return SerialNumber{}, fmt.Errorf("%w: %q is not %d bytes long",
			ErrInvalidSerialNumber, raw, serialNumberLen)
	}

	if raw[2] != '-' || raw[7] != '-' {
		return SerialNumber{}, fmt.Errorf("%w: %q is missing hyphen separators",
			ErrInvalidSerialNumber, raw)
	}

	month, err := parseTwoDigits(raw[3:5])
	if err != nil {
		return SerialNumber{}, fmt.Errorf("%w: %q has non-numeric month", ErrInvalidSerialNumber, raw)
	}

	year, err := parseTwoDigits(raw[5:7])
	if err != nil {
		return SerialNumber{}, fmt.Errorf("%w: %q has non-numeric year", ErrInvalidSerialNumber, raw)
	}

	return SerialNumber{
		ModelCode:        string(raw[0:2]),
		Month:            month,
		Year:             year,
		ProductionNumber: string(raw[8:13]),
	}, nil
}

// String formats the serial number back into its wire layout "XX-MMYY-PPPPP".
func (s SerialNumber) String() string {
	return fmt.Sprintf("%s-%02d%02d-%s", s.ModelCode, s.Month, s.Year, s.ProductionNumber)
}

func parseTwoDigits(raw []byte) (int, error) {
	if raw[0] < '0' || raw[0] > '9' || raw[1] < '0' || raw[1] > '9' {
		return 0, fmt.Errorf("not a two-digit number: %q", raw)
	}

	return int(raw[0]-'0')*10 + int(raw[1]-'0'), nil
}
