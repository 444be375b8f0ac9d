package pipeline

import (
	"strings"
	"unicode"
)

// Word tables indexed by digit. units[0] is empty, so "0" is spoken as "".
var (
	units = [10]string{"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}
	teens = [10]string{"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen", "seventeen", "eighteen", "nineteen"}
	tens  = [10]string{"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety"}
)

// NumberToWords spells out a run of ASCII digits below 100 in English.
// SpellNumbers maps other scripts to ASCII first, see asciiDigits.
// The value of the run is used, so leading zeros are ignored ("07" is
// "seven", "00" is ""). Values of 100 and above come back as their decimal
// string without leading zeros ("0100" is "100"). Runs of any length are
// handled without integer overflow.
func NumberToWords(digits string) string {
	digits = strings.TrimLeft(digits, "0")
	if len(digits) > 2 {
		return digits
	}

	n := 0
	for _, d := range digits {
		n = n*10 + int(d-'0')
	}

	switch {
	case n < 10:
		return units[n]
	case n < 20:
		return teens[n-10]
	case n%10 == 0:
		return tens[n/10]
	default:
		return tens[n/10] + "-" + units[n%10]
	}
}

// asciiDigits maps a run of Unicode decimal digits (category Nd) to ASCII.
// It reports false if any rune is not a decimal digit.
func asciiDigits(run string) (string, bool) {
	ascii := true
	for i := 0; i < len(run); i++ {
		if run[i] < '0' || run[i] > '9' {
			ascii = false
			break
		}
	}
	if ascii {
		return run, run != ""
	}

	var b strings.Builder
	b.Grow(len(run))
	for _, r := range run {
		v := digitValue(r)
		if v < 0 {
			return "", false
		}
		b.WriteByte(byte('0' + v))
	}
	return b.String(), true
}

// digitValue returns the value of a decimal digit rune, or -1.
// Every Nd range starts at a zero and holds whole sets of ten.
func digitValue(r rune) int {
	if r >= '0' && r <= '9' {
		return int(r - '0')
	}
	if !unicode.IsDigit(r) {
		return -1
	}
	for _, rg := range unicode.Nd.R16 {
		if lo, hi := rune(rg.Lo), rune(rg.Hi); r >= lo && r <= hi {
			return int(r-lo) % 10
		}
	}
	for _, rg := range unicode.Nd.R32 {
		if lo, hi := rune(rg.Lo), rune(rg.Hi); r >= lo && r <= hi {
			return int(r-lo) % 10
		}
	}
	return -1
}
