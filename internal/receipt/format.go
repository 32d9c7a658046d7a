package receipt

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// CurrencyCode is written as letters; the core PDF fonts have no naira glyph.
	CurrencyCode = "NGN"
	NotAvailable = "N/A"

	AmountNotAvailable = "Amount not available"

	headerDateLayout = "02 Jan 2006"
	detailDateLayout = "2 January 2006, 15:04"
	longDateLayout   = "Monday, 2 January 2006"
)

// FormatAmount renders amount as "NGN 12,346". Amounts are rounded to whole
// naira, halves away from zero.
func FormatAmount(amount decimal.NullDecimal) string {
	if !amount.Valid {
		return AmountNotAvailable
	}
	return CurrencyCode + " " + groupThousands(amount.Decimal.StringFixed(0))
}

// groupThousands puts commas between digit groups of an integer string such
// as "-1234567". It works on the text, so amounts of any size keep every digit.
func groupThousands(digits string) string {
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}

	var b strings.Builder
	b.Grow(len(sign) + len(digits) + len(digits)/3)
	b.WriteString(sign)
	for i := 0; i < len(digits); i++ {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(digits[i])
	}
	return b.String()
}

// FormatHeaderDate is the short date printed in the receipt header.
func FormatHeaderDate(t time.Time, loc *time.Location) string {
	return formatDate(t, loc, headerDateLayout)
}

// FormatDetailDate is the date and time printed next to the transaction details.
func FormatDetailDate(t time.Time, loc *time.Location) string {
	return formatDate(t, loc, detailDateLayout)
}

// FormatLongDate is the human readable date used in the email body.
func FormatLongDate(t time.Time, loc *time.Location) string {
	return formatDate(t, loc, longDateLayout)
}

func formatDate(t time.Time, loc *time.Location, layout string) string {
	if t.IsZero() {
		return NotAvailable
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(layout)
}

// ReceiptNumber is "#" plus the last eight characters of the reference.
func ReceiptNumber(reference string) string {
	ref := strings.TrimSpace(Sanitize(reference))
	if ref == "" {
		return "#" + NotAvailable
	}
	if len(ref) > 8 {
		ref = ref[len(ref)-8:]
	}
	return "#" + ref
}

var stripMarks = runes.Remove(runes.In(unicode.Mn))

// Sanitize reduces s to printable ASCII: accents are dropped from their base
// letters and any other rune outside the range is removed.
func Sanitize(s string) string {
	t := transform.Chain(norm.NFD, stripMarks, norm.NFC)
	decomposed, _, err := transform.String(t, s)
	if err != nil {
		decomposed = s
	}

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteByte(' ')
		case r >= 0x20 && r <= 0x7e:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// wrapText splits s into chunks of at most limit bytes. s is expected to be sanitized.
func wrapText(s string, limit int) []string {
	if limit <= 0 || len(s) <= limit {
		return []string{s}
	}
	lines := make([]string, 0, len(s)/limit+1)
	for len(s) > limit {
		lines = append(lines, s[:limit])
		s = s[limit:]
	}
	if s != "" {
		lines = append(lines, s)
	}
	return lines
}
