package receipt

import (
	"strings"
	"time"

	"github.com/mufasadev/easypay-receipts/internal/domain/models"
)

const (
	SectionStudent       = "Student Information"
	SectionAccommodation = "Accommodation"
	SectionTransaction   = "Transaction Details"

	LabelTransactionID = "Transaction ID"
)

// Field is one label/value row. Empty values never reach a section.
type Field struct {
	Label string
	Value string
}

type Section struct {
	Title  string
	Fields []Field
}

// present drops fields whose value is blank, keeping order.
func present(fields ...Field) []Field {
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		if v := strings.TrimSpace(f.Value); v != "" {
			out = append(out, Field{Label: f.Label, Value: v})
		}
	}
	return out
}

// buildSections lays out the record the same way for the PDF, HTML and plain bodies.
func buildSections(tx models.Transaction, loc *time.Location) []Section {
	sections := []Section{{
		Title: SectionStudent,
		Fields: present(
			Field{"Full Name", tx.FullName},
			Field{"Email", tx.Email},
			Field{"Phone Number", tx.PhoneNumber},
			Field{"Matric Number", tx.MatricNumber},
			Field{"College", tx.College},
			Field{"Department", tx.Department},
			Field{"Student Type", tx.StudentType},
			Field{"Level", tx.Level},
		),
	}}

	if tx.HasAccommodation() {
		sections = append(sections, Section{
			Title: SectionAccommodation,
			Fields: present(
				Field{"Hostel", tx.Hostel},
				Field{"Room Number", tx.RoomNumber},
			),
		})
	}

	reference := tx.Reference
	if strings.TrimSpace(reference) == "" {
		reference = NotAvailable
	}
	sections = append(sections, Section{
		Title: SectionTransaction,
		Fields: present(
			Field{LabelTransactionID, reference},
			Field{"Transaction Date", FormatDetailDate(tx.CreatedAt, loc)},
			Field{"Due Type", tx.DueType},
			Field{"Payment Method", humanize(tx.PaymentMethod)},
			Field{"Receipt Name", tx.ReceiptName},
		),
	})

	return sections
}

// humanize turns backend enum values such as bank_transfer into "Bank Transfer".
func humanize(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}
