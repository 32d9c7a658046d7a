package receipt

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/boombuler/barcode/qr"
	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mufasadev/easypay-receipts/internal/domain/models"
)

var frozen = time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC)

func newTestRenderer() *Renderer {
	return NewRenderer(
		WithClock(func() time.Time { return frozen }),
		WithCompression(false),
		WithLocation(time.UTC),
	)
}

func minimalTransaction() models.Transaction {
	return models.Transaction{
		Reference: "TXN-001",
		Status:    models.StatusSuccessful,
		Email:     "a@b.com",
		Amount:    amount("5000"),
		CreatedAt: time.Date(2026, time.October, 1, 14, 5, 0, 0, time.UTC),
	}
}

func fullTransaction() models.Transaction {
	tx := minimalTransaction()
	tx.FullName = "Chiamaka Obi"
	tx.PhoneNumber = "08012345678"
	tx.MatricNumber = "20231234"
	tx.College = "COLPHYS"
	tx.Department = "CSC"
	tx.StudentType = "undergraduate"
	tx.Level = "300"
	tx.DueType = "department"
	tx.PaymentMethod = "bank_transfer"
	tx.ReceiptName = "CSC Departmental Dues"
	return tx
}

func TestRenderSinglePageWithReference(t *testing.T) {
	r := newTestRenderer()

	out, err := r.Render(fullTransaction())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-1.")))
	text := string(out)
	assert.Contains(t, text, "(TXN-001)")
	assert.Contains(t, text, "(#TXN-001)")
	assert.Contains(t, text, "(NGN 5,000)")
	assert.Contains(t, text, "(STUDENT INFORMATION)")
	assert.Contains(t, text, "(TRANSACTION DETAILS)")
	assert.Contains(t, text, "(Bank Transfer)")
	assert.Contains(t, text, "(1 October 2026, 14:05)")
	assert.Contains(t, text, "(SUCCESSFUL)")

	p, err := r.build(fullTransaction())
	require.NoError(t, err)
	assert.Equal(t, 1, p.pdf.PageCount())
}

func TestRenderMinimalRecord(t *testing.T) {
	out, err := newTestRenderer().Render(minimalTransaction())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "(TXN-001)")
	assert.Contains(t, text, "(a@b.com)")
	assert.NotContains(t, text, "(Full Name)")
	assert.NotContains(t, text, "(Due Type)")
}

func TestRenderMissingEverything(t *testing.T) {
	out, err := newTestRenderer().Render(models.Transaction{})
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "(#N/A)")
	assert.Contains(t, text, "(UNKNOWN)")
	assert.Contains(t, text, "("+AmountNotAvailable+")")
}

func TestRenderIsDeterministic(t *testing.T) {
	r := newTestRenderer()

	first, err := r.Render(fullTransaction())
	require.NoError(t, err)
	second, err := r.Render(fullTransaction())
	require.NoError(t, err)

	assert.Equal(t, first, second)

	compressed := NewRenderer(WithClock(func() time.Time { return frozen }))
	a, err := compressed.Render(fullTransaction())
	require.NoError(t, err)
	b, err := compressed.Render(fullTransaction())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestQRCodeEncodesReferenceOnly(t *testing.T) {
	code, err := qr.Encode("TXN-001", qr.M, qr.Auto)
	require.NoError(t, err)
	assert.Equal(t, "TXN-001", code.Content())

	first, err := encodeQR("TXN-001")
	require.NoError(t, err)
	second, err := encodeQR("TXN-001")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := encodeQR("TXN-002")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestRenderAccommodationSection(t *testing.T) {
	r := newTestRenderer()

	t.Run("omitted when absent", func(t *testing.T) {
		out, err := r.Render(fullTransaction())
		require.NoError(t, err)
		assert.NotContains(t, string(out), "(ACCOMMODATION)")
		assert.NotContains(t, string(out), "(Hostel)")
	})

	t.Run("present with room only", func(t *testing.T) {
		tx := fullTransaction()
		tx.RoomNumber = "B12"
		out, err := r.Render(tx)
		require.NoError(t, err)
		assert.Contains(t, string(out), "(ACCOMMODATION)")
		assert.Contains(t, string(out), "(B12)")
		assert.NotContains(t, string(out), "(Hostel)")
	})
}

func TestRenderWrapsLongReference(t *testing.T) {
	reference := "FLW-" + strings.Repeat("A1B2C3", 6)
	require.Len(t, reference, 40)

	tx := minimalTransaction()
	tx.Reference = reference

	out, err := newTestRenderer().Render(tx)
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "("+reference[:35]+")")
	assert.Contains(t, text, "("+reference[35:]+")")

	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", Size: gofpdf.SizeType{Wd: pageWidth, Ht: pageHeight}})
	pdf.AddPage()
	p := &page{pdf: pdf, scale: 1}
	valueX := margin + valueOffset
	right := pageWidth - margin

	lines, size := p.fitValue(reference)
	require.Len(t, lines, 2)
	assert.Equal(t, wrappedSize, size)
	for _, line := range lines {
		assert.LessOrEqual(t, valueX+p.width("", size, line), right)
	}

	t.Run("widest glyphs still fit", func(t *testing.T) {
		lines, size := p.fitValue(strings.Repeat("W", 70))
		require.Len(t, lines, 2)
		for _, line := range lines {
			assert.LessOrEqual(t, valueX+p.width("", size, line), right)
		}
	})

	t.Run("short values stay on one line", func(t *testing.T) {
		lines, size := p.fitValue("TXN-001")
		assert.Equal(t, []string{"TXN-001"}, lines)
		assert.Equal(t, valueSize, size)
	})
}

func TestRenderKeepsAmountAboveFooter(t *testing.T) {
	long := strings.Repeat("Faculty of Engineering and Technology ", 3)[:93]

	tx := fullTransaction()
	tx.College = long
	tx.Department = long
	tx.ReceiptName = long
	tx.DueType = long
	tx.Hostel = "Jaja Hall"
	tx.RoomNumber = "B12"

	p, err := newTestRenderer().build(tx)
	require.NoError(t, err)
	assert.Equal(t, 1, p.pdf.PageCount())
	assert.LessOrEqual(t, p.y, pageHeight-footerHeight-footerClearance)
	assert.NotZero(t, p.maxLines)
	assert.Equal(t, 1.0, p.scale)

	out, err := newTestRenderer().Render(tx)
	require.NoError(t, err)
	assert.Contains(t, string(out), "(NGN 5,000)")
	assert.Contains(t, string(out), "(AMOUNT PAID)")
	assert.Contains(t, string(out), "("+long[:32]+"...)")

	t.Run("every value at its longest", func(t *testing.T) {
		huge := strings.Repeat("X", 500)
		tx := tx
		tx.FullName = huge
		tx.Email = huge
		tx.PhoneNumber = huge
		tx.MatricNumber = huge
		tx.StudentType = huge
		tx.Level = huge
		tx.PaymentMethod = huge
		tx.Hostel = huge
		tx.RoomNumber = huge
		tx.Reference = huge

		p, err := newTestRenderer().build(tx)
		require.NoError(t, err)
		assert.LessOrEqual(t, p.y, pageHeight-footerHeight-footerClearance)
	})

	t.Run("short record keeps full spacing", func(t *testing.T) {
		p, err := newTestRenderer().build(fullTransaction())
		require.NoError(t, err)
		assert.Equal(t, 0, p.maxLines)
		assert.Equal(t, 1.0, p.scale)
	})
}

func TestFitValueEllipsises(t *testing.T) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", Size: gofpdf.SizeType{Wd: pageWidth, Ht: pageHeight}})
	pdf.AddPage()
	p := &page{pdf: pdf, scale: 1, maxLines: 2}

	lines, _ := p.fitValue(strings.Repeat("A", 100))
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Repeat("A", 35), lines[0])
	assert.Equal(t, strings.Repeat("A", 32)+"...", lines[1])
}

func TestRenderStripsUnsupportedCharacters(t *testing.T) {
	r := newTestRenderer()
	tx := minimalTransaction()
	tx.FullName = "José Ñúñez"

	out, err := r.Render(tx)
	require.NoError(t, err)
	assert.Contains(t, string(out), "(Jose Nunez)")

	again, err := r.Render(tx)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestRenderUnknownStatus(t *testing.T) {
	tx := minimalTransaction()
	tx.Status = models.Status("refunded")

	out, err := newTestRenderer().Render(tx)
	require.NoError(t, err)
	assert.Contains(t, string(out), "(REFUNDED)")
}

func TestBrandInitials(t *testing.T) {
	assert.Equal(t, "EP", brandInitials("EasyPay"))
	assert.Equal(t, "BU", brandInitials("bursary"))
	assert.Equal(t, "FU", brandInitials("FUNAAB Bursary"))
}
