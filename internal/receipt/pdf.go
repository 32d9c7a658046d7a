package receipt

import (
	"bytes"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mufasadev/easypay-receipts/internal/domain/models"
	apperrors "github.com/mufasadev/easypay-receipts/internal/errors"
	"github.com/mufasadev/easypay-receipts/pkg/log"
)

// A4 in points.
const (
	pageWidth  = 595.0
	pageHeight = 842.0
	margin     = 50.0

	headerHeight = 120.0
	footerHeight = 80.0
	badgeHeight  = 25.0
	amountHeight = 50.0
	qrSize       = 64.0

	valueOffset       = 120.0
	rowHeight         = 20.0
	sectionGap        = 14.0
	wrapLimit         = 35
	wrappedLineHeight = 15.0
	valueSize         = 11.0
	wrappedSize       = 10.0
	titleStep         = 26.0
	amountGap         = 6.0
	maxValueLines     = 3

	// the watermark is drawn just above the footer band
	footerClearance = 16.0

	fontFamily  = "Helvetica"
	qrImageName = "reference-qr"
)

var (
	colorBrand     = RGB{R: 13, G: 89, B: 166}
	colorWhite     = RGB{R: 255, G: 255, B: 255}
	colorSubtle    = RGB{R: 230, G: 230, B: 230}
	colorHeading   = RGB{R: 51, G: 51, B: 51}
	colorLabel     = RGB{R: 102, G: 102, B: 102}
	colorValue     = RGB{R: 26, G: 26, B: 26}
	colorTint      = RGB{R: 242, G: 247, B: 255}
	colorFooter    = RGB{R: 250, G: 250, B: 250}
	colorMuted     = RGB{R: 128, G: 128, B: 128}
	colorWatermark = RGB{R: 204, G: 204, B: 204}
)

// Renderer draws single page A4 receipts. It holds no per-call state and is
// safe for concurrent use.
type Renderer struct {
	brand        string
	supportEmail string
	loc          *time.Location
	now          func() time.Time
	compress     bool
	logger       *zerolog.Logger
}

type RendererOption func(*Renderer)

// WithBrand sets the organisation name in the header and the support address in the footer.
func WithBrand(name, supportEmail string) RendererOption {
	return func(r *Renderer) {
		if name != "" {
			r.brand = name
		}
		if supportEmail != "" {
			r.supportEmail = supportEmail
		}
	}
}

// WithLocation sets the time zone dates are printed in.
func WithLocation(loc *time.Location) RendererOption {
	return func(r *Renderer) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// WithClock replaces time.Now for the document creation date.
func WithClock(now func() time.Time) RendererOption {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// WithCompression toggles content stream compression. Uncompressed output
// keeps the text greppable.
func WithCompression(enabled bool) RendererOption {
	return func(r *Renderer) {
		r.compress = enabled
	}
}

func NewRenderer(opts ...RendererOption) *Renderer {
	l := log.GetLogger()
	r := &Renderer{
		brand:        "EasyPay",
		supportEmail: "support@easypay.com",
		loc:          time.UTC,
		now:          time.Now,
		compress:     true,
		logger:       &l,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render returns the PDF bytes for tx. Missing optional fields are left out;
// only a failure to embed the QR code or write the document is an error.
func (r *Renderer) Render(tx models.Transaction) ([]byte, error) {
	start := time.Now()

	p, err := r.build(tx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return nil, apperrors.NewRenderError("output", err)
	}

	elapsed := time.Since(start)
	renderDuration.Observe(elapsed.Seconds())
	r.logger.Debug().
		Str("reference", tx.Reference).
		Int("bytes", buf.Len()).
		Dur("duration", elapsed).
		Msg("receipt rendered")

	return buf.Bytes(), nil
}

func (r *Renderer) build(tx models.Transaction) (*page, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	pdf.SetCompression(r.compress)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(r.now())
	pdf.SetTitle(Sanitize(tx.Reference), false)
	pdf.SetSubject("Payment receipt", false)
	pdf.SetAuthor(Sanitize(r.brand), false)
	pdf.SetCreator(Sanitize(r.brand), false)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	p := &page{pdf: pdf, scale: 1}
	r.drawHeader(p, tx)
	r.drawStatusBadge(p, tx.Status)

	sections := buildSections(tx, r.loc)
	p.fitBody(sections)
	for _, section := range sections {
		r.drawSection(p, section)
	}
	r.drawAmount(p, tx.Amount)
	if err := r.drawFooter(p, tx.Reference); err != nil {
		return nil, err
	}

	if pdf.Err() {
		return nil, apperrors.NewRenderError("layout", pdf.Error())
	}
	return p, nil
}

func (r *Renderer) drawHeader(p *page, tx models.Transaction) {
	p.fill(colorBrand)
	p.pdf.Rect(0, 0, pageWidth, headerHeight, "F")

	p.fill(colorWhite)
	p.pdf.Circle(margin+30, 60, 25, "F")
	initials := brandInitials(r.brand)
	p.text(margin+30-p.width("B", 16, initials)/2, 66, "B", 16, colorBrand, initials)

	p.text(margin+80, 55, "B", 24, colorWhite, r.brand)
	p.text(margin+80, 78, "", 14, colorSubtle, "PAYMENT RECEIPT")

	p.textRight(pageWidth-margin, 50, "B", 18, colorWhite, ReceiptNumber(tx.Reference))
	p.textRight(pageWidth-margin, 74, "", 12, colorSubtle, FormatHeaderDate(tx.CreatedAt, r.loc))

	p.y = headerHeight
}

func (r *Renderer) drawStatusBadge(p *page, status models.Status) {
	pres := StatusPresentation(string(status))
	labelWidth := p.width("B", 10, pres.Label)
	badgeWidth := math.Max(100, labelWidth+30)
	top := p.y + 20

	p.fill(pres.Color)
	p.pdf.Rect(margin, top, badgeWidth, badgeHeight, "F")
	p.text(margin+(badgeWidth-labelWidth)/2, top+16, "B", 10, colorWhite, pres.Label)

	p.y = top + badgeHeight + 50
}

func (r *Renderer) drawSection(p *page, s Section) {
	title := strings.ToUpper(s.Title)
	p.text(margin, p.y, "B", 14, colorHeading, title)
	p.fill(colorBrand)
	p.pdf.Rect(margin, p.y+4, p.width("B", 14, title)+10, 2, "F")
	p.y += titleStep * p.scale

	for _, f := range s.Fields {
		p.text(margin, p.y, "B", valueSize, colorLabel, f.Label)
		lines, size := p.fitValue(f.Value)
		for i, line := range lines {
			if i > 0 {
				p.y += wrappedLineHeight * p.scale
			}
			p.text(margin+valueOffset, p.y, "", size, colorValue, line)
		}
		p.y += rowHeight * p.scale
	}
	p.y += sectionGap * p.scale
}

func (r *Renderer) drawAmount(p *page, amount decimal.NullDecimal) {
	top := p.y + amountGap

	p.fill(colorTint)
	p.pdf.SetDrawColor(colorBrand.R, colorBrand.G, colorBrand.B)
	p.pdf.SetLineWidth(1)
	p.pdf.Rect(margin-10, top, pageWidth-2*margin+20, amountHeight, "FD")

	p.text(margin, top+30, "B", 12, colorLabel, "AMOUNT PAID")
	p.textRight(pageWidth-margin, top+32, "B", 20, colorBrand, FormatAmount(amount))

	p.y = top + amountHeight
}

func (r *Renderer) drawFooter(p *page, reference string) error {
	top := pageHeight - footerHeight

	p.fill(colorFooter)
	p.pdf.Rect(0, top, pageWidth, footerHeight, "F")
	p.text(margin, top+28, "B", 12, colorBrand, "Thank you for your payment!")
	p.text(margin, top+46, "", 10, colorMuted, "For any inquiries, please contact our support team.")
	p.text(margin, top+62, "", 10, colorMuted, r.supportEmail)

	p.pdf.TransformBegin()
	p.pdf.TransformRotate(25, pageWidth-250, top-12)
	p.text(pageWidth-250, top-12, "B", 8, colorWatermark, "OFFICIAL RECEIPT")
	p.pdf.TransformEnd()

	// nothing to encode; the sentinel reference is already printed above
	if strings.TrimSpace(reference) == "" {
		return nil
	}

	img, err := encodeQR(reference)
	if err != nil {
		return apperrors.NewRenderError("qr code", err)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.pdf.RegisterImageOptionsReader(qrImageName, opts, bytes.NewReader(img))
	if p.pdf.Err() {
		return apperrors.NewRenderError("qr image", p.pdf.Error())
	}

	qrX := pageWidth - margin - qrSize
	qrY := top + (footerHeight-qrSize)/2
	p.pdf.ImageOptions(qrImageName, qrX, qrY, qrSize, qrSize, false, opts, 0, "")
	p.textRight(qrX-8, qrY+qrSize/2+3, "", 7, colorMuted, "Scan to verify")

	return nil
}

// page is a vertical cursor over one gofpdf page. All text goes through Sanitize.
type page struct {
	pdf *gofpdf.Fpdf
	y   float64

	// maxLines caps wrapped values, 0 means no cap. scale shrinks every
	// vertical step of the body.
	maxLines int
	scale    float64
}

func (p *page) fill(c RGB) {
	p.pdf.SetFillColor(c.R, c.G, c.B)
}

func (p *page) text(x, y float64, style string, size float64, c RGB, s string) {
	p.pdf.SetFont(fontFamily, style, size)
	p.pdf.SetTextColor(c.R, c.G, c.B)
	p.pdf.Text(x, y, Sanitize(s))
}

func (p *page) textRight(right, y float64, style string, size float64, c RGB, s string) {
	p.text(right-p.width(style, size, s), y, style, size, c, s)
}

func (p *page) width(style string, size float64, s string) float64 {
	p.pdf.SetFont(fontFamily, style, size)
	return p.pdf.GetStringWidth(Sanitize(s))
}

// fitValue keeps short values on one line at the regular size. Longer ones
// are cut into wrapLimit sized lines at the smaller size, which always fit the
// value column, and ellipsised after maxLines.
func (p *page) fitValue(value string) ([]string, float64) {
	value = Sanitize(value)
	if len(value) <= wrapLimit && p.width("", valueSize, value) <= pageWidth-2*margin-valueOffset {
		return []string{value}, valueSize
	}
	lines := wrapText(value, wrapLimit)
	if p.maxLines > 0 && len(lines) > p.maxLines {
		lines = lines[:p.maxLines]
		last := lines[p.maxLines-1]
		lines[p.maxLines-1] = strings.TrimRight(last[:len(last)-3], " ") + "..."
	}
	return lines, wrappedSize
}

// fitBody picks the loosest layout that keeps the sections and the amount
// block above the footer: first by capping wrapped values, then by
// tightening the vertical steps.
func (p *page) fitBody(sections []Section) {
	available := pageHeight - footerHeight - footerClearance - p.y - amountGap - amountHeight
	for _, maxLines := range []int{0, maxValueLines, 2, 1} {
		p.maxLines = maxLines
		if p.bodyHeight(sections) <= available {
			return
		}
	}
	if h := p.bodyHeight(sections); h > 0 && available > 0 {
		p.scale = available / h
	}
}

func (p *page) bodyHeight(sections []Section) float64 {
	var h float64
	for _, s := range sections {
		h += titleStep + sectionGap
		for _, f := range s.Fields {
			lines, _ := p.fitValue(f.Value)
			h += rowHeight + float64(len(lines)-1)*wrappedLineHeight
		}
	}
	return h * p.scale
}

func brandInitials(brand string) string {
	var initials []rune
	for _, r := range Sanitize(brand) {
		if unicode.IsUpper(r) {
			initials = append(initials, r)
		}
		if len(initials) == 2 {
			break
		}
	}
	if len(initials) == 0 {
		b := strings.ToUpper(Sanitize(brand))
		if len(b) > 2 {
			b = b[:2]
		}
		return b
	}
	return string(initials)
}
