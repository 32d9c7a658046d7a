package receipt

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/mufasadev/easypay-receipts/internal/domain/models"
)

const receiptHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width"/>
  <title>Receipt {{.Reference}}</title>
</head>
<body style="margin:0; padding:0; font-family:-apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial; background:#f4f6f8;">
  <table cellpadding="0" cellspacing="0" width="100%">
    <tr>
      <td align="center" style="padding:24px;">
        <table cellpadding="0" cellspacing="0" width="600" style="background:#ffffff; border-radius:8px; overflow:hidden;">
          <tr>
            <td style="padding:20px 24px; background:{{.BrandColor}}; color:#ffffff;">
              <h1 style="margin:0; font-size:20px; font-weight:700;">{{.Brand}} Receipt</h1>
              <p style="margin:4px 0 0; font-size:12px;">Official payment receipt {{.ReceiptNumber}}</p>
              <p style="margin:4px 0 0; font-size:12px;">{{.Date}}</p>
            </td>
          </tr>
          <tr>
            <td style="padding:20px 24px;">
              <span id="status-badge" style="display:inline-block; padding:4px 12px; border-radius:12px; font-size:12px; font-weight:700; color:#ffffff; background:{{.StatusColor}};">{{.StatusLabel}}</span>
              <div style="margin-top:16px; padding:16px; border:1px solid {{.BrandColor}}; border-radius:6px; background:{{.TintColor}};">
                <div style="font-size:12px; font-weight:700; color:#666666;">AMOUNT PAID</div>
                <div id="amount" style="font-size:24px; font-weight:700; color:{{.BrandColor}}; text-align:right;">{{.Amount}}</div>
              </div>
              {{range .Sections}}
              <h2 style="margin:24px 0 8px; font-size:15px; color:#333333;">{{.Title}}</h2>
              <table cellpadding="0" cellspacing="0" width="100%" style="border-collapse:collapse;">
                {{range .Fields}}
                <tr>
                  <td style="padding:8px 6px; border:1px solid #eef2f7; font-size:13px; width:40%; color:#666666;">{{.Label}}</td>
                  <td style="padding:8px 6px; border:1px solid #eef2f7; font-size:13px; word-break:break-all;">{{.Value}}</td>
                </tr>
                {{end}}
              </table>
              {{end}}
              <div style="margin-top:24px; padding:12px; border-radius:6px; background:#fafafa; border:1px solid #f1f5f9; font-size:13px;">
                <strong>Reference:</strong> <span style="font-family:monospace;">{{.Reference}}</span><br/>
                Your receipt is attached as {{.Filename}}.
              </div>
              <p style="margin:18px 0 0; font-size:13px; color:#374151;">If you have any questions about this receipt, please contact <a href="mailto:{{.SupportEmail}}">{{.SupportEmail}}</a>.</p>
            </td>
          </tr>
          <tr>
            <td style="padding:16px 24px; background:#f8fafc; text-align:center; font-size:12px; color:#6b7280;">&copy; {{.Year}} {{.Brand}}. All rights reserved.</td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`

var receiptTemplate = template.Must(template.New("receipt").Parse(receiptHTML))

type emailView struct {
	Brand         string
	SupportEmail  string
	Reference     string
	ReceiptNumber string
	Date          string
	StatusLabel   string
	StatusColor   template.CSS
	BrandColor    template.CSS
	TintColor     template.CSS
	Amount        string
	Sections      []Section
	Filename      string
	Year          int
}

// Subject is the email subject line for a receipt.
func Subject(reference string) string {
	return "Payment Receipt - " + reference
}

// AttachmentName is the file name the PDF is attached under.
func AttachmentName(reference string) string {
	return fmt.Sprintf("Receipt-%s.pdf", reference)
}

// composeHTML renders the email body from the same sections and status
// mapping as the PDF. Values are shown as given; html/template escapes them.
func (r *Renderer) composeHTML(tx models.Transaction) (string, error) {
	pres := StatusPresentation(string(tx.Status))
	view := emailView{
		Brand:         r.brand,
		SupportEmail:  r.supportEmail,
		Reference:     tx.Reference,
		ReceiptNumber: ReceiptNumber(tx.Reference),
		Date:          FormatLongDate(tx.CreatedAt, r.loc),
		StatusLabel:   pres.Label,
		StatusColor:   template.CSS(pres.Color.Hex()),
		BrandColor:    template.CSS(colorBrand.Hex()),
		TintColor:     template.CSS(colorTint.Hex()),
		Amount:        FormatAmount(tx.Amount),
		Sections:      buildSections(tx, r.loc),
		Filename:      AttachmentName(tx.Reference),
		Year:          r.now().In(r.loc).Year(),
	}

	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// composePlain is the text/plain alternative for clients that do not render HTML.
func (r *Renderer) composePlain(tx models.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Receipt %s\n", r.brand, ReceiptNumber(tx.Reference))
	fmt.Fprintf(&b, "Date: %s\n", FormatLongDate(tx.CreatedAt, r.loc))
	fmt.Fprintf(&b, "Status: %s\n", StatusPresentation(string(tx.Status)).Label)
	fmt.Fprintf(&b, "Amount paid: %s\n", FormatAmount(tx.Amount))

	for _, s := range buildSections(tx, r.loc) {
		fmt.Fprintf(&b, "\n%s\n%s\n", s.Title, strings.Repeat("-", len(s.Title)))
		for _, f := range s.Fields {
			fmt.Fprintf(&b, "%s: %s\n", f.Label, f.Value)
		}
	}

	fmt.Fprintf(&b, "\nYour receipt is attached as %s.\n", AttachmentName(tx.Reference))
	fmt.Fprintf(&b, "Questions? Contact %s.\n", r.supportEmail)
	fmt.Fprintf(&b, "\n(c) %d %s\n", r.now().In(r.loc).Year(), r.brand)
	return b.String()
}
