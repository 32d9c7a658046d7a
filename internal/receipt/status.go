package receipt

import (
	"fmt"
	"strings"

	"github.com/mufasadev/easypay-receipts/internal/domain/models"
)

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B int
}

// Hex returns the colour as #RRGGBB.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Presentation is how a status badge looks on every surface.
type Presentation struct {
	Label string
	Color RGB
}

var (
	colorSuccessful = RGB{R: 26, G: 179, B: 26}
	colorPending    = RGB{R: 230, G: 153, B: 26}
	colorFailed     = RGB{R: 204, G: 26, B: 26}
	colorUnknown    = RGB{R: 128, G: 128, B: 128}
)

// StatusPresentation maps any status string to its badge. Unrecognised
// statuses get a gray badge carrying their own name, or UNKNOWN when empty.
func StatusPresentation(status string) Presentation {
	switch models.ParseStatus(status) {
	case models.StatusSuccessful:
		return Presentation{Label: "SUCCESSFUL", Color: colorSuccessful}
	case models.StatusPending:
		return Presentation{Label: "PENDING", Color: colorPending}
	case models.StatusFailed:
		return Presentation{Label: "FAILED", Color: colorFailed}
	}

	label := strings.ToUpper(strings.TrimSpace(Sanitize(status)))
	if label == "" {
		label = "UNKNOWN"
	}
	return Presentation{Label: label, Color: colorUnknown}
}
