package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mufasadev/easypay-receipts/internal/domain/models"
)

func TestSubjectAndAttachmentName(t *testing.T) {
	assert.Equal(t, "Payment Receipt - TXN-001", Subject("TXN-001"))
	assert.Equal(t, "Receipt-TXN-001.pdf", AttachmentName("TXN-001"))
}

func TestComposeHTML(t *testing.T) {
	r := newTestRenderer()

	body, err := r.composeHTML(fullTransaction())
	require.NoError(t, err)

	assert.Contains(t, body, ">SUCCESSFUL</span>")
	assert.Contains(t, body, "#1AB31A")
	assert.Contains(t, body, "NGN 5,000")
	assert.Contains(t, body, "Transaction Details")
	assert.Contains(t, body, "Receipt-TXN-001.pdf")
	assert.Contains(t, body, "Thursday, 1 October 2026")
	assert.Contains(t, body, "&copy; 2026 EasyPay")
	assert.NotContains(t, body, "Accommodation")

	t.Run("accommodation when present", func(t *testing.T) {
		tx := fullTransaction()
		tx.Hostel = "Queen Amina Hall"
		body, err := r.composeHTML(tx)
		require.NoError(t, err)
		assert.Contains(t, body, "Accommodation")
		assert.Contains(t, body, "Queen Amina Hall")
	})

	t.Run("values are escaped", func(t *testing.T) {
		tx := fullTransaction()
		tx.FullName = "<script>alert(1)</script>"
		body, err := r.composeHTML(tx)
		require.NoError(t, err)
		assert.NotContains(t, body, "<script>")
		assert.Contains(t, body, "&lt;script&gt;")
	})

	t.Run("keeps accented names", func(t *testing.T) {
		tx := fullTransaction()
		tx.FullName = "José Ñúñez"
		body, err := r.composeHTML(tx)
		require.NoError(t, err)
		assert.Contains(t, body, "José Ñúñez")
	})

	t.Run("pending uses amber", func(t *testing.T) {
		tx := fullTransaction()
		tx.Status = models.StatusPending
		body, err := r.composeHTML(tx)
		require.NoError(t, err)
		assert.Contains(t, body, ">PENDING</span>")
		assert.Contains(t, body, "#E6991A")
	})
}

func TestComposePlain(t *testing.T) {
	body := newTestRenderer().composePlain(fullTransaction())

	assert.Contains(t, body, "EasyPay Receipt #TXN-001")
	assert.Contains(t, body, "Status: SUCCESSFUL")
	assert.Contains(t, body, "Amount paid: NGN 5,000")
	assert.Contains(t, body, "Payment Method: Bank Transfer")
	assert.Contains(t, body, "Receipt-TXN-001.pdf")
	assert.Contains(t, body, "support@easypay.com")
	assert.NotContains(t, body, SectionAccommodation)
}
