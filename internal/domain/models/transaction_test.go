package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"successful": StatusSuccessful,
		"Success":    StatusSuccessful,
		" PENDING ":  StatusPending,
		"failed":     StatusFailed,
		"refunded":   Status("refunded"),
		"":           Status(""),
	}

	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, ParseStatus(in))
		})
	}

	assert.True(t, IsAlias("success"))
	assert.False(t, IsAlias("successful"))
	assert.False(t, Status("refunded").IsValid())
	assert.True(t, ParseStatus("success").IsSuccessful())
}

func TestHasAccommodation(t *testing.T) {
	assert.False(t, Transaction{}.HasAccommodation())
	assert.False(t, Transaction{Hostel: "  "}.HasAccommodation())
	assert.True(t, Transaction{RoomNumber: "B12"}.HasAccommodation())
	assert.True(t, Transaction{Hostel: "Jaja Hall"}.HasAccommodation())
}
