package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocation(t *testing.T) {
	assert.Equal(t, "Europe/Paris", Location("").String())
	assert.Equal(t, "Europe/Paris", Location("Not/AZone").String())
	assert.Equal(t, "America/Sao_Paulo", Location("America/Sao_Paulo").String())
	assert.False(t, IsValid(""))
}

func TestFrenchDate(t *testing.T) {
	// 23:30 UTC on 31 Jan is already 1 Feb in Paris.
	ts := time.Date(2026, time.January, 31, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "01/02/2026", FrenchDate(ts))
}
