package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateRangeIsZero(t *testing.T) {
	now := time.Now()

	assert.True(t, DateRange{}.IsZero())
	assert.False(t, DateRange{From: &now}.IsZero())
	assert.False(t, DateRange{To: &now}.IsZero())
	assert.False(t, DateRange{From: &now, To: &now}.IsZero())
}
