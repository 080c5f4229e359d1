package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceMonthOf(t *testing.T) {
	assert.Equal(t, "2026-08", ReferenceMonthOf(time.Date(2026, 8, 29, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, "2026-01", ReferenceMonthOf(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestValidReferenceMonth(t *testing.T) {
	assert.True(t, ValidReferenceMonth("2026-08"))
	assert.True(t, ValidReferenceMonth("1999-12"))

	for _, bad := range []string{"", "2026", "2026-13", "08-2026", "2026-8", "2026/08", "abcd-ef"} {
		assert.False(t, ValidReferenceMonth(bad), "%q deveria ser inválido", bad)
	}
}

func TestDueDateFor(t *testing.T) {
	due, err := DueDateFor("2026-08")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), due)

	_, err = DueDateFor("não-é-mês")
	assert.Error(t, err)
}

func TestDaysLate(t *testing.T) {
	due := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysLate(due, due))
	assert.Equal(t, 0, DaysLate(due, due.Add(-48*time.Hour)))
	assert.Equal(t, 0, DaysLate(due, due.Add(12*time.Hour)))
	assert.Equal(t, 3, DaysLate(due, due.Add(3*24*time.Hour)))
}
