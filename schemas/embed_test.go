package schemas

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatements(t *testing.T) {
	got, err := Statements()
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.True(t, strings.HasPrefix(got[0], "CREATE TABLE IF NOT EXISTS attendance_stats"))
	assert.Contains(t, got[0], "UNIQUE KEY uq_attendance_stats_month (subject, class_number, year, month)")
}
