package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimezoneName(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	assert.Equal(t, "Asia/Kolkata", timezoneName(kolkata))
	assert.Equal(t, "UTC", timezoneName(time.UTC))
	assert.Empty(t, timezoneName(time.Local))
	assert.Empty(t, timezoneName(nil))
}
