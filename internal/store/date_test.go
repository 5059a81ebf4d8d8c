package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	d, err := ParseDate("2026-06-15")
	require.NoError(t, err)

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-06-15"`, string(out))

	var back Date
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, d, back)
}

func TestDateUnmarshalRejectsGarbage(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"15/06/2026"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20260615`), &d))
}

func TestDateScan(t *testing.T) {
	t.Run("from time.Time drops time of day", func(t *testing.T) {
		var d Date
		require.NoError(t, d.Scan(time.Date(2026, 6, 15, 18, 30, 0, 0, time.UTC)))
		assert.Equal(t, "2026-06-15", d.String())
	})

	t.Run("from bytes", func(t *testing.T) {
		var d Date
		require.NoError(t, d.Scan([]byte("2026-06-15")))
		assert.Equal(t, "2026-06-15", d.String())
	})

	t.Run("from nil", func(t *testing.T) {
		var d Date
		require.NoError(t, d.Scan(nil))
		assert.True(t, d.IsZero())
	})
}
