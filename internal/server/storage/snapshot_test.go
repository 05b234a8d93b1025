package storage

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/calendar/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestNewSnapshot(t *testing.T) {
	tz := time.FixedZone("X", 2*60*60)
	s := NewSnapshot[item](time.Date(2024, 1, 1, 2, 0, 0, 0, tz))

	assert.Equal(t, fixedNow, s.Meta.CreatedAt)
	assert.Equal(t, time.UTC, s.Meta.CreatedAt.Location())
	assert.NotNil(t, s.Items)
}

func TestEncodeDecodeSnapshot(t *testing.T) {
	s := &Snapshot[item]{Meta: Meta{CreatedAt: fixedNow}}

	data, err := encodeSnapshot(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"meta":{"createdAt":"2024-01-01T00:00:00Z"},"items":[]}`, string(data))

	got, err := decodeSnapshot[item](data)
	require.NoError(t, err)
	assert.Equal(t, fixedNow, got.Meta.CreatedAt)
	assert.Empty(t, got.Items)
}

func TestDecodeSnapshot_Corrupted(t *testing.T) {
	_, err := decodeSnapshot[item]([]byte(`[1,2,3]`))
	assert.ErrorIs(t, err, common.ErrorCorrupted)
}
