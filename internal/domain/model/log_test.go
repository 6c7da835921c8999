package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogEntry_WithField(t *testing.T) {
	tests := []struct {
		name   string
		entry  *LogEntry
		key    string
		value  interface{}
		verify func(*testing.T, *LogEntry)
	}{
		{
			name:  "initializes nil fields",
			entry: &LogEntry{},
			key:   "product_id",
			value: int64(42),
			verify: func(t *testing.T, e *LogEntry) {
				assert.Equal(t, int64(42), e.Fields["product_id"])
			},
		},
		{
			name:  "keeps existing fields",
			entry: &LogEntry{Fields: map[string]interface{}{"size_id": int64(3)}},
			key:   "quantity",
			value: 2,
			verify: func(t *testing.T, e *LogEntry) {
				assert.Equal(t, int64(3), e.Fields["size_id"])
				assert.Equal(t, 2, e.Fields["quantity"])
			},
		},
		{
			name:  "overwrites existing key",
			entry: &LogEntry{Fields: map[string]interface{}{"quantity": 1}},
			key:   "quantity",
			value: 5,
			verify: func(t *testing.T, e *LogEntry) {
				assert.Equal(t, 5, e.Fields["quantity"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.entry.WithField(tt.key, tt.value)
			assert.Same(t, tt.entry, result)
			tt.verify(t, result)
		})
	}
}

func TestLogEntry_WithFields(t *testing.T) {
	entry := (&LogEntry{CartKey: "cart_guest_abc"}).WithFields(map[string]interface{}{
		"operation": "add",
		"lines":     1,
	})

	assert.Equal(t, "add", entry.Fields["operation"])
	assert.Equal(t, 1, entry.Fields["lines"])
	assert.Equal(t, "cart_guest_abc", entry.CartKey)

	entry.WithFields(map[string]interface{}{})
	assert.Len(t, entry.Fields, 2)
}
