package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPeriod(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		month   int
		wantErr bool
	}{
		{"valid", 2025, 6, false},
		{"december", 2025, 12, false},
		{"month zero", 2025, 0, true},
		{"month thirteen", 2025, 13, true},
		{"year too small", 1999, 6, true},
		{"year too large", 2201, 6, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewPeriod(tc.year, tc.month)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.year, p.Year)
			assert.Equal(t, time.Month(tc.month), p.Month)
		})
	}
}

func TestPeriod_Window(t *testing.T) {
	p, err := NewPeriod(2025, 6)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), p.Start())
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), p.End())

	assert.True(t, p.Contains(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)))
	assert.True(t, p.Contains(p.Start()))
	assert.False(t, p.Contains(p.End()))
	assert.False(t, p.Contains(time.Date(2025, 5, 31, 23, 59, 59, 0, time.UTC)))
}

func TestPeriod_Next(t *testing.T) {
	p, _ := NewPeriod(2025, 12)
	next := p.Next()
	assert.Equal(t, 2026, next.Year)
	assert.Equal(t, time.January, next.Month)
}

func TestPeriod_Ordering(t *testing.T) {
	jan, _ := NewPeriod(2025, 1)
	jun, _ := NewPeriod(2025, 6)
	dec24, _ := NewPeriod(2024, 12)

	assert.True(t, jan.Before(jun))
	assert.True(t, jun.After(jan))
	assert.True(t, dec24.Before(jan))
	assert.True(t, jan.Equal(jan))
	assert.False(t, jan.Equal(jun))
}

func TestPeriod_String(t *testing.T) {
	p, _ := NewPeriod(2025, 3)
	assert.Equal(t, "2025-03", p.String())
}
