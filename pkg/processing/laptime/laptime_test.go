package laptime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMs(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want int64
	}{
		{"minutes and seconds", "1:25.123", 85123},
		{"two digit minutes", "10:05.001", 605001},
		{"with hours", "1:02:03.500", 3723500},
		{"seconds only", "59.999", 59999},
		{"sentinel", "N/A", InvalidMs},
		{"empty", "", InvalidMs},
		{"whitespace", "   ", InvalidMs},
		{"garbage", "abc", InvalidMs},
		{"negative", "-1:25.123", InvalidMs},
		{"zero", "0.000", InvalidMs},
		{"seconds out of range", "1:75.000", InvalidMs},
		{"minutes out of range with hours", "1:75:00.000", InvalidMs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseMs(tt.arg))
		})
	}
}

func TestFormatMs(t *testing.T) {
	assert.Equal(t, "1:25.123", FormatMs(85123))
	assert.Equal(t, "0:59.999", FormatMs(59999))
	assert.Equal(t, "1:02:03.500", FormatMs(3723500))
	assert.Equal(t, "N/A", FormatMs(0))
	assert.Equal(t, "N/A", FormatMs(InvalidMs))
}

func TestFastest(t *testing.T) {
	formatted, ms := Fastest([]string{"1:25.123", "1:24.789", "N/A", "1:26.000"})
	assert.Equal(t, "1:24.789", formatted)
	assert.Equal(t, int64(84789), ms)
}

func TestFastestAllInvalid(t *testing.T) {
	formatted, ms := Fastest([]string{"N/A", "", "junk"})
	assert.Equal(t, "N/A", formatted)
	assert.Equal(t, InvalidMs, ms)
	assert.False(t, IsValid(ms))
}

func TestFastestEmpty(t *testing.T) {
	formatted, ms := Fastest(nil)
	assert.Equal(t, "N/A", formatted)
	assert.Equal(t, InvalidMs, ms)
}
