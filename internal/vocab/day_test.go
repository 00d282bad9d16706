package vocab

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain day", input: "2024-01-10", want: "2024-01-10"},
		{name: "invalid format", input: "10/01/2024", wantErr: true},
		{name: "not a date", input: "yesterday", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDay(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestNewDay_DropsTimeOfDay(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	day := NewDay(time.Date(2024, 3, 15, 23, 59, 58, 123, loc))
	assert.Equal(t, "2024-03-15", day.String())

	other := NewDay(time.Date(2024, 3, 15, 0, 0, 1, 0, time.UTC))
	assert.True(t, day.Equal(other.Time), "same calendar day must compare equal")
}

func TestDay_AddDays(t *testing.T) {
	day, err := ParseDay("2024-01-30")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", day.AddDays(2).String())
	assert.Equal(t, "2024-01-30", day.AddDays(0).String())
}

func TestDay_ScanValue(t *testing.T) {
	day, err := ParseDay("2024-01-10")
	require.NoError(t, err)

	value, err := day.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", value)

	tests := []struct {
		name    string
		src     interface{}
		want    string
		wantErr bool
	}{
		{name: "string", src: "2024-01-10", want: "2024-01-10"},
		{name: "bytes", src: []byte("2024-05-01"), want: "2024-05-01"},
		{name: "time", src: time.Date(2024, 6, 2, 13, 0, 0, 0, time.UTC), want: "2024-06-02"},
		{name: "unsupported", src: 42, wantErr: true},
		{name: "bad string", src: "nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var scanned Day
			err := scanned.Scan(tt.src)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, scanned.String())
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "apple", Normalize(" Apple "))
	assert.Equal(t, "two words", Normalize("Two Words"))
	assert.Equal(t, "", Normalize("   "))
}
