package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "iso date",
			input: "2023-01-05",
			want:  time.Date(2023, time.January, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339",
			input: "2023-01-05T13:45:00Z",
			want:  time.Date(2023, time.January, 5, 13, 45, 0, 0, time.UTC),
		},
		{
			name:  "response layout round trip",
			input: "Thu Jan 05 2023",
			want:  time.Date(2023, time.January, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "garbage",
			input:   "not-a-date",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v got %v", tt.want, got)
		})
	}
}

func TestDateStringIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2023, time.January, 5, 0, 1, 0, 0, time.UTC)
	night := time.Date(2023, time.January, 5, 23, 59, 59, 0, time.UTC)

	assert.Equal(t, "Thu Jan 05 2023", DateString(morning))
	assert.Equal(t, DateString(morning), DateString(night))
}
