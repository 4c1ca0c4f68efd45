package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateShiftTimes(t *testing.T) {
	cases := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{"morning shift", "08:00", "16:00", false},
		{"overnight shift", "22:00", "06:00", false},
		{"edge of day", "00:00", "23:59", false},
		{"same start and end", "08:00", "08:00", true},
		{"hour out of range", "24:00", "08:00", true},
		{"minute out of range", "08:60", "16:00", true},
		{"missing leading zero", "8:00", "16:00", true},
		{"empty start", "", "16:00", true},
		{"garbage", "morning", "evening", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateShiftTimes(tc.start, tc.end)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
