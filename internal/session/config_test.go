package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid",
			cfg:  Config{Interval: 5 * time.Second, Duration: time.Minute},
		},
		{
			name: "interval equal to duration",
			cfg:  Config{Interval: time.Minute, Duration: time.Minute},
		},
		{
			name:    "zero interval",
			cfg:     Config{Interval: 0, Duration: time.Minute},
			wantErr: true,
		},
		{
			name:    "negative interval",
			cfg:     Config{Interval: -time.Second, Duration: time.Minute},
			wantErr: true,
		},
		{
			name:    "zero duration",
			cfg:     Config{Interval: time.Second, Duration: 0},
			wantErr: true,
		},
		{
			name:    "interval exceeds duration",
			cfg:     Config{Interval: 2 * time.Minute, Duration: time.Minute},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
