package wayland

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPayload(t *testing.T) {
	reply := `(true, '"{\"wm_class\":\"firefox\",\"title\":\"Mozilla Firefox\"}"')`

	payload, err := extractPayload(reply)

	require.NoError(t, err)
	assert.Equal(t, `{"wm_class":"firefox","title":"Mozilla Firefox"}`, payload)
}

func TestExtractPayloadEscapedQuoteInTitle(t *testing.T) {
	reply := `(true, '"{\"wm_class\":\"code\",\"title\":\"it\'s a title\"}"')`

	payload, err := extractPayload(reply)

	require.NoError(t, err)
	assert.Contains(t, payload, `"title":"it's a title"`)
}

func TestExtractPayloadNoWindow(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"empty reply", ""},
		{"eval failed", "(false, '')"},
		{"null payload", `(true, '"null"')`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractPayload(tt.reply)
			assert.Error(t, err)
		})
	}
}

func TestProbeDisplayServer(t *testing.T) {
	assert.Equal(t, "wayland", New().DisplayServer())
}
