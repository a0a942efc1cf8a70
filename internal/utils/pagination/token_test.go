package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	ts := time.Date(2023, 5, 15, 14, 30, 45, 123456000, time.UTC)

	token := EncodeToken(ts, "log-42")
	assert.NotEmpty(t, token, "Token should not be empty")

	gotTS, gotID, err := DecodeToken(token)
	assert.NoError(t, err)
	assert.True(t, ts.Equal(gotTS), "Timestamp should match after decode")
	assert.Equal(t, "log-42", gotID)
}

func TestDecodeToken_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "not base64", token: "%%%"},
		{name: "missing separator", token: "bm9zZXBhcmF0b3I"},
		{name: "truncated", token: EncodeToken(time.Time{}, "x")[:4]},
		{name: "bad timestamp", token: "bm90LWEtdGltZXx4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeToken(tt.token)
			assert.Error(t, err)
		})
	}
}
