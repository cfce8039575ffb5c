package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberFormatField_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantLocales string
		wantNil     bool
		wantErr     bool
	}{
		{
			name:        "object form",
			input:       `{"locales":"th-TH","minimumFractionDigits":2}`,
			wantLocales: "th-TH",
		},
		{
			name:        "string-encoded form",
			input:       `"{\"locales\":\"en-US\",\"maximumFractionDigits\":0}"`,
			wantLocales: "en-US",
		},
		{
			name:    "null clears the field",
			input:   `null`,
			wantNil: true,
		},
		{
			name:    "empty string clears the field",
			input:   `""`,
			wantNil: true,
		},
		{
			name:    "malformed string payload",
			input:   `"{not json"`,
			wantErr: true,
		},
		{
			name:    "wrong type",
			input:   `42`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f NumberFormatField
			err := json.Unmarshal([]byte(tt.input), &f)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, f.Format)
				return
			}
			require.NotNil(t, f.Format)
			assert.Equal(t, tt.wantLocales, f.Format.Locales)
		})
	}
}

func TestNumberFormatField_MarshalJSON(t *testing.T) {
	var empty NumberFormatField
	data, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	var f NumberFormatField
	require.NoError(t, json.Unmarshal([]byte(`{"locales":"th-TH"}`), &f))
	data, err = json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{"locales":"th-TH"}`, string(data))
}
