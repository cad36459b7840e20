package dtos

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStringList(t *testing.T) {
	tests := []struct {
		name    string
		values  []string
		want    []string
		wantErr bool
	}{
		{name: "absent", values: nil, want: nil},
		{name: "encoded array", values: []string{`["node", "go"]`}, want: []string{"node", "go"}},
		{name: "encoded empty array", values: []string{`[]`}, want: []string{}},
		{name: "repeated values", values: []string{"node", " go ", ""}, want: []string{"node", "go"}},
		{name: "single plain value", values: []string{"teamwork"}, want: []string{"teamwork"}},
		{name: "malformed encoding", values: []string{`["node"`}, wantErr: true},
		{name: "non-string items", values: []string{`[1, 2]`}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStringList(tt.values)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedList)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringListUnmarshal(t *testing.T) {
	var body struct {
		Native  StringList `json:"native"`
		Encoded StringList `json:"encoded"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"native":["a","b"],"encoded":"[\"c\"]"}`), &body))
	assert.Equal(t, StringList{"a", "b"}, body.Native)
	assert.Equal(t, StringList{"c"}, body.Encoded)

	var bad struct {
		Skills StringList `json:"skills"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"skills":"[oops"}`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`{"skills":42}`), &bad))
}
