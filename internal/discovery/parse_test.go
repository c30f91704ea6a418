package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{"plain", `{"a":1}`, `{"a":1}`, true},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`, true},
		{"nested", `x {"a":{"b":2}} y`, `{"a":{"b":2}}`, true},
		{"unterminated", `{"a":1`, `{"a":1`, true},
		{"none", `no json here`, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := extractJSON(tc.in, '{', '}')
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseObject_Repairs(t *testing.T) {
	var got struct {
		Name     string   `json:"name"`
		Features []string `json:"features"`
	}

	require.NoError(t, parseObject(`{"name": "Acme", "features": ["a", "b",],}`, &got))
	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, []string{"a", "b"}, got.Features)
}

func TestParseArray(t *testing.T) {
	var got []rawUseCase

	require.NoError(t, parseArray(`Sure! [{"name": "One"}, {"name": "Two"}] Hope this helps.`, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Two", got[1].Name)

	assert.ErrorIs(t, parseArray(`{"name": "not a list"}`, &got), ErrUnparseableResponse)
}

func TestDecodeLenient_TypeMismatch(t *testing.T) {
	var got ProductAnalysis

	assert.ErrorIs(t, decodeLenient(`{"features": 5}`, &got), ErrUnparseableResponse)
}
