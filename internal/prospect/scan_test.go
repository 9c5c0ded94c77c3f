package prospect

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPayloadRoundTrip(t *testing.T) {
	name, email, err := ParsePayload(Payload("Paul Hudson", "paul@hackingwithswift.com"))
	require.NoError(t, err)
	require.Equal(t, "Paul Hudson", name)
	require.Equal(t, "paul@hackingwithswift.com", email)
}

func TestParsePayloadVariants(t *testing.T) {
	tests := []struct {
		in    string
		name  string
		email string
		err   bool
	}{
		{in: "Amy|a@x.com", name: "Amy", email: "a@x.com"},
		{in: " Amy \r\n a@x.com ", name: "Amy", email: "a@x.com"},
		{in: "Amy\nline two\nline three", name: "Amy", email: "line two\nline three"},
		{in: "Anonymous\n", name: "Anonymous", email: ""},
		{in: "no separator", err: true},
		{in: "\n", err: true},
		{in: "", err: true},
	}
	for _, tc := range tests {
		name, email, err := ParsePayload(tc.in)
		if tc.err {
			require.ErrorIs(t, err, ErrInvalidScan, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.name, name)
		require.Equal(t, tc.email, email)
	}
}
