package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDriverStatus_Valid(t *testing.T) {
	t.Parallel()

	require.True(t, StatusPending.Valid())
	require.True(t, StatusApproved.Valid())
	require.True(t, StatusRejected.Valid())
	require.False(t, DriverStatus("busy").Valid())
	require.False(t, DriverStatus("").Valid())
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want DriverStatus
		ok   bool
	}{
		{"approved", StatusApproved, true},
		{"APPROVED", StatusApproved, true},
		{"  Pending ", StatusPending, true},
		{"rejected", StatusRejected, true},
		{"banana", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseStatus(tc.raw)
		require.Equal(t, tc.ok, ok, "raw=%q", tc.raw)
		if ok {
			require.Equal(t, tc.want, got)
		}
	}
}
