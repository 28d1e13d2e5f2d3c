package migration

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerify_Consistent(t *testing.T) {
	before := map[string]int{"products": 2}
	after := map[string]int{"products": 5}

	result := Verify(before, after, 3)

	require.Equal(t, 3, result.ExpectedDelta)
	require.Equal(t, 3, result.ObservedDelta)
	require.True(t, result.Consistent)
}

func TestVerify_MismatchIsReportedNotCorrected(t *testing.T) {
	// Another actor wrote to the destination during the run.
	before := map[string]int{"products": 2, "customers": 1}
	after := map[string]int{"products": 5, "customers": 2}

	result := Verify(before, after, 3)

	require.Equal(t, 3, result.ExpectedDelta)
	require.Equal(t, 4, result.ObservedDelta)
	require.False(t, result.Consistent)
	require.Equal(t, before, result.Before)
	require.Equal(t, after, result.After)
}
