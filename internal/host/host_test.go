package host

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("")
	require.NoError(t, err)
	require.Equal(t, IntervalDaily, g)

	g, err = ParseGranularity("weekly")
	require.NoError(t, err)
	require.Equal(t, IntervalWeekly, g)

	_, err = ParseGranularity("hourly")
	require.ErrorContains(t, err, "invalid granularity")
}

func TestStaticPlatform(t *testing.T) {
	require.True(t, StaticPlatform{APILevel: 21}.SupportsUsageStats())
	require.True(t, StaticPlatform{APILevel: 34}.SupportsUsageStats())
	require.False(t, StaticPlatform{APILevel: 20}.SupportsUsageStats())
	require.False(t, StaticPlatform{APILevel: 25, MinAPILevel: 26}.SupportsUsageStats())
}

func TestGrantString(t *testing.T) {
	require.Equal(t, "granted", GrantGranted.String())
	require.Equal(t, "denied", GrantDenied.String())
}
