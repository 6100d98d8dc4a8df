package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultsPerKind(t *testing.T) {
	s, err := New(KindAxisScan, Options{})
	require.NoError(t, err)
	scan, ok := s.(*AxisScan)
	require.True(t, ok)
	assert.Equal(t, StartFront, scan.Config.Start)
	assert.Equal(t, SortWeight, scan.Config.SortBy)
	assert.False(t, scan.Config.AllowStacking)

	s, err = New(KindXZone, Options{})
	require.NoError(t, err)
	xz, ok := s.(*XZone)
	require.True(t, ok)
	assert.Equal(t, 3, xz.Config.Zones)
	assert.Equal(t, 0.8, xz.Config.BalancingFactor)

	s, err = New(KindYZone, Options{})
	require.NoError(t, err)
	yz, ok := s.(*YZone)
	require.True(t, ok)
	assert.Equal(t, 2, yz.Config.Zones)
	assert.Equal(t, "L10", yz.Config.ReservedType)

	s, err = New(KindZLayer, Options{})
	require.NoError(t, err)
	zl, ok := s.(*ZLayer)
	require.True(t, ok)
	assert.Equal(t, 2, zl.Config.Layers)
	assert.Equal(t, 0.7, zl.Config.WeightFactor)
}

func TestNew_AppliesOverrides(t *testing.T) {
	stacking := true
	s, err := New(KindAxisScan, Options{Start: StartBack, SortBy: SortVolume, AllowStacking: &stacking})
	require.NoError(t, err)
	scan := s.(*AxisScan)
	assert.Equal(t, StartBack, scan.Config.Start)
	assert.Equal(t, SortVolume, scan.Config.SortBy)
	assert.True(t, scan.Config.AllowStacking)

	s, err = New(KindXZone, Options{Zones: 5, BalancingFactor: 0.5})
	require.NoError(t, err)
	xz := s.(*XZone)
	assert.Equal(t, 5, xz.Config.Zones)
	assert.Equal(t, 0.5, xz.Config.BalancingFactor)

	s, err = New(KindYZone, Options{Zones: 3, ReservedType: "EUR"})
	require.NoError(t, err)
	yz := s.(*YZone)
	assert.Equal(t, 3, yz.Config.Zones)
	assert.Equal(t, "EUR", yz.Config.ReservedType)

	s, err = New(KindZLayer, Options{Layers: 3, WeightFactor: 0.4})
	require.NoError(t, err)
	zl := s.(*ZLayer)
	assert.Equal(t, 3, zl.Config.Layers)
	assert.Equal(t, 0.4, zl.Config.WeightFactor)
}

func TestNew_UnknownKind(t *testing.T) {
	s, err := New(Kind("bogus"), Options{})
	assert.Nil(t, s)
	require.Error(t, err)

	var unknown *UnknownStrategyError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, Kind("bogus"), unknown.Kind)
	assert.Equal(t, Kinds(), unknown.Available)
	assert.Contains(t, err.Error(), "axis_scan")
	assert.Contains(t, err.Error(), "z_layer")
}

func TestNew_RejectsBadOptions(t *testing.T) {
	cases := []struct {
		name string
		opts Options
	}{
		{"negative zones", Options{Zones: -1}},
		{"negative layers", Options{Layers: -2}},
		{"negative balancing factor", Options{BalancingFactor: -0.1}},
		{"negative weight factor", Options{WeightFactor: -0.5}},
		{"bad start", Options{Start: "sideways"}},
		{"bad sort order", Options{SortBy: SortOrder("height")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := New(KindAxisScan, tc.opts)
			assert.Nil(t, s)
			assert.Error(t, err)
		})
	}
}

func TestKinds_PresentationOrder(t *testing.T) {
	assert.Equal(t, []Kind{KindAxisScan, KindXZone, KindYZone, KindZLayer}, Kinds())
}

func TestDescribe_CoversEveryKind(t *testing.T) {
	for _, k := range Kinds() {
		assert.NotEmpty(t, Describe(k), "kind %s", k)
	}
	assert.Empty(t, Describe(Kind("bogus")))
}
