package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terranova/density/pkg/domain"
)

func TestParseVec(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.Vec3
		wantErr bool
	}{
		{"1,2,3", domain.Vec3{X: 1, Y: 2, Z: 3}, false},
		{" 0.5, -64 ", domain.Vec3{X: 0.5, Y: -64}, false},
		{"7", domain.Vec3{X: 7}, false},
		{"1,2,3,4", domain.Vec3{}, true},
		{"a,b", domain.Vec3{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseVec(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSize(t *testing.T) {
	got, err := parseSize("16,1,8")
	require.NoError(t, err)
	assert.Equal(t, [3]int{16, 1, 8}, got)

	_, err = parseSize("16,1")
	assert.Error(t, err)
}

func TestParseInputs(t *testing.T) {
	in, err := parseInputs("")
	require.NoError(t, err)
	assert.Nil(t, in)

	in, err = parseInputs(`{"terrain":64,"baseHeights":{"sea":62}}`)
	require.NoError(t, err)
	require.NotNil(t, in.Terrain)
	assert.Equal(t, 64.0, in.Terrain(domain.Vec3{X: 9}))
	assert.Equal(t, 62.0, in.BaseHeights["sea"])

	_, err = parseInputs(`{`)
	assert.ErrorContains(t, err, "--inputs")
}
