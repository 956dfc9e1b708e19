package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNeighborMap_RejectsNegativeCost(t *testing.T) {
	_, err := NewNeighborMap(map[Endpoint]float64{"localhost:5001": -1})
	require.Error(t, err)
}

func TestNewNeighborMap_AcceptsZeroCost(t *testing.T) {
	nm, err := NewNeighborMap(map[Endpoint]float64{"localhost:5001": 0})
	require.NoError(t, err)
	cost, ok := nm.Cost("localhost:5001")
	assert.True(t, ok)
	assert.Equal(t, 0.0, cost)
}

func TestNeighborMap_Endpoints(t *testing.T) {
	nm, err := NewNeighborMap(map[Endpoint]float64{
		"localhost:5001": 1,
		"localhost:5002": 2,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []Endpoint{"localhost:5001", "localhost:5002"}, nm.Endpoints())
}
