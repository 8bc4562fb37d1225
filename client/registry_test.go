package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContinueSuppressesRefreshes(t *testing.T) {
	r := Registry{}
	r.Initialize()

	assert.True(t, r.Continue("10.0.0.1", "plants_a"), "first access counts")
	assert.False(t, r.Continue("10.0.0.1", "plants_a"), "same client, same item is a refresh")
	assert.True(t, r.Continue("10.0.0.1", "plants_b"), "same client, other item counts")
	assert.True(t, r.Continue("10.0.0.1", "plants_a"), "returning to an item counts again")
}

func TestCountAndDump(t *testing.T) {
	r := Registry{}
	r.Initialize()

	r.Continue("10.0.0.1", "plants_a")
	r.Continue("10.0.0.2", "gardens_b")
	r.Continue("10.0.0.2", "gardens_c")

	assert.Equal(t, 2, r.Count())
	assert.Len(t, r.Dump(50), 2)
	assert.Len(t, r.Dump(1), 1)
}

func TestFlushKeepsSmallRegistries(t *testing.T) {
	r := Registry{}
	r.Initialize()

	r.Continue("10.0.0.1", "plants_a")
	r.Flush()

	// entries are only expired once the map has grown past its bound
	assert.Equal(t, 1, r.Count())
}
