package pool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/poolkit/internal/testutil"
	"github.com/joshuapare/poolkit/pool"
)

func TestDebugLogging(t *testing.T) {
	p, logs, cleanup := testutil.SetupPoolWithLog(t, 64)
	defer cleanup()

	a, err := p.Alloc(8)
	require.NoError(t, err)
	b, err := p.Resize(a, 16)
	require.NoError(t, err)
	require.NoError(t, p.Free(b))

	_, err = p.Alloc(1000)
	require.ErrorIs(t, err, pool.ErrNoSpace)

	out := logs.String()
	assert.Contains(t, out, "msg=alloc ref=8 size=8")
	assert.Contains(t, out, "msg=resize from_ref=8 to_ref=24")
	assert.Contains(t, out, "msg=free ref=24 size=16")
	assert.Contains(t, out, `msg="alloc exceeds capacity"`)
}

func TestSetupPool_DefaultOptions(t *testing.T) {
	p, cleanup := testutil.SetupPool(t)
	defer cleanup()

	assert.Equal(t, testutil.DefaultCapacity, p.Cap())
	require.NoError(t, p.Verify())
}
