package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/poolkit/internal/check"
	"github.com/joshuapare/poolkit/pool"
)

func setStressFlags(size, workers, cycles, maxBlock int) {
	stressSize = size
	stressWorkers = workers
	stressCycles = cycles
	stressMaxBlock = maxBlock
	stressSeed = 7
}

func TestStressCommand(t *testing.T) {
	resetFlags()
	setStressFlags(16*1024, 4, 500, 64)

	output, err := captureOutput(t, runStress)
	require.NoError(t, err)
	assertContains(t, output, []string{
		"Stress Run",
		"Workers: 4, cycles per worker: 500",
		"Seed: 7",
		"Capacity: 16.0 KB",
		"Ledger verified",
	})
}

func TestStressCommand_JSON(t *testing.T) {
	resetFlags()
	jsonOut = true
	setStressFlags(32*1024, 3, 300, 128)

	output, err := captureOutput(t, runStress)
	require.NoError(t, err)

	var report stressReport
	decodeJSON(t, output, &report)
	assert.Equal(t, 3, report.Workers)
	assert.Equal(t, 32*1024, report.Stats.Capacity)
	// resizes allocate internally, so every attempt shows up in AllocCalls
	assert.Equal(t, report.Allocs+report.Resizes+report.Exhausted, int64(report.Stats.AllocCalls))
	assert.LessOrEqual(t, report.Stats.LiveBytes, report.Stats.Capacity)
}

func TestStressCommand_ExhaustedPoolStillVerifies(t *testing.T) {
	resetFlags()
	setStressFlags(512, 4, 400, 96)

	output, err := captureOutput(t, runStress)
	require.NoError(t, err)
	assertContains(t, output, []string{"Exhausted:", "Ledger verified"})
}

func TestStressCommand_InvalidFlags(t *testing.T) {
	resetFlags()
	setStressFlags(1024, 0, 10, 16)

	_, err := captureOutput(t, runStress)
	require.Error(t, err)
}

func TestCrossCheck(t *testing.T) {
	p, err := pool.New(256, nil)
	require.NoError(t, err)
	defer p.Close()

	a, err := p.Alloc(16)
	require.NoError(t, err)
	b, err := p.Alloc(8)
	require.NoError(t, err)

	tests := []struct {
		name    string
		ranges  []check.Range
		wantErr string
	}{
		{"matches ledger", []check.Range{{Off: int(a), Len: 16}, {Off: int(b), Len: 8}}, ""},
		{"missing block", []check.Range{{Off: int(a), Len: 16}}, "1 tracked ranges, 2 live blocks"},
		{"wrong length", []check.Range{{Off: int(a), Len: 12}, {Off: int(b), Len: 8}}, "ledger length 16"},
		{"not a block", []check.Range{{Off: int(a), Len: 16}, {Off: int(b) + 100, Len: 8}}, "is not a live block"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := check.NewTracker()
			for _, r := range tt.ranges {
				require.NoError(t, tr.Add(r))
			}

			err := crossCheck(p, tr)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
