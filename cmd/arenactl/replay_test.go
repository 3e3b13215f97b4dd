package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/joshuapare/arenakit/workload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mergeTrace = `# two neighbours freed back to front, then one larger block
a 1 100
a 2 100
f 2
f 1
a 3 220
`

func TestReplayCommand(t *testing.T) {
	tests := []struct {
		name        string
		profile     string
		verify      bool
		wantErr     bool
		wantContain []string
	}{
		{
			name:    "precise merges and reuses",
			profile: "precise",
			wantContain: []string{
				"Profile:    precise",
				"Operations: 5 (3 allocs, 2 frees)",
				"Live:       peak 2, leaked 1",
				"Blocks:     1 reused, 0 split, 2 bumped, 1 coalesced",
			},
		},
		{
			name:    "fast bumps",
			profile: "fast",
			wantContain: []string{
				"Profile:    fast",
				"Blocks:     0 reused, 0 split, 3 bumped, 0 coalesced",
			},
		},
		{
			name:        "verify",
			profile:     "precise",
			verify:      true,
			wantContain: []string{"Verified:   ok"},
		},
		{
			name:    "bad profile",
			profile: "nope",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			replayAlloc.profile = tt.profile
			replayVerify = tt.verify
			path := writeTrace(t, "merge.trace", mergeTrace)

			output, err := captureOutput(t, func() error {
				return runReplay(context.Background(), []string{path})
			})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err, output)
			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestReplayJSON(t *testing.T) {
	resetFlags()
	jsonOut = true
	path := writeTrace(t, "merge.trace", mergeTrace)

	output, err := captureOutput(t, func() error {
		return runReplay(context.Background(), []string{path})
	})
	require.NoError(t, err)

	var report ReplayReport
	assertJSON(t, output, &report)
	assert.Equal(t, 5, report.Ops)
	assert.Equal(t, uint64(1), report.Leaked)
	assert.Equal(t, 1, report.Coalesces)
	assert.Equal(t, 2*(32+100), report.Cursor)
}

func TestReplayCompressedTrace(t *testing.T) {
	resetFlags()
	tr := workload.Generate(workload.GenerateConfig{Seed: 4, Ops: 2000, MaxSize: 1024, FreeAll: true})
	path := filepath.Join(t.TempDir(), "gen.trace.lz4")
	require.NoError(t, workload.Save(path, tr))
	replayVerify = true

	output, err := captureOutput(t, func() error {
		return runReplay(context.Background(), []string{path})
	})
	require.NoError(t, err)
	assertContains(t, output, []string{"leaked 0", "Verified:   ok"})
}

func TestReplayErrors(t *testing.T) {
	resetFlags()

	_, err := captureOutput(t, func() error {
		return runReplay(context.Background(), []string{filepath.Join(t.TempDir(), "missing.trace")})
	})
	require.ErrorContains(t, err, "failed to load trace")

	bad := writeTrace(t, "bad.trace", "a 1 8\nf 2\n")
	_, err = captureOutput(t, func() error {
		return runReplay(context.Background(), []string{bad})
	})
	require.ErrorIs(t, err, workload.ErrUnknownID)

	resetFlags()
	replayAlloc.capacity = 1024
	big := writeTrace(t, "big.trace", "a 1 4096\n")
	_, err = captureOutput(t, func() error {
		return runReplay(context.Background(), []string{big})
	})
	require.ErrorContains(t, err, "exhausted")
}

func TestReplayVerbosePrintsStats(t *testing.T) {
	resetFlags()
	verbose = true
	path := writeTrace(t, "merge.trace", mergeTrace)

	output, err := captureOutput(t, func() error {
		return runReplay(context.Background(), []string{path})
	})
	require.NoError(t, err)
	assertContains(t, output, []string{"Loading trace:", "=== ARENA STATISTICS (precise) ===", "Capacity:           268,435,456 bytes"})
}
