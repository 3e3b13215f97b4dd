package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassesCommand(t *testing.T) {
	tests := []struct {
		name           string
		profile        string
		wantErr        bool
		wantContain    []string
		wantNotContain []string
	}{
		{
			name:    "all profiles",
			profile: "",
			wantContain: []string{
				"fast (8 classes)",
				"precise (20 classes)",
				"SC[ 7]  1025..inf   head",
				"SC[10]   161..192   first-fit",
				"SC[11]   193..256   best-fit",
			},
		},
		{
			name:           "fast only",
			profile:        "fast",
			wantContain:    []string{"fast (8 classes)", "SC[ 0]     1..16    head"},
			wantNotContain: []string{"precise"},
		},
		{
			name:    "unknown profile",
			profile: "turbo",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			classesProfile = tt.profile

			output, err := captureOutput(t, runClasses)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assertContains(t, output, tt.wantContain)
			for _, s := range tt.wantNotContain {
				assert.NotContains(t, output, s)
			}
		})
	}
}

func TestClassesJSON(t *testing.T) {
	resetFlags()
	jsonOut = true
	classesProfile = "precise"

	output, err := captureOutput(t, runClasses)
	require.NoError(t, err)

	var tables []profileTable
	assertJSON(t, output, &tables)
	require.Len(t, tables, 1)
	require.Len(t, tables[0].Classes, 20)

	assert.Equal(t, classRow{Class: 0, Min: 1, Max: 4, Strategy: "first-fit"}, tables[0].Classes[0])
	assert.Equal(t, classRow{Class: 19, Min: 1025, Strategy: "best-fit"}, tables[0].Classes[19])

	// Classes partition the positive sizes without gaps.
	for i := 1; i < len(tables[0].Classes); i++ {
		assert.Equal(t, tables[0].Classes[i-1].Max+1, tables[0].Classes[i].Min)
	}
}

func TestClassesQuiet(t *testing.T) {
	resetFlags()
	quiet = true

	output, err := captureOutput(t, runClasses)
	require.NoError(t, err)
	assert.Empty(t, output)
}
