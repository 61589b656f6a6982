package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimulateCountsAdjacentPairs(t *testing.T) {
	opts := options{pegs: 6, diameter: 300, spins: 5, seed: 7, min: 6, max: 12, maxSteps: 20000}
	rep := simulate(opts)

	total := rep.unsettled + rep.noPeg
	for pair, n := range rep.counts {
		total += n
		require.True(t, pair.A < pair.B)
		require.True(t, pair.B-pair.A == 1 || (pair.A == 1 && pair.B == 6), "pair %s", pair)
	}
	require.Equal(t, opts.spins, total)
	require.Zero(t, rep.unsettled)
	require.Equal(t, opts.pegs, rep.pegs)

	var out bytes.Buffer
	rep.print(&out, opts.spins)
	require.True(t, strings.HasPrefix(out.String(), "6 pegs, "))
	require.True(t, strings.Contains(out.String(), "mean steps to rest"))
}

func TestSimulateIsDeterministic(t *testing.T) {
	opts := options{pegs: 8, diameter: 256, spins: 3, seed: 42, min: 5, max: 10, maxSteps: 20000}
	a := simulate(opts)
	b := simulate(opts)
	require.Equal(t, a.counts, b.counts)
	require.Equal(t, a.steps, b.steps)
}
