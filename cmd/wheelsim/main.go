package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"sort"
	"strings"

	"github.com/playmatatu/spinwheel/internal/wheel"
)

type options struct {
	pegs     int
	diameter float64
	spins    int
	seed     int64
	min, max float64
	maxSteps int
}

type report struct {
	pegs      int
	counts    map[wheel.PegPair]int
	unsettled int
	noPeg     int
	steps     int
}

// simulate spins one wheel opts.spins times with random velocities and counts
// where the needle ended up.
func simulate(opts options) report {
	rng := rand.New(rand.NewSource(opts.seed))
	w := wheel.New(wheel.Config{
		ViewportWidth:  opts.diameter * 2,
		ViewportHeight: opts.diameter * 2,
		Diameter:       opts.diameter,
		X:              opts.diameter,
		Y:              opts.diameter,
		Pegs:           opts.pegs,
	})
	defer w.Dispose()

	rep := report{pegs: w.PegCount(), counts: make(map[wheel.PegPair]int)}
	for i := 0; i < opts.spins; i++ {
		w.Spin(opts.min + rng.Float64()*(opts.max-opts.min))
		steps, rested := w.RunToRest(opts.maxSteps)
		rep.steps += steps
		if !rested {
			rep.unsettled++
			continue
		}
		pair, ok := w.Selection()
		if !ok {
			rep.noPeg++
			continue
		}
		rep.counts[pair.Normalized()]++
	}
	return rep
}

func (r report) print(out io.Writer, spins int) {
	pairs := make([]wheel.PegPair, 0, len(r.counts))
	for p := range r.counts {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})

	fmt.Fprintf(out, "%d pegs, %d of %d pairs hit\n", r.pegs, len(pairs), r.pegs)
	for _, p := range pairs {
		n := r.counts[p]
		share := float64(n) / float64(spins)
		fmt.Fprintf(out, "%7s %6d %6.2f%% %s\n", p, n, share*100, strings.Repeat("#", int(share*200)))
	}
	if r.noPeg > 0 {
		fmt.Fprintf(out, "%7s %6d\n", "none", r.noPeg)
	}
	if r.unsettled > 0 {
		fmt.Fprintf(out, "%7s %6d\n", "moving", r.unsettled)
	}
	if spins > 0 {
		fmt.Fprintf(out, "mean steps to rest: %.0f\n", float64(r.steps)/float64(spins))
	}
}

func main() {
	var opts options
	flag.IntVar(&opts.pegs, "pegs", 12, "number of pegs")
	flag.Float64Var(&opts.diameter, "diameter", wheel.StandardSize, "wheel diameter in pixels")
	flag.IntVar(&opts.spins, "spins", 100, "number of spins")
	flag.Int64Var(&opts.seed, "seed", 1, "random seed")
	flag.Float64Var(&opts.min, "min", 5, "minimum angular velocity (rad/s)")
	flag.Float64Var(&opts.max, "max", wheel.MaxAngularVelocity, "maximum angular velocity (rad/s)")
	flag.IntVar(&opts.maxSteps, "max-steps", 36000, "step budget per spin")
	flag.Parse()

	if opts.pegs < 1 || opts.spins < 1 || opts.diameter <= 0 || opts.max < opts.min {
		flag.Usage()
		os.Exit(2)
	}

	log.Printf("[SIM] %d spins, %d pegs, diameter %.0f, omega in [%.1f, %.1f], seed %d",
		opts.spins, opts.pegs, opts.diameter, opts.min, opts.max, opts.seed)
	simulate(opts).print(os.Stdout, opts.spins)
}
