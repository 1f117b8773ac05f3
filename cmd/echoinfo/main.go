// Command echoinfo prints the tables behind the tape echo: the musical
// fractions used for clock snapping and the passband droop of the
// fractional-delay interpolators.
//
// Usage:
//
//	echoinfo [flags]
//
// Without flags it prints both tables.
//
// Examples:
//
//	echoinfo -fractions
//	echoinfo -kernels -frac 0.25
//	echoinfo -snap 0.7 -snap 2.9
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-echo/dsp/clock"
	"github.com/cwbudde/algo-echo/dsp/interp"
	"github.com/cwbudde/algo-echo/measure/kernel"
)

// droopFreqs are the normalized frequencies (1 = Nyquist) reported by -kernels.
var droopFreqs = []float64{0.25, 0.5, 0.75, 0.9}

type ratioList []float64

func (r *ratioList) String() string {
	parts := make([]string, len(*r))
	for i, v := range *r {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}

	return strings.Join(parts, ",")
}

func (r *ratioList) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*r = append(*r, v)

	return nil
}

func main() {
	fractions := flag.Bool("fractions", false, "print the musical fraction table")
	kernels := flag.Bool("kernels", false, "print interpolator passband droop")
	frac := flag.Float64("frac", 0.5, "fractional read position for -kernels, in [0, 1)")
	var snaps ratioList
	flag.Var(&snaps, "snap", "print the fraction a clock multiplier snaps to (repeatable)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: echoinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints the clock fraction table and interpolator responses.\n")
		fmt.Fprintf(os.Stderr, "Without flags, prints both tables.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if !*fractions && !*kernels && len(snaps) == 0 {
		*fractions, *kernels = true, true
	}

	if *fractions {
		if err := printFractions(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	if len(snaps) > 0 {
		if err := printSnaps(os.Stdout, snaps); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	if *kernels {
		if err := printKernels(os.Stdout, *frac); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

func printFractions(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "#\tFraction\tRatio\tName\n-\t--------\t-----\t----\n"); err != nil {
		return err
	}

	for i, f := range clock.Fractions() {
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%.4f\t%s\n", i, f, f.Ratio(), f.Name); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func printSnaps(w io.Writer, ratios []float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Multiplier\tSnapped\tName\n----------\t-------\t----\n"); err != nil {
		return err
	}

	for _, r := range ratios {
		f := clock.PickClosestFraction(r)
		if _, err := fmt.Fprintf(tw, "%g\t%s\t%s\n", r, f, f.Name); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func printKernels(w io.Writer, frac float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := "Kernel\tFrac"
	rule := "------\t----"
	for _, f := range droopFreqs {
		header += fmt.Sprintf("\t%.2f Nyq [dB]", f)
		rule += "\t-------------"
	}
	if _, err := fmt.Fprintf(tw, "%s\n%s\n", header, rule); err != nil {
		return err
	}

	for _, kind := range []interp.Kind{interp.Linear, interp.Sinc} {
		s, err := kernel.Summarize(kind, frac, droopFreqs...)
		if err != nil {
			return err
		}

		row := fmt.Sprintf("%s\t%.3f", s.Kind, s.Frac)
		for _, d := range s.DroopDB {
			row += fmt.Sprintf("\t%.3f", d)
		}
		if _, err := fmt.Fprintln(tw, row); err != nil {
			return err
		}
	}

	return tw.Flush()
}
