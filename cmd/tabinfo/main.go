// Command tabinfo prints frequency-domain properties of the generated
// interpolation kernels.
//
// Usage:
//
//	tabinfo [flags] [kernel-name ...]
//
// Without arguments it prints info for all kernels.
//
// Examples:
//
//	tabinfo
//	tabinfo -fft 16384 sinc7
//	tabinfo -wav /tmp/preview -ratio 1.4983 cubic sinc7
//	tabinfo -list
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-synthtab/dsp/interp"
	"github.com/cwbudde/algo-synthtab/gentab/kernel"
	"github.com/cwbudde/algo-synthtab/measure/kernelresp"
	"github.com/cwbudde/algo-synthtab/preview"
)

var errNoKernels = errors.New("no matching kernels")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("tabinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fftSize := fs.Int("fft", 0, "FFT length for the response (power of two, 0 = automatic)")
	list := fs.Bool("list", false, "list available kernel names")
	wavPrefix := fs.String("wav", "", "also render a test tone per kernel to <prefix>-<kernel>.wav")
	ratio := fs.Float64("ratio", 1.5, "pitch ratio of the rendered test tone")
	tone := fs.Float64("tone", 1000, "frequency of the rendered test tone in Hz")
	rate := fs.Int("rate", 44100, "sample rate of the rendered test tone")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: tabinfo [flags] [kernel-name ...]\n\n")
		fmt.Fprintf(stderr, "Prints frequency-domain properties of the interpolation kernels.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	all := interp.Kernels(kernel.Generate())
	if *list {
		for _, k := range all {
			fmt.Fprintln(stdout, k.Name)
		}
		return nil
	}

	kernels := resolveKernels(all, fs.Args(), stderr)
	if len(kernels) == 0 {
		return errNoKernels
	}

	var opts []kernelresp.Option
	if *fftSize > 0 {
		opts = append(opts, kernelresp.WithFFTSize(*fftSize))
	}
	if err := printAnalysis(stdout, kernels, opts); err != nil {
		return err
	}

	if *wavPrefix == "" {
		return nil
	}
	for _, k := range kernels {
		path := fmt.Sprintf("%s-%s.wav", *wavPrefix, k.Name)
		err := renderWAV(path, k, *rate,
			preview.WithSampleRate(*rate), preview.WithRatio(*ratio), preview.WithFrequency(*tone))
		if err != nil {
			return err
		}
		fmt.Fprintf(stderr, "wrote %s\n", path)
	}
	return nil
}

func resolveKernels(all []interp.Kernel, names []string, stderr io.Writer) []interp.Kernel {
	if len(names) == 0 {
		return all
	}
	var result []interp.Kernel
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		i := slices.IndexFunc(all, func(k interp.Kernel) bool { return k.Name == name })
		if i < 0 {
			fmt.Fprintf(stderr, "warning: unknown kernel %q (use -list to see available)\n", name)
			continue
		}
		result = append(result, all[i])
	}
	return result
}

func printAnalysis(w io.Writer, kernels []interp.Kernel, opts []kernelresp.Option) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Kernel\tTaps\tFFT\tDC [dB]\tfs/4 [dB]\tfs/2 [dB]\tStopband [dB]\tRow Sum Err\n")
	fmt.Fprintf(tw, "------\t----\t---\t-------\t---------\t---------\t-------------\t-----------\n")
	for _, k := range kernels {
		r, err := kernelresp.Analyze(k.Rows, opts...)
		if err != nil {
			return fmt.Errorf("%s: %w", k.Name, err)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.4f\t%.4f\t%.4f\t%.2f\t%.3e\n",
			k.Name,
			r.Taps,
			r.FFTSize,
			r.DCGainDB,
			r.HalfNyquistGainDB,
			r.NyquistGainDB,
			r.StopbandPeakDB,
			r.MaxRowSumError,
		)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

func renderWAV(path string, k interp.Kernel, sampleRate int, opts ...preview.Option) error {
	samples, err := preview.Render(k, opts...)
	if err != nil {
		return fmt.Errorf("%s: %w", k.Name, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := preview.WriteWAV(f, samples, sampleRate); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
