// Command gentables writes the synthesizer lookup-table headers.
//
// Usage:
//
//	gentables [flags] [output-dir]
//
// It writes fluid_conv_tables.h, fluid_conv_const.h, fluid_rvoice_tables.h
// and fluid_phase_const.h into the output directory, which must exist.
//
// Examples:
//
//	gentables build/src
//	gentables -v -o build/src
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-synthtab/gentab"
	"github.com/cwbudde/algo-synthtab/gentab/emit"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("gentables", flag.ContinueOnError)
	fs.SetOutput(stderr)
	out := fs.String("o", "", "output directory (alternative to the positional argument)")
	verbose := fs.Bool("v", false, "print every written header")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: gentables [flags] [output-dir]\n\n")
		fmt.Fprintf(stderr, "Writes the lookup-table headers into output-dir.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	dir := *out
	switch {
	case fs.NArg() > 1:
		fs.Usage()
		return errUsage
	case fs.NArg() == 1 && dir != "" && fs.Arg(0) != dir:
		return fmt.Errorf("conflicting output directories %q and %q", dir, fs.Arg(0))
	case fs.NArg() == 1:
		dir = fs.Arg(0)
	case dir == "":
		fs.Usage()
		return errUsage
	}

	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	sink := emit.NewDirSink(dir)
	if err := gentab.Write(context.Background(), sink); err != nil {
		_ = sink.Close()
		return err
	}
	if err := sink.Close(); err != nil {
		return err
	}

	if *verbose {
		for _, dest := range sink.Destinations() {
			fmt.Fprintf(stderr, "wrote %s\n", filepath.Join(dir, dest+".h"))
		}
	}
	return nil
}
