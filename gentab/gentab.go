// Package gentab generates every lookup table of the synthesizer and hands
// them to an [emit.Sink].
//
// The conversion curves and the interpolation kernels are independent pure
// computations and are generated concurrently. Emission is sequential and
// always in the same order, so the produced headers are byte-identical from
// run to run.
package gentab

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-synthtab/gentab/curve"
	"github.com/cwbudde/algo-synthtab/gentab/emit"
	"github.com/cwbudde/algo-synthtab/gentab/kernel"
)

// Destinations lists every header written by Emit, in order.
var Destinations = []string{
	curve.DestTables,
	curve.DestConst,
	kernel.DestTables,
	kernel.DestConst,
}

// Set is one complete generation run.
type Set struct {
	Curves  *curve.Tables
	Kernels *kernel.Tables
}

// Generate computes all tables. It only fails if ctx is done before the
// generators start.
func Generate(ctx context.Context) (*Set, error) {
	var s Set
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		s.Curves = curve.Generate()
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		s.Kernels = kernel.Generate()
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("gentab: %w", err)
	}
	return &s, nil
}

// Emit writes the conversion curves, then the kernels. The first sink
// error aborts emission.
func (s *Set) Emit(sink emit.Sink) error {
	if err := s.Curves.Emit(sink); err != nil {
		return fmt.Errorf("gentab: emit conversion tables: %w", err)
	}
	if err := s.Kernels.Emit(sink); err != nil {
		return fmt.Errorf("gentab: emit interpolation tables: %w", err)
	}
	return nil
}

// Write generates all tables and emits them to sink.
func Write(ctx context.Context, sink emit.Sink) error {
	s, err := Generate(ctx)
	if err != nil {
		return err
	}
	return s.Emit(sink)
}
