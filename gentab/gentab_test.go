package gentab

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/cwbudde/algo-synthtab/gentab/emit"
)

type bufCloser struct{ *bytes.Buffer }

func (bufCloser) Close() error { return nil }

// render runs a full generation into in-memory headers.
func render(t *testing.T) map[string][]byte {
	t.Helper()
	bufs := map[string]*bytes.Buffer{}
	r := emit.NewRouter(func(dest string) (io.WriteCloser, error) {
		b := &bytes.Buffer{}
		bufs[dest] = b
		return bufCloser{b}, nil
	})
	if err := Write(context.Background(), r); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := r.Destinations(); !slices.Equal(got, Destinations) {
		t.Fatalf("destinations = %v, want %v", got, Destinations)
	}
	out := make(map[string][]byte, len(bufs))
	for k, b := range bufs {
		out[k] = b.Bytes()
	}
	return out
}

func TestWriteIsByteIdentical(t *testing.T) {
	a, b := render(t), render(t)
	for dest, data := range a {
		if !bytes.Equal(data, b[dest]) {
			t.Fatalf("%s differs between runs", dest)
		}
	}
}

func TestWriteHeaderContents(t *testing.T) {
	out := render(t)
	for dest, needles := range map[string][]string{
		"fluid_conv_tables": {
			"#ifndef __FLUID_CONV_TABLES_H__",
			"static const fluid_real_t fluid_ct2hz_tab[1200] = {",
			"static const fluid_real_t fluid_cb2amp_tab[1441] = {",
			"static const fluid_real_t fluid_concave_tab[128] = {",
			"static const fluid_real_t fluid_convex_tab[128] = {",
			"static const fluid_real_t fluid_pan_tab[1002] = {",
			" 1.000000000000000e+00,",
		},
		"fluid_conv_const": {
			"FLUID_PEAK_ATTENUATION           960.000000",
		},
		"fluid_rvoice_tables": {
			"static const fluid_real_t interp_coeff_linear[256][2] = {",
			"static const fluid_real_t interp_coeff[256][4] = {",
			"static const fluid_real_t sinc_table7[256][7] = {",
			"}; /* sinc_table7 */",
		},
		"fluid_phase_const": {
			"#define FLUID_INTERP_BITS                8\n",
			"#define FLUID_INTERP_BITS_MASK           0xFF000000\n",
			"#define FLUID_INTERP_BITS_SHIFT          24\n",
			"#define FLUID_INTERP_MAX                 256\n",
			"#define SINC_INTERP_ORDER                7\n",
		},
	} {
		text := string(out[dest])
		for _, n := range needles {
			if !strings.Contains(text, n) {
				t.Errorf("%s: missing %q", dest, n)
			}
		}
		if !strings.HasSuffix(text, "#endif /* __"+strings.ToUpper(dest)+"_H__ */\n") {
			t.Errorf("%s: missing include guard epilogue", dest)
		}
	}
}

func TestGenerateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Generate(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

var errUnwritable = errors.New("unwritable destination")

type limitSink struct {
	emit.Memory
	failDest string
}

func (l *limitSink) Vector(dest, name string, v []float64) error {
	if dest == l.failDest {
		return errUnwritable
	}
	return l.Memory.Vector(dest, name, v)
}

func (l *limitSink) Matrix(dest, name string, rows [][]float64) error {
	if dest == l.failDest {
		return errUnwritable
	}
	return l.Memory.Matrix(dest, name, rows)
}

func TestEmitAbortsOnSinkError(t *testing.T) {
	s, err := Generate(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	sink := &limitSink{failDest: "fluid_conv_tables"}
	if err := s.Emit(sink); !errors.Is(err, errUnwritable) {
		t.Fatalf("err = %v, want errUnwritable", err)
	}
	for _, e := range sink.Entries {
		if e.Dest != "fluid_conv_tables" {
			t.Fatalf("emission continued to %s after failure", e.Dest)
		}
	}

	sink = &limitSink{failDest: "fluid_rvoice_tables"}
	err = s.Emit(sink)
	if !errors.Is(err, errUnwritable) || !strings.Contains(err.Error(), "interpolation") {
		t.Fatalf("err = %v, want wrapped errUnwritable from interpolation tables", err)
	}
	if _, ok := sink.Lookup("FLUID_INTERP_BITS"); ok {
		t.Fatal("phase constants emitted after table failure")
	}
}

func TestWriteToDirectory(t *testing.T) {
	dir := t.TempDir()
	sink := emit.NewDirSink(dir)
	if err := Write(context.Background(), sink); err != nil {
		t.Fatal(err)
	}
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}
	for _, dest := range Destinations {
		if _, err := os.Stat(filepath.Join(dir, dest+".h")); err != nil {
			t.Errorf("missing %s.h: %v", dest, err)
		}
	}
}

func BenchmarkWrite(b *testing.B) {
	for b.Loop() {
		var m emit.Memory
		if err := Write(context.Background(), &m); err != nil {
			b.Fatal(err)
		}
	}
}
