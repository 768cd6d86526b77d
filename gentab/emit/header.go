package emit

import (
	"fmt"
	"io"
	"strings"
)

// DefaultBanner is the comment written at the top of every generated header.
const DefaultBanner = "This file is auto-generated. Do not edit it."

// floatFormat keeps 15 digits after the decimal point.
const floatFormat = "%.15e"

// Header writes a single C header: banner, include guard, then every
// emitted value in call order. The prologue is written lazily on the first
// value and the epilogue by Close.
//
// The first write error is sticky and returned by every later call.
type Header struct {
	w       io.Writer
	name    string
	banner  string
	started bool
	closed  bool
	err     error
}

// NewHeader returns a header named name (without the .h suffix) writing to w.
func NewHeader(w io.Writer, name string, opts ...Option) *Header {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Header{w: w, name: name, banner: cfg.banner}
}

// Name returns the header name.
func (h *Header) Name() string { return h.name }

// Scalar writes a #define for v.
func (h *Header) Scalar(name string, v Value) error {
	if err := h.begin(name); err != nil {
		return err
	}
	switch v.Kind {
	case KindHex:
		h.printf("#define %-32s 0x%08X\n", name, uint32(v.Int))
	case KindFloat:
		h.printf("#define %-32s %f\n", name, v.Float)
	default:
		h.printf("#define %-32s %d\n", name, v.Int)
	}
	return h.err
}

// Vector writes a one-dimensional constant array.
func (h *Header) Vector(name string, values []float64) error {
	if err := h.begin(name); err != nil {
		return err
	}
	h.printf("static const fluid_real_t %s[%d] = {\n", name, len(values))
	for i, v := range values {
		h.printf(" "+floatFormat, v)
		if i < len(values)-1 {
			h.printf(",")
		}
		h.printf("\n")
	}
	h.printf("}; /* %s */\n\n", name)
	return h.err
}

// Matrix writes a two-dimensional constant array, one row per line.
func (h *Header) Matrix(name string, rows [][]float64) error {
	width, err := matrixWidth(rows)
	if err != nil {
		return err
	}
	if err := h.begin(name); err != nil {
		return err
	}
	h.printf("static const fluid_real_t %s[%d][%d] = {\n", name, len(rows), width)
	var sb strings.Builder
	for y, row := range rows {
		sb.Reset()
		sb.WriteString(" { ")
		for x, v := range row {
			fmt.Fprintf(&sb, floatFormat, v)
			if x < len(row)-1 {
				sb.WriteString(", ")
			}
		}
		sb.WriteString(" }")
		if y < len(rows)-1 {
			sb.WriteString(",")
		}
		h.printf("%s\n", sb.String())
	}
	h.printf("}; /* %s */\n\n", name)
	return h.err
}

// Close writes the include-guard epilogue. A header that never received a
// value still gets a complete prologue and epilogue.
func (h *Header) Close() error {
	if h.closed {
		return h.err
	}
	if !h.started {
		h.prologue()
	}
	h.printf("\n#endif /* %s */\n", h.guard())
	h.closed = true
	return h.err
}

func (h *Header) begin(name string) error {
	if h.closed {
		return ErrClosed
	}
	if err := validateNames(h.name, name); err != nil {
		return err
	}
	if !h.started {
		h.prologue()
	}
	return h.err
}

func (h *Header) prologue() {
	h.started = true
	h.printf("/* %s */\n\n", h.banner)
	h.printf("#ifndef %s\n#define %s\n\n", h.guard(), h.guard())
}

func (h *Header) guard() string {
	return "__" + strings.ToUpper(h.name) + "_H__"
}

func (h *Header) printf(format string, args ...any) {
	if h.err != nil {
		return
	}
	if _, err := fmt.Fprintf(h.w, format, args...); err != nil {
		h.err = fmt.Errorf("emit: write %s.h: %w", h.name, err)
	}
}
