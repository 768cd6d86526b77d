package emit

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Option configures header output.
type Option func(*config)

type config struct {
	banner string
}

func defaultConfig() config {
	return config{banner: DefaultBanner}
}

// WithBanner replaces the comment written at the top of each header.
func WithBanner(s string) Option {
	return func(c *config) {
		if s != "" {
			c.banner = s
		}
	}
}

// OpenFunc opens the writer backing a destination.
type OpenFunc func(dest string) (io.WriteCloser, error)

// Router is a [Sink] that keeps one [Header] per destination. Writers are
// opened on first use through the OpenFunc and closed by Close.
type Router struct {
	open    OpenFunc
	opts    []Option
	headers map[string]*Header
	files   map[string]io.WriteCloser
	order   []string
	closed  bool
}

// NewRouter returns a Router that opens destinations with open.
func NewRouter(open OpenFunc, opts ...Option) *Router {
	return &Router{
		open:    open,
		opts:    opts,
		headers: make(map[string]*Header),
		files:   make(map[string]io.WriteCloser),
	}
}

// NewDirSink returns a Router writing <dir>/<dest>.h files.
func NewDirSink(dir string, opts ...Option) *Router {
	return NewRouter(func(dest string) (io.WriteCloser, error) {
		f, err := os.Create(filepath.Join(dir, dest+".h"))
		if err != nil {
			return nil, fmt.Errorf("emit: open %s.h: %w", dest, err)
		}
		return f, nil
	}, opts...)
}

// Destinations returns the destinations in the order they were first used.
func (r *Router) Destinations() []string {
	return append([]string(nil), r.order...)
}

// Scalar implements [Sink].
func (r *Router) Scalar(dest, name string, v Value) error {
	h, err := r.header(dest)
	if err != nil {
		return err
	}
	return h.Scalar(name, v)
}

// Vector implements [Sink].
func (r *Router) Vector(dest, name string, values []float64) error {
	h, err := r.header(dest)
	if err != nil {
		return err
	}
	return h.Vector(name, values)
}

// Matrix implements [Sink].
func (r *Router) Matrix(dest, name string, rows [][]float64) error {
	h, err := r.header(dest)
	if err != nil {
		return err
	}
	return h.Matrix(name, rows)
}

// Close finishes every header and closes its writer. All writers are
// closed even if some fail; the errors are joined.
func (r *Router) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	var errs []error
	for _, dest := range r.order {
		if err := r.headers[dest].Close(); err != nil {
			errs = append(errs, err)
		}
		if err := r.files[dest].Close(); err != nil {
			errs = append(errs, fmt.Errorf("emit: close %s.h: %w", dest, err))
		}
	}
	return errors.Join(errs...)
}

func (r *Router) header(dest string) (*Header, error) {
	if r.closed {
		return nil, ErrClosed
	}
	if h, ok := r.headers[dest]; ok {
		return h, nil
	}
	if dest == "" {
		return nil, fmt.Errorf("%w: empty destination", ErrEmptyName)
	}
	w, err := r.open(dest)
	if err != nil {
		return nil, err
	}
	h := NewHeader(w, dest, r.opts...)
	r.headers[dest] = h
	r.files[dest] = w
	r.order = append(r.order, dest)
	return h, nil
}
