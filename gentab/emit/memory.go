package emit

import "slices"

// EntryKind tells which Sink method produced an [Entry].
type EntryKind int

const (
	EntryScalar EntryKind = iota
	EntryVector
	EntryMatrix
)

// Entry is one recorded emission. Vector and Matrix hold private copies.
type Entry struct {
	Kind   EntryKind
	Dest   string
	Name   string
	Value  Value
	Vector []float64
	Matrix [][]float64
}

// Memory is a [Sink] that records every emission in call order.
type Memory struct {
	Entries []Entry
}

// Scalar implements [Sink].
func (m *Memory) Scalar(dest, name string, v Value) error {
	if err := validateNames(dest, name); err != nil {
		return err
	}
	m.Entries = append(m.Entries, Entry{Kind: EntryScalar, Dest: dest, Name: name, Value: v})
	return nil
}

// Vector implements [Sink].
func (m *Memory) Vector(dest, name string, values []float64) error {
	if err := validateNames(dest, name); err != nil {
		return err
	}
	m.Entries = append(m.Entries, Entry{Kind: EntryVector, Dest: dest, Name: name, Vector: slices.Clone(values)})
	return nil
}

// Matrix implements [Sink].
func (m *Memory) Matrix(dest, name string, rows [][]float64) error {
	if err := validateNames(dest, name); err != nil {
		return err
	}
	if _, err := matrixWidth(rows); err != nil {
		return err
	}
	cp := make([][]float64, len(rows))
	for i, r := range rows {
		cp[i] = slices.Clone(r)
	}
	m.Entries = append(m.Entries, Entry{Kind: EntryMatrix, Dest: dest, Name: name, Matrix: cp})
	return nil
}

// Lookup returns the first entry with the given name.
func (m *Memory) Lookup(name string) (Entry, bool) {
	for _, e := range m.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Destinations returns the distinct destinations in first-use order.
func (m *Memory) Destinations() []string {
	var out []string
	for _, e := range m.Entries {
		if !slices.Contains(out, e.Dest) {
			out = append(out, e.Dest)
		}
	}
	return out
}
