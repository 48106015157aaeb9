package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
)

// Encode writes r as tab-indented JSON.
func Encode(w io.Writer, r Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(r)
}

// Decode reads a record, rejecting missing fields, fractional or negative
// counts, and tuples of the wrong arity. Nothing is returned on failure.
func Decode(rd io.Reader) (Record, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return Record{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	field := func(key string) (any, error) {
		v, ok := raw[key]
		if !ok || v == nil {
			return nil, fmt.Errorf("%w: missing %q", ErrInvalidRecord, key)
		}
		return v, nil
	}
	parseCount := func(key string) (int, error) {
		v, err := field(key)
		if err != nil {
			return 0, err
		}
		f, ok := v.(float64)
		if !ok || f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
			return 0, fmt.Errorf("%w: %q is not a non-negative integer", ErrInvalidRecord, key)
		}
		return int(f), nil
	}
	parseTuple := func(key string, v any, n int) ([]float64, error) {
		arr, ok := v.([]any)
		if !ok || len(arr) != n {
			return nil, fmt.Errorf("%w: %q entry is not a %d-tuple", ErrInvalidRecord, key, n)
		}
		out := make([]float64, n)
		for i, el := range arr {
			f, ok := el.(float64)
			if !ok {
				return nil, fmt.Errorf("%w: %q entry holds a non-number", ErrInvalidRecord, key)
			}
			out[i] = f
		}
		return out, nil
	}
	parseTuples := func(key string, n int) ([][]float64, error) {
		v, err := field(key)
		if err != nil {
			return nil, err
		}
		arr, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not an array", ErrInvalidRecord, key)
		}
		out := make([][]float64, 0, len(arr))
		for _, el := range arr {
			t, err := parseTuple(key, el, n)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		}
		return out, nil
	}

	var r Record
	if r.VertexAmt, err = parseCount("vertexAmt"); err != nil {
		return Record{}, err
	}
	if r.KochIterationAmt, err = parseCount("kochIterationAmt"); err != nil {
		return Record{}, err
	}
	coords, err := parseTuples("coordinates", 2)
	if err != nil {
		return Record{}, err
	}
	colors, err := parseTuples("colors", 4)
	if err != nil {
		return Record{}, err
	}
	bgv, err := field("background")
	if err != nil {
		return Record{}, err
	}
	bg, err := parseTuple("background", bgv, 4)
	if err != nil {
		return Record{}, err
	}

	r.Coordinates = make([][2]float64, len(coords))
	for i, c := range coords {
		r.Coordinates[i] = [2]float64{c[0], c[1]}
	}
	r.Colors = make([][4]float64, len(colors))
	for i, c := range colors {
		r.Colors[i] = [4]float64{c[0], c[1], c[2], c[3]}
	}
	copy(r.Background[:], bg)
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	return r, nil
}

// SaveFile writes r to path.
func SaveFile(path string, r Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadFile reads a record from path.
func LoadFile(path string) (Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return Record{}, err
	}
	defer f.Close()
	return Decode(f)
}
