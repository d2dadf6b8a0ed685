package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

// Default returns the catalog shipped with the binary.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(embedded))
}

// LoadFile reads a catalog file. An empty path means the embedded catalog.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load decodes and validates a catalog. Unknown keys are rejected so typos in
// hand-edited files surface at startup.
func Load(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("catalog is empty")
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks ids are unique and present, vehicle types are pricing class
// codes, prices are positive, tour categories are known and ratings are 1..5.
func (c *Catalog) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	seen := map[string]bool{}
	unique := func(kind, id string) {
		if id == "" {
			add("%s: missing id", kind)
			return
		}
		key := kind + "/" + id
		if seen[key] {
			add("%s %q: duplicate id", kind, id)
		}
		seen[key] = true
	}

	for _, v := range c.Vehicles {
		unique("vehicle", v.ID)
		if !v.Type.IsValid() {
			add("vehicle %q: unknown type %q", v.ID, v.Type)
		}
		if v.BasePrice <= 0 {
			add("vehicle %q: base price must be positive", v.ID)
		}
		if v.Capacity < 1 {
			add("vehicle %q: capacity must be at least 1", v.ID)
		}
	}

	for _, t := range c.Tours {
		unique("tour", t.ID)
		if !t.Category.IsValid() {
			add("tour %q: unknown category %q", t.ID, t.Category)
		}
		if t.Price <= 0 {
			add("tour %q: price must be positive", t.ID)
		}
	}

	for _, t := range c.Testimonials {
		unique("testimonial", t.ID)
		if t.Rating < 1 || t.Rating > 5 {
			add("testimonial %q: rating %d out of range 1..5", t.ID, t.Rating)
		}
	}

	for _, o := range c.Airports {
		unique("airport", o.Code)
	}
	for _, o := range c.Destinations {
		unique("destination", o.Code)
	}
	for _, o := range c.ServiceInterests {
		unique("service interest", o.Code)
	}
	if len(c.ServiceInterests) == 0 {
		add("at least one service interest is required")
	}

	return errors.Join(errs...)
}
