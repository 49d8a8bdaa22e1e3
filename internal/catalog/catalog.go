package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrUnknownExercise is returned when an id is not in the catalog
var ErrUnknownExercise = errors.New("unknown exercise")

// Catalog is a read-only ordered collection of exercises
type Catalog struct {
	exercises []Exercise
	byID      map[string]int
}

// New builds a catalog from exercises, keeping their order. Duplicate or
// empty ids are rejected.
func New(exercises []Exercise) (*Catalog, error) {
	c := &Catalog{
		exercises: make([]Exercise, 0, len(exercises)),
		byID:      make(map[string]int, len(exercises)),
	}
	for _, ex := range exercises {
		if ex.ID == "" {
			return nil, fmt.Errorf("exercise %q has no id", ex.Name)
		}
		if _, dup := c.byID[ex.ID]; dup {
			return nil, fmt.Errorf("duplicate exercise id %q", ex.ID)
		}
		c.byID[ex.ID] = len(c.exercises)
		c.exercises = append(c.exercises, ex)
	}
	return c, nil
}

// Default returns the built-in catalog
func Default() *Catalog {
	c, err := New(builtinExercises)
	if err != nil {
		panic("catalog: invalid built-in exercises: " + err.Error())
	}
	return c
}

type catalogFile struct {
	Exercises []Exercise `yaml:"exercises"`
}

// Load reads a catalog from a YAML file of the form
//
//	exercises:
//	  - id: jab-1
//	    name: Jab
//	    category: technique
//	    ...
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}
	if len(f.Exercises) == 0 {
		return nil, fmt.Errorf("catalog file %s has no exercises", path)
	}
	return New(f.Exercises)
}

// All returns a copy of the exercises in catalog order
func (c *Catalog) All() []Exercise {
	result := make([]Exercise, len(c.exercises))
	copy(result, c.exercises)
	return result
}

// Get looks an exercise up by id
func (c *Catalog) Get(id string) (Exercise, error) {
	idx, ok := c.byID[id]
	if !ok {
		return Exercise{}, fmt.Errorf("%w: %s", ErrUnknownExercise, id)
	}
	return c.exercises[idx], nil
}

// ByCategory returns the exercises of one category in catalog order
func (c *Catalog) ByCategory(category Category) []Exercise {
	result := []Exercise{}
	for _, ex := range c.exercises {
		if ex.Category == category {
			result = append(result, ex)
		}
	}
	return result
}

func (c *Catalog) Len() int { return len(c.exercises) }
