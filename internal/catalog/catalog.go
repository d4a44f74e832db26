// Package catalog holds the immutable problem bank that rooms draw from.
package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/gosimple/slug"

	"github.com/ktanaka/coderelay-go/internal/dependencies/random"
	"github.com/ktanaka/coderelay-go/internal/model"
)

// Catalog is a static collection of problems. It is never mutated after
// load, so reads need no synchronization.
type Catalog struct {
	problems []model.Problem
	random   random.Random
	logger   *slog.Logger
}

// New creates a catalog seeded with the built-in problems
func New(rnd random.Random, logger *slog.Logger) *Catalog {
	return &Catalog{
		problems: builtinProblems(),
		random:   rnd,
		logger:   logger.With(slog.String("component", "catalog")),
	}
}

// NewEmpty creates a catalog with no problems (for file-only loading)
func NewEmpty(rnd random.Random, logger *slog.Logger) *Catalog {
	return &Catalog{
		random: rnd,
		logger: logger.With(slog.String("component", "catalog")),
	}
}

// Pick returns a uniformly random problem from the catalog
func (c *Catalog) Pick() (model.Problem, error) {
	if len(c.problems) == 0 {
		return model.Problem{}, model.ErrCatalogEmpty
	}
	return c.problems[c.random.Intn(len(c.problems))], nil
}

// Get returns the problem with the given id
func (c *Catalog) Get(id model.ProblemID) (model.Problem, bool) {
	for _, p := range c.problems {
		if p.ID == id {
			return p, true
		}
	}
	return model.Problem{}, false
}

// List returns all problems in load order
func (c *Catalog) List() []model.Problem {
	out := make([]model.Problem, len(c.problems))
	copy(out, c.problems)
	return out
}

// Len returns the number of loaded problems
func (c *Catalog) Len() int {
	return len(c.problems)
}

// LoadFromFile appends problems from a JSON file to the catalog.
// Entries without an id get one derived from their title.
func (c *Catalog) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read problem file: %w", err)
	}

	var problems []model.Problem
	if err := json.Unmarshal(data, &problems); err != nil {
		return fmt.Errorf("parse problem file: %w", err)
	}

	loaded := 0
	for _, p := range problems {
		if err := validateProblem(&p); err != nil {
			c.logger.Warn("skipping invalid problem",
				slog.String("title", p.Title),
				slog.String("error", err.Error()))
			continue
		}
		if p.ID == "" {
			p.ID = model.ProblemID(slug.Make(p.Title))
		}
		c.problems = append(c.problems, p)
		loaded++
	}

	c.logger.Info("problems loaded",
		slog.String("path", path),
		slog.Int("loaded", loaded),
		slog.Int("total", len(c.problems)))
	return nil
}

func validateProblem(p *model.Problem) error {
	if p.Title == "" {
		return fmt.Errorf("missing title")
	}
	if p.TimeLimitSeconds <= 0 {
		return fmt.Errorf("time limit must be positive")
	}
	if p.MaxPlayers <= 0 {
		return fmt.Errorf("max players must be positive")
	}
	if p.InitialCode == "" {
		return fmt.Errorf("missing initial code")
	}
	return nil
}
