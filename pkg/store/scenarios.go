package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/scenario"
)

const scenarioPrefix = "scenario:"

// Scenarios stores scenarios by content ID.
type Scenarios struct {
	store Store
	ttl   time.Duration
}

// NewScenarios wraps s. Stored scenarios expire after ttl; zero keeps them.
func NewScenarios(s Store, ttl time.Duration) *Scenarios {
	return &Scenarios{store: s, ttl: ttl}
}

// Put validates and stores sc, returning its ID. Storing the same content
// twice yields the same ID.
func (r *Scenarios) Put(ctx context.Context, sc *scenario.Scenario) (string, error) {
	if err := sc.Validate(); err != nil {
		return "", err
	}
	if err := errors.ValidateName(sc.Name); err != nil {
		return "", err
	}
	id, err := sc.ID()
	if err != nil {
		return "", err
	}
	data, err := sc.Marshal()
	if err != nil {
		return "", fmt.Errorf("encode scenario: %w", err)
	}
	if err := r.store.Set(ctx, scenarioPrefix+id, data, r.ttl); err != nil {
		return "", errors.Wrap(errors.ErrCodeStoreUnavailable, err, "store scenario %s", id)
	}
	return id, nil
}

// Get loads the scenario with id. A missing scenario is an error coded
// ErrCodeScenarioNotFound.
func (r *Scenarios) Get(ctx context.Context, id string) (*scenario.Scenario, error) {
	if err := errors.ValidateScenarioID(id); err != nil {
		return nil, err
	}
	data, ok, err := r.store.Get(ctx, scenarioPrefix+id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "load scenario %s", id)
	}
	if !ok {
		return nil, errors.New(errors.ErrCodeScenarioNotFound, "scenario %s not found", id)
	}
	return scenario.Parse(data, scenario.FormatJSON)
}

// Delete removes the scenario with id.
func (r *Scenarios) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateScenarioID(id); err != nil {
		return err
	}
	if err := r.store.Delete(ctx, scenarioPrefix+id); err != nil {
		return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "delete scenario %s", id)
	}
	return nil
}

// List returns the IDs of all stored scenarios, sorted.
func (r *Scenarios) List(ctx context.Context) ([]string, error) {
	keys, err := r.store.List(ctx, scenarioPrefix)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "list scenarios")
	}
	ids := make([]string, len(keys))
	for i, k := range keys {
		ids[i] = strings.TrimPrefix(k, scenarioPrefix)
	}
	return ids, nil
}
