package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/exit-readiness/internal/assessment"
	"github.com/sells-group/exit-readiness/internal/config"
	"github.com/sells-group/exit-readiness/internal/research"
	"github.com/sells-group/exit-readiness/internal/scorer"
	"github.com/sells-group/exit-readiness/internal/store"
)

// initStore opens and migrates the configured store.
func initStore(ctx context.Context) (store.Store, error) {
	if err := cfg.Validate("store"); err != nil {
		return nil, err
	}
	st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL, &store.PoolConfig{
		MaxConns: cfg.Store.MaxConns,
		MinConns: cfg.Store.MinConns,
	})
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}

// researchDefaults loads the benchmark file and applies configured
// threshold overrides.
func researchDefaults(c *config.Config) (research.Data, error) {
	data, err := research.LoadFile(c.Research.Path)
	if err != nil {
		return nil, err
	}
	overrides := research.Data{}
	if c.Scoring.ConcentrationThreshold > 0 {
		overrides[research.KeyConcentrationThreshold] = c.Scoring.ConcentrationThreshold
	}
	if c.Scoring.RecurringThreshold > 0 {
		overrides[research.KeyRecurringThreshold] = c.Scoring.RecurringThreshold
	}
	return research.Merge(data, overrides), nil
}

// initService builds the assessment service from configuration.
func initService(c *config.Config) (*assessment.Service, error) {
	if err := scorer.ValidateConfig(c.Scoring); err != nil {
		return nil, eris.Wrap(err, "init service")
	}
	data, err := researchDefaults(c)
	if err != nil {
		return nil, eris.Wrap(err, "init service")
	}
	return assessment.New(scorer.New(scorer.WeightsFromConfig(c.Scoring)), data), nil
}
