package cliconfig_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sasplan/fdplanner/cliconfig"
	"github.com/sasplan/fdplanner/mas"
)

func TestParseConfigurationDefaults(t *testing.T) {
	cfg, err := cliconfig.ParseConfiguration("best_first(cea())")
	require.NoError(t, err)
	require.Equal(t, cliconfig.EngineBestFirst, cfg.Engine)
	require.Equal(t, "cea", cfg.Heuristic)
	require.Equal(t, cliconfig.DefaultOptions(), cfg.Options)
}

func TestParseConfigurationOverridesOptions(t *testing.T) {
	cfg, err := cliconfig.ParseConfiguration(
		"iterative(merge_and_shrink(max_states=200, shrink_strategy=dfp, merge_strategy=linear_given))")
	require.NoError(t, err)
	require.Equal(t, cliconfig.EngineIterative, cfg.Engine)
	require.Equal(t, "merge_and_shrink", cfg.Heuristic)
	require.Equal(t, int64(200), cfg.Options.MaxStates)
	require.Equal(t, mas.ShrinkDFP, cfg.Options.Shrink)
	require.Equal(t, cliconfig.MergeLinearGiven, cfg.Options.Merge)
	// Untouched options still carry their defaults.
	require.Equal(t, cliconfig.DefaultOptions().CollectionMaxSize, cfg.Options.CollectionMaxSize)
}

func TestParseConfigurationRejectsUnknownEngine(t *testing.T) {
	_, err := cliconfig.ParseConfiguration("bogus_engine(cea())")
	require.ErrorIs(t, err, cliconfig.ErrUnknownEngine)
}

func TestParseConfigurationRejectsUnknownShrinkStrategy(t *testing.T) {
	_, err := cliconfig.ParseConfiguration("ehc(merge_and_shrink(shrink_strategy=nonsense))")
	require.ErrorIs(t, err, cliconfig.ErrUnknownShrinkStrategy)
}

func TestParseConfigurationRejectsOutOfRangeOption(t *testing.T) {
	_, err := cliconfig.ParseConfiguration("ehc(merge_and_shrink(max_states=0))")
	require.ErrorIs(t, err, cliconfig.ErrInvalidOptionValue)
}

func TestParseConfigurationRejectsUnknownOptionKey(t *testing.T) {
	_, err := cliconfig.ParseConfiguration("ehc(merge_and_shrink(bogus_key=1))")
	require.ErrorIs(t, err, cliconfig.ErrUnknownOption)
}

func TestParseSelectorRejectsMalformedSyntax(t *testing.T) {
	_, err := cliconfig.ParseSelector("best_first(cea(")
	require.Error(t, err)
}
