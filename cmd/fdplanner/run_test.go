package main

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/sasplan/fdplanner/planlog"
)

// twoStepStream is the same sequential-chain task used throughout the
// search and planio test suites: o1 requires x=0 and sets x 0->1, o2
// requires the prevail x=1 to set y 0->1. Goal is x=1, y=1; the unique
// plan is [o1, o2].
const twoStepStream = `
begin_version
3
end_version
begin_metric
0
end_metric
2
begin_variable
var0
-1
2
Atom x=0
Atom x=1
end_variable
begin_variable
var1
-1
2
Atom y=0
Atom y=1
end_variable
0
begin_state
0
0
end_state
begin_goal
2
0 1
1 1
end_goal
2
begin_operator
o1
0
1
0 0 0 1
1
end_operator
begin_operator
o2
1
0 1
1
0 1 0 1
1
end_operator
0
`

// unreachableGoalStream declares a goal on var1 that no operator can ever
// set, so every engine should exhaust its search space and report FAILED.
const unreachableGoalStream = `
begin_version
3
end_version
begin_metric
0
end_metric
2
begin_variable
var0
-1
2
Atom x=0
Atom x=1
end_variable
begin_variable
var1
-1
2
Atom y=0
Atom y=1
end_variable
0
begin_state
0
0
end_state
begin_goal
1
1 1
end_goal
1
begin_operator
o1
0
1
0 0 0 1
1
end_operator
0
`

func withStdin(t *testing.T, content string) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, err = w.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	orig := os.Stdin
	os.Stdin = r
	t.Cleanup(func() { os.Stdin = orig })
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	fn()
	require.NoError(t, w.Close())
	os.Stdout = orig
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func resetFlags() {
	log = planlog.FromCore(zapcore.NewNopCore())
	planFile = ""
	engineBudget = 5 * time.Second
	dumpCausalGraph = false
	dumpDTGVar = -1
}

func TestRunPlanSolvesSequentialTaskWithBestFirst(t *testing.T) {
	resetFlags()
	withStdin(t, twoStepStream)

	var solved bool
	var err error
	output := captureStdout(t, func() {
		solved, err = runPlan("best_first(ff)")
	})
	require.NoError(t, err)
	require.True(t, solved)
	require.Equal(t, "(o1)\n(o2)\n", output)
}

func TestRunPlanSolvesSequentialTaskWithEnforcedHillClimbing(t *testing.T) {
	resetFlags()
	withStdin(t, twoStepStream)

	var solved bool
	var err error
	output := captureStdout(t, func() {
		solved, err = runPlan("ehc(ff)")
	})
	require.NoError(t, err)
	require.True(t, solved)
	require.Equal(t, "(o1)\n(o2)\n", output)
}

func TestRunPlanReportsUnsolvedWhenGoalUnreachable(t *testing.T) {
	resetFlags()
	withStdin(t, unreachableGoalStream)

	solved, err := runPlan("best_first(ff)")
	require.NoError(t, err)
	require.False(t, solved)
}

func TestRunPlanPropagatesSelectorParseErrors(t *testing.T) {
	resetFlags()
	withStdin(t, twoStepStream)

	_, err := runPlan("not_a_real_engine(ff)")
	require.Error(t, err)
}

func TestRunPlanWritesPlanToFileWhenConfigured(t *testing.T) {
	resetFlags()
	withStdin(t, twoStepStream)

	dir := t.TempDir()
	planFile = dir + "/sas_plan"

	solved, err := runPlan("best_first(ff)")
	require.NoError(t, err)
	require.True(t, solved)

	contents, err := os.ReadFile(planFile)
	require.NoError(t, err)
	require.Equal(t, "(o1)\n(o2)\n", string(contents))
}
