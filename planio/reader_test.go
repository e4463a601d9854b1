package planio_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sasplan/fdplanner/planio"
)

// A minimal, hand-written preprocessor stream for the same sequential
// task used throughout the search package's tests: x 0->1 requiring x=0,
// then y 0->1 gated on a prevail x=1. The trailer
// (begin_SG.../end_CG) is omitted entirely, exercising the reader's
// tolerance for a stream that ends right after the axiom count.
const sequentialStream = `
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

func TestReadTaskParsesSequentialStream(t *testing.T) {
	tm, err := planio.ReadTask(strings.NewReader(sequentialStream))
	require.NoError(t, err)

	require.Len(t, tm.Variables, 2)
	require.Equal(t, []int32{0, 0}, tm.InitialValues)
	require.Equal(t, []int32{1, 1}, []int32{tm.Goal[0].Val, tm.Goal[1].Val})

	require.Len(t, tm.Operators, 2)
	require.Equal(t, "o1", tm.Operators[0].Name)
	require.Equal(t, int32(1), tm.Operators[0].Cost, "unit cost: g_use_metric was 0")
	require.Equal(t, "o2", tm.Operators[1].Name)
	require.Len(t, tm.Operators[1].PrePosts, 2, "one prevail + one pre-post")
}

func TestReadTaskRejectsVersionMismatch(t *testing.T) {
	bad := strings.Replace(sequentialStream, "3\nend_version", "99\nend_version", 1)
	_, err := planio.ReadTask(strings.NewReader(bad))
	require.ErrorIs(t, err, planio.ErrVersionMismatch)
}

func TestReadTaskRejectsBadMagic(t *testing.T) {
	bad := strings.Replace(sequentialStream, "begin_goal", "begin_gaol", 1)
	_, err := planio.ReadTask(strings.NewReader(bad))
	require.ErrorIs(t, err, planio.ErrBadMagic)
}

func TestReadTaskRequiresTrailerWhenConfigured(t *testing.T) {
	_, err := planio.ReadTask(strings.NewReader(sequentialStream), planio.WithTrailerRequired(true))
	require.Error(t, err)
}
