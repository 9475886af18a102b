package competency

import (
	"testing"

	"github.com/ashureev/scaffolder/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestDefaultTableHasSixLevelsPerAxis(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	for _, axis := range Axes {
		spec := table.Spec(axis)
		require.Len(t, spec.Levels, domain.MaxLevel, "axis %s", axis)
		require.NotEmpty(t, spec.Name)
		require.NotEmpty(t, spec.Definition)
	}
}

func TestDescribeClampsOutOfRange(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	require.Equal(t, table.Describe(Empathy, 1), table.Describe(Empathy, -3))
	require.Equal(t, table.Describe(Empathy, 6), table.Describe(Empathy, 42))
}

func TestGapForTopLevelStaysAtTop(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	gap := table.GapFor(Interpretive, domain.UserLevel{EmpState: 1, AseState: 1, IntState: 6})
	require.Equal(t, gap.Current, gap.Goal)

	gap = table.GapFor(Aesthetic, domain.UserLevel{EmpState: 1, AseState: 2, IntState: 1})
	require.Equal(t, table.Describe(Aesthetic, 2), gap.Current)
	require.Equal(t, table.Describe(Aesthetic, 3), gap.Goal)
}

func TestParseRejectsShortAxis(t *testing.T) {
	_, err := Parse([]byte(`
emp_state: {name: a, levels: [x]}
ase_state: {name: b, levels: [1,2,3,4,5,6]}
int_state: {name: c, levels: [1,2,3,4,5,6]}
`))
	require.Error(t, err)
}
