// Package competency holds the static proficiency descriptions for the
// three literary competency axes.
package competency

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/ashureev/scaffolder/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed table.yaml
var defaultTable []byte

// Axis names one competency axis. Values match the wire field names.
type Axis string

const (
	Empathy      Axis = "emp_state"
	Aesthetic    Axis = "ase_state"
	Interpretive Axis = "int_state"
)

// Axes lists every axis in display order.
var Axes = []Axis{Empathy, Aesthetic, Interpretive}

// AxisSpec describes one axis and its six ordered level descriptions.
type AxisSpec struct {
	Name       string   `yaml:"name"`
	Definition string   `yaml:"definition"`
	Levels     []string `yaml:"levels"`
}

// Table maps each axis to its description. It is read-only after load.
type Table struct {
	axes map[Axis]AxisSpec
}

// Default parses the embedded table.
func Default() (*Table, error) {
	return Parse(defaultTable)
}

// LoadFile parses a table from a YAML file on disk.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read competency table: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML competency table.
func Parse(data []byte) (*Table, error) {
	var raw map[Axis]AxisSpec
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode competency table: %w", err)
	}
	for _, axis := range Axes {
		spec, ok := raw[axis]
		if !ok {
			return nil, fmt.Errorf("competency table: missing axis %s", axis)
		}
		if len(spec.Levels) != domain.MaxLevel {
			return nil, fmt.Errorf("competency table: axis %s has %d levels, want %d", axis, len(spec.Levels), domain.MaxLevel)
		}
	}
	return &Table{axes: raw}, nil
}

// Spec returns the description of one axis.
func (t *Table) Spec(axis Axis) AxisSpec {
	return t.axes[axis]
}

// Describe returns the text for level on axis. level is clamped first.
func (t *Table) Describe(axis Axis, level int) string {
	return t.axes[axis].Levels[domain.ClampLevel(level)-1]
}

// Gap is a reader's current and goal description on one axis.
type Gap struct {
	Axis       Axis
	Name       string
	Definition string
	Current    string
	Goal       string
}

// Gaps returns the gap on every axis in display order.
func (t *Table) Gaps(level domain.UserLevel) []Gap {
	gaps := make([]Gap, 0, len(Axes))
	for _, axis := range Axes {
		gaps = append(gaps, t.GapFor(axis, level))
	}
	return gaps
}

// GapFor builds the current/goal pair for the reader's level on axis.
func (t *Table) GapFor(axis Axis, level domain.UserLevel) Gap {
	n := LevelOf(level, axis)
	return Gap{
		Axis:       axis,
		Name:       t.axes[axis].Name,
		Definition: t.axes[axis].Definition,
		Current:    t.Describe(axis, n),
		Goal:       t.Describe(axis, domain.GoalLevel(n)),
	}
}

// LevelOf picks the reader's level on axis.
func LevelOf(level domain.UserLevel, axis Axis) int {
	switch axis {
	case Empathy:
		return level.EmpState
	case Aesthetic:
		return level.AseState
	case Interpretive:
		return level.IntState
	default:
		return domain.MinLevel
	}
}
