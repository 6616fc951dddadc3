package domain

import (
	"errors"
	"fmt"
	"math"
)

// Stage is one step of the customer-facing repair pipeline.
type Stage string

const (
	StageReceived  Stage = "Received"
	StageDiagnosis Stage = "Diagnosis"
	StageInRepair  Stage = "In Repair"
	StageReady     Stage = "Ready for pickup"
	StageDelivered Stage = "Delivered"
)

// Status labels that do not have a stage of their own.
const (
	StatusPendingPart        = "Pending part"
	StatusReturnedUnrepaired = "Returned unrepaired"
	StatusCancelled          = "Cancelled"
)

var stages = [...]Stage{
	StageReceived,
	StageDiagnosis,
	StageInRepair,
	StageReady,
	StageDelivered,
}

// StageCount is the number of stages in the pipeline.
const StageCount = len(stages)

var statusStages = map[string]int{
	string(StageReceived):    0,
	string(StageDiagnosis):   1,
	StatusPendingPart:        2,
	string(StageInRepair):    2,
	string(StageReady):       3,
	string(StageDelivered):   4,
	StatusReturnedUnrepaired: 4,
	StatusCancelled:          4,
}

var (
	// ErrUnknownStatus is returned when an alias points at a label with no stage.
	ErrUnknownStatus = errors.New("unknown status label")
	// ErrCanonicalAlias is returned when an alias would redefine a canonical label.
	ErrCanonicalAlias = errors.New("alias shadows canonical status label")
)

// Stages returns the pipeline in order. The returned slice is a copy.
func Stages() []Stage {
	out := make([]Stage, StageCount)
	copy(out, stages[:])
	return out
}

// Step is a pipeline stage annotated with whether the order has reached it.
type Step struct {
	Label   Stage `json:"label"`
	Reached bool  `json:"reached"`
}

// Progress is the position of a status label within the pipeline.
type Progress struct {
	// StageIndex is the zero-based position in Stages.
	StageIndex int `json:"stage_index"`
	// Percent is StageIndex scaled to 0..100.
	Percent int `json:"percent"`
	// Stage is the label of the stage at StageIndex.
	Stage Stage `json:"stage"`
	// Terminal is true once the order has left the shop's hands, successfully or not.
	Terminal bool `json:"terminal"`
	// Steps lists every stage for progress rendering.
	Steps []Step `json:"steps"`
}

// ProgressMapper maps store status labels onto the pipeline.
// The zero value maps the canonical labels only.
type ProgressMapper struct {
	aliases map[string]string
}

// NewProgressMapper returns a mapper that additionally accepts the given
// aliases, each mapping an exact store label to a canonical status label.
// Canonical labels cannot themselves be aliased.
func NewProgressMapper(aliases map[string]string) (*ProgressMapper, error) {
	m := &ProgressMapper{aliases: make(map[string]string, len(aliases))}
	for alias, target := range aliases {
		if _, ok := statusStages[alias]; ok {
			return nil, fmt.Errorf("%w: %q", ErrCanonicalAlias, alias)
		}
		if _, ok := statusStages[target]; !ok {
			return nil, fmt.Errorf("%w: alias %q targets %q", ErrUnknownStatus, alias, target)
		}
		m.aliases[alias] = target
	}
	return m, nil
}

// Map returns the progress for status. Labels are matched exactly; anything
// unrecognised maps to the first stage.
func (m *ProgressMapper) Map(status string) Progress {
	if m != nil {
		if target, ok := m.aliases[status]; ok {
			status = target
		}
	}

	index := statusStages[status]

	return Progress{
		StageIndex: index,
		Percent:    percentFor(index),
		Stage:      stages[index],
		Terminal:   index == StageCount-1,
		Steps:      stepsUpTo(index),
	}
}

// MapStatus maps status using the canonical labels only.
func MapStatus(status string) Progress {
	var m *ProgressMapper
	return m.Map(status)
}

func percentFor(index int) int {
	return int(math.Round(float64(index) / float64(StageCount-1) * 100))
}

func stepsUpTo(index int) []Step {
	steps := make([]Step, StageCount)
	for i, s := range stages {
		steps[i] = Step{Label: s, Reached: i <= index}
	}
	return steps
}
