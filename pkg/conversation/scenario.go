package conversation

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

type Phase string

const (
	PhaseInitial                Phase = "initial"
	PhaseEnergyPreference       Phase = "energy_preference"
	PhaseInterestFocus          Phase = "interest_focus"
	PhaseAdditionalRequirements Phase = "additional_requirements"
	PhaseCompleted              Phase = "completed"
)

// Field names the conversation attribute a reply sets.
type Field string

const (
	FieldEnergyPreference       Field = "energy_preference"
	FieldInterestFocus          Field = "interest_focus"
	FieldAdditionalRequirements Field = "additional_requirements"
	FieldStatus                 Field = "status"
)

const StatusCompleted = "completed"

var (
	ErrUnknownPhase          = errors.New("unknown conversation phase")
	ErrConversationCompleted = errors.New("conversation already completed")
	ErrEmptyAnswer           = errors.New("user_response or selected_option is required")
	ErrInvalidOption         = errors.New("selected option is not offered in this phase")
)

type Step struct {
	Phase   Phase
	Message string
	Options []string
	Next    Phase
	Field   Field
}

// Attributes are the preferences collected over a conversation.
type Attributes struct {
	TravelPeriod           string
	CompanionType          string
	HasPets                bool
	EnergyPreference       string
	InterestFocus          string
	AdditionalRequirements string
	Status                 string
}

type Transition struct {
	From    Phase
	To      Phase
	Field   Field
	Value   string
	Message string
	Options []string
	IsFinal bool
}

type Scenario struct {
	steps map[Phase]Step
}

func NewScenario(steps ...Step) *Scenario {
	s := &Scenario{steps: make(map[Phase]Step, len(steps))}
	for _, step := range steps {
		s.steps[step.Phase] = step
	}
	return s
}

func (s *Scenario) Step(phase Phase) (Step, error) {
	step, ok := s.steps[phase]
	if !ok {
		return Step{}, fmt.Errorf("%w: %s", ErrUnknownPhase, phase)
	}
	return step, nil
}

// Opening renders the first assistant message of a new conversation.
func (s *Scenario) Opening(attrs Attributes) (string, []string, error) {
	step, err := s.Step(PhaseInitial)
	if err != nil {
		return "", nil, err
	}
	return render(step.Message, attrs), step.Options, nil
}

// Advance applies the user's answer to the step of the current phase and
// moves the conversation to the next phase.
func (s *Scenario) Advance(phase Phase, attrs *Attributes, selected, freeText string) (*Transition, error) {
	if phase == PhaseCompleted {
		return nil, ErrConversationCompleted
	}

	step, err := s.Step(phase)
	if err != nil {
		return nil, err
	}

	answer := strings.TrimSpace(selected)
	if answer != "" {
		if len(step.Options) > 0 && !slices.Contains(step.Options, answer) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidOption, answer)
		}
	} else {
		answer = strings.TrimSpace(freeText)
	}
	if answer == "" {
		return nil, ErrEmptyAnswer
	}

	next, err := s.Step(step.Next)
	if err != nil {
		return nil, err
	}

	value := answer
	if step.Field == FieldStatus {
		value = StatusCompleted
	}
	apply(attrs, step.Field, value)

	return &Transition{
		From:    phase,
		To:      next.Phase,
		Field:   step.Field,
		Value:   value,
		Message: render(next.Message, *attrs),
		Options: next.Options,
		IsFinal: next.Phase == PhaseCompleted,
	}, nil
}

// Ready reports whether recommendations may be generated for the phase.
func (s *Scenario) Ready(phase Phase) bool {
	return phase == PhaseCompleted
}

func apply(attrs *Attributes, field Field, value string) {
	switch field {
	case FieldEnergyPreference:
		attrs.EnergyPreference = value
	case FieldInterestFocus:
		attrs.InterestFocus = value
	case FieldAdditionalRequirements:
		attrs.AdditionalRequirements = value
	case FieldStatus:
		attrs.Status = value
	}
}

func render(template string, attrs Attributes) string {
	r := strings.NewReplacer(
		"{travel_period}", attrs.TravelPeriod,
		"{companion_type}", attrs.CompanionType,
		"{energy_preference}", attrs.EnergyPreference,
		"{interest_focus}", attrs.InterestFocus,
		"{additional_requirements}", attrs.AdditionalRequirements,
	)
	return r.Replace(template)
}
