package study

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap/zapcore"
)

var ErrInvalidSetup = errors.New("invalid study setup")

// Base returns the example study's configuration before any runtime values
// are resolved. Each call returns a new value.
func Base(extensionID string) Setup {
	return Setup{
		ActiveExperimentName: extensionID,
		StudyType:            StudyTypeShield,
		Telemetry: Telemetry{
			Send:              true,
			RemoveTestingFlag: false,
		},
		Endings: map[string]Ending{
			EndingUserDisable: {
				BaseURL: stringPtr("http://www.example.com/?reason=user-disable"),
			},
			EndingIneligible: {
				BaseURL: stringPtr("http://www.example.com/?reason=ineligible"),
			},
			EndingExpired: {
				BaseURL: stringPtr("http://www.example.com/?reason=expired"),
			},
			EndingDataPermissionsRevoked: {
				StudyState: StateEndedNeutral,
			},
			"some-study-defined-ending": {
				StudyState: StateEndedNeutral,
			},
		},
		LogLevel: 10,
		WeightedVariations: []Variation{
			{Name: "feature-active", Weight: 1.5},
			{Name: "feature-passive", Weight: 1.5},
			{Name: "control", Weight: 1},
		},
		Expire: Expire{Days: 14},
	}
}

// Clone returns a deep copy; the result shares no maps, slices or pointers
// with s.
func (s Setup) Clone() Setup {
	out := s

	if s.Endings != nil {
		out.Endings = make(map[string]Ending, len(s.Endings))
		for name, e := range s.Endings {
			if e.BaseURL != nil {
				e.BaseURL = stringPtr(*e.BaseURL)
			}
			out.Endings[name] = e
		}
	}

	if s.WeightedVariations != nil {
		out.WeightedVariations = make([]Variation, len(s.WeightedVariations))
		copy(out.WeightedVariations, s.WeightedVariations)
	}

	if s.Testing.Variation != nil {
		out.Testing.Variation = stringPtr(*s.Testing.Variation)
	}
	if s.Testing.FirstRunTimestamp != nil {
		out.Testing.FirstRunTimestamp = stringPtr(*s.Testing.FirstRunTimestamp)
	}

	return out
}

// Validate checks the invariants the host framework relies on.
func (s Setup) Validate() error {
	if s.ActiveExperimentName == "" {
		return fmt.Errorf("%w: activeExperimentName is required", ErrInvalidSetup)
	}

	switch s.StudyType {
	case StudyTypeShield, StudyTypePioneer:
	default:
		return fmt.Errorf("%w: unknown studyType %q", ErrInvalidSetup, s.StudyType)
	}

	if len(s.WeightedVariations) == 0 {
		return fmt.Errorf("%w: weightedVariations must not be empty", ErrInvalidSetup)
	}
	seen := make(map[string]bool, len(s.WeightedVariations))
	for i, v := range s.WeightedVariations {
		if v.Name == "" {
			return fmt.Errorf("%w: variation %d has no name", ErrInvalidSetup, i)
		}
		if seen[v.Name] {
			return fmt.Errorf("%w: duplicate variation %q", ErrInvalidSetup, v.Name)
		}
		seen[v.Name] = true
		if !(v.Weight > 0) || math.IsInf(v.Weight, 0) {
			return fmt.Errorf("%w: variation %q has weight %v, want > 0", ErrInvalidSetup, v.Name, v.Weight)
		}
	}

	for name, e := range s.Endings {
		if (e.BaseURL == nil || *e.BaseURL == "") && e.StudyState == "" {
			return fmt.Errorf("%w: ending %q needs a baseUrl or a study_state", ErrInvalidSetup, name)
		}
		switch e.StudyState {
		case "", StateEndedPositive, StateEndedNeutral, StateEndedNegative:
		default:
			return fmt.Errorf("%w: ending %q has unknown study_state %q", ErrInvalidSetup, name, e.StudyState)
		}
	}
	for _, name := range StandardEndings {
		if _, ok := s.Endings[name]; !ok {
			return fmt.Errorf("%w: missing standard ending %q", ErrInvalidSetup, name)
		}
	}

	if s.Expire.Days <= 0 {
		return fmt.Errorf("%w: expire.days must be positive, got %d", ErrInvalidSetup, s.Expire.Days)
	}

	return nil
}

// ZapLevel maps a host log level (10 trace, 20 debug, 30 config, 40 info,
// 50 warn, 60 error, 70 fatal) onto the nearest zap level.
func ZapLevel(logLevel int) zapcore.Level {
	switch {
	case logLevel <= 20:
		return zapcore.DebugLevel
	case logLevel <= 40:
		return zapcore.InfoLevel
	case logLevel <= 50:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

func stringPtr(s string) *string {
	return &s
}
