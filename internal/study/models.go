package study

type StudyType string

const (
	StudyTypeShield  StudyType = "shield"
	StudyTypePioneer StudyType = "pioneer"
)

type StudyState string

const (
	StateEndedPositive StudyState = "ended-positive"
	StateEndedNeutral  StudyState = "ended-neutral"
	StateEndedNegative StudyState = "ended-negative"
)

// Endings every study must declare; the host framework triggers them itself.
const (
	EndingUserDisable            = "user-disable"
	EndingIneligible             = "ineligible"
	EndingExpired                = "expired"
	EndingDataPermissionsRevoked = "dataPermissionsRevoked"
)

var StandardEndings = []string{
	EndingUserDisable,
	EndingIneligible,
	EndingExpired,
	EndingDataPermissionsRevoked,
}

// Setup is the settings object handed to the host study framework.
type Setup struct {
	ActiveExperimentName string            `json:"activeExperimentName" yaml:"activeExperimentName"`
	StudyType            StudyType         `json:"studyType" yaml:"studyType"`
	Telemetry            Telemetry         `json:"telemetry" yaml:"telemetry"`
	Endings              map[string]Ending `json:"endings" yaml:"endings"`
	LogLevel             int               `json:"logLevel" yaml:"logLevel"`
	WeightedVariations   []Variation       `json:"weightedVariations" yaml:"weightedVariations"`
	Expire               Expire            `json:"expire" yaml:"expire"`
	Testing              Testing           `json:"testing" yaml:"-"`
	AllowEnroll          bool              `json:"allowEnroll" yaml:"-"`
}

type Telemetry struct {
	Send              bool `json:"send" yaml:"send"`                           // Actually send pings
	RemoveTestingFlag bool `json:"removeTestingFlag" yaml:"removeTestingFlag"` // Set true for release
}

// Ending describes one terminal state. BaseURL nil serialises as null.
type Ending struct {
	BaseURL    *string    `json:"baseUrl" yaml:"baseUrl"`
	StudyState StudyState `json:"study_state,omitempty" yaml:"study_state,omitempty"`
}

type Variation struct {
	Name   string  `json:"name" yaml:"name"`
	Weight float64 `json:"weight" yaml:"weight"` // Relative, need not sum to 1
}

type Expire struct {
	Days int `json:"days" yaml:"days"`
}

// Testing holds overrides the host applies instead of its own choices.
type Testing struct {
	Variation         *string `json:"variation,omitempty"`
	FirstRunTimestamp *string `json:"firstRunTimestamp,omitempty"`
}

// DataPermissions is the host's answer to which data collection the user allows.
type DataPermissions struct {
	Shield  bool `json:"shield"`
	Pioneer bool `json:"pioneer"`
}
