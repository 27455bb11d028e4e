package study_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/gkobilansky/shield-study/internal/study"
	"go.uber.org/zap/zapcore"
)

func TestBase_Valid(t *testing.T) {
	if err := study.Base(testID).Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}

func TestBase_JSONShape(t *testing.T) {
	data, err := json.Marshal(study.Base(testID))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var raw struct {
		StudyType string                     `json:"studyType"`
		Endings   map[string]json.RawMessage `json:"endings"`
		Testing   map[string]any             `json:"testing"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if raw.StudyType != "shield" {
		t.Errorf("got studyType %s, want shield", raw.StudyType)
	}

	want := `{"baseUrl":null,"study_state":"ended-neutral"}`
	if got := string(raw.Endings[study.EndingDataPermissionsRevoked]); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	want = `{"baseUrl":"http://www.example.com/?reason=expired"}`
	if got := string(raw.Endings[study.EndingExpired]); got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	if raw.Testing == nil || len(raw.Testing) != 0 {
		t.Errorf("got testing %v, want empty object", raw.Testing)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *study.Setup)
	}{
		{"no name", func(s *study.Setup) { s.ActiveExperimentName = "" }},
		{"unknown type", func(s *study.Setup) { s.StudyType = "normandy" }},
		{"no variations", func(s *study.Setup) { s.WeightedVariations = nil }},
		{"zero weight", func(s *study.Setup) { s.WeightedVariations[0].Weight = 0 }},
		{"negative weight", func(s *study.Setup) { s.WeightedVariations[1].Weight = -1 }},
		{"NaN weight", func(s *study.Setup) { s.WeightedVariations[1].Weight = math.NaN() }},
		{"infinite weight", func(s *study.Setup) { s.WeightedVariations[2].Weight = math.Inf(1) }},
		{"unnamed variation", func(s *study.Setup) { s.WeightedVariations[0].Name = "" }},
		{"duplicate variation", func(s *study.Setup) { s.WeightedVariations[1].Name = s.WeightedVariations[0].Name }},
		{"empty ending", func(s *study.Setup) { s.Endings["custom"] = study.Ending{} }},
		{"bad study state", func(s *study.Setup) { s.Endings["custom"] = study.Ending{StudyState: "ended-sideways"} }},
		{"missing standard ending", func(s *study.Setup) { delete(s.Endings, study.EndingIneligible) }},
		{"no expiry", func(s *study.Setup) { s.Expire.Days = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := study.Base(testID)
			tt.mutate(&s)

			err := s.Validate()
			if !errors.Is(err, study.ErrInvalidSetup) {
				t.Errorf("got %v, want ErrInvalidSetup", err)
			}
		})
	}
}

func TestClone_Independent(t *testing.T) {
	orig := study.Base(testID)
	variation := "control"
	orig.Testing.Variation = &variation

	clone := orig.Clone()
	*clone.Endings[study.EndingExpired].BaseURL = "http://changed.example.com"
	clone.WeightedVariations[0].Name = "changed"
	*clone.Testing.Variation = "changed"

	if *orig.Endings[study.EndingExpired].BaseURL == "http://changed.example.com" {
		t.Error("ending baseUrl shared between clone and original")
	}
	if orig.WeightedVariations[0].Name == "changed" {
		t.Error("variations shared between clone and original")
	}
	if *orig.Testing.Variation == "changed" {
		t.Error("testing overrides shared between clone and original")
	}
}

func TestZapLevel(t *testing.T) {
	tests := []struct {
		level int
		want  zapcore.Level
	}{
		{10, zapcore.DebugLevel},
		{20, zapcore.DebugLevel},
		{30, zapcore.InfoLevel},
		{40, zapcore.InfoLevel},
		{50, zapcore.WarnLevel},
		{60, zapcore.ErrorLevel},
		{70, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		if got := study.ZapLevel(tt.level); got != tt.want {
			t.Errorf("ZapLevel(%d) = %s, want %s", tt.level, got, tt.want)
		}
	}
}
