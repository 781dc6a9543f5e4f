// Package fixtures provides the embedded static data source for the demo.
// It serves a fixed patient profile and timeline from YAML compiled into the
// binary; the shadow fixture set exists for side-by-side comparison of the
// reasoning output on an alternate history.
package fixtures

import (
	"context"
	"embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/carelens/carelens/internal/core/domain"
	"github.com/carelens/carelens/internal/core/ports"
)

//go:embed fixtures/*.yaml
var fixtureFS embed.FS

// Source implements ports.DataSource over one embedded fixture set.
type Source struct {
	patient  domain.PatientContext
	timeline domain.Timeline
}

type fixtureFile struct {
	Patient struct {
		PatientID   string   `yaml:"patient_id"`
		Name        string   `yaml:"name"`
		BirthYear   int      `yaml:"birth_year"`
		Medications []string `yaml:"medications"`
		Conditions  []string `yaml:"conditions"`
	} `yaml:"patient"`
	Timeline []struct {
		Date    string `yaml:"date"`
		Kind    string `yaml:"kind"`
		Title   string `yaml:"title"`
		Summary string `yaml:"summary"`
	} `yaml:"timeline"`
}

// New loads the fixture set for the given mode. Unknown modes are an error,
// not a silent fallback.
func New(mode ports.SourceMode) (*Source, error) {
	var path string
	switch mode {
	case ports.ModeLive, "":
		path = "fixtures/live.yaml"
	case ports.ModeShadow:
		path = "fixtures/shadow.yaml"
	default:
		return nil, fmt.Errorf("fixtures: unknown source mode %q", mode)
	}

	raw, err := fixtureFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixtures: read %s: %w", path, err)
	}

	var file fixtureFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("fixtures: decode %s: %w", path, err)
	}

	src := &Source{
		patient: domain.PatientContext{
			PatientID:   file.Patient.PatientID,
			Name:        file.Patient.Name,
			BirthYear:   file.Patient.BirthYear,
			Medications: file.Patient.Medications,
			Conditions:  file.Patient.Conditions,
		},
		timeline: domain.Timeline{PatientID: file.Patient.PatientID},
	}

	for _, entry := range file.Timeline {
		date, err := time.Parse("2006-01-02", entry.Date)
		if err != nil {
			return nil, fmt.Errorf("fixtures: bad date %q in %s: %w", entry.Date, path, err)
		}
		src.timeline.Events = append(src.timeline.Events, domain.TimelineEvent{
			Date:    date,
			Kind:    domain.EventKind(entry.Kind),
			Title:   entry.Title,
			Summary: entry.Summary,
		})
	}

	return src, nil
}

// Timeline returns the fixture timeline. The patient ID is checked so a
// caller cannot silently read another patient's fixture.
func (s *Source) Timeline(_ context.Context, patientID string) (domain.Timeline, error) {
	if patientID != "" && patientID != s.timeline.PatientID {
		return domain.Timeline{}, fmt.Errorf("fixtures: unknown patient %q", patientID)
	}
	return s.timeline, nil
}

// PatientContext returns the fixture patient profile.
func (s *Source) PatientContext(_ context.Context, patientID string) (domain.PatientContext, error) {
	if patientID != "" && patientID != s.patient.PatientID {
		return domain.PatientContext{}, fmt.Errorf("fixtures: unknown patient %q", patientID)
	}
	return s.patient, nil
}

var _ ports.DataSource = (*Source)(nil)
