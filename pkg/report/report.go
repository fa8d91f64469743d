// Package report loads snapshot files and renders capacity reports for the CLI.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/arnavshah/capacity-api-go/pkg/capacity"
	"github.com/arnavshah/capacity-api-go/pkg/models"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format selects how a report is written
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for formats other than text and json
var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat validates a --format value. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Report is everything the CLI prints about one snapshot
type Report struct {
	Dashboard capacity.TeamDashboard `json:"dashboard"`
	Analytics capacity.Analytics     `json:"analytics"`
}

// Build computes the report for a snapshot
func Build(s models.Snapshot, topSkills int) Report {
	return Report{
		Dashboard: capacity.BuildTeamDashboard(s),
		Analytics: capacity.BuildAnalytics(s, topSkills),
	}
}

// LoadSnapshot reads a snapshot from a .json, .yaml or .yml file
func LoadSnapshot(path string) (models.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	return ParseSnapshot(data, filepath.Ext(path))
}

// ParseSnapshot decodes snapshot data. ext selects the decoder; anything
// other than .json is treated as YAML.
func ParseSnapshot(data []byte, ext string) (models.Snapshot, error) {
	var s models.Snapshot
	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &s); err != nil {
			return models.Snapshot{}, fmt.Errorf("decode json snapshot: %w", err)
		}
		return s, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return models.Snapshot{}, fmt.Errorf("decode yaml snapshot: %w", err)
	}
	return s, nil
}

// Render writes r in the given format
func Render(w io.Writer, r Report, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatText, "":
		return renderText(w, r)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func renderText(w io.Writer, r Report) error {
	d, stats := r.Dashboard, r.Analytics.Stats
	fmt.Fprintf(w, "Engineers: %d  Active projects: %d  Assignments: %d  Overallocated: %d\n",
		d.TotalEngineers, d.ActiveProjects, d.TotalAssignments, d.Overallocated)
	fmt.Fprintf(w, "Average available: %.2f%%  Unique skills: %d  Balance score: %.2f\n\n",
		stats.AverageAvailable, stats.UniqueSkills, stats.BalanceScore)

	tw := tabwriter.NewWriter(w, 2, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "ENGINEER\tSENIORITY\tALLOCATED\tMAX\tAVAILABLE\tUTILIZATION\t")
	for _, e := range d.Team.Engineers {
		flag := ""
		if e.IsOverallocated {
			flag = "OVER"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d%%\t%d%%\t%d%%\t%.2f%%\t%s\n",
			e.Name, e.Seniority, e.Allocated, e.MaxCapacity, e.Available, e.UtilizationPct, flag)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(r.Analytics.TopSkills) > 0 {
		skills := make([]string, 0, len(r.Analytics.TopSkills))
		for _, s := range r.Analytics.TopSkills {
			skills = append(skills, fmt.Sprintf("%s (%d)", s.Skill, s.Count))
		}
		fmt.Fprintf(w, "\nTop skills: %s\n", strings.Join(skills, ", "))
	}

	_, err := fmt.Fprintln(w)
	return err
}
