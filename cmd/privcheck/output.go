package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v2"

	"github.com/isseis/go-escalate/internal/color"
	"github.com/isseis/go-escalate/privilege"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// report is one status snapshot as printed by the commands.
type report struct {
	Phase            string `json:"phase,omitempty" yaml:"phase,omitempty"`
	RunID            string `json:"run_id" yaml:"run_id"`
	privilege.Status `yaml:",inline"`
}

func isSupportedFormat(format string) bool {
	switch format {
	case formatText, formatJSON, formatYAML:
		return true
	default:
		return false
	}
}

func writeReport(w io.Writer, format string, r report, useColor bool) error {
	switch format {
	case formatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(r)
	case formatYAML:
		data, err := yaml.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to marshal to YAML: %w", err)
		}
		_, err = fmt.Fprintf(w, "---\n%s", data)
		return err
	default:
		return writeText(w, r, useColor)
	}
}

// stateColor highlights how much privilege a process holds.
func stateColor(s privilege.State) color.Color {
	switch s {
	case privilege.Root:
		return color.Green
	case privilege.Suid:
		return color.Yellow
	default:
		return color.Gray
	}
}

func writeText(w io.Writer, r report, useColor bool) error {
	type row struct{ key, value string }
	rows := []row{
		{"state", color.Pick(useColor, stateColor(r.State)).Wrap(r.State.String())},
		{"real uid", strconv.Itoa(r.RealUID)},
		{"effective uid", strconv.Itoa(r.EffectiveUID)},
	}
	if r.Executable != "" {
		rows = append(rows,
			row{"executable", r.Executable},
			row{"setuid binary", strconv.FormatBool(r.SetuidBinary)})
	}
	rows = append(rows, row{"wrapper", r.Wrapper})
	if r.WrapperFound {
		rows = append(rows, row{"wrapper path", r.WrapperPath})
	}
	if r.Error != "" {
		rows = append(rows, row{"error", color.Pick(useColor, color.Red).Wrap(r.Error)})
	}

	if r.Phase != "" {
		if _, err := fmt.Fprintf(w, "[%s]\n", r.Phase); err != nil {
			return err
		}
	}
	for _, rw := range rows {
		if _, err := fmt.Fprintf(w, "%-14s %s\n", rw.key+":", rw.value); err != nil {
			return err
		}
	}
	return nil
}
