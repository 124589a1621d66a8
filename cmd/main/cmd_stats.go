package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/CTAG07/markovtext/pkg/markov"
)

func (a *app) newStatsCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show statistics about the chain built from the corpus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := a.loadModel(cmd.Context())
			if err != nil {
				return err
			}
			return writeStats(cmd.OutOrStdout(), model.Stats(), format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json, yaml)")
	return cmd
}

func (a *app) newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Dump the chain index as JSON",
		Long: `Dump every token, start position, end position and word pair of the chain
index as JSON. The dump is meant for inspection; it cannot be loaded back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := a.loadModel(cmd.Context())
			if err != nil {
				return err
			}
			return model.WriteJSON(cmd.OutOrStdout())
		},
	}
}

func writeStats(w io.Writer, stats markov.Stats, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer func(enc *yaml.Encoder) {
			_ = enc.Close()
		}(enc)
		return enc.Encode(stats)
	case "text", "":
		_, err := fmt.Fprintln(w, renderStats(stats))
		return err
	default:
		return fmt.Errorf("unknown format %q: want text, json or yaml", format)
	}
}

func renderStats(stats markov.Stats) string {
	var (
		headerColor = lipgloss.Color("#F780FF")
		labelColor  = lipgloss.Color("#6272A4")
		valueColor  = lipgloss.Color("#8BE9FD")
	)
	headerStyle := lipgloss.NewStyle().Foreground(headerColor).Bold(true).MarginBottom(1)
	labelStyle := lipgloss.NewStyle().Foreground(labelColor).Width(18)
	valueStyle := lipgloss.NewStyle().Foreground(valueColor).Bold(true)

	rows := []struct {
		label string
		value int
	}{
		{"Tokens", stats.Tokens},
		{"Vocabulary", stats.Vocabulary},
		{"Sentences", stats.Sentences},
		{"Start positions", stats.Starts},
		{"Unique starters", stats.UniqueStarters},
		{"Word pairs", stats.Pairs},
		{"Continuations", stats.Continuations},
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, labelStyle.Render(r.label)+valueStyle.Render(strconv.Itoa(r.value)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, headerStyle.Render("Chain statistics"), strings.Join(lines, "\n"))
}
