package cmd

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/beantownbytes/menuentry/internal/desktop"
)

// Output formats for list.
const (
	outputText = "text"
	outputYAML = "yaml"
)

// listedEntry is one row of list output.
type listedEntry struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Provenance string `yaml:"provenance"`
	Path       string `yaml:"path"`
	Exec       string `yaml:"exec,omitempty"`
	Hidden     bool   `yaml:"hidden,omitempty"`
}

func newListCmd() *cobra.Command {
	list := &cobra.Command{
		Use:   "list",
		Short: "Print the merged entry listing",
		Long: `Print every desktop entry the editor would show: the system entries
merged with your user entries, user entries shadowing system ones with the
same file name.

Files that cannot be parsed are skipped and reported on stderr.

Examples:
  menuentry list                 # Visible entries as a table
  menuentry list --all           # Include NoDisplay and Hidden entries
  menuentry list --output yaml   # Machine-readable output`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	list.Flags().BoolP("all", "a", false, "Include NoDisplay and Hidden entries")
	list.Flags().StringP("output", "o", outputText, "Output format: text or yaml")
	return list
}

// runList loads the listing once and prints it.
func runList(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	output, _ := cmd.Flags().GetString("output")

	if output != outputText && output != outputYAML {
		return fmt.Errorf("unknown output format %q: want %s or %s", output, outputText, outputYAML)
	}

	sess, err := openSession(cmd, true)
	if err != nil {
		return err
	}
	defer sess.close()

	entries, err := sess.store.LoadAll()
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	for _, f := range sess.store.Failures() {
		fmt.Fprintf(stderr, "skipped %s\n", f.Error())
	}

	rows := make([]listedEntry, 0, len(entries))
	for _, e := range entries {
		hidden := e.NoDisplay || e.Hidden
		if hidden && !all {
			continue
		}
		rows = append(rows, toListed(e))
	}

	out := cmd.OutOrStdout()
	if output == outputYAML {
		return printYAML(out, rows)
	}
	return printTable(out, rows)
}

func toListed(e *desktop.Entry) listedEntry {
	return listedEntry{
		ID:         e.ID,
		Name:       e.Name,
		Type:       e.Type.String(),
		Provenance: e.Provenance.String(),
		Path:       e.Origin,
		Exec:       e.Exec,
		Hidden:     e.NoDisplay || e.Hidden,
	}
}

func printYAML(w io.Writer, rows []listedEntry) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("failed to encode entries: %w", err)
	}
	return enc.Close()
}

func printTable(w io.Writer, rows []listedEntry) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No entries found")
		return err
	}

	headers := []string{"Key", "Source", "Name", "Path"}
	table := tablewriter.NewWriter(w)
	table.Options(
		tablewriter.WithHeader(headers),
		tablewriter.WithRendition(
			tw.Rendition{
				Borders: tw.Border{
					Left:   tw.State(1),
					Top:    tw.State(1),
					Right:  tw.State(1),
					Bottom: tw.State(1),
				},
			},
		),
		tablewriter.WithAlignment(tw.MakeAlign(len(headers), tw.AlignLeft)),
	)

	for _, r := range rows {
		name := r.Name
		if r.Hidden {
			name += " (hidden)"
		}
		if err := table.Append([]string{r.ID, r.Provenance, name, r.Path}); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}
