package app

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/agentstation/specmap/pkg/specs"
)

// NewMergeCommand creates the merge command.
func (a *App) NewMergeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <dir>",
		Short: "Merge every table file under a directory into the catalog",
		Long: `Merge recursively discovers .csv and .tsv files under the given
directory and folds their rows into the per-brand catalog. Files are
processed in lexicographic path order; a plain-text report of the run is
written alongside structured logs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sm, err := a.Specmap()
			if err != nil {
				return err
			}

			result, runErr := sm.Merge(cmd.Context(), args[0])

			out := cmd.OutOrStdout()
			switch a.config.Format {
			case "json":
				if err := writeJSON(out, result); err != nil {
					return err
				}
			case "yaml":
				if err := writeYAML(out, result); err != nil {
					return err
				}
			default:
				fmt.Fprintf(out, "files: %d processed, %d skipped, %d degraded\n",
					result.Files, result.FilesSkipped, result.FilesWarned)
				fmt.Fprintf(out, "rows:  %d read, %d merged, %d rejected\n",
					result.Rows, result.Merged, result.RowsSkipped)
				fmt.Fprintf(out, "took:  %s\n", result.CompletedAt.Sub(result.StartedAt))
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&a.config.VocabularyPath, "vocabulary", a.config.VocabularyPath, "YAML file of canonical keys and aliases")
	cmd.Flags().StringVar(&a.config.AuditLogPath, "audit-log", a.config.AuditLogPath, "path of the plain-text run report")
	cmd.Flags().BoolVar(&a.config.NoAuditLog, "no-audit-log", a.config.NoAuditLog, "disable the plain-text run report")

	return cmd
}

// NewListCommand creates the list command with its subcommands.
func (a *App) NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog contents",
	}
	cmd.AddCommand(a.newListBrandsCommand())
	cmd.AddCommand(a.newListDevicesCommand())
	return cmd
}

func (a *App) newListBrandsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "brands",
		Short: "List every brand in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sm, err := a.Specmap()
			if err != nil {
				return err
			}

			brands, err := sm.Catalog().Brands(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch a.config.Format {
			case "json":
				return writeJSON(out, brands)
			case "yaml":
				return writeYAML(out, brands)
			default:
				for _, brand := range brands {
					fmt.Fprintln(out, brand)
				}
				return nil
			}
		},
	}
}

func (a *App) newListDevicesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "devices <brand>",
		Short: "List every device merged for a brand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sm, err := a.Specmap()
			if err != nil {
				return err
			}

			p, err := sm.Catalog().Partition(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			devices := sortedDevices(p)

			out := cmd.OutOrStdout()
			switch a.config.Format {
			case "json":
				return writeJSON(out, devices)
			case "yaml":
				return writeYAML(out, devices)
			default:
				for _, d := range devices {
					fmt.Fprintf(out, "%s  %s %s (%d attributes)\n", d.ID, d.Brand, d.Model, len(d.Attributes))
				}
				return nil
			}
		},
	}
}

// NewInspectCommand creates the inspect command.
func (a *App) NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <brand>",
		Short: "Print a brand's full partition document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sm, err := a.Specmap()
			if err != nil {
				return err
			}

			p, err := sm.Catalog().Partition(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.config.Format == "yaml" {
				return writeYAML(out, p)
			}
			return writeJSON(out, p)
		},
	}
}

// sortedDevices returns a partition's devices ordered by model then ID, so
// listings are stable across runs.
func sortedDevices(p *specs.Partition) []*specs.Device {
	devices := make([]*specs.Device, 0, len(p.Entities))
	for _, d := range p.Entities {
		devices = append(devices, d)
	}
	sort.Slice(devices, func(i, j int) bool {
		if devices[i].Model != devices[j].Model {
			return devices[i].Model < devices[j].Model
		}
		return devices[i].ID < devices[j].ID
	})
	return devices
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	// UseJSONMarshaler keeps attribute values rendering through their JSON
	// form, the canonical serialization of the catalog.
	data, err := yaml.MarshalWithOptions(v,
		yaml.Indent(2),
		yaml.UseJSONMarshaler(),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
