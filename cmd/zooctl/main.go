package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tordrt/zoodb"
	"github.com/tordrt/zoodb/internal/config"
	"github.com/tordrt/zoodb/internal/logging"
)

var version = "dev"

// app holds the flags shared by every command
type app struct {
	dbURL       string
	user        string
	password    string
	configFile  string
	format      string
	metricsFile string
	verbosity   int

	cfg config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "zooctl",
		Short:         "Query and maintain the zoo database",
		Long:          `zooctl lists, searches and updates the zoo's animals, staff, shops and food storage, and runs the fixed analytical reports.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.dbURL, "db-url", "", "Database URL: postgres://, mysql:// or sqlite:// (default from config)")
	flags.StringVar(&a.user, "user", "", "Database user, overrides the URL")
	flags.StringVar(&a.password, "password", "", "Database password, overrides the URL")
	flags.StringVar(&a.configFile, "config", "", "YAML config file")
	flags.StringVarP(&a.format, "format", "f", "text", "Output format: text or markdown")
	flags.StringVar(&a.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")
	flags.CountVarP(&a.verbosity, "verbose", "v", "Increase log verbosity (-v debug, -vv trace)")

	rootCmd.AddCommand(
		a.listCmd(),
		a.searchComputersCmd(),
		a.deleteAnimalCmd(),
		a.updateWorkerCmd(),
		a.addVetCmd(),
		a.reportCmd(),
		a.dumpCmd(),
		a.checkCmd(),
		versionCmd(),
	)
	return rootCmd
}

func (a *app) init(stderr io.Writer) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	logging.Apply(logging.Level(a.verbosity, cfg.Log.Level), cfg.Log, stderr)
	return nil
}

func (a *app) databaseURL() string {
	if a.dbURL != "" {
		return a.dbURL
	}
	return a.cfg.Database.DatabaseURL()
}

// withStore connects, runs fn and releases the connection
func (a *app) withStore(ctx context.Context, fn func(store *zoodb.Store) error) error {
	var reg *prometheus.Registry
	opts := &zoodb.Options{User: a.user, Password: a.password}
	if a.metricsFile != "" {
		reg = prometheus.NewRegistry()
		opts.Registerer = reg
	}

	store, err := zoodb.Open(ctx, a.databaseURL(), opts)
	if err != nil {
		return errors.Wrap(err, "failed to connect")
	}
	defer store.Client().Release()

	err = fn(store)

	if reg != nil {
		if werr := prometheus.WriteToTextfile(a.metricsFile, reg); werr != nil {
			log.Error().Err(werr).Str("path", a.metricsFile).Msg("Failed to write metrics")
		}
	}
	return err
}

func (a *app) write(w io.Writer, tables ...zoodb.Table) error {
	return zoodb.FormatTables(tables, &zoodb.OutputOptions{Writer: w, Format: a.format})
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [kind]",
		Short: "List an entity or relationship table, or the available kinds",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, kind := range zoodb.EntityKinds() {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), kind)
				}
				return nil
			}
			kind, err := parseEntityKind(args[0])
			if err != nil {
				return err
			}
			return a.withStore(cmd.Context(), func(store *zoodb.Store) error {
				table, err := store.ListTable(cmd.Context(), kind)
				if err != nil {
					return err
				}
				return a.write(cmd.OutOrStdout(), table)
			})
		},
	}
}

func (a *app) searchComputersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search-computers <manufacturer>",
		Short: "Find computers whose manufacturer contains the text, ignoring case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), func(store *zoodb.Store) error {
				computers, err := store.SearchComputersByManufacturer(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return a.write(cmd.OutOrStdout(), zoodb.NewTable("computers", computers))
			})
		},
	}
}

func (a *app) deleteAnimalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-animal <a_id>",
		Short: "Delete an animal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), func(store *zoodb.Store) error {
				if err := store.DeleteAnimal(cmd.Context(), args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted animal %s\n", args[0])
				return nil
			})
		},
	}
}

func (a *app) updateWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update-worker <w_id> <field> <value>",
		Short: "Update a worker's address, email, phone or pay_rate",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := zoodb.ParseWorkerField(args[1])
			if err != nil {
				return err
			}
			return a.withStore(cmd.Context(), func(store *zoodb.Store) error {
				if err := store.UpdateWorker(cmd.Context(), args[0], field, args[2]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s of worker %s\n", field, args[0])
				return nil
			})
		},
	}
}

func (a *app) addVetCmd() *cobra.Command {
	var vet zoodb.NewVeterinarian
	cmd := &cobra.Command{
		Use:   "add-vet",
		Short: "Hire a veterinarian (worker and veterinarian rows in one transaction)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), func(store *zoodb.Store) error {
				if err := store.InsertVeterinarian(cmd.Context(), vet); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added veterinarian %s\n", vet.ID)
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&vet.ID, "id", "", "Worker id")
	flags.StringVar(&vet.Name, "name", "", "Full name")
	flags.Float64Var(&vet.PayRate, "pay-rate", 0, "Hourly pay rate")
	flags.StringVar(&vet.Address, "address", "", "Postal address")
	flags.StringVar(&vet.Email, "email", "", "Email address")
	flags.StringVar(&vet.Phone, "phone", "", "Phone number")
	flags.StringVar(&vet.Specialization, "specialization", "", "Veterinary specialization")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("specialization")
	return cmd
}

func (a *app) reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report [id]",
		Short: "Run an analytical report, or list the available reports",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, r := range zoodb.Reports() {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", r.ID, r.Title)
				}
				return nil
			}
			id, err := parseReportID(args[0])
			if err != nil {
				return err
			}
			return a.withStore(cmd.Context(), func(store *zoodb.Store) error {
				table, err := store.RunReport(cmd.Context(), id)
				if err != nil {
					return err
				}
				return a.write(cmd.OutOrStdout(), table)
			})
		},
	}
}

func (a *app) dumpCmd() *cobra.Command {
	var outputDir, outputFile string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write every entity and relationship table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputDir != "" && outputFile != "" {
				return errors.New("cannot use both --output-dir and --output flags")
			}
			return a.withStore(cmd.Context(), func(store *zoodb.Store) error {
				tables, err := store.ListAll(cmd.Context())
				if err != nil {
					return err
				}

				opts := &zoodb.OutputOptions{Writer: cmd.OutOrStdout(), OutputDir: outputDir, Format: a.format}
				if outputFile != "" {
					f, err := os.Create(outputFile)
					if err != nil {
						return errors.Wrap(err, "failed to create output file")
					}
					defer func() {
						if err := f.Close(); err != nil {
							log.Warn().Err(err).Msg("Failed to close output file")
						}
					}()
					opts.Writer = f
				}
				return zoodb.FormatTables(tables, opts)
			})
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output-dir", "d", "", "Write one file per table to this directory")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	return cmd
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that the database has every zoo table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), func(store *zoodb.Store) error {
				missing, err := store.CheckSchema(cmd.Context())
				if err != nil {
					return err
				}
				if len(missing) > 0 {
					return errors.Newf("missing tables: %s", strings.Join(missing, ", "))
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "All zoo tables present")
				return nil
			})
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the zooctl version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "zooctl", version)
		},
	}
}

func parseEntityKind(name string) (zoodb.EntityKind, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for _, kind := range zoodb.EntityKinds() {
		if string(kind) == normalized {
			return kind, nil
		}
	}
	return "", errors.Mark(errors.Newf("unknown kind %q (run 'zooctl list' for the list)", name), zoodb.ErrValidation)
}

func parseReportID(name string) (zoodb.ReportID, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for _, r := range zoodb.Reports() {
		if string(r.ID) == normalized {
			return r.ID, nil
		}
	}
	return "", errors.Mark(errors.Newf("unknown report %q (run 'zooctl report' for the list)", name), zoodb.ErrValidation)
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
