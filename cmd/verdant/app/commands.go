package app

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/verdantlabs/verdant/pkg/errors"
	"github.com/verdantlabs/verdant/pkg/grouper"
	"github.com/verdantlabs/verdant/pkg/logging"
	"github.com/verdantlabs/verdant/pkg/normalize"
	"github.com/verdantlabs/verdant/pkg/reconcile"
	"github.com/verdantlabs/verdant/pkg/score"
)

// NewReconcileCommand creates the reconcile command.
func (a *App) NewReconcileCommand() *cobra.Command {
	var (
		dryRun   bool
		synonyms string
		weights  string
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Merge duplicate records in the catalog",
		Long: `Reconcile runs one full pass over the record store: records
describing the same plant are clustered, each cluster is merged into
its most complete member, losers are deleted, and the manifest is
rebuilt. With --dry-run the plan is printed without touching the
store.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := logging.WithLogger(cmd.Context(), a.logger)

			cat, err := a.Catalog()
			if err != nil {
				return err
			}

			// A leftover journal marks an interrupted run. Reconciliation
			// is idempotent, so re-running is the recovery path.
			if _, err := reconcile.ReadJournal(a.config.StorePath); err == nil {
				a.logger.Warn().
					Str("store", a.config.StorePath).
					Msg("Found journal from an interrupted run, re-reconciling")
			}

			opts := []reconcile.Option{reconcile.WithDryRun(dryRun)}

			if synonyms == "" {
				synonyms = a.config.SynonymsFile
			}
			if synonyms != "" {
				table, err := grouper.LoadSynonyms(synonyms, normalize.New())
				if err != nil {
					return err
				}
				opts = append(opts, reconcile.WithSynonyms(table))
			}

			if weights == "" {
				weights = a.config.WeightsFile
			}
			if weights != "" {
				w, err := score.LoadWeights(weights)
				if err != nil {
					return err
				}
				opts = append(opts, reconcile.WithWeights(w))
			}

			result, runErr := reconcile.New(opts...).Run(ctx, cat)
			if result != nil {
				fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
			}
			if runErr != nil {
				return runErr
			}
			if len(result.Errors) > 0 {
				return fmt.Errorf("reconciliation completed with %d errors", len(result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute and print the merge plan without applying it")
	cmd.Flags().StringVar(&synonyms, "synonyms", "", "YAML file of common-name synonym groups")
	cmd.Flags().StringVar(&weights, "weights", "", "YAML file of completeness score weights")

	return cmd
}

// NewListCommand creates the list command.
func (a *App) NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := a.Catalog()
			if err != nil {
				return err
			}

			if a.config.Format == "json" {
				out := make(map[string]any, cat.Records().Len())
				for _, file := range cat.Records().Files() {
					rec, err := cat.Record(file)
					if err != nil {
						continue
					}
					out[file] = rec
				}
				data, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return errors.WrapResource("encode", "records", "", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			normalizer := normalize.New()
			scorer := score.New()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FILE\tNAME\tKEY\tIMAGES\tSCORE")
			for _, file := range cat.Records().Files() {
				rec, err := cat.Record(file)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.0f\n",
					file, rec.Name,
					normalizer.Key(rec.ScientificName.String()).String(),
					rec.ImageCount(), scorer.Score(&rec))
			}
			return w.Flush()
		},
	}
}

// NewValidateCommand creates the validate command.
func (a *App) NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the catalog for malformed records",
		Long: `Validate loads every record document and reports the ones that
cannot be parsed or whose scientificName is not a string. These
records are skipped by reconcile until repaired.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := a.Catalog()
			if err != nil {
				return err
			}

			var problems []string
			for _, file := range cat.Malformed() {
				problems = append(problems, file+": unparseable document")
			}
			for _, file := range cat.Records().Files() {
				rec, err := cat.Record(file)
				if err != nil {
					continue
				}
				if rec.ScientificName.Malformed() {
					problems = append(problems, file+": scientificName is not a string")
				}
			}

			if len(problems) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%d records OK\n", cat.Records().Len())
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(problems, "\n"))
			return fmt.Errorf("%d malformed records", len(problems))
		},
	}
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "verdant %s\n", a.version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit:   %s\n", a.commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:    %s\n", a.date)
			fmt.Fprintf(cmd.OutOrStdout(), "  built by: %s\n", a.builtBy)
		},
	}
}
