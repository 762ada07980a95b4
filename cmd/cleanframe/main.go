package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"cleanframe/adapters/render"
	"cleanframe/adapters/tabular"
	"cleanframe/domain/table"
	"cleanframe/internal/config"
	"cleanframe/internal/session"
	"cleanframe/internal/transform"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cleanframe",
		Short: "Inspect and clean tabular datasets",
	}

	rootCmd.AddCommand(
		newReportCmd(),
		newCleanCmd(),
		newOptimizeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openSession loads a dataset file and starts a session over it
func openSession(path string, maxCategories int) (*session.Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	sessionCfg := session.Config{MaxNumCategories: cfg.Session.MaxNumCategories}
	if maxCategories > 0 {
		sessionCfg.MaxNumCategories = maxCategories
	}

	ds, err := tabular.NewReader("").ReadFile(path)
	if err != nil {
		return nil, err
	}
	return session.New(ds, sessionCfg)
}

func newReportCmd() *cobra.Command {
	var maxCategories int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "report [file]",
		Short: "Print a data quality report for a CSV or XLSX file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(args[0], maxCategories)
			if err != nil {
				return err
			}

			rep, err := sess.Report(context.Background(), session.ReportOptions{})
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}
			return render.NewTextWriter().Write(os.Stdout, rep, sess.Dataset().ColumnNames())
		},
	}

	cmd.Flags().IntVar(&maxCategories, "max-categories", 0, "cardinality threshold for categorical advice")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the report as JSON")
	return cmd
}

func newCleanCmd() *cobra.Command {
	var maxCategories int
	var minMissingRatio float64
	var keepMissingRows bool
	var output string

	cmd := &cobra.Command{
		Use:   "clean [file]",
		Short: "Drop sparse columns, missing rows and duplicated rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(args[0], maxCategories)
			if err != nil {
				return err
			}

			result, err := sess.Clean(context.Background(), transform.CleanOptions{
				MinMissingRatio: minMissingRatio,
				DropMissingRows: !keepMissingRows,
			})
			if err != nil {
				return err
			}

			if result.NothingToDo() {
				fmt.Println("Nothing to clean.")
			} else {
				if len(result.DroppedColumns) > 0 {
					fmt.Printf("Dropped columns: %v\n", result.DroppedColumns)
				}
				fmt.Printf("Dropped %d rows with missing values, %d duplicated rows.\n",
					result.DroppedMissingRows, result.DroppedDuplicateRows)
			}

			if output != "" {
				return writeCSV(sess, output)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxCategories, "max-categories", 0, "cardinality threshold for categorical advice")
	cmd.Flags().Float64Var(&minMissingRatio, "min-missing-ratio", 0.05, "missingness ratio above which a column is dropped")
	cmd.Flags().BoolVar(&keepMissingRows, "keep-missing-rows", false, "keep rows that contain missing values")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the cleaned dataset to a CSV file")
	return cmd
}

func newOptimizeCmd() *cobra.Command {
	var maxCategories int
	var output string

	cmd := &cobra.Command{
		Use:   "optimize [file]",
		Short: "Downcast numeric columns and encode low-cardinality text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(args[0], maxCategories)
			if err != nil {
				return err
			}

			result, err := sess.Optimize(context.Background())
			if err != nil {
				return err
			}

			if result.NothingToDo() {
				fmt.Println("Nothing to optimize.")
			} else {
				for _, line := range downcastLines(result.Downcast) {
					fmt.Println(line)
				}
				for _, col := range result.Categorical {
					fmt.Printf("Encoded %s as categorical\n", col)
				}
				fmt.Printf("Memory: %d -> %d bytes\n", result.BytesBefore, result.BytesAfter)
			}

			if output != "" {
				return writeCSV(sess, output)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxCategories, "max-categories", 0, "cardinality threshold for categorical advice")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the optimized dataset to a CSV file")
	return cmd
}

// downcastLines lists downcast decisions in column-name order so repeated
// runs print identically
func downcastLines(downcast map[string]table.Type) []string {
	cols := make([]string, 0, len(downcast))
	for col := range downcast {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	lines := make([]string, len(cols))
	for i, col := range cols {
		lines[i] = fmt.Sprintf("Downcast %s -> %s", col, downcast[col])
	}
	return lines
}

// writeCSV saves the session's current dataset state
func writeCSV(sess *session.Session, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := tabular.WriteCSV(f, sess.Dataset()); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
