package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"circuitdoc/config"
	"circuitdoc/internal/adapter/store"
)

var historyJSON bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List explained files recorded in the history store",
	RunE:  runHistory,
}

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print the stored explanation of a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if _, err := os.Stat(config.HistoryDBPath(GetRootDir())); os.IsNotExist(err) {
		return fmt.Errorf("no history found. Run 'circuitdoc scan' first")
	}

	st, err := openHistory(cfg)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer st.Close()

	recs, err := st.ListRecords()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if historyJSON {
		data, err := json.MarshalIndent(recs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal history: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(recs) == 0 {
		fmt.Fprintln(out, "History is empty.")
		return nil
	}
	for _, rec := range recs {
		path := rec.Path
		if rel, err := filepath.Rel(GetRootDir(), rec.Path); err == nil {
			path = rel
		}
		name := rec.Result.CircuitName
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(out, "%-40s %-10s %3d qubits %4d gates  %s\n",
			path, name, rec.Result.QubitNum, len(rec.Result.Gates),
			dimColor.Sprint(rec.ExplainedAt.Local().Format("2006-01-02 15:04:05")))
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if _, err := os.Stat(config.HistoryDBPath(GetRootDir())); os.IsNotExist(err) {
		return fmt.Errorf("no history found. Run 'circuitdoc scan' first")
	}

	st, err := openHistory(cfg)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer st.Close()

	rec, err := st.GetRecord(resolve(args[0]))
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no history for %s, run 'circuitdoc explain' or 'circuitdoc scan' first", args[0])
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := printResult(out, cfg.Output.Format, rec.Result); err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, rec.Document.Markdown())
	return nil
}
