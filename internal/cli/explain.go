package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"circuitdoc/config"
	"circuitdoc/internal/adapter/cache"
	"circuitdoc/internal/adapter/fs"
	"circuitdoc/internal/adapter/scanner"
	"circuitdoc/internal/adapter/store"
	"circuitdoc/internal/domain"
	"circuitdoc/internal/usecase"
)

var (
	explainFormat    string
	explainOutput    string
	explainCheck     bool
	explainPrintDoc  bool
	explainNoHistory bool
)

// errStale is returned by --check when the document on disk differs.
var errStale = errors.New("document is out of date")

var explainCmd = &cobra.Command{
	Use:   "explain <file>",
	Short: "Explain the circuit declared in one source file",
	Long: `Scan a source file for a circuit declaration and the gate calls made on it.
The structured result is printed to stdout and the gate explanations are
written as Markdown to the configured document (circuit.md by default).

Examples:
  circuitdoc explain bell.py
  circuitdoc explain bell.py -f text -o docs/bell.md
  circuitdoc explain bell.py --check   # fail if the document is stale`,
	Args: cobra.ExactArgs(1),
	RunE: runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)
	explainCmd.Flags().StringVarP(&explainFormat, "format", "f", "", "result format: json or text (default from config)")
	explainCmd.Flags().StringVarP(&explainOutput, "output", "o", "", "document path (default from config)")
	explainCmd.Flags().BoolVar(&explainCheck, "check", false, "compare with the existing document instead of writing it")
	explainCmd.Flags().BoolVar(&explainPrintDoc, "print-doc", false, "also print the document to stdout")
	explainCmd.Flags().BoolVar(&explainNoHistory, "no-history", false, "do not record the result in the history store")
}

func runExplain(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	out := cmd.OutOrStdout()

	srcPath := resolve(args[0])
	info, err := os.Stat(srcPath)
	if err != nil {
		return fmt.Errorf("file not found: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, use 'circuitdoc scan'", args[0])
	}

	source, err := fs.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	explainUC := usecase.NewExplainUseCase(scanner.NewLineScanner(cfg.Scan.Constructor))
	exp := explainUC.Explain(source)

	if exp.Result.CircuitName == "" {
		warnf("no %s(...) declaration found in %s", cfg.Scan.Constructor, args[0])
	}
	debugf("%s: circuit=%q qubits=%d gates=%d", args[0], exp.Result.CircuitName, exp.Result.QubitNum, len(exp.Result.Gates))

	docPath := cfg.Output.Document
	if explainOutput != "" {
		docPath = explainOutput
	}
	docPath = resolve(docPath)

	if explainCheck {
		return checkDocument(out, docPath, exp.Document)
	}

	if err := fs.WriteDocument(docPath, exp.Document); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	infof("Document written to: %s", docPath)

	if cfg.History.Enabled && !explainNoHistory {
		if err := recordHistory(cfg, srcPath, info.ModTime().Unix(), source, exp); err != nil {
			warnf("history not updated: %v", err)
		}
	}

	format := cfg.Output.Format
	if explainFormat != "" {
		format = explainFormat
	}
	if err := printResult(out, format, exp.Result); err != nil {
		return err
	}
	if explainPrintDoc {
		fmt.Fprint(out, exp.Document.Markdown())
	}
	return nil
}

func printResult(w io.Writer, format string, result domain.ParseResult) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case "text":
		headingColor.Fprintf(w, "Circuit %q (%d qubits)\n", result.CircuitName, result.QubitNum)
		for i, g := range result.Gates {
			fmt.Fprintf(w, "  %2d. %-12s qubits: [%s]", i+1, g.Name, domain.QubitList(g.Qubits))
			if len(g.Params) > 0 {
				fmt.Fprintf(w, "  params: %v", g.Params)
			}
			fmt.Fprintln(w)
		}
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	return nil
}

func checkDocument(w io.Writer, docPath string, doc domain.Document) error {
	want := doc.Markdown()
	have, err := fs.ReadFile(docPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read document: %w", err)
	}
	if have == want {
		okColor.Fprintf(w, "%s is up to date\n", docPath)
		return nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(have),
		B:        difflib.SplitLines(want),
		FromFile: docPath,
		ToFile:   docPath + " (generated)",
		Context:  2,
	})
	if err != nil {
		return fmt.Errorf("failed to diff document: %w", err)
	}
	fmt.Fprint(w, diff)
	return fmt.Errorf("%s: %w", docPath, errStale)
}

func recordHistory(cfg *config.Config, srcPath string, modTime int64, source string, exp domain.Explanation) error {
	if err := config.EnsureDataDir(GetRootDir()); err != nil {
		return err
	}
	st, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	return st.PutRecord(domain.Record{
		Path:        srcPath,
		Hash:        cache.ContentHash(source),
		ModTime:     modTime,
		Result:      exp.Result,
		Document:    exp.Document,
		ExplainedAt: time.Now().UTC(),
	})
}

// openHistory opens the history store and applies any schema change.
func openHistory(cfg *config.Config) (*store.BoltStore, error) {
	st, err := store.NewBoltStore(config.HistoryDBPath(GetRootDir()))
	if err != nil {
		return nil, err
	}
	reason, err := st.Prepare(cfg)
	if err != nil {
		st.Close()
		return nil, err
	}
	if reason != "" {
		infof("History cleared: %s", reason)
	}
	return st, nil
}
