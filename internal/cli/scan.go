package cli

import (
	"fmt"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"circuitdoc/config"
	"circuitdoc/internal/adapter/cache"
	"circuitdoc/internal/adapter/fs"
	"circuitdoc/internal/adapter/memstore"
	"circuitdoc/internal/adapter/scanner"
	"circuitdoc/internal/port"
	"circuitdoc/internal/usecase"
)

var (
	scanForce   bool
	scanDocsDir string
	scanJobs    int
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Explain every circuit source under a directory",
	Long: `Walk a directory, explain each file matching the configured include
patterns and write one Markdown document per file under the docs directory.
Unchanged files are skipped using the history store.

Examples:
  circuitdoc scan .
  circuitdoc scan ./circuits --force -j 4`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVar(&scanForce, "force", false, "explain every file even when unchanged")
	scanCmd.Flags().StringVar(&scanDocsDir, "docs-dir", "", "output directory for documents (default from config)")
	scanCmd.Flags().IntVarP(&scanJobs, "jobs", "j", 0, "number of files explained concurrently (default from config)")
}

func runScan(cmd *cobra.Command, args []string) error {
	path := GetRootDir()
	if len(args) > 0 {
		path = resolve(args[0])
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	cfg := GetConfig()

	var history port.HistoryStore = memstore.NewMemoryStore()
	if cfg.History.Enabled {
		if err := config.EnsureDataDir(GetRootDir()); err != nil {
			return fmt.Errorf("failed to create .circuitdoc directory: %w", err)
		}
		st, err := openHistory(cfg)
		if err != nil {
			return fmt.Errorf("failed to open history store: %w", err)
		}
		defer st.Close()
		history = st
	}

	jobs := cfg.Scan.Jobs
	if scanJobs > 0 {
		jobs = scanJobs
	}

	resultCache := cache.NewResultCache(0)
	explainer := cache.NewCachedExplainer(
		usecase.NewExplainUseCase(scanner.NewLineScanner(cfg.Scan.Constructor)),
		resultCache,
	)
	walker := fs.NewWalker(cfg.Scan.Includes, cfg.Scan.Excludes)
	scanUC := usecase.NewScanUseCase(walker, fs.Reader{}, explainer, history, jobs)

	infof("Scanning %s...", path)

	progress := &scanProgress{}

	result, err := scanUC.Scan(cmd.Context(), path, scanForce, progress.update)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	docsDir := cfg.Output.DocsDir
	if scanDocsDir != "" {
		docsDir = scanDocsDir
	}
	docsDir = resolve(docsDir)

	written := 0
	for _, sf := range result.Files {
		if sf.Err != nil {
			continue
		}
		dest := fs.DocumentPath(docsDir, sf.File.RelPath)
		if _, err := os.Stat(dest); err == nil && sf.Skipped {
			continue
		}
		if err := fs.WriteDocument(dest, sf.Record.Document); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to write %s: %v", dest, err))
			continue
		}
		written++
	}

	out := cmd.OutOrStdout()
	headingColor.Fprintln(out, "Scan complete:")
	fmt.Fprintf(out, "  Files explained:   %d\n", result.FilesExplained)
	fmt.Fprintf(out, "  Files skipped:     %d (unchanged)\n", result.FilesSkipped)
	fmt.Fprintf(out, "  Records deleted:   %d (removed)\n", result.FilesDeleted)
	fmt.Fprintf(out, "  Gates found:       %d\n", result.GatesFound)
	fmt.Fprintf(out, "  Documents written: %d\n", written)
	if hits := resultCache.Hits(); hits > 0 {
		fmt.Fprintf(out, "  Duplicate sources: %d\n", hits)
	}
	debugf("result cache: %d distinct sources, %d hits", resultCache.Size(), resultCache.Hits())

	if len(result.Errors) > 0 {
		fmt.Fprintln(out)
		for _, e := range result.Errors {
			warnf("%s", e)
		}
	}

	fmt.Fprintf(out, "\nDocuments stored at: %s\n", docsDir)
	return nil
}

// scanProgress drives the progress bar from concurrent scan workers. The bar
// is created on the first update, once the file count is known.
type scanProgress struct {
	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

func (p *scanProgress) update(_, total int, currentFile string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar == nil {
		if !logLevel.Enabled(zapcore.InfoLevel) {
			return
		}
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(logOut),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowBytes(false),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetDescription("[cyan]Explaining[reset]"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(logOut)
			}),
		)
	}
	p.bar.Add(1)
	debugf("explained %s", currentFile)
}
