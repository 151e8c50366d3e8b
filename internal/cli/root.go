package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"circuitdoc/config"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "circuitdoc",
	Short: "Explain quantum circuits written in Python source",
	Long: `circuitdoc scans Python source for a QuantumCircuit declaration and the
gate calls made on it, and produces a structured description of the circuit
together with a Markdown document explaining each gate.

Example usage:
  circuitdoc explain bell.py       # Explain one file, write circuit.md
  circuitdoc scan .                # Explain every circuit under a directory
  circuitdoc gates                 # List the known gates`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}
		rootDir, err = filepath.Abs(rootDir)
		if err != nil {
			return fmt.Errorf("invalid root directory: %w", err)
		}

		// A missing .env is fine.
		_ = godotenv.Load(filepath.Join(rootDir, ".env"))

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg.ApplyEnv()
		setLevel(cfg.Logging.Level)

		debugf("config: constructor=%s format=%s document=%s", cfg.Scan.Constructor, cfg.Output.Format, cfg.Output.Document)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		errorf("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./circuitdoc.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}

// resolve makes p absolute relative to the root directory.
func resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(GetRootDir(), p)
}
