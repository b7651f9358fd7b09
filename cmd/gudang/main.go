package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/petasbytes/gudang-bot/internal/config"
	"github.com/petasbytes/gudang-bot/internal/logging"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gudang",
	Short: "Discord bot for a shared warehouse inventory",
	Long: `gudang keeps a catalog of item names and the stock held for each item,
and serves them through the slash commands /tambah, /hapus, /deposit,
/withdraw, /inventory and /help.

Records are stored as masterItems.json and warehouse.json in the data directory.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		logger, err = logging.New(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Connect to Discord and answer slash commands",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Declare the slash commands for the stored catalog and exit",
	Args:  cobra.NoArgs,
	RunE:  runRegister,
}

var stockCmd = &cobra.Command{
	Use:   "stock",
	Short: "Print the current inventory from the data files",
	Args:  cobra.NoArgs,
	RunE:  runStock,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "gudang.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(stockCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
