package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/platanus-dice/app"
	"github.com/lixenwraith/platanus-dice/config"
	"github.com/lixenwraith/platanus-dice/logging"
	"github.com/lixenwraith/platanus-dice/score"
	"github.com/lixenwraith/platanus-dice/storage"
)

var (
	configPath  string
	dataDir     string
	storageKind string
	seed        int64
	mute        bool
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "platanus-dice",
	Short: "Arcade color memory game for the terminal",
	Long: `Platanus Dice plays a growing sequence of colors and tones.
Repeat it with the cabinet controls before the turn timer runs out.

Run without arguments to play.`,
	SilenceUsage: true,
	RunE:         runPlay,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a game",
	RunE:  runPlay,
}

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Print the high score table",
	RunE:  runScores,
}

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Print the active key bindings",
	RunE:  runKeys,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (default: "+config.DefaultPath()+")")
	flags.StringVar(&dataDir, "data", "", "Data directory for scores and logs")
	flags.StringVar(&storageKind, "storage", "", "High score storage: file, sqlite or memory")
	flags.Int64Var(&seed, "seed", 0, "Color sequence seed, 0 for random")
	flags.BoolVar(&mute, "mute", false, "Start with audio disabled")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(keysCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag overrides
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("storage") {
		cfg.Storage.Backend = storageKind
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("mute") {
		cfg.Audio.Enabled = !mute
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.LogFile())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}

	game, err := app.New(screen, app.Options{
		Config:     cfg,
		ConfigPath: path,
		Logger:     logger,
	})
	if err != nil {
		screen.Fini()
		return err
	}
	defer game.Close()

	// Restore the terminal before printing a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			logger.Error("game crashed", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			fmt.Fprintf(os.Stderr, "\n\x1b[31mPLATANUS DICE CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting",
		zap.String("config", path),
		zap.String("data_dir", cfg.DataDir),
		zap.String("storage", cfg.Storage.Backend),
		zap.String("audio", cfg.Audio.Backend),
	)
	return game.Run(ctx)
}

func runScores(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	kv, err := storage.Open(cfg.Storage.Backend, cfg.DataDir, cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer kv.Close()

	table := score.NewStore(kv, nil, nil).Load()
	fmt.Fprintln(cmd.OutOrStdout(), formatScores(table))
	return nil
}

func runKeys(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	table, err := cfg.KeyTable()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatKeys(table))
	return nil
}
