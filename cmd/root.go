package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/voxtraditionis/vox/pkg/config"
	"github.com/voxtraditionis/vox/pkg/controllers"
	"github.com/voxtraditionis/vox/pkg/logger"
	"github.com/voxtraditionis/vox/pkg/provider"
	"github.com/voxtraditionis/vox/pkg/store"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "vox",
	Short: "Vox Traditionis",
	Long:  `A chat client answering from pre-1962 Catholic doctrine, streamed from a hosted model.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(cfgFile); err != nil {
			return err
		}
		if err := config.EnsureSettingsDir(); err != nil {
			return err
		}
		if err := logger.Init(); err != nil {
			return err
		}
		defer logger.Close()

		ctx := context.Background()
		controller, cleanup, err := buildController(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		if prompt := viper.GetString("prompt"); prompt != "" {
			return runOnce(ctx, controller, prompt)
		}
		return runRepl(ctx, controller)
	},
}

// buildController wires the storage backend, provider factory and
// session controller from settings.
func buildController(ctx context.Context) (*controllers.SessionController, func(), error) {
	settings := config.Get()
	cleanup := func() {}

	var kv store.KV
	switch settings.History.Backend {
	case "memory":
		kv = store.NewMemoryKV()
	case "sqlite":
		sqliteKV, err := store.NewSQLiteKV(settings.History.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open history store: %w", err)
		}
		kv = sqliteKV
		cleanup = func() { sqliteKV.Close() }
	default:
		fileKV, err := store.NewFileKV(config.BaseSettingsDir())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open history store: %w", err)
		}
		kv = fileKV
	}

	factory := provider.NewFactory(
		settings.Provider.Model,
		settings.Provider.Temperature,
		settings.Provider.APIKey,
	)

	controller := controllers.NewSessionController(
		ctx,
		&factoryAdapter{factory: factory},
		store.NewSessionStore(kv),
		settings.Language,
	)
	return controller, cleanup, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", ".vox/settings.yaml", "config file (default is .vox/settings.yaml)")

	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level")
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentFlags().String("lang", "en", "answer language (en or fr)")
	viper.BindPFlag("language", rootCmd.PersistentFlags().Lookup("lang"))

	rootCmd.PersistentFlags().StringP("prompt", "p", "", "send one question and exit instead of entering the chat loop")
	viper.BindPFlag("prompt", rootCmd.PersistentFlags().Lookup("prompt"))
}
