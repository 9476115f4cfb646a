// file: cmd/root.go
// version: 1.2.0
// guid: 68b1d5f3-fab9-4b8a-80de-93a7b77ed0ac

// Package cmd holds the CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jdfalk/bookwatch/internal/checker"
	"github.com/jdfalk/bookwatch/internal/config"
	"github.com/jdfalk/bookwatch/internal/database"
	"github.com/jdfalk/bookwatch/internal/fetcher"
	"github.com/jdfalk/bookwatch/internal/importer"
	"github.com/jdfalk/bookwatch/internal/requests"
	"github.com/jdfalk/bookwatch/internal/server"
	"github.com/jdfalk/bookwatch/internal/settings"
)

var cfgFile string
var databasePath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bookwatch",
	Short: "Watch book lists and fulfill download requests",
	Long: `Bookwatch subscribes to reading lists on Open Library, Goodreads and
Hardcover, imports new additions into a local catalog, and periodically
matches open download requests against it.`,
}

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server and background checkers",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer database.CloseStore()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		listScheduler := checker.NewScheduler("list-check",
			app.settings.ListFetchInterval,
			app.listChecker.CheckAllLists)
		requestScheduler := checker.NewScheduler("request-check",
			app.settings.RequestCheckInterval,
			app.requestChecker.CheckAllRequests)

		reconfigure := func() {
			listScheduler.Reconfigure(ctx)
			requestScheduler.Reconfigure(ctx)
		}
		config.WatchConfig(reconfigure)

		listScheduler.Start(ctx)
		requestScheduler.Start(ctx)
		defer listScheduler.Stop()
		defer requestScheduler.Stop()

		srv := server.NewServer(server.Options{
			Store:             database.GlobalStore,
			Registry:          app.registry,
			Importer:          app.importer,
			ListChecker:       app.listChecker,
			RequestChecker:    app.requestChecker,
			Requests:          app.requests,
			Settings:          app.settings,
			OnSettingsChanged: reconfigure,
			RateLimitPerMin:   config.AppConfig.RateLimitPerMinute,
			RateLimitBurst:    config.AppConfig.RateLimitBurst,
		})

		cfg := server.ServerConfig{
			Host:         config.AppConfig.Host,
			Port:         config.AppConfig.Port,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
		if port := cmd.Flag("port").Value.String(); port != "" {
			cfg.Port = port
		}
		if host := cmd.Flag("host").Value.String(); host != "" {
			cfg.Host = host
		}
		if rt := cmd.Flag("read-timeout").Value.String(); rt != "" {
			if d, err := time.ParseDuration(rt); err == nil {
				cfg.ReadTimeout = d
			}
		}
		if wt := cmd.Flag("write-timeout").Value.String(); wt != "" {
			if d, err := time.ParseDuration(wt); err == nil {
				cfg.WriteTimeout = d
			}
		}

		return srv.Start(cfg)
	},
}

// checkCmd runs one list-check cycle and exits.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one list check cycle and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer database.CloseStore()

		app.listChecker.CheckAllLists(cmd.Context())
		status := app.listChecker.GetStatus()
		fmt.Printf("Checked %d lists, %d errors\n", status.ListsChecked, status.ErrorCount)

		if cmd.Flag("requests").Value.String() == "true" {
			app.requestChecker.CheckAllRequests(cmd.Context())
			rs := app.requestChecker.GetStatus()
			fmt.Printf("Checked %d requests, %d fulfilled\n", rs.Checked, rs.Fulfilled)
		}
		return nil
	},
}

type app struct {
	registry       *fetcher.Registry
	importer       *importer.Importer
	listChecker    *checker.ListChecker
	requestChecker *checker.RequestChecker
	requests       *requests.Service
	settings       *settings.Service
}

// buildApp opens the store and wires the services together.
func buildApp() (*app, error) {
	if err := database.InitializeStore(config.AppConfig.DatabasePath); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	store := database.GlobalStore

	settingsSvc := settings.New(store)
	registry := fetcher.NewRegistry(fetcher.RegistryOptions{
		HardcoverToken: settingsSvc.HardcoverToken,
	})
	imp := importer.New(store, registry)

	return &app{
		registry:       registry,
		importer:       imp,
		listChecker:    checker.NewListChecker(store, imp),
		requestChecker: checker.NewRequestChecker(store, settingsSvc),
		requests:       requests.New(store),
		settings:       settingsSvc,
	}, nil
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.bookwatch.yaml)")
	rootCmd.PersistentFlags().StringVar(&databasePath, "db", "", "path to the SQLite database")
	viper.BindPFlag("database_path", rootCmd.PersistentFlags().Lookup("db"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)

	serveCmd.Flags().String("port", "", "port to run the web server on")
	serveCmd.Flags().String("host", "", "host to bind the web server to")
	serveCmd.Flags().String("read-timeout", "", "read timeout (e.g. 15s, 1m)")
	serveCmd.Flags().String("write-timeout", "", "write timeout (e.g. 15s, 1m)")

	checkCmd.Flags().Bool("requests", false, "also run one request check cycle")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".bookwatch")
	}

	viper.SetEnvPrefix("bookwatch")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	config.InitConfig()

	// Ensure database directory exists
	if dir := filepath.Dir(config.AppConfig.DatabasePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Printf("Error creating database directory: %v\n", err)
		}
	}
}
