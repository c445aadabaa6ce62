package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/dayfold/dayfold/internal/profile"
	"github.com/dayfold/dayfold/internal/version"
	"github.com/dayfold/dayfold/server"
	"github.com/dayfold/dayfold/server/auth"
	"github.com/dayfold/dayfold/server/runner/reminder"
	"github.com/dayfold/dayfold/store"
	"github.com/dayfold/dayfold/store/db"
)

const greetingBanner = `dayfold - a calendar that understands "next monday at 10am"`

var (
	rootCmd = &cobra.Command{
		Use:   "dayfold",
		Short: "A personal calendar service with natural date/time resolution",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			instanceProfile := loadProfile()
			if err := instanceProfile.Validate(); err != nil {
				return err
			}
			setupLogger(instanceProfile)

			dbDriver, err := db.NewDBDriver(instanceProfile)
			if err != nil {
				return err
			}
			storeInstance := store.New(dbDriver, instanceProfile)

			s, err := server.NewServer(ctx, instanceProfile, storeInstance)
			if err != nil {
				return err
			}

			fmt.Println(greetingBanner)
			slog.Info("dayfold starting",
				slog.String("version", instanceProfile.Version),
				slog.String("mode", instanceProfile.Mode),
				slog.String("driver", instanceProfile.Driver))

			g, gctx := errgroup.WithContext(ctx)
			g.Go(s.Start)

			var reminderRunner *reminder.Runner
			if instanceProfile.ReminderEnabled {
				window, err := time.ParseDuration(instanceProfile.ReminderWindow)
				if err != nil {
					return fmt.Errorf("invalid reminder window %q: %w", instanceProfile.ReminderWindow, err)
				}
				reminderRunner = reminder.NewRunner(storeInstance, reminder.LogNotifier{}, instanceProfile.ReminderSchedule, window)
				if err := reminderRunner.Start(gctx); err != nil {
					return err
				}
			}

			<-gctx.Done()
			if reminderRunner != nil {
				reminderRunner.Stop()
			}
			s.Shutdown()
			return g.Wait()
		},
	}

	tokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			instanceProfile := loadProfile()
			if instanceProfile.Secret == "" {
				return fmt.Errorf("DAYFOLD_SECRET must be set to mint tokens")
			}
			userID, err := cmd.Flags().GetInt64("user")
			if err != nil {
				return err
			}
			token, err := auth.GenerateAccessToken(userID, time.Now().Add(auth.AccessTokenDuration), []byte(instanceProfile.Secret))
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(version.GetCurrentVersion(viper.GetString("mode")))
		},
	}
)

func loadProfile() *profile.Profile {
	p := &profile.Profile{
		Mode:   viper.GetString("mode"),
		Addr:   viper.GetString("addr"),
		Port:   viper.GetInt("port"),
		Data:   viper.GetString("data"),
		Driver: viper.GetString("driver"),
		DSN:    viper.GetString("dsn"),
	}
	p.FromEnv()
	return p
}

func setupLogger(p *profile.Profile) {
	level := slog.LevelInfo
	if p.IsDev() {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func init() {
	viper.SetDefault("mode", "demo")
	viper.SetDefault("addr", "")
	viper.SetDefault("port", 8230)
	viper.SetDefault("data", ".")
	viper.SetDefault("driver", "sqlite")

	rootCmd.PersistentFlags().String("mode", "demo", `mode of the server, can be "prod", "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of the server")
	rootCmd.PersistentFlags().Int("port", 8230, "port of the server")
	rootCmd.PersistentFlags().String("data", ".", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", "database driver")
	rootCmd.PersistentFlags().String("dsn", "", "database source name (aka. DSN)")

	for _, flag := range []string{"mode", "addr", "port", "data", "driver", "dsn"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("dayfold")
	viper.AutomaticEnv()

	tokenCmd.Flags().Int64("user", 0, "user ID the token is issued for")
	_ = tokenCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("failed to run dayfold", slog.Any("error", err))
		os.Exit(1)
	}
}
