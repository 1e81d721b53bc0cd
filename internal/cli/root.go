// Package cli implements the supactl command line client: login/logout,
// table queries and storage operations against a configured project.
//
// Configuration precedence: flags > SUPACTL_* environment variables >
// config file (supactl.yaml in the user config dir). The library itself
// keeps no persisted state; supactl stores the session between
// invocations in the user config dir via the facade's session listener.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/supago-community/supago"
	"github.com/supago-community/supago/auth"
	"github.com/supago-community/supago/logging"
)

var rootCmd = &cobra.Command{
	Use:           "supactl",
	Short:         "Command line client for a hosted Supabase-style backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("url", "", "project base URL (e.g. https://project.example.co)")
	rootCmd.PersistentFlags().String("key", "", "project API key")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log requests to stderr")
	_ = viper.BindPFlag("url", rootCmd.PersistentFlags().Lookup("url"))
	_ = viper.BindPFlag("key", rootCmd.PersistentFlags().Lookup("key"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newQueryCmd(),
		newLsCmd(),
		newGetCmd(),
		newPutCmd(),
		newRmCmd(),
		newBucketsCmd(),
	)
}

func newLogger() logging.Logger {
	if !viper.GetBool("verbose") {
		return logging.NewNopLogger()
	}
	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()
	return logging.NewZerologLogger(zl)
}

// newClient wires the facade from config, seeds it with the persisted
// session (if any) and keeps the session file current through the
// listener.
func newClient() (*supago.Client, error) {
	log := newLogger()
	opts := []supago.Option{
		supago.WithLogger(log),
		supago.WithSessionListener(func(s auth.Session) {
			if err := saveSession(s); err != nil {
				fmt.Fprintln(os.Stderr, "warning: could not persist session:", err)
			}
		}),
	}
	if s, err := loadSession(); err == nil && s != nil {
		opts = append(opts, supago.WithSession(*s))
	}
	return supago.New(viper.GetString("url"), viper.GetString("key"), opts...)
}
