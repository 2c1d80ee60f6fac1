package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	envFile   string
	logLevel  string
	logFormat string
	addr      string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pomodoro",
	Short: "Pomodoro task tracker backend",
	Long: `pomodoro serves the task tracker API and page shells.

Storage is SQLite by default (DB_PATH) or PostgreSQL when DATABASE_URL
points at a postgres:// server. REDIS_URL enables the stats cache.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), options{
			envFile:   envFile,
			logLevel:  logLevel,
			logFormat: logFormat,
			addr:      addr,
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pomodoro %s\n", version)
		fmt.Printf("Go version: %s\n", runtime.Version())
		fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "", "log encoding override (json, console)")
	rootCmd.Flags().StringVar(&addr, "addr", "", "listen address override, host:port")

	rootCmd.AddCommand(versionCmd)
}
