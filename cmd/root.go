package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	logFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dcforum",
	Short: "Manage discord forum channel tags.",
	Long: `Decode forum channel tag documents served by the discord API and keep a
local registry of them. Tag documents are tolerant-decoded: unknown fields are
traced and skipped, legacy emoji_id encodings are normalized.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.dcforum.yaml)")
	rootCmd.PersistentFlags().StringVarP(&logFile, "log", "l", "dcforum.log", "log file (default is dcforum.log)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".dcforum" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".dcforum")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else {
		fmt.Println(fmt.Errorf("read config: %w", err))
	}

	initLogger()
}

func initLogger() {
	fileLogger, err := os.OpenFile(
		logFile,
		os.O_APPEND|os.O_CREATE|os.O_WRONLY,
		0664,
	)
	if err != nil {
		log.Panic().Err(err).Str("file", logFile).Msg("open log file")
	}
	writers := zerolog.MultiLevelWriter(zerolog.ConsoleWriter{Out: os.Stderr}, fileLogger)

	loglevel := zerolog.DebugLevel
	switch viper.GetString("server.loglevel") {
	case "trace":
		loglevel = zerolog.TraceLevel
	case "debug":
		loglevel = zerolog.DebugLevel
	case "info":
		loglevel = zerolog.InfoLevel
	case "error":
		loglevel = zerolog.ErrorLevel
	}

	log.Logger = zerolog.New(writers).Level(loglevel).With().Timestamp().Logger()
}
