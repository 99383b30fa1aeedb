package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bl4ck0w1/seclynx/cmd/seclynx/commands"
	"github.com/bl4ck0w1/seclynx/pkg/utils"
)

var (
	version   = "1.0.0"
	commit    = "unknown"
	buildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:     "seclynx",
	Short:   "SecLynx - Application Security Findings Gateway",
	Long:    "SecLynx exposes a hosted application-security platform (findings, scans, SCA, policy, sandboxes) as MCP tools and direct CLI commands.",
	Version: version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := initLogging(cmd); err != nil {
			return err
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.seclynx/config.yaml)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().String("log-file", "", "log file path")
	rootCmd.PersistentFlags().String("api-base", "", "platform API base URL")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag("api.base_url", rootCmd.PersistentFlags().Lookup("api-base"))

	rootCmd.AddCommand(commands.NewServeCommand(version))
	rootCmd.AddCommand(commands.NewFindingsCommand())
	rootCmd.AddCommand(commands.NewAppsCommand())
	rootCmd.AddCommand(commands.NewSCACommand())
	rootCmd.AddCommand(commands.NewScansCommand())
	rootCmd.AddCommand(commands.NewPolicyCommand())
	rootCmd.AddCommand(commands.NewSandboxesCommand())
	rootCmd.AddCommand(commands.NewConfigureCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, buildDate))

	rootCmd.InitDefaultCompletionCmd()
	rootCmd.SetVersionTemplate(fmt.Sprintf("SecLynx %s (commit %s, built %s)\n", version, commit, buildDate))
}

func initConfig() error {
	// .env is optional; real deployments set SECLYNX_API_ID/SECLYNX_API_KEY
	// in the environment directly.
	_ = godotenv.Load()

	setDefaults()
	viper.SetEnvPrefix("SECLYNX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("get home dir: %w", err)
		}
		viper.AddConfigPath(filepath.Join(home, ".seclynx"))
		viper.AddConfigPath("/etc/seclynx/")
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			logrus.Warnf("Failed reading config file: %v", err)
		}
	} else {
		logrus.Debugf("Using config file: %s", viper.ConfigFileUsed())
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", "text")
	viper.SetDefault("api.base_url", "")
	viper.SetDefault("api.timeout", "60s")
	viper.SetDefault("api.rate_limit", 10)
	viper.SetDefault("metrics.addr", "")
}

func initLogging(cmd *cobra.Command) error {
	logConfig := utils.LogConfig{
		Level:         viper.GetString("log_level"),
		Format:        viper.GetString("log_format"),
		FileLocation:  viper.GetString("log_file"),
		EnableConsole: true,
	}

	// The MCP server owns stdout for protocol framing; console logging
	// must go to stderr there.
	if cmd.Name() == "serve" {
		logConfig.ConsoleStream = os.Stderr
	}

	logger, err := utils.NewLogger(logConfig, "seclynx", version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize structured logger, falling back: %v\n", err)
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logrus.SetLevel(logrus.InfoLevel)
		return nil
	}

	logrus.SetOutput(logger.Out)
	logrus.SetLevel(logger.Level)
	logrus.SetFormatter(logger.Formatter)
	logrus.AddHook(&utils.ServiceHook{Service: "seclynx", Version: version, Hostname: utils.Hostname()})
	return nil
}

func main() {
	startTime := time.Now()
	Execute()
	if strings.EqualFold(viper.GetString("log_level"), "debug") {
		logrus.Debugf("Execution completed in %s", utils.HumanizeDuration(time.Since(startTime)))
	}
}
