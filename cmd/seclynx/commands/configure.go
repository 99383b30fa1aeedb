package commands

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/bl4ck0w1/seclynx/pkg/utils"
)

func NewConfigureCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Manage SecLynx configuration",
		Long: `Manage SecLynx configuration profiles, view current settings,
and initialize configuration files.`,
	}

	cmd.AddCommand(newConfigureInitCommand())
	cmd.AddCommand(newConfigureShowCommand())
	cmd.AddCommand(newConfigureListCommand())
	cmd.AddCommand(newConfigureSetCommand())
	cmd.AddCommand(newConfigureGetCommand())
	return cmd
}

func newConfigureInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init [profile]",
		Short: "Initialize a new configuration profile",
		Long:  `Initialize a new configuration profile with default values (YAML).`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigureInit,
	}
}

func newConfigureShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [profile]",
		Short: "Show current configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigureShow,
	}
	cmd.Flags().StringP("profile", "p", "default", "Configuration profile")
	_ = viper.BindPFlag("configure.profile", cmd.Flags().Lookup("profile"))
	return cmd
}

func newConfigureListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available configuration profiles",
		RunE:  runConfigureList,
	}
}

func newConfigureSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value for the selected profile.
Supports dotted keys (e.g. "api.base_url") and basic type parsing:
- booleans: true/false
- integers/floats: 10, 3.14
- durations (for keys containing timeout|interval|delay): "60s", "5m"`,
		Args: cobra.ExactArgs(2),
		RunE: runConfigureSet,
	}
	cmd.Flags().StringP("profile", "p", "default", "Configuration profile")
	_ = viper.BindPFlag("configure.profile", cmd.Flags().Lookup("profile"))
	return cmd
}

func newConfigureGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE:  runConfigureGet,
	}
	cmd.Flags().StringP("profile", "p", "default", "Configuration profile")
	_ = viper.BindPFlag("configure.profile", cmd.Flags().Lookup("profile"))
	return cmd
}

func runConfigureInit(cmd *cobra.Command, args []string) error {
	profile := "default"
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		profile = strings.TrimSpace(args[0])
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".seclynx")
	if err := utils.EnsureDir(configDir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := filepath.Join(configDir, profile+".yaml")

	if utils.FileExists(configFile) {
		logrus.Warnf("Configuration file already exists: %s", configFile)
		ok, ierr := confirmOverwrite()
		if ierr != nil {
			return ierr
		}
		if !ok {
			logrus.Info("Configuration initialization cancelled")
			return nil
		}
	}

	if err := writeYAMLFile(configFile, getDefaultConfig()); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	logrus.Infof("Configuration initialized: %s", configFile)
	logrus.Info("Edit this file to customize defaults. Run `seclynx configure show -p " + profile + "` to view.")
	return nil
}

func runConfigureShow(cmd *cobra.Command, args []string) error {
	profile := viper.GetString("configure.profile")
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		profile = strings.TrimSpace(args[0])
	}

	if err := loadProfileIntoViper(profile); err != nil {
		return fmt.Errorf("failed to load profile %s: %w", profile, err)
	}

	fmt.Printf("Configuration for profile: %s\n", profile)
	fmt.Println("═══════════════════════════════════════════════════════════════")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "GENERAL SETTINGS:\t")
	fmt.Fprintf(w, "  Log Level:\t%s\n", viper.GetString("log_level"))
	fmt.Fprintf(w, "  Log Format:\t%s\n", viper.GetString("log_format"))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "API SETTINGS:\t")
	fmt.Fprintf(w, "  Base URL:\t%s\n", viper.GetString("api.base_url"))
	fmt.Fprintf(w, "  API ID:\t%s\n", utils.MaskSensitiveData(viper.GetString("api.id")))
	fmt.Fprintf(w, "  API Key:\t%s\n", utils.MaskSensitiveData(viper.GetString("api.key")))
	fmt.Fprintf(w, "  Timeout:\t%s\n", viper.GetString("api.timeout"))
	fmt.Fprintf(w, "  Rate Limit:\t%d requests/second\n", viper.GetInt("api.rate_limit"))
	fmt.Fprintln(w)

	_ = w.Flush()
	return nil
}

func runConfigureList(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get user home directory: %w", err)
	}
	configDir := filepath.Join(home, ".seclynx")

	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		logrus.Info("No configuration profiles found.")
		logrus.Info("Run 'seclynx configure init' to create a default profile.")
		return nil
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.yaml"))
	if err != nil {
		return fmt.Errorf("failed to list configuration files: %w", err)
	}

	if len(files) == 0 {
		logrus.Info("No configuration profiles found.")
		return nil
	}

	fmt.Println("Available configuration profiles:")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	for _, file := range files {
		base := filepath.Base(file)
		fmt.Printf("  • %s\n", strings.TrimSuffix(base, ".yaml"))
	}
	return nil
}

func runConfigureSet(cmd *cobra.Command, args []string) error {
	key := strings.TrimSpace(args[0])
	rawVal := args[1]
	profile := viper.GetString("configure.profile")

	cfg, cfgPath, err := loadConfigFile(profile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	val := parseValueForKey(key, rawVal)
	setNested(cfg, strings.Split(key, "."), val)

	if err := writeYAMLFile(cfgPath, cfg); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	logrus.Infof("Set %s = %v in profile %s", key, val, profile)
	return nil
}

func runConfigureGet(cmd *cobra.Command, args []string) error {
	key := strings.TrimSpace(args[0])
	profile := viper.GetString("configure.profile")

	if err := loadProfileIntoViper(profile); err != nil {
		return fmt.Errorf("failed to load profile %s: %w", profile, err)
	}

	val := viper.Get(key)
	if val == nil {
		fmt.Printf("%s = <nil>\n", key)
		return nil
	}
	fmt.Printf("%s = %v\n", key, val)
	return nil
}

func loadProfileIntoViper(profile string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get user home directory: %w", err)
	}
	cfg := filepath.Join(home, ".seclynx", profile+".yaml")
	if _, err := os.Stat(cfg); os.IsNotExist(err) {
		return fmt.Errorf("profile %s does not exist", profile)
	}
	viper.SetConfigFile(cfg)
	return viper.ReadInConfig()
}

func loadConfigFile(profile string) (map[string]interface{}, string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	configDir := filepath.Join(home, ".seclynx")
	if err := utils.EnsureDir(configDir); err != nil {
		return nil, "", fmt.Errorf("failed to create config directory: %w", err)
	}
	configFile := filepath.Join(configDir, profile+".yaml")

	cfg := map[string]interface{}{}
	if utils.FileExists(configFile) {
		b, rerr := os.ReadFile(configFile)
		if rerr != nil {
			return nil, "", fmt.Errorf("failed to read configuration: %w", rerr)
		}
		if uerr := yaml.Unmarshal(b, &cfg); uerr != nil {
			return nil, "", fmt.Errorf("failed to parse YAML: %w", uerr)
		}
	}
	return cfg, configFile, nil
}

func writeYAMLFile(path string, v interface{}) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(path, out, 0o644)
}

func setNested(dst map[string]interface{}, keys []string, val interface{}) {
	if len(keys) == 0 {
		return
	}
	if len(keys) == 1 {
		dst[keys[0]] = val
		return
	}
	k := keys[0]
	child, ok := dst[k].(map[string]interface{})
	if !ok {
		child = map[string]interface{}{}
	}
	setNested(child, keys[1:], val)
	dst[k] = child
}

func parseValueForKey(key, s string) interface{} {
	trim := strings.TrimSpace(s)

	if b, err := strconv.ParseBool(trim); err == nil {
		return b
	}
	if i, err := strconv.Atoi(trim); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(trim, 64); err == nil {
		return f
	}

	if containsAny(strings.ToLower(key), []string{"timeout", "interval", "delay"}) {
		if d, err := time.ParseDuration(trim); err == nil {
			return d.String()
		}
	}
	return trim
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func getDefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"log_level":  "info",
		"log_format": "text",
		"api": map[string]interface{}{
			"base_url":   "",
			"timeout":    "60s",
			"rate_limit": 10,
		},
		"metrics": map[string]interface{}{
			"addr": "",
		},
	}
}

func confirmOverwrite() (bool, error) {
	fmt.Print("Configuration file already exists. Overwrite? (y/N): ")
	reader := bufio.NewReader(os.Stdin)
	resp, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}
	resp = strings.TrimSpace(resp)
	return resp == "y" || resp == "Y", nil
}
