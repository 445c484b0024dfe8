package cmd

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/radiofrance/maestro-allure/internal/logger"
	"github.com/radiofrance/maestro-allure/pkg/enrich"
)

const (
	defaultResultsDir = "allure-results"
	defaultFlowsDir   = ".maestro/flows"
	defaultLogLevel   = "info"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use: "maestro-allure",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	Short: "Enrich Maestro JUnit reports into Allure results with flow steps",
	Long: `maestro-allure reads the JUnit XML produced by a Maestro regression run,
rebuilds the executed UI steps from the flow files, and writes one enriched
Allure result per test case (steps, failure details, failure screenshot).
The source XML is removed so "allure generate" only sees enriched results.

Running maestro-allure without arguments enriches the default report set.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, _ []string) {
		// Bare invocation behaves like the enrich command with defaults.
		bindPFlagsSnakeCase(cmd.Flags())

		opts := enrich.Opts{}
		hydrateOptsFromViper(&opts)

		if err := enrich.Run(opts); err != nil {
			logger.Fatalf("Enrichment failed: %v", err)
		}
	},
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	// Set logger level from flags as early as possible, then load config, then finalize from Viper
	cobra.OnInitialize(preInitLogLevelFromFlags, initConfig, initLogLevel)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.config/.maestro-allure.yaml)")
	rootCmd.PersistentFlags().StringP("log-level", "l", defaultLogLevel,
		`Log level. Can be any standard log-level ("info", "debug", etc...)`)

	err := viper.BindPFlags(rootCmd.PersistentFlags())
	if err != nil {
		cobra.CheckErr(err)
	}

	rootCmd.AddCommand(enrichCommand())
	rootCmd.AddCommand(versionCommand())
}

func initConfig() {
	viper.SetConfigType("yaml")

	if cfgFile != "" {
		// Use config file from the flag.
		setConfigFile(cfgFile)
	} else if val := os.Getenv("MAESTRO_ALLURE_CONFIG"); val != "" {
		// Use config file from the env variable.
		setConfigFile(val)
	} else {
		workingDir, err := os.Getwd()
		cobra.CheckErr(err)

		// Add $HOME/.config and current directory as paths for Viper to search for the config file in.
		homeDir, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(path.Join(homeDir, ".config"))
		viper.AddConfigPath(workingDir)

		// Search config file with name ".maestro-allure.yaml" or ".maestro-allure.yml".
		viper.SetConfigName(".maestro-allure")
	}

	// Set defaults for config values that have no flag bound to them.
	viper.SetDefault("results_dir", defaultResultsDir)
	viper.SetDefault("flows_dir", defaultFlowsDir)

	// Env vars starting with the MAESTRO_ALLURE_ prefix can override any configuration.
	// e.g. MAESTRO_ALLURE_LOG_LEVEL, MAESTRO_ALLURE_RESULTS_DIR, etc...
	viper.SetEnvPrefix("maestro_allure")
	// Allows to override any sub-level in file config.
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// Read in environment variables that match.
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	err := viper.ReadInConfig()
	if err != nil {
		// Non-blocking, the tool runs fine on defaults alone.
		logger.Debugf("%s", err)
	} else {
		logger.Infof("Using config file: %s", viper.ConfigFileUsed())
	}
}

func initLogLevel() {
	logLevel := viper.GetString("log_level")
	logger.SetLevel(&logLevel)
}

// preInitLogLevelFromFlags sets the log level from Cobra flags or env before config/env are loaded by Viper,
// so that early logs (like config not found) respect user-provided preference.
// Precedence respected here: flag > env (MAESTRO_ALLURE_LOG_LEVEL) > config (handled later in initLogLevel via Viper).
func preInitLogLevelFromFlags() {
	if rootCmd == nil {
		return
	}

	flag := rootCmd.PersistentFlags().Lookup("log-level")
	if flag != nil && flag.Changed {
		val, err := rootCmd.PersistentFlags().GetString("log-level")
		if err == nil {
			logger.SetLevel(&val)
			return
		}
	}

	if val, ok := os.LookupEnv("MAESTRO_ALLURE_LOG_LEVEL"); ok && val != "" {
		logger.SetLevel(&val)
	}
}

func setConfigFile(name string) {
	_, err := os.Stat(name)
	if err != nil {
		cobra.CheckErr(fmt.Errorf("config file %q not found", name))
	}

	viper.SetConfigFile(name)
}

// hydrateOptsFromViper copies all the viper values into our config struct.
// The mapping between viper identifiers and struct field names
// is ensured by `mapstructure` struct tags.
func hydrateOptsFromViper(opts any) {
	_ = viper.Unmarshal(opts)
}

// bindPFlagsSnakeCase binds the flags with viper values. The identifier of the viper value
// is the name of the flag with dashes replaced by underscores. This is required so we can
// retrieve values from viper with the same behaviour with config coming from files
// (my_config: "value") or from flags (--my-config=value).
func bindPFlagsSnakeCase(flags *pflag.FlagSet) {
	flags.VisitAll(func(flag *pflag.Flag) {
		_ = viper.BindPFlag(strings.ReplaceAll(flag.Name, "-", "_"), flag)
	})
}
