package cli

import (
	"context"
	"errors"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/osforge/osforge/internal/utils"
)

const (
	applicationNameConstant                 = "osforge"
	applicationShortDescriptionConstant     = "Command-line interface for osforge build utilities"
	applicationLongDescriptionConstant      = "osforge ships the build helpers of the OS image assembler: OSTree commit import, content digests, and platform detection."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format (console or structured)."
	logLevelConfigKeyConstant               = "log_level"
	logFormatConfigKeyConstant              = "log_format"
	importRepositoryConfigKeyConstant       = "import.repository"
	environmentPrefixConstant               = "OSFORGE"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	defaultImportRepositoryPathConstant     = "tmp/repo"
	defaultConfigurationSearchPathConstant  = "."
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	loggerNotInitializedMessageConstant     = "logger not initialized"
)

// ImportConfiguration captures persisted defaults for the import command.
type ImportConfiguration struct {
	Repository string `mapstructure:"repository"`
}

// ApplicationConfiguration describes the persisted configuration for the CLI.
type ApplicationConfiguration struct {
	LogLevel  string              `mapstructure:"log_level"`
	LogFormat string              `mapstructure:"log_format"`
	Import    ImportConfiguration `mapstructure:"import"`
}

// CLIApplication wires the Cobra root command, configuration loader, and
// structured logger.
type CLIApplication struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	logger                *zap.Logger
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlagValue    string
}

// Execute runs the default osforge command hierarchy.
func Execute() error {
	return NewCLIApplication().Execute()
}

// NewCLIApplication assembles the root command and its subcommands.
func NewCLIApplication() *CLIApplication {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant},
	)

	cliApplication := &CLIApplication{
		configurationLoader: configurationLoader,
		loggerFactory:       utils.NewLoggerFactory(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return cliApplication.initializeConfiguration(command)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&cliApplication.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&cliApplication.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&cliApplication.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)

	cobraCommand.AddCommand(newImportCommand(cliApplication))
	cobraCommand.AddCommand(newDigestCommand(cliApplication))
	cobraCommand.AddCommand(newBasearchCommand(cliApplication))

	cliApplication.rootCommand = cobraCommand

	return cliApplication
}

// Execute runs the configured Cobra command hierarchy and ensures logger
// flushing.
func (application *CLIApplication) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Logger exposes the initialized logger to subcommands.
func (application *CLIApplication) Logger() (*zap.Logger, error) {
	if application.logger == nil {
		return nil, errors.New(loggerNotInitializedMessageConstant)
	}
	return application.logger, nil
}

// ImportRepositoryPath exposes the configured default repository path.
func (application *CLIApplication) ImportRepositoryPath() string {
	return application.configuration.Import.Repository
}

func (application *CLIApplication) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		logLevelConfigKeyConstant:         string(utils.LogLevelInfo),
		logFormatConfigKeyConstant:        string(utils.LogFormatConsole),
		importRepositoryConfigKeyConstant: defaultImportRepositoryPathConstant,
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if command.Root().PersistentFlags().Changed(logLevelFlagNameConstant) {
		application.configuration.LogLevel = application.logLevelFlagValue
	}
	if command.Root().PersistentFlags().Changed(logFormatFlagNameConstant) {
		application.configuration.LogFormat = application.logFormatFlagValue
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(utils.LoggerSettings{
		Level:  utils.LogLevel(application.configuration.LogLevel),
		Format: utils.LogFormat(application.configuration.LogFormat),
	})
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.LogLevel),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	return nil
}

func (application *CLIApplication) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}
