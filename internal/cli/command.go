package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/neural/internal"
)

// Runner executes the commands
type Runner interface {
	RunGUIMode() error
	TranslateFile(path string) error
	CheckHealth() error
	ShowHistory() error
}

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags, runner Runner) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "neural",
		Short: "Local translation assistant",
		Long: `neural translates text with a local Ollama model or an OpenAI/Gemini backend.

Without a subcommand it opens the translation window, which can watch the
clipboard and translate everything copied to it.

Examples:
  neural                                       # Launch interactive GUI (default)
  neural translate README.md --to Japanese -o README.ja.md
  neural health                                # Check the backend
  neural history --limit 5                     # Show recent translations`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.RunGUIMode()
		},
	}

	setupFlags(rootCmd, flags)

	rootCmd.AddCommand(
		newTranslateCommand(flags, runner),
		newHealthCommand(runner),
		newHistoryCommand(flags, runner),
		newVersionCommand(),
	)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.neural.yaml)")
	cmd.PersistentFlags().StringVar(&flags.Provider, "provider", "", "Translation backend: ollama, openai or gemini (default ollama)")
	cmd.PersistentFlags().StringVar(&flags.URL, "url", "", "Backend base URL (default http://localhost:11434 for ollama)")
	cmd.PersistentFlags().StringVar(&flags.Model, "model", "", "Model name (default qwen2.5:3b for ollama)")

	bindFlagsToViper(cmd.PersistentFlags())
}

func bindFlagsToViper(flagSet *pflag.FlagSet) {
	_ = viper.BindPFlag("backend.provider", flagSet.Lookup("provider"))
	_ = viper.BindPFlag("backend.url", flagSet.Lookup("url"))
	_ = viper.BindPFlag("backend.model", flagSet.Lookup("model"))
}

func newTranslateCommand(flags *Flags, runner Runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate FILE",
		Short: "Translate a markdown document",
		Long: `Translate a whole file, preserving markdown formatting, code blocks and links.
Large documents can take a few minutes with a local model.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.TranslateFile(args[0])
		},
	}

	cmd.Flags().StringVar(&flags.From, "from", flags.From, `Source language (e.g. "English", "Japanese")`)
	cmd.Flags().StringVar(&flags.To, "to", "", `Target language (e.g. "Japanese", "Simplified Chinese")`)
	cmd.Flags().StringVarP(&flags.OutputFile, "output", "o", "", "Output file path")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func newHealthCommand(runner Runner) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the translation backend and list its models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.CheckHealth()
		},
	}
}

func newHistoryCommand(flags *Flags, runner Runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent translations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.ShowHistory()
		},
	}
	cmd.Flags().IntVarP(&flags.Limit, "limit", "n", flags.Limit, "Number of entries to show")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "neural v%s\n", internal.Version)
		},
	}
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	SetDefaults()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".neural" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".neural")
	}

	// Environment variables, e.g. NEURAL_BACKEND_PROVIDER
	viper.SetEnvPrefix("NEURAL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
