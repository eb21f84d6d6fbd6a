package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/99thDragon/nyla-sprint-99thDragon/internal/campaign"
	"github.com/99thDragon/nyla-sprint-99thDragon/internal/config"
	"github.com/99thDragon/nyla-sprint-99thDragon/internal/openrouter"
	"github.com/99thDragon/nyla-sprint-99thDragon/internal/prompt"
)

// apiKeyEnv is the only accepted source for the OpenRouter credential. It is
// deliberately not a flag and not a config key.
const apiKeyEnv = "OPENROUTER_API_KEY"

var (
	configFile   string
	eventFlag    string
	dateFlag     string
	toneFlag     string
	modelFlag    string
	outputFlag   string
	dryRunFlag   bool
	showResponse bool
)

// rootCmd is the whole CLI: one forward pass from flags to a saved campaign
// file, with no subcommands.
var rootCmd = &cobra.Command{
	Use:   "campaigngen",
	Short: "Generate fundraising emails and social captions with OpenRouter AI",
	Long: `Generate fundraising emails and social captions using OpenRouter AI.

The OpenRouter API key must be supplied via the OPENROUTER_API_KEY
environment variable.

Examples:
  campaigngen --event "Annual Gala" --date "2024-03-15"
  campaigngen --event "Annual Gala" --tone professional
  campaigngen --event "Annual Gala" --output marketing/campaign.md --show-response`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd)
	},
}

// GetRootCommand returns the root command with the version set. Called from
// main with the build version string.
func GetRootCommand(v string) *cobra.Command {
	rootCmd.Version = v
	return rootCmd
}

// initConfig loads config files and environment overrides before the command
// runs. Errors here are fatal: a broken config should never reach the API.
func initConfig() {
	if err := config.Init(configFile); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.Flags()
	flags.StringVar(&configFile, "config", "", "config file (default is $HOME/.campaigngen.yml)")
	flags.StringVar(&eventFlag, "event", "", `name of the event (e.g. "Annual Charity Ball")`)
	flags.StringVar(&dateFlag, "date", "", "date of the event (default: today, YYYY-MM-DD)")
	flags.StringVar(&toneFlag, "tone", string(prompt.ToneUpbeat),
		fmt.Sprintf("tone of the writing (%s)", prompt.ToneList()))
	flags.StringVarP(&modelFlag, "model", "m", openrouter.DefaultModel, "OpenRouter model to use")
	flags.StringVarP(&outputFlag, "output", "o", "out/campaign.md", "output file path")
	flags.BoolVar(&dryRunFlag, "dry-run", false, "print the prompt and exit without making an API call")
	flags.BoolVar(&showResponse, "show-response", false, "print the generated content after saving")

	_ = rootCmd.MarkFlagRequired("event")

	// Config-file defaults for these keys; flags win via viper precedence.
	_ = viper.BindPFlag("tone", flags.Lookup("tone"))
	_ = viper.BindPFlag("model", flags.Lookup("model"))
	_ = viper.BindPFlag("output", flags.Lookup("output"))
}

// runGenerate maps the parsed flags into one generator pass. Validation
// failures surface before any network or filesystem activity.
func runGenerate(cmd *cobra.Command) error {
	tone, err := prompt.ParseTone(viper.GetString("tone"))
	if err != nil {
		return err
	}

	date := dateFlag
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	// Validation is done; runtime failures should not dump usage text.
	cmd.SilenceUsage = true

	opts := campaign.Options{
		Event:        eventFlag,
		Date:         date,
		Tone:         tone,
		Model:        viper.GetString("model"),
		OutputPath:   viper.GetString("output"),
		DryRun:       dryRunFlag,
		ShowResponse: showResponse,
	}

	if !opts.DryRun && os.Getenv(apiKeyEnv) == "" {
		return fmt.Errorf("%s environment variable is not set", apiKeyEnv)
	}

	client := openrouter.NewClient(os.Getenv(apiKeyEnv))
	gen := campaign.New(client, cmd.OutOrStdout(), cmd.ErrOrStderr())
	return gen.Run(cmd.Context(), opts)
}
