// Package config wires viper to the campaigngen configuration surface: an
// optional YAML/JSON config file with environment substitution, plus
// CAMPAIGNGEN_* environment overrides. The OpenRouter credential is
// deliberately outside this package; it is read from OPENROUTER_API_KEY only.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/99thDragon/nyla-sprint-99thDragon/internal/openrouter"
	"github.com/99thDragon/nyla-sprint-99thDragon/internal/prompt"
)

const configName = ".campaigngen"

// fileDefaults are the keys a config file may set, used to render the starter
// config on first run.
type fileDefaults struct {
	Model  string `yaml:"model"`
	Tone   string `yaml:"tone"`
	Output string `yaml:"output"`
}

// Init loads configuration into viper. An explicit path wins; otherwise
// .campaigngen.{yml,json} is searched in the current directory, then the home
// directory. A commented starter config is created in the home directory when
// none exists anywhere.
func Init(configFile string) error {
	if configFile != "" {
		return loadFile(configFile)
	}

	if err := ensureDefaultConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create default config file: %v\n", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("error finding home directory: %w", err)
	}

	viper.AddConfigPath(".")
	viper.AddConfigPath(home)
	viper.SetConfigName(configName)
	if err := viper.ReadInConfig(); err == nil {
		if err := loadFile(viper.ConfigFileUsed()); err != nil {
			return err
		}
	}

	viper.SetEnvPrefix("CAMPAIGNGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	return nil
}

// loadFile reads a config file, expands ${env://...} placeholders, and hands
// the result to viper.
func loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	content := string(raw)
	if HasEnvPlaceholders(content) {
		content, err = ExpandEnv(content)
		if err != nil {
			return fmt.Errorf("error reading config file '%s': %w", path, err)
		}
	}

	configType := "yaml"
	if strings.HasSuffix(path, ".json") {
		configType = "json"
	}
	viper.SetConfigType(configType)
	if err := viper.ReadConfig(strings.NewReader(content)); err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}
	return nil
}

// ensureDefaultConfig writes a starter config to the home directory when no
// config file exists in either search location.
func ensureDefaultConfig() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	candidates := []string{
		configName + ".yml",
		configName + ".json",
		filepath.Join(home, configName+".yml"),
		filepath.Join(home, configName+".json"),
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return nil
		}
	}

	body, err := yaml.Marshal(fileDefaults{
		Model:  openrouter.DefaultModel,
		Tone:   string(prompt.ToneUpbeat),
		Output: "out/campaign.md",
	})
	if err != nil {
		return err
	}

	header := "# campaigngen configuration. Flags override these values.\n" +
		"# The API key is never read from this file; set OPENROUTER_API_KEY instead.\n"
	return os.WriteFile(filepath.Join(home, configName+".yml"), append([]byte(header), body...), 0o644)
}
