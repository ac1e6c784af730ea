package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/voxlate/internal"
	"codeberg.org/snonux/voxlate/internal/credentials"
)

// DefaultOutputDir is where the translation and audio are written unless configured
func DefaultOutputDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "voxlate")
}

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "voxlate [text]",
		Short: "Translate English text or documents and speak the result",
		Long: `voxlate translates English text into another language with Gemini
and turns the translation into MP3 speech.

Input can be typed, passed on the command line, or extracted from a PDF,
TXT, CSV, XLS or XLSX document.

Examples:
  voxlate                                  # Launch interactive GUI (default)
  voxlate "Hello world." --lang French     # Translate and speak via CLI
  voxlate --file report.pdf --lang ja      # Translate a document
  voxlate serve --addr :8080               # Serve the web interface`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

// CreateServeCommand creates the serve subcommand
func CreateServeCommand(flags *Flags) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the translation web interface",
		Args:  cobra.NoArgs,
	}

	serveCmd.Flags().StringVar(&flags.ServeAddr, "addr", flags.ServeAddr, "Listen address")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	return serveCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.voxlate.yaml)")
	cmd.PersistentFlags().StringVarP(&flags.OutputDir, "output", "o", DefaultOutputDir(), "Output directory for translation.txt and translated_audio.mp3")
	cmd.PersistentFlags().StringVarP(&flags.Language, "lang", "l", flags.Language, "Target language name or code (see --list-languages)")
	cmd.PersistentFlags().IntVar(&flags.MaxChars, "max-chars", flags.MaxChars, "Maximum characters per translation request")
	cmd.PersistentFlags().StringVar(&flags.SecretsFile, "secrets", flags.SecretsFile, "Secrets file (TOML) checked first for API keys")

	// Local flags
	cmd.Flags().StringVarP(&flags.InputFile, "file", "f", "", "Translate a PDF, TXT, CSV, XLS or XLSX file")
	cmd.Flags().BoolVar(&flags.ListLanguages, "list-languages", false, "List supported target languages")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List language and speech models available for the configured API keys")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move the last translation and audio into a timestamped archive directory")
	cmd.Flags().BoolVar(&flags.NoAutoPlay, "no-auto-play", false, "Disable automatic audio playback in GUI mode (auto-play is enabled by default)")

	// Language model flags
	cmd.PersistentFlags().StringVar(&flags.ModelProvider, "model-provider", flags.ModelProvider, "Translation model provider: gemini or openai")
	cmd.PersistentFlags().StringVar(&flags.Model, "model", flags.Model, "Translation model name")
	cmd.PersistentFlags().Float64Var(&flags.Temperature, "temperature", flags.Temperature, "Sampling temperature for translation")
	cmd.PersistentFlags().StringVar(&flags.VertexProject, "vertex-project", "", "Use Vertex AI in this Google Cloud project instead of an API key")
	cmd.PersistentFlags().StringVar(&flags.VertexLocation, "vertex-location", flags.VertexLocation, "Vertex AI location")

	// Speech flags
	cmd.PersistentFlags().StringVar(&flags.AudioProvider, "audio-provider", flags.AudioProvider, "Speech provider: google or openai")
	cmd.PersistentFlags().BoolVar(&flags.EnableCache, "cache", false, "Cache synthesized audio on disk")
	cmd.PersistentFlags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	cmd.PersistentFlags().StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI voice: alloy, ash, ballad, coral, echo, fable, onyx, nova, sage, shimmer, verse")
	cmd.PersistentFlags().Float64Var(&flags.OpenAISpeed, "openai-speed", flags.OpenAISpeed, "OpenAI speech speed (0.25 to 4.0)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	flag := func(name string) *pflag.Flag {
		if f := cmd.PersistentFlags().Lookup(name); f != nil {
			return f
		}
		return cmd.Flags().Lookup(name)
	}

	viper.BindPFlag("output.directory", flag("output"))
	viper.BindPFlag("secrets.file", flag("secrets"))
	viper.BindPFlag("translation.language", flag("lang"))
	viper.BindPFlag("translation.max_chars", flag("max-chars"))
	viper.BindPFlag("translation.provider", flag("model-provider"))
	viper.BindPFlag("translation.model", flag("model"))
	viper.BindPFlag("translation.temperature", flag("temperature"))
	viper.BindPFlag("translation.vertex_project", flag("vertex-project"))
	viper.BindPFlag("translation.vertex_location", flag("vertex-location"))
	viper.BindPFlag("audio.provider", flag("audio-provider"))
	viper.BindPFlag("audio.enable_cache", flag("cache"))
	viper.BindPFlag("audio.openai_model", flag("openai-model"))
	viper.BindPFlag("audio.openai_voice", flag("openai-voice"))
	viper.BindPFlag("audio.openai_speed", flag("openai-speed"))
	viper.BindPFlag("gui.no_auto_play", flag("no-auto-play"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
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

		// Search config in home directory with name ".voxlate" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".voxlate")
	}

	// Environment variables
	viper.SetEnvPrefix("VOXLATE")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// SecretsFile returns the configured secrets file path
func SecretsFile() string {
	if f := viper.GetString("secrets.file"); f != "" {
		return f
	}
	return credentials.DefaultSecretsFile
}

// GetGeminiKey retrieves the Gemini API key from the secrets file,
// environment, .env file or config, in that order
func GetGeminiKey() (string, error) {
	return credentials.NewDefaultResolver(credentials.GeminiKey, SecretsFile()).Resolve()
}

// GetOpenAIKey retrieves the OpenAI API key from the same sources
func GetOpenAIKey() (string, error) {
	return credentials.NewDefaultResolver(credentials.OpenAIKey, SecretsFile()).Resolve()
}
