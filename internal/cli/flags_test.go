package cli

import (
	"reflect"
	"testing"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	// Test default values
	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Language", flags.Language, "Spanish"},
		{"MaxChars", flags.MaxChars, 4500},
		{"SecretsFile", flags.SecretsFile, ".streamlit/secrets.toml"},
		{"ModelProvider", flags.ModelProvider, "gemini"},
		{"Model", flags.Model, "gemini-2.0-flash"},
		{"VertexLocation", flags.VertexLocation, "us-central1"},
		{"AudioProvider", flags.AudioProvider, "google"},
		{"OpenAIModel", flags.OpenAIModel, "gpt-4o-mini-tts"},
		{"OpenAIVoice", flags.OpenAIVoice, "alloy"},
		{"OpenAISpeed", flags.OpenAISpeed, 1.0},
		{"ServeAddr", flags.ServeAddr, ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	if flags.Temperature < 0.19 || flags.Temperature > 0.21 {
		t.Errorf("Temperature = %v, want 0.2", flags.Temperature)
	}

	// Test boolean defaults (should be false)
	boolTests := []struct {
		name  string
		value bool
	}{
		{"ListLanguages", flags.ListLanguages},
		{"ListModels", flags.ListModels},
		{"NoAutoPlay", flags.NoAutoPlay},
		{"Archive", flags.Archive},
		{"EnableCache", flags.EnableCache},
	}

	for _, tt := range boolTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != false {
				t.Errorf("%s = %v, want false", tt.name, tt.value)
			}
		})
	}

	// Test string defaults (should be empty)
	stringTests := []struct {
		name  string
		value string
	}{
		{"CfgFile", flags.CfgFile},
		{"OutputDir", flags.OutputDir},
		{"InputFile", flags.InputFile},
		{"VertexProject", flags.VertexProject},
	}

	for _, tt := range stringTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Errorf("%s = %q, want empty", tt.name, tt.value)
			}
		})
	}
}
