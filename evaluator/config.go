package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	evaluation "github.com/next-exp/tpot_eval/pkg"
)

const envPrefix = "TPOT_"

// LoadConfiguration layers, from low to high precedence, the defaults, the
// configuration file (JSON, or YAML by extension) and TPOT_* variables.
func LoadConfiguration(filename string) (evaluation.Configuration, error) {
	config := evaluation.DefaultConfiguration()
	k := koanf.New(".")

	if filename != "" {
		if err := k.Load(file.Provider(filename), parserFor(filename)); err != nil {
			return config, fmt.Errorf("error loading %s: %w", filename, err)
		}
	}

	// TPOT_FILE_IN -> file_in
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return config, fmt.Errorf("error loading environment: %w", err)
	}

	if err := k.UnmarshalWithConf("", &config, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return config, fmt.Errorf("error decoding configuration: %w", err)
	}
	if err := validateConfiguration(config); err != nil {
		return config, err
	}
	return config, nil
}

func parserFor(filename string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	}
	return json.Parser()
}

func validateConfiguration(config evaluation.Configuration) error {
	var errs []error
	if config.FileIn == "" {
		errs = append(errs, errors.New("file_in must not be empty"))
	}
	if config.WriteData && config.FileOut == "" {
		errs = append(errs, errors.New("file_out must not be empty when write_data is set"))
	}
	if config.MaxChannelPerFee <= 0 || config.MaxChannelPerFee > evaluation.ChannelsPerFee {
		errs = append(errs, fmt.Errorf("max_channel_per_fee must be in [1, %d]", evaluation.ChannelsPerFee))
	}
	if config.CompressionLevel < 0 || config.CompressionLevel > 9 {
		errs = append(errs, errors.New("compression_level must be in [0, 9]"))
	}
	if config.SampleMin >= config.SampleMax {
		errs = append(errs, errors.New("sample_min must be lower than sample_max"))
	}
	return errors.Join(errs...)
}

func printConfiguration(config evaluation.Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("File in: %s", config.FileIn), "config")
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("Metrics file: %s", config.MetricsFile), "config")
	logger.Info(fmt.Sprintf("Run number: %d", config.RunNumber), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("Packets: %v", config.Packets()), "config")
	logger.Info(fmt.Sprintf("Eval taggers: %t", config.EvalTaggers), "config")
	logger.Info(fmt.Sprintf("Eval samples: %t", config.EvalSamples), "config")
	logger.Info(fmt.Sprintf("Eval waveforms: %t", config.EvalWaveforms), "config")
	logger.Info(fmt.Sprintf("Match epsilon: %d", config.MatchEpsilon), "config")
	logger.Info(fmt.Sprintf("Signal: min_adc %.1f samples [%d, %d) n_sigma %.1f",
		config.MinAdc, config.SampleMin, config.SampleMax, config.NSigma), "config")
	logger.Info(fmt.Sprintf("Skip: %d", config.Skip), "config")
	logger.Info(fmt.Sprintf("Max events: %d", config.MaxEvents), "config")
	logger.Info(fmt.Sprintf("Write data: %t", config.WriteData), "config")
	logger.Info(fmt.Sprintf("Compression level: %d", config.CompressionLevel), "config")
}
