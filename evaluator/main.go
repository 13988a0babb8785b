package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	evaluation "github.com/next-exp/tpot_eval/pkg"
)

var (
	logger         Logger
	VerbosityLevel int
)

func init() {
	logger = newLogger(os.Stdout, os.Stderr)
}

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	flag.Parse()

	if err := run(*configFilename); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func run(configFilename string) error {
	configuration, err := LoadConfiguration(configFilename)
	if err != nil {
		return fmt.Errorf("Error reading configuration: %w", err)
	}
	evaluation.SetConfiguration(configuration)
	evaluation.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading configuration file: %s", configFilename)
		logger.Info(message, "main")
		printConfiguration(configuration, logger)
	}

	session := uuid.NewString()
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Session: %s", session)
		logger.Info(message, "main")
	}

	mapping, calibration, err := loadConditions(configuration)
	if err != nil {
		return err
	}

	reader, err := OpenFileReader(configuration.FileIn, configuration)
	if err != nil {
		return err
	}
	defer reader.Close()

	var writer *evaluation.Writer
	var eventWriter evaluation.EventWriter
	if configuration.WriteData {
		writer, err = evaluation.NewWriter(configuration.FileOut)
		if err != nil {
			return fmt.Errorf("Error creating output file: %w", err)
		}
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error(err.Error())
			}
		}()
		eventWriter = writer
	}

	metrics := evaluation.NewMetrics()
	engine := evaluation.NewEngine(configuration, calibration, mapping, evaluation.WithMetrics(metrics))

	start := time.Now()
	processed, err := engine.ProcessEvents(reader, eventWriter)
	if err != nil {
		return err
	}
	engine.End()

	duration := time.Since(start)
	message := fmt.Sprintf("Events processed: %d in %d ms", processed, duration.Milliseconds())
	logger.Info(message, "main")

	if writer != nil {
		if err := writer.WriteBcoCounts(engine.BcoCounts()); err != nil {
			return err
		}
		if err := writer.WriteRunInfo(configuration.RunNumber, session, reader.Digest()); err != nil {
			return err
		}
	}

	if configuration.MetricsFile != "" {
		if err := metrics.WriteToTextfile(configuration.MetricsFile); err != nil {
			return fmt.Errorf("Error writing metrics: %w", err)
		}
	}
	return nil
}

func loadConditions(config evaluation.Configuration) (*evaluation.Mapping, *evaluation.CalibrationData, error) {
	if config.NoDB {
		if VerbosityLevel > 0 {
			logger.Info("No DB: empty channel mapping and calibration", "main")
		}
		return evaluation.NewMapping(), evaluation.NewCalibrationData(), nil
	}

	dbConn, err := evaluation.ConnectToDatabase(config.User, config.Passwd, config.Host, config.DBName)
	if err != nil {
		return nil, nil, fmt.Errorf("Error connection to database: %w", err)
	}
	defer dbConn.Close()

	mapping, calibration, err := evaluation.LoadDatabase(dbConn, config.RunNumber)
	if err != nil {
		return nil, nil, err
	}
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Run %d: %d fees mapped, %d channels calibrated",
			config.RunNumber, mapping.NumFees(), calibration.Len())
		logger.Info(message, "main")
	}
	return mapping, calibration, nil
}
