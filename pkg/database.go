package evaluation

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
)

const (
	feeMappingQuery   = "SELECT FeeID, Layer, Tile FROM TpotFeeMapping WHERE MinRun <= ? and MaxRun >= ?"
	stripMappingQuery = "SELECT FeeID, Channel, Strip FROM TpotStripMapping WHERE MinRun <= ? and MaxRun >= ?"
	calibrationQuery  = "SELECT FeeID, Channel, Pedestal, Rms FROM TpotCalibration WHERE MinRun <= ? and MaxRun >= ?"
)

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

// LoadDatabase reads the channel mapping and the calibration valid for runNumber.
func LoadDatabase(dbConn *sqlx.DB, runNumber int) (*Mapping, *CalibrationData, error) {
	mapping, err := getMappingFromDB(dbConn, runNumber)
	if err != nil {
		errMessage := fmt.Errorf("error getting channel mapping from database: %w", err)
		logger.Error(errMessage.Error())
		return nil, nil, errMessage
	}
	calibration, err := getCalibrationFromDB(dbConn, runNumber)
	if err != nil {
		errMessage := fmt.Errorf("error getting calibration from database: %w", err)
		logger.Error(errMessage.Error())
		return nil, nil, errMessage
	}
	return mapping, calibration, nil
}

type FeeMappingEntry struct {
	FeeID int `db:"FeeID"`
	Layer int `db:"Layer"`
	Tile  int `db:"Tile"`
}

type StripMappingEntry struct {
	FeeID   int `db:"FeeID"`
	Channel int `db:"Channel"`
	Strip   int `db:"Strip"`
}

type CalibrationEntry struct {
	FeeID    int     `db:"FeeID"`
	Channel  int     `db:"Channel"`
	Pedestal float64 `db:"Pedestal"`
	Rms      float64 `db:"Rms"`
}

func getMappingFromDB(db *sqlx.DB, runNumber int) (*Mapping, error) {
	if configuration.Verbosity > 0 {
		logger.Info("Channel mapping read from DB", "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s (run %d)", feeMappingQuery, runNumber)
		logger.Info(message, "database")
	}

	mapping := NewMapping()

	rows, err := db.Queryx(feeMappingQuery, runNumber, runNumber)
	if err != nil {
		return nil, fmt.Errorf("error querying database: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		result := FeeMappingEntry{}
		if err := rows.StructScan(&result); err != nil {
			return nil, fmt.Errorf("error scanning DB row: %w", err)
		}
		mapping.SetFee(result.FeeID, uint8(result.Layer), uint8(result.Tile))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading DB rows: %w", err)
	}

	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s (run %d)", stripMappingQuery, runNumber)
		logger.Info(message, "database")
	}
	stripRows, err := db.Queryx(stripMappingQuery, runNumber, runNumber)
	if err != nil {
		return nil, fmt.Errorf("error querying database: %w", err)
	}
	defer stripRows.Close()
	for stripRows.Next() {
		result := StripMappingEntry{}
		if err := stripRows.StructScan(&result); err != nil {
			return nil, fmt.Errorf("error scanning DB row: %w", err)
		}
		mapping.SetStrip(result.FeeID, result.Channel, result.Strip)
	}
	if err := stripRows.Err(); err != nil {
		return nil, fmt.Errorf("error reading DB rows: %w", err)
	}
	return mapping, nil
}

func getCalibrationFromDB(db *sqlx.DB, runNumber int) (*CalibrationData, error) {
	if configuration.Verbosity > 0 {
		logger.Info("Calibration read from DB", "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s (run %d)", calibrationQuery, runNumber)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(calibrationQuery, runNumber, runNumber)
	if err != nil {
		return nil, fmt.Errorf("error querying database: %w", err)
	}
	defer rows.Close()

	calibration := NewCalibrationData()
	for rows.Next() {
		result := CalibrationEntry{}
		if err := rows.StructScan(&result); err != nil {
			return nil, fmt.Errorf("error scanning DB row: %w", err)
		}
		calibration.Set(result.FeeID, result.Channel, result.Pedestal, result.Rms)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading DB rows: %w", err)
	}
	return calibration, nil
}
