// Package sqlite provides a SQLite implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"iot-data-collector/internal/models"
	"iot-data-collector/internal/storage"

	_ "modernc.org/sqlite"
)

// Store is a SQLite implementation of storage.Store.
type Store struct {
	db *sql.DB
}

// NewMemoryStore creates an in-memory SQLite store.
func NewMemoryStore() (*Store, error) {
	return newStore(":memory:", 1)
}

// NewFileStore creates a file-based SQLite store.
func NewFileStore(path string) (*Store, error) {
	return newStore(path, 0)
}

func newStore(dsn string, maxConns int) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if maxConns > 0 {
		// An in-memory database exists per connection; the pool must not
		// hand out a second one.
		db.SetMaxOpenConns(maxConns)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const readingColumns = "id, device_id, timestamp, sensor_data, temperature, humidity, created_at"

func (s *Store) CreateReading(ctx context.Context, input models.ReadingInput) (int64, error) {
	var sensorData any
	if input.SensorData != nil {
		sensorData = string(input.SensorData)
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO iot_readings (device_id, timestamp, sensor_data, temperature, humidity, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, input.DeviceID, now, sensorData, input.Temperature, input.Humidity, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) GetReading(ctx context.Context, id int64) (*models.Reading, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+readingColumns+` FROM iot_readings WHERE id = ?
	`, id)

	reading, err := scanReading(row)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound{Resource: "reading", ID: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return nil, err
	}
	return reading, nil
}

func (s *Store) ListReadings(ctx context.Context, limit, offset int) (*storage.ReadingPage, error) {
	limit, offset = normalizeWindow(limit, offset)

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM iot_readings").Scan(&total); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+readingColumns+` FROM iot_readings
		ORDER BY timestamp DESC, id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	readings, err := collectReadings(rows)
	if err != nil {
		return nil, err
	}
	return &storage.ReadingPage{Readings: readings, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *Store) ListDeviceReadings(ctx context.Context, deviceID string, limit, offset int) (*storage.ReadingPage, error) {
	limit, offset = normalizeWindow(limit, offset)

	var total int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM iot_readings WHERE device_id = ?", deviceID,
	).Scan(&total); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+readingColumns+` FROM iot_readings
		WHERE device_id = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT ? OFFSET ?
	`, deviceID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	readings, err := collectReadings(rows)
	if err != nil {
		return nil, err
	}
	return &storage.ReadingPage{Readings: readings, Total: total, Limit: limit, Offset: offset}, nil
}

// UpdateReading writes only the fields present in the update. The SET
// clause is assembled from fixed column names; every value is bound.
func (s *Store) UpdateReading(ctx context.Context, id int64, update models.ReadingUpdate) (int64, error) {
	var sets []string
	var args []any

	if update.DeviceID != nil {
		sets = append(sets, "device_id = ?")
		args = append(args, *update.DeviceID)
	}
	if update.Temperature != nil {
		sets = append(sets, "temperature = ?")
		args = append(args, *update.Temperature)
	}
	if update.Humidity != nil {
		sets = append(sets, "humidity = ?")
		args = append(args, *update.Humidity)
	}
	if update.SensorData != nil {
		sets = append(sets, "sensor_data = ?")
		args = append(args, string(update.SensorData))
	}
	if len(sets) == 0 {
		return 0, fmt.Errorf("update carries no fields")
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		"UPDATE iot_readings SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, storage.ErrNotFound{Resource: "reading", ID: strconv.FormatInt(id, 10)}
	}
	return affected, nil
}

func (s *Store) DeleteReading(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM iot_readings WHERE id = ?", id)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, storage.ErrNotFound{Resource: "reading", ID: strconv.FormatInt(id, 10)}
	}
	return affected, nil
}

func (s *Store) DeleteDeviceReadings(ctx context.Context, deviceID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM iot_readings WHERE device_id = ?", deviceID)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, storage.ErrNotFound{Resource: "device", ID: deviceID}
	}
	return affected, nil
}

func normalizeWindow(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = storage.DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanReading(row scanner) (*models.Reading, error) {
	var (
		reading     models.Reading
		sensorData  sql.NullString
		temperature sql.NullFloat64
		humidity    sql.NullFloat64
	)
	err := row.Scan(
		&reading.ID,
		&reading.DeviceID,
		&reading.Timestamp,
		&sensorData,
		&temperature,
		&humidity,
		&reading.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if sensorData.Valid {
		reading.SensorData = []byte(sensorData.String)
	}
	if temperature.Valid {
		reading.Temperature = &temperature.Float64
	}
	if humidity.Valid {
		reading.Humidity = &humidity.Float64
	}
	return &reading, nil
}

func collectReadings(rows *sql.Rows) ([]*models.Reading, error) {
	readings := []*models.Reading{}
	for rows.Next() {
		reading, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		readings = append(readings, reading)
	}
	return readings, rows.Err()
}

// Verify interface compliance
var _ storage.Store = (*Store)(nil)
