package sqlite

// schema contains the database schema DDL. It is idempotent and runs on
// every startup before the server begins listening.
const schema = `
-- Sensor readings
CREATE TABLE IF NOT EXISTS iot_readings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    device_id TEXT NOT NULL,
    timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
    sensor_data TEXT,
    temperature REAL,
    humidity REAL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_iot_readings_device_time
    ON iot_readings(device_id, timestamp);
`
