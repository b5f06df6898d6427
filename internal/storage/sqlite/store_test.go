package sqlite

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iot-data-collector/internal/models"
	"iot-data-collector/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func f64(v float64) *float64 {
	return &v
}

func str(v string) *string {
	return &v
}

func mustCreate(t *testing.T, store *Store, input models.ReadingInput) int64 {
	id, err := store.CreateReading(context.Background(), input)
	require.NoError(t, err)
	return id
}

func TestNewMemoryStore(t *testing.T) {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()

	assert.NotNil(t, store)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestNewFileStore(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewFileStore(tmpDir + "/test.db")
	require.NoError(t, err)
	defer store.Close()

	assert.NotNil(t, store)
}

func TestCreateAndGetReading(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sensorData := json.RawMessage(`{"light":750,"pressure":1013.25,"battery":85}`)
	id := mustCreate(t, store, models.ReadingInput{
		DeviceID:    "dev-1",
		Temperature: f64(23.5),
		Humidity:    f64(65.2),
		SensorData:  sensorData,
	})
	assert.Positive(t, id)

	reading, err := store.GetReading(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, id, reading.ID)
	assert.Equal(t, "dev-1", reading.DeviceID)
	require.NotNil(t, reading.Temperature)
	assert.Equal(t, 23.5, *reading.Temperature)
	require.NotNil(t, reading.Humidity)
	assert.Equal(t, 65.2, *reading.Humidity)
	assert.Equal(t, string(sensorData), string(reading.SensorData))
	assert.False(t, reading.Timestamp.IsZero())
	assert.False(t, reading.CreatedAt.IsZero())
}

func TestCreateReadingOptionalFieldsNull(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id := mustCreate(t, store, models.ReadingInput{DeviceID: "dev-1"})

	reading, err := store.GetReading(ctx, id)
	require.NoError(t, err)

	assert.Nil(t, reading.Temperature)
	assert.Nil(t, reading.Humidity)
	assert.Nil(t, reading.SensorData)
}

func TestGetReadingNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetReading(context.Background(), 12345)
	assert.True(t, storage.IsNotFound(err))
}

func TestListReadingsPagination(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 5; i++ {
		ids = append(ids, mustCreate(t, store, models.ReadingInput{DeviceID: "dev-1"}))
	}

	// Newest first; identical timestamps fall back to id descending.
	first, err := store.ListReadings(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, first.Total)
	require.Len(t, first.Readings, 2)
	assert.Equal(t, ids[4], first.Readings[0].ID)
	assert.Equal(t, ids[3], first.Readings[1].ID)

	second, err := store.ListReadings(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, second.Readings, 2)
	assert.Equal(t, ids[2], second.Readings[0].ID)
	assert.Equal(t, ids[1], second.Readings[1].ID)

	third, err := store.ListReadings(ctx, 2, 4)
	require.NoError(t, err)
	require.Len(t, third.Readings, 1)
	assert.Equal(t, ids[0], third.Readings[0].ID)
}

func TestListReadingsDefaultWindow(t *testing.T) {
	store := newTestStore(t)

	page, err := store.ListReadings(context.Background(), 0, -3)
	require.NoError(t, err)

	assert.Equal(t, storage.DefaultLimit, page.Limit)
	assert.Equal(t, 0, page.Offset)
	assert.Empty(t, page.Readings)
	assert.Equal(t, 0, page.Total)
}

func TestListDeviceReadings(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mustCreate(t, store, models.ReadingInput{DeviceID: "dev-1"})
	mustCreate(t, store, models.ReadingInput{DeviceID: "dev-2"})
	mustCreate(t, store, models.ReadingInput{DeviceID: "dev-1"})

	page, err := store.ListDeviceReadings(ctx, "dev-1", 100, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Readings, 2)
	for _, reading := range page.Readings {
		assert.Equal(t, "dev-1", reading.DeviceID)
	}
}

func TestListDeviceReadingsEmptyIsNotError(t *testing.T) {
	store := newTestStore(t)

	page, err := store.ListDeviceReadings(context.Background(), "ghost", 100, 0)
	require.NoError(t, err)
	assert.Empty(t, page.Readings)
	assert.Equal(t, 0, page.Total)
}

func TestUpdateReadingPartial(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sensorData := json.RawMessage(`{"battery":85}`)
	id := mustCreate(t, store, models.ReadingInput{
		DeviceID:    "dev-1",
		Temperature: f64(23.5),
		Humidity:    f64(65.2),
		SensorData:  sensorData,
	})

	affected, err := store.UpdateReading(ctx, id, models.ReadingUpdate{Temperature: f64(24.0)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	reading, err := store.GetReading(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 24.0, *reading.Temperature)
	assert.Equal(t, "dev-1", reading.DeviceID)
	assert.Equal(t, 65.2, *reading.Humidity)
	assert.Equal(t, string(sensorData), string(reading.SensorData))
}

func TestUpdateReadingZeroValueIsWritten(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id := mustCreate(t, store, models.ReadingInput{DeviceID: "dev-1", Temperature: f64(21.0)})

	_, err := store.UpdateReading(ctx, id, models.ReadingUpdate{Temperature: f64(0)})
	require.NoError(t, err)

	reading, err := store.GetReading(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, reading.Temperature)
	assert.Equal(t, 0.0, *reading.Temperature)
}

func TestUpdateReadingAllFields(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id := mustCreate(t, store, models.ReadingInput{DeviceID: "dev-1"})

	_, err := store.UpdateReading(ctx, id, models.ReadingUpdate{
		DeviceID:    str("dev-9"),
		Temperature: f64(19.5),
		Humidity:    f64(44.4),
		SensorData:  json.RawMessage(`{"motion":true}`),
	})
	require.NoError(t, err)

	reading, err := store.GetReading(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "dev-9", reading.DeviceID)
	assert.Equal(t, 19.5, *reading.Temperature)
	assert.Equal(t, 44.4, *reading.Humidity)
	assert.JSONEq(t, `{"motion":true}`, string(reading.SensorData))
}

func TestUpdateReadingNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.UpdateReading(context.Background(), 404, models.ReadingUpdate{Temperature: f64(1)})
	assert.True(t, storage.IsNotFound(err))
}

func TestDeleteReading(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id := mustCreate(t, store, models.ReadingInput{DeviceID: "dev-1"})

	affected, err := store.DeleteReading(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	_, err = store.GetReading(ctx, id)
	assert.True(t, storage.IsNotFound(err))

	_, err = store.DeleteReading(ctx, id)
	assert.True(t, storage.IsNotFound(err))
}

func TestDeleteDeviceReadings(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mustCreate(t, store, models.ReadingInput{DeviceID: "dev-1"})
	mustCreate(t, store, models.ReadingInput{DeviceID: "dev-1"})
	mustCreate(t, store, models.ReadingInput{DeviceID: "dev-1"})
	keep := mustCreate(t, store, models.ReadingInput{DeviceID: "dev-2"})

	affected, err := store.DeleteDeviceReadings(ctx, "dev-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), affected)

	page, err := store.ListDeviceReadings(ctx, "dev-1", 100, 0)
	require.NoError(t, err)
	assert.Empty(t, page.Readings)

	// Other devices untouched
	_, err = store.GetReading(ctx, keep)
	assert.NoError(t, err)
}

func TestDeleteDeviceReadingsNoneMatched(t *testing.T) {
	store := newTestStore(t)

	_, err := store.DeleteDeviceReadings(context.Background(), "ghost")
	assert.True(t, storage.IsNotFound(err))
}

func TestIDsAreNotReused(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := mustCreate(t, store, models.ReadingInput{DeviceID: "dev-1"})
	_, err := store.DeleteReading(ctx, first)
	require.NoError(t, err)

	second := mustCreate(t, store, models.ReadingInput{DeviceID: "dev-1"})
	assert.Greater(t, second, first)
}
