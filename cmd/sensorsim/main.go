// Command sensorsim simulates an IoT device: it periodically posts
// temperature/humidity readings to the collection API.
package main

import (
	"flag"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/go-resty/resty/v2"
)

func main() {
	server := flag.String("server", "http://127.0.0.1:5001", "base URL of the collection API")
	deviceID := flag.String("device", "esp32_001", "device identifier to report as")
	interval := flag.Duration("interval", 30*time.Second, "delay between readings")
	count := flag.Int("count", 0, "number of readings to send, 0 means run forever")
	flag.Parse()

	client := resty.New().SetBaseURL(*server)

	for sent := 0; *count == 0 || sent < *count; sent++ {
		if sent > 0 {
			time.Sleep(*interval)
		}

		resp, err := client.R().
			SetHeader("Content-Type", "application/json").
			SetBody(buildReading(*deviceID)).
			Post("/api/data")
		if err != nil {
			log.Printf("Error sending reading: %v", err)
			continue
		}
		if resp.IsError() {
			log.Printf("Server rejected reading: %s %s", resp.Status(), resp.String())
			continue
		}
		log.Printf("Reading sent for %s: %s", *deviceID, resp.Status())
	}
}

// buildReading produces a payload in the shape devices submit: the two
// primary measurements plus an open-ended sensor_data blob.
func buildReading(deviceID string) map[string]any {
	return map[string]any{
		"device_id":   deviceID,
		"temperature": round2(18 + rand.Float64()*10),
		"humidity":    round2(40 + rand.Float64()*30),
		"sensor_data": map[string]any{
			"light":   round2(rand.Float64() * 100),
			"battery": 60 + rand.Intn(40),
		},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
