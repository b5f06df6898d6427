// Command crudcheck exercises the full CRUD surface of a running server
// and reports pass/fail per step. It is an end-to-end smoke check, not a
// unit test.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-resty/resty/v2"

	"iot-data-collector/internal/models"
)

type checker struct {
	client   *resty.Client
	failures int
}

func main() {
	server := flag.String("server", "http://127.0.0.1:5001", "base URL of the collection API")
	flag.Parse()

	c := &checker{client: resty.New().SetBaseURL(*server)}

	var created models.CreateReadingResponse
	resp, err := c.client.R().
		SetBody(map[string]any{
			"device_id":   "check_device_001",
			"temperature": 23.5,
			"humidity":    65.2,
			"sensor_data": map[string]any{"light": 750, "pressure": 1013.25, "battery": 85},
		}).
		SetResult(&created).
		Post("/api/crud/reading")
	c.expect("create reading", err, resp, http.StatusCreated)
	if err != nil || resp.StatusCode() != http.StatusCreated {
		log.Fatal("cannot continue without a created reading; is the server running?")
	}
	id := created.ReadingID

	var second models.CreateReadingResponse
	resp, err = c.client.R().
		SetBody(map[string]any{
			"device_id":   "check_device_001",
			"temperature": 24.1,
			"humidity":    63.8,
		}).
		SetResult(&second).
		Post("/api/crud/reading")
	c.expect("create second reading", err, resp, http.StatusCreated)

	var fetched models.ReadingResponse
	resp, err = c.client.R().
		SetResult(&fetched).
		Get(fmt.Sprintf("/api/crud/reading/%d", id))
	c.expect("read reading back", err, resp, http.StatusOK)
	if fetched.Reading != nil {
		c.verify("device id round-trips", fetched.Reading.DeviceID == "check_device_001")
		c.verify("temperature round-trips", fetched.Reading.Temperature != nil && *fetched.Reading.Temperature == 23.5)
	}

	var list models.ReadingListResponse
	resp, err = c.client.R().
		SetQueryParam("limit", "10").
		SetResult(&list).
		Get("/api/crud/readings")
	c.expect("list readings", err, resp, http.StatusOK)
	c.verify("list total covers created rows", list.Total >= 2)

	var deviceList models.ReadingListResponse
	resp, err = c.client.R().
		SetResult(&deviceList).
		Get("/api/crud/device/check_device_001/readings")
	c.expect("list device readings", err, resp, http.StatusOK)

	var updated models.MutationResponse
	resp, err = c.client.R().
		SetBody(map[string]any{"temperature": 24.0}).
		SetResult(&updated).
		Put(fmt.Sprintf("/api/crud/reading/%d", id))
	c.expect("partial update", err, resp, http.StatusOK)

	resp, err = c.client.R().
		SetResult(&fetched).
		Get(fmt.Sprintf("/api/crud/reading/%d", id))
	c.expect("read after update", err, resp, http.StatusOK)
	if fetched.Reading != nil {
		c.verify("updated temperature applied", fetched.Reading.Temperature != nil && *fetched.Reading.Temperature == 24.0)
		c.verify("humidity untouched by update", fetched.Reading.Humidity != nil && *fetched.Reading.Humidity == 65.2)
	}

	resp, err = c.client.R().
		SetBody(map[string]any{"temperature": 99.0}).
		Post("/api/crud/reading")
	c.expect("create without device_id rejected", err, resp, http.StatusBadRequest)

	var deleted models.MutationResponse
	resp, err = c.client.R().
		SetResult(&deleted).
		Delete(fmt.Sprintf("/api/crud/reading/%d", id))
	c.expect("delete reading", err, resp, http.StatusOK)

	resp, err = c.client.R().
		Get(fmt.Sprintf("/api/crud/reading/%d", id))
	c.expect("read after delete is not found", err, resp, http.StatusNotFound)

	resp, err = c.client.R().
		SetResult(&deleted).
		Delete("/api/crud/device/check_device_001")
	c.expect("delete device readings", err, resp, http.StatusOK)

	resp, err = c.client.R().
		Delete("/api/crud/device/check_device_001")
	c.expect("delete on empty device is not found", err, resp, http.StatusNotFound)

	if c.failures > 0 {
		log.Printf("FAILED: %d check(s) did not pass", c.failures)
		os.Exit(1)
	}
	log.Println("All CRUD checks passed")
}

func (c *checker) expect(step string, err error, resp *resty.Response, wantStatus int) {
	if err != nil {
		log.Printf("FAIL %s: %v", step, err)
		c.failures++
		return
	}
	if resp.StatusCode() != wantStatus {
		log.Printf("FAIL %s: got %s, want %d; body: %s", step, resp.Status(), wantStatus, resp.String())
		c.failures++
		return
	}
	log.Printf("ok   %s", step)
}

func (c *checker) verify(step string, ok bool) {
	if !ok {
		log.Printf("FAIL %s", step)
		c.failures++
		return
	}
	log.Printf("ok   %s", step)
}
