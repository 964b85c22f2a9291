package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
)

// Operator tool for exercising the oracle surface: enrolls an oracle
// identity and optionally submits a status response for a flight.
func main() {
	var (
		serviceURL = flag.String("service", "http://localhost:8080", "settlement service base URL")
		oracle     = flag.String("oracle", "", "oracle account identity (required)")
		airline    = flag.String("airline", "", "airline account of the flight")
		code       = flag.String("flight", "", "flight code, e.g. MU567")
		timestamp  = flag.Int64("timestamp", 0, "scheduled departure unix timestamp")
		status     = flag.Int("status", 0, "status code to submit (10 on time, 20-50 late)")
	)
	flag.Parse()

	if *oracle == "" {
		log.Fatal("-oracle is required")
	}

	if err := submit(*serviceURL, "register_oracle", *oracle, nil); err != nil {
		// Re-running against the same oracle is fine; enrollment conflicts
		// are reported but not fatal.
		log.Printf("enroll: %v", err)
	} else {
		fmt.Printf("oracle %s enrolled\n", *oracle)
	}

	if *code == "" {
		return
	}

	params := map[string]interface{}{
		"airline":   *airline,
		"code":      *code,
		"timestamp": *timestamp,
		"status":    *status,
	}
	if err := submit(*serviceURL, "submit_oracle_response", *oracle, params); err != nil {
		log.Fatalf("submit response: %v", err)
	}
	fmt.Printf("status %d submitted for %s:%s:%d\n", *status, *airline, *code, *timestamp)
}

func submit(serviceURL, operation, caller string, params map[string]interface{}) error {
	envelope := map[string]interface{}{
		"operation": operation,
		"caller":    caller,
	}
	if params != nil {
		envelope["params"] = params
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	resp, err := http.Post(serviceURL+"/tx", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("service returned %d: %s", resp.StatusCode, msg)
	}
	return nil
}
