// seed_venues.go — standalone script to load a JSON venue fixture into Compass via the API.
//
// Usage:
//
//	go run scripts/seed_venues.go -file venues.json -api http://localhost:8700
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
)

type venue struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	City       string   `json:"city,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	PriceLevel *int     `json:"price_level,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`
}

func main() {
	filePath := flag.String("file", "venues.json", "path to venue fixture file")
	apiURL := flag.String("api", "http://localhost:8700", "Compass API base URL")
	dryRun := flag.Bool("dry-run", false, "print venues without posting")
	flag.Parse()

	data, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("read fixture: %v", err)
	}

	var venues []venue
	if err := json.Unmarshal(data, &venues); err != nil {
		log.Fatalf("parse fixture: %v", err)
	}

	created, failed := 0, 0
	for _, v := range venues {
		if *dryRun {
			fmt.Printf("would create: %s (%s, %s)\n", v.Name, v.Type, v.City)
			continue
		}
		body, _ := json.Marshal(v)
		resp, err := http.Post(*apiURL+"/api/v1/venues", "application/json", bytes.NewReader(body))
		if err != nil {
			log.Printf("post %s: %v", v.Name, err)
			failed++
			continue
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			log.Printf("post %s: status %d", v.Name, resp.StatusCode)
			failed++
			continue
		}
		created++
	}
	fmt.Printf("done: %d created, %d failed\n", created, failed)
}
