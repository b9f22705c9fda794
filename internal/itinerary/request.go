package itinerary

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const DefaultMaxTripDays = 14

type Request struct {
	Destination string   `json:"destination"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Interests   []string `json:"interests"`
	Budget      string   `json:"budget,omitempty"`
	PartySize   string   `json:"partySize,omitempty"`
}

type Normalized struct {
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Interests   []string
	Budget      string
	PartySize   string
	DaysCount   int
}

var (
	budgets    = map[string]bool{"low": true, "medium": true, "high": true}
	partySizes = map[string]bool{"solo": true, "couple": true, "family": true}
)

// Normalize validates a generation request and derives the inclusive day
// count. maxDays <= 0 means DefaultMaxTripDays.
func Normalize(req Request, maxDays int) (Normalized, error) {
	if maxDays <= 0 {
		maxDays = DefaultMaxTripDays
	}

	destination := strings.TrimSpace(req.Destination)
	if destination == "" {
		return Normalized{}, invalidInput("destination is required")
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return Normalized{}, invalidInput("Invalid startDate")
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return Normalized{}, invalidInput("Invalid endDate")
	}
	if start.After(end) {
		return Normalized{}, invalidInput("startDate must be <= endDate")
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 || days > maxDays {
		return Normalized{}, invalidInput(fmt.Sprintf("Date range must be between 1 and %d days", maxDays))
	}

	interests := make([]string, 0, len(req.Interests))
	for _, i := range req.Interests {
		if i == "" {
			return Normalized{}, invalidInput("interests must be non-empty strings")
		}
		interests = append(interests, i)
	}
	if req.Budget != "" && !budgets[req.Budget] {
		return Normalized{}, invalidInput("budget must be one of low, medium, high")
	}
	if req.PartySize != "" && !partySizes[req.PartySize] {
		return Normalized{}, invalidInput("partySize must be one of solo, couple, family")
	}

	return Normalized{
		Destination: destination,
		StartDate:   start,
		EndDate:     end,
		Interests:   interests,
		Budget:      req.Budget,
		PartySize:   req.PartySize,
		DaysCount:   days,
	}, nil
}

// parseDate accepts a calendar date or an RFC 3339 timestamp and returns
// the UTC calendar date.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// CacheKey hashes the fields that determine a generated itinerary.
func CacheKey(n Normalized) string {
	payload := struct {
		Destination string   `json:"destination"`
		Interests   []string `json:"interests"`
		StartDate   string   `json:"startDate"`
		DaysCount   int      `json:"daysCount"`
		Budget      string   `json:"budget,omitempty"`
		PartySize   string   `json:"partySize,omitempty"`
	}{
		Destination: n.Destination,
		Interests:   n.Interests,
		StartDate:   n.StartDate.Format(dateLayout),
		DaysCount:   n.DaysCount,
		Budget:      n.Budget,
		PartySize:   n.PartySize,
	}
	if payload.Interests == nil {
		payload.Interests = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)

	sum := sha256.Sum256(bytes.TrimRight(buf.Bytes(), "\n"))
	return "itinerary:" + hex.EncodeToString(sum[:])
}
