// Package seed implements the offline batch that reads the three flat
// datasets and fully replaces the contents of all three stores.
package seed

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// CityRecord is one parsed row of cities.csv
type CityRecord struct {
	ID           int
	Name         string
	Department   string
	Region       string
	Population   int
	Description  string
	Latitude     *float64
	Longitude    *float64
	OverallScore float64
}

// ScoreRecord is one parsed row of scores.csv
type ScoreRecord struct {
	CityID   int
	Category string
	Label    string
	Score    float64
}

// ReviewRecord is one parsed line of reviews.jsonl
type ReviewRecord struct {
	CityID    int       `json:"city_id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"-"`
}

// ReadCities parses cities.csv
func ReadCities(path string) ([]CityRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cities dataset: %w", err)
	}
	defer f.Close()

	rows, err := readCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cities dataset: %w", err)
	}

	cities := make([]CityRecord, 0, len(rows))
	for i, row := range rows {
		city, err := parseCityRow(row)
		if err != nil {
			return nil, fmt.Errorf("cities row %d: %w", i+1, err)
		}
		cities = append(cities, city)
	}
	return cities, nil
}

// ReadScores parses scores.csv
func ReadScores(path string) ([]ScoreRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scores dataset: %w", err)
	}
	defer f.Close()

	rows, err := readCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scores dataset: %w", err)
	}

	scores := make([]ScoreRecord, 0, len(rows))
	for i, row := range rows {
		score, err := parseScoreRow(row)
		if err != nil {
			return nil, fmt.Errorf("scores row %d: %w", i+1, err)
		}
		scores = append(scores, score)
	}
	return scores, nil
}

// ReadReviews parses reviews.jsonl. Lines carrying an RFC3339 created_at
// keep it; lines without one are stamped now-UTC at load time.
func ReadReviews(path string) ([]ReviewRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reviews dataset: %w", err)
	}
	defer f.Close()

	reviews := make([]ReviewRecord, 0)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		review, err := parseReviewLine([]byte(line))
		if err != nil {
			return nil, fmt.Errorf("reviews line %d: %w", lineNo, err)
		}
		reviews = append(reviews, review)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reviews dataset: %w", err)
	}
	return reviews, nil
}

// readCSV reads a header-first CSV into name→value maps
func readCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("missing header: %w", err)
	}

	rows := make([]map[string]string, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[strings.TrimSpace(name)] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseCityRow(row map[string]string) (CityRecord, error) {
	id, err := strconv.Atoi(row["id"])
	if err != nil {
		return CityRecord{}, fmt.Errorf("invalid id %q", row["id"])
	}
	population, err := strconv.Atoi(row["population"])
	if err != nil {
		return CityRecord{}, fmt.Errorf("invalid population %q", row["population"])
	}

	city := CityRecord{
		ID:          id,
		Name:        row["name"],
		Department:  row["department"],
		Region:      row["region"],
		Population:  population,
		Description: row["description"],
	}
	if v := row["latitude"]; v != "" {
		lat, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return CityRecord{}, fmt.Errorf("invalid latitude %q", v)
		}
		city.Latitude = &lat
	}
	if v := row["longitude"]; v != "" {
		lon, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return CityRecord{}, fmt.Errorf("invalid longitude %q", v)
		}
		city.Longitude = &lon
	}
	if v := row["overall_score"]; v != "" {
		score, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return CityRecord{}, fmt.Errorf("invalid overall_score %q", v)
		}
		city.OverallScore = score
	}
	return city, nil
}

func parseScoreRow(row map[string]string) (ScoreRecord, error) {
	cityID, err := strconv.Atoi(row["city_id"])
	if err != nil {
		return ScoreRecord{}, fmt.Errorf("invalid city_id %q", row["city_id"])
	}
	score, err := strconv.ParseFloat(row["score"], 64)
	if err != nil {
		return ScoreRecord{}, fmt.Errorf("invalid score %q", row["score"])
	}
	return ScoreRecord{
		CityID:   cityID,
		Category: row["category"],
		Label:    row["label"],
		Score:    score,
	}, nil
}

func parseReviewLine(line []byte) (ReviewRecord, error) {
	var raw struct {
		CityID    int      `json:"city_id"`
		Author    string   `json:"author"`
		Rating    int      `json:"rating"`
		Comment   string   `json:"comment"`
		Tags      []string `json:"tags"`
		CreatedAt string   `json:"created_at"`
	}
	if err := json.Unmarshal(line, &raw); err != nil {
		return ReviewRecord{}, fmt.Errorf("invalid JSON: %w", err)
	}

	review := ReviewRecord{
		CityID:  raw.CityID,
		Author:  raw.Author,
		Rating:  raw.Rating,
		Comment: raw.Comment,
		Tags:    raw.Tags,
	}
	if raw.CreatedAt != "" {
		t, err := time.Parse(time.RFC3339, raw.CreatedAt)
		if err != nil {
			return ReviewRecord{}, fmt.Errorf("invalid created_at %q", raw.CreatedAt)
		}
		review.CreatedAt = t.UTC()
	} else {
		review.CreatedAt = time.Now().UTC()
	}
	return review, nil
}
