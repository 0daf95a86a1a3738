// seed_rosters.go parses a markdown roster file and creates one roster per
// heading via the Champion API.
//
// Each "## name" heading starts a roster; each "- Name strength/age" bullet
// adds a competitor in file order.
//
// Usage:
//
//	go run scripts/seed_rosters.go -file rosters.md -api http://localhost:8700 -rank
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
)

type competitor struct {
	Strength uint   `json:"strength"`
	Age      uint   `json:"age"`
	Name     string `json:"name"`
}

type roster struct {
	Name        string       `json:"name"`
	Competitors []competitor `json:"competitors"`
}

func main() {
	path := flag.String("file", "rosters.md", "path to roster markdown file")
	apiURL := flag.String("api", "http://localhost:8700", "Champion API base URL")
	clientID := flag.String("client", "seed", "X-Client-ID header value")
	rank := flag.Bool("rank", false, "rank each roster after creating it")
	dryRun := flag.Bool("dry-run", false, "print rosters without posting")
	flag.Parse()

	f, err := os.Open(*path)
	if err != nil {
		log.Fatalf("open %s: %v", *path, err)
	}
	defer f.Close()

	var rosters []*roster
	var current *roster
	scanner := bufio.NewScanner(f)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "#") {
			current = &roster{Name: strings.TrimSpace(strings.TrimLeft(line, "# "))}
			rosters = append(rosters, current)
			continue
		}
		if !strings.HasPrefix(line, "- ") {
			continue
		}
		if current == nil {
			log.Printf("line %d: competitor outside a roster, skipped", lineNo)
			continue
		}
		c, err := parseCompetitor(strings.TrimPrefix(line, "- "))
		if err != nil {
			log.Printf("line %d: %v", lineNo, err)
			continue
		}
		current.Competitors = append(current.Competitors, c)
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("scan %s: %v", *path, err)
	}

	log.Printf("parsed %d rosters from %s", len(rosters), *path)

	if *dryRun {
		for i, r := range rosters {
			fmt.Printf("[%d] %s (%d competitors)\n", i+1, r.Name, len(r.Competitors))
			for _, c := range r.Competitors {
				fmt.Printf("    %s %d/%d\n", c.Name, c.Strength, c.Age)
			}
		}
		return
	}

	client := &http.Client{}
	created, skipped := 0, 0
	for _, r := range rosters {
		body, _ := json.Marshal(r)
		var out struct {
			ID string `json:"roster_id"`
		}
		status, err := post(client, *apiURL+"/api/v1/rosters", *clientID, body, &out)
		if err != nil || status != http.StatusCreated {
			log.Printf("skip %q: status %d: %v", r.Name, status, err)
			skipped++
			continue
		}
		created++

		if *rank {
			var ranked struct {
				Run struct {
					Champion competitor `json:"champion"`
				} `json:"run"`
			}
			status, err := post(client, *apiURL+"/api/v1/rosters/"+out.ID+"/rank", *clientID, nil, &ranked)
			if err != nil || status != http.StatusOK {
				log.Printf("rank %q: status %d: %v", r.Name, status, err)
				continue
			}
			log.Printf("%s: champion %s", r.Name, ranked.Run.Champion.Name)
		}
	}

	log.Printf("done: %d created, %d skipped", created, skipped)
}

// parseCompetitor reads "Name strength/age". The name may contain spaces.
func parseCompetitor(s string) (competitor, error) {
	i := strings.LastIndex(s, " ")
	if i < 0 {
		return competitor{}, fmt.Errorf("expected \"name strength/age\", got %q", s)
	}
	name, stats := strings.TrimSpace(s[:i]), s[i+1:]
	strength, age, ok := strings.Cut(stats, "/")
	if !ok {
		return competitor{}, fmt.Errorf("expected strength/age, got %q", stats)
	}
	st, err := strconv.ParseUint(strength, 10, 0)
	if err != nil {
		return competitor{}, fmt.Errorf("strength %q: %w", strength, err)
	}
	ag, err := strconv.ParseUint(age, 10, 0)
	if err != nil {
		return competitor{}, fmt.Errorf("age %q: %w", age, err)
	}
	return competitor{Strength: uint(st), Age: uint(ag), Name: name}, nil
}

func post(client *http.Client, url, clientID string, body []byte, out interface{}) (int, error) {
	req, err := http.NewRequest("POST", url, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-ID", clientID)

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}
