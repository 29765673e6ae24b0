package config

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"
)

// rosterColumns is the exact column contract of the roster CSV, compared
// after sorting so column order in the file does not matter.
var rosterColumns = []string{"login", "mail", "name", "pwd", "team"}

// User is one roster entry. Pwd is the plaintext credential exactly as
// rostered; the store persists it verbatim. A known weakness kept for
// compatibility with existing rosters, not an endorsement.
type User struct {
	Login string
	Mail  string
	Name  string
	Pwd   string
	Team  string
}

// ReadUsers loads the user roster from a CSV file with header columns
// login, mail, name, pwd, team (any order). Logins must be unique. File
// order is preserved: bootstrap derives player and team ids from it.
func ReadUsers(path string) ([]User, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening roster %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading roster %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("roster %s is empty", path)
	}

	header := make([]string, len(records[0]))
	idx := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		h = strings.TrimSpace(strings.ToLower(h))
		header[i] = h
		idx[h] = i
	}
	sorted := append([]string(nil), header...)
	sort.Strings(sorted)
	if strings.Join(sorted, ",") != strings.Join(rosterColumns, ",") {
		return nil, fmt.Errorf("roster columns must be %v, got %v", rosterColumns, header)
	}

	users := make([]User, 0, len(records)-1)
	seen := make(map[string]bool, len(records)-1)
	for i, rec := range records[1:] {
		u := User{
			Login: rec[idx["login"]],
			Mail:  rec[idx["mail"]],
			Name:  rec[idx["name"]],
			Pwd:   rec[idx["pwd"]],
			Team:  rec[idx["team"]],
		}
		if seen[u.Login] {
			return nil, fmt.Errorf("duplicated user %q at row %d", u.Login, i+1)
		}
		seen[u.Login] = true
		users = append(users, u)
	}
	return users, nil
}
