package codes

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// MasterEntry is one row of the private tracking list. The blank fields
// are filled in by hand as codes are handed out.
type MasterEntry struct {
	Code      string `json:"code"`
	Index     int    `json:"index"`
	GivenTo   string `json:"given_to"`
	DateGiven string `json:"date_given"`
	Notes     string `json:"notes"`
}

// WriteValidCodes writes the plain sorted code list the app checks against.
func WriteValidCodes(path string, codes []string) error {
	return writeJSON(path, codes)
}

// WriteMasterList writes the detailed tracking list.
func WriteMasterList(path string, codes []string) error {
	entries := make([]MasterEntry, len(codes))
	for i, code := range codes {
		entries[i] = MasterEntry{Code: code, Index: i + 1}
	}
	return writeJSON(path, entries)
}

// WriteCSV writes the tracking list as a spreadsheet.
func WriteCSV(path string, codes []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Index", "Code", "Given To", "Date Given", "Notes"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for i, code := range codes {
		if err := w.Write([]string{strconv.Itoa(i + 1), code, "", "", ""}); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
