package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	aarogyam "github.com/sagarpathak0/aarogyam-go"
)

const (
	ansiReset  = "\033[0m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiRed    = "\033[31m"
)

func colorGreen(s string) string  { return ansiGreen + s + ansiReset }
func colorYellow(s string) string { return ansiYellow + s + ansiReset }
func colorRed(s string) string    { return ansiRed + s + ansiReset }

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func printTableHeader(w *tabwriter.Writer, cols ...string) {
	for i, c := range cols {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, c)
	}
	fmt.Fprintln(w)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printError writes a human-readable rendering of an API failure to
// stderr. Validation failures and normalized API errors get tailored
// messages; anything else is printed as-is.
func printError(err error) {
	if apiErr, ok := aarogyam.AsAPIError(err); ok {
		switch {
		case apiErr.IsUnauthorized():
			fmt.Fprintf(os.Stderr, "%s Session rejected by the backend. Sign in again.\n", colorRed("✗"))
		case apiErr.Code == aarogyam.CodeConnection:
			fmt.Fprintf(os.Stderr, "%s Could not reach the backend: %s\n", colorRed("✗"), apiErr.Message)
		case apiErr.IsInvalidResponse():
			fmt.Fprintf(os.Stderr, "%s Backend returned an unexpected response: %s\n", colorRed("✗"), apiErr.Message)
		default:
			fmt.Fprintf(os.Stderr, "%s %s\n", colorRed("✗"), apiErr.Message)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "%s %v\n", colorRed("✗"), err)
}
