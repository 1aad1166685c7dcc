package symbols

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Exchange tags which market a symbol trades on.
type Exchange string

const (
	// NSE is the National Stock Exchange of India.
	NSE Exchange = "NSE"
	// SnP tags US symbols taken from the S&P 500 list.
	SnP Exchange = "SnP"
)

var (
	locKolkata = mustLoadLocation("Asia/Kolkata")
	locNewYork = mustLoadLocation("America/New_York")
)

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("symbols: load location %s: %v", name, err))
	}
	return loc
}

// Location returns the exchange's canonical time zone.
func (e Exchange) Location() *time.Location {
	if e == SnP {
		return locNewYork
	}
	return locKolkata
}

// Symbol is one tradable instrument. Ticker already carries the source's
// market suffix (e.g. ".NS").
type Symbol struct {
	Ticker   string
	Exchange Exchange
}

// Source describes one symbol-list file: plain text, one ticker per line,
// blank lines and '#' comments ignored. Suffix is appended to every ticker.
type Source struct {
	Path     string
	Exchange Exchange
	Suffix   string
}

// LoadSource reads one symbol list. A missing file is not an error: the
// source simply contributes no symbols.
func LoadSource(src Source) []Symbol {
	content, err := os.ReadFile(src.Path)
	if err != nil {
		slog.Warn("symbol list unavailable, skipping source", "path", src.Path, "exchange", src.Exchange)
		return nil
	}

	var out []Symbol
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, Symbol{Ticker: line + src.Suffix, Exchange: src.Exchange})
	}
	slog.Info("loaded symbols", "path", src.Path, "exchange", src.Exchange, "count", len(out))
	return out
}

// LoadAll concatenates all sources in order. Duplicates across sources are
// allowed; the registry does not deduplicate.
func LoadAll(sources []Source) []Symbol {
	var all []Symbol
	for _, src := range sources {
		all = append(all, LoadSource(src)...)
	}
	return all
}
