// Package extract parses token announcement messages into structured
// records. Extraction is all or nothing: a record is produced only when
// every field rule captures, and values are kept exactly as captured.
package extract

import (
	"errors"
	"fmt"
	"regexp"
)

// TokenInfo is the result of a successful extraction. Every field holds
// the captured substring verbatim, with no trimming or normalization.
type TokenInfo struct {
	TokenName          string
	ContractAddress    string
	Price              string
	MarketCap          string
	Holders            string
	Top10Concentration string
}

// ErrFieldMissing reports that a required field rule found no capture.
var ErrFieldMissing = errors.New("required field missing")

type fieldRule struct {
	name    string
	pattern *regexp.Regexp
	assign  func(*TokenInfo, string)
}

// The announcement format: a $SYMBOL, a backtick-delimited base-58-like
// contract address, and four bolded stat labels.
var rules = []fieldRule{
	{
		name:    "token symbol",
		pattern: regexp.MustCompile(`\$([A-Za-z0-9]+)`),
		assign:  func(t *TokenInfo, v string) { t.TokenName = v },
	},
	{
		name:    "contract address",
		pattern: regexp.MustCompile("`([A-Za-z0-9]{32,44})`"),
		assign:  func(t *TokenInfo, v string) { t.ContractAddress = v },
	},
	{
		name:    "price",
		pattern: regexp.MustCompile(`\*\*Price:\*\*\s*([\d$.,]+)`),
		assign:  func(t *TokenInfo, v string) { t.Price = v },
	},
	{
		name:    "market cap",
		pattern: regexp.MustCompile(`\*\*Market Cap:\*\*\s*([\d$.,kM]+)`),
		assign:  func(t *TokenInfo, v string) { t.MarketCap = v },
	},
	{
		name:    "holders",
		pattern: regexp.MustCompile(`\*\*Holders:\*\*\s*(\d+)`),
		assign:  func(t *TokenInfo, v string) { t.Holders = v },
	},
	{
		name:    "top10 concentration",
		pattern: regexp.MustCompile(`\*\*Top10:\*\*\s*([\d.]+%)`),
		assign:  func(t *TokenInfo, v string) { t.Top10Concentration = v },
	},
}

// Parse extracts a TokenInfo from raw message text. Field rules are
// evaluated in order and the first rule without a capture stops the
// scan, returning an error that names the missing field. No partial
// record is ever returned.
func Parse(text string) (*TokenInfo, error) {
	info := &TokenInfo{}
	for _, r := range rules {
		m := r.pattern.FindStringSubmatch(text)
		if len(m) < 2 || m[1] == "" {
			return nil, fmt.Errorf("%w: %s", ErrFieldMissing, r.name)
		}
		r.assign(info, m[1])
	}
	return info, nil
}
