package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/KAY53N/bsc-node/internal/model"
)

// Format selects how a report is rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(input string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(input))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q (text, json)", input)
	}
}

type quoteJSON struct {
	Kind         model.PoolKind `json:"kind"`
	Block        string         `json:"block"`
	Pool         string         `json:"pool"`
	TokenA       model.Token    `json:"token_a"`
	TokenB       model.Token    `json:"token_b"`
	PriceAInB    string         `json:"price_a_in_b"`
	PriceBInA    string         `json:"price_b_in_a"`
	ReserveA     string         `json:"reserve_a,omitempty"`
	ReserveB     string         `json:"reserve_b,omitempty"`
	SqrtPriceX96 string         `json:"sqrt_price_x96,omitempty"`
}

// WriteQuote renders a quote to w.
func WriteQuote(w io.Writer, quote model.PoolQuote, format Format) error {
	if format == FormatJSON {
		return writeJSON(w, toQuoteJSON(quote))
	}
	return writeQuoteText(w, quote)
}

func toQuoteJSON(quote model.PoolQuote) quoteJSON {
	out := quoteJSON{
		Kind:      quote.Kind,
		Block:     quote.Block.Label(),
		Pool:      quote.Pool,
		TokenA:    quote.TokenA,
		TokenB:    quote.TokenB,
		PriceAInB: quote.PriceAInB.StringFixed(model.PriceDigits),
		PriceBInA: quote.PriceBInA.StringFixed(model.PriceDigits),
	}
	if quote.ReserveA != nil {
		out.ReserveA = quote.ReserveA.String()
	}
	if quote.ReserveB != nil {
		out.ReserveB = quote.ReserveB.String()
	}
	if quote.SqrtPriceX96 != nil {
		out.SqrtPriceX96 = quote.SqrtPriceX96.String()
	}
	return out
}

func writeQuoteText(w io.Writer, quote model.PoolQuote) error {
	a, b := quote.TokenA, quote.TokenB
	var lines []string

	switch quote.Kind {
	case model.ConstantProduct:
		lines = append(lines,
			fmt.Sprintf("Pair:     %s (v2, block %s)", quote.Pool, quote.Block.Label()),
			fmt.Sprintf("Token:    %s", describeToken(a)),
			fmt.Sprintf("Base:     %s", describeToken(b)),
		)
	default:
		lines = append(lines,
			fmt.Sprintf("Pool:     %s (v3, block %s)", quote.Pool, quote.Block.Label()),
			fmt.Sprintf("Token0:   %s", describeToken(a)),
			fmt.Sprintf("Token1:   %s", describeToken(b)),
		)
	}

	lines = append(lines,
		strings.Repeat("-", 40),
		fmt.Sprintf("Price:    1 %s = %s %s", a.Symbol, quote.PriceAInB.StringFixed(model.PriceDigits), b.Symbol),
		fmt.Sprintf("Price:    1 %s = %s %s", b.Symbol, quote.PriceBInA.StringFixed(model.PriceDigits), a.Symbol),
	)

	if quote.Kind == model.ConstantProduct {
		reserveA, reserveB := quote.HumanReserves()
		lines = append(lines, fmt.Sprintf("Reserves: %s %s / %s %s",
			groupThousands(reserveA.StringFixed(2)), a.Symbol,
			groupThousands(reserveB.StringFixed(2)), b.Symbol,
		))
	} else if quote.SqrtPriceX96 != nil {
		lines = append(lines, fmt.Sprintf("SqrtPriceX96: %s", quote.SqrtPriceX96.String()))
	}
	lines = append(lines, strings.Repeat("-", 40))

	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

func describeToken(t model.Token) string {
	return fmt.Sprintf("%s (%s) decimals %d", t.Symbol, t.Address, t.Decimals)
}

// groupThousands inserts commas into the integer part of a decimal string.
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + frac
}

func writeJSON(w io.Writer, value interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
