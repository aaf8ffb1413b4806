package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Token is a snapshot of one ERC-20's metadata and latest unit prices.
type Token struct {
	Address     string          `json:"address"`
	Symbol      string          `json:"symbol"`
	Name        string          `json:"name"`
	Decimals    int32           `json:"decimals"`
	CoinGeckoID string          `json:"coingecko_id,omitempty"`
	USDPrice    decimal.Decimal `json:"usd_price"`
	ETHPrice    decimal.Decimal `json:"eth_price"`
}

// TokenTable indexes tokens by contract address. Duplicate addresses keep the
// first row.
type TokenTable struct {
	tokens    []Token
	byAddress map[string]int
}

func NewTokenTable(tokens []Token) *TokenTable {
	t := &TokenTable{
		tokens:    make([]Token, 0, len(tokens)),
		byAddress: make(map[string]int, len(tokens)),
	}
	for _, tok := range tokens {
		key := NormalizeAddress(tok.Address)
		if key == "" {
			continue
		}
		if _, ok := t.byAddress[key]; ok {
			continue
		}
		tok.Address = key
		tok.Symbol = strings.ToUpper(strings.TrimSpace(tok.Symbol))
		t.byAddress[key] = len(t.tokens)
		t.tokens = append(t.tokens, tok)
	}
	return t
}

func (t *TokenTable) ByAddress(addr string) (Token, bool) {
	if t == nil {
		return Token{}, false
	}
	idx, ok := t.byAddress[NormalizeAddress(addr)]
	if !ok {
		return Token{}, false
	}
	return t.tokens[idx], true
}

// BySymbol matches case-insensitively. Several tokens can share a symbol; the
// first one in upstream order wins.
func (t *TokenTable) BySymbol(symbol string) (Token, bool) {
	if t == nil {
		return Token{}, false
	}
	want := strings.ToUpper(strings.TrimSpace(symbol))
	if want == "" {
		return Token{}, false
	}
	for _, tok := range t.tokens {
		if tok.Symbol == want {
			return tok, true
		}
	}
	return Token{}, false
}

func (t *TokenTable) All() []Token {
	if t == nil {
		return nil
	}
	out := make([]Token, len(t.tokens))
	copy(out, t.tokens)
	return out
}

func (t *TokenTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.tokens)
}
