package ast

import (
	"fmt"

	"fortio.org/safecast"

	"tabtidy/internal/token"
)

// TokenID addresses a token in File.Store. Ids start at 1.
type TokenID uint32

// NoTokenID is the zero, invalid id.
const NoTokenID TokenID = 0

func (id TokenID) IsValid() bool { return id != NoTokenID }

// TokenStore owns every token of one file, lexed and synthesized alike.
// Statements refer to tokens by id, so passes can retext a token without
// touching the lines that hold it.
type TokenStore struct {
	toks []token.Token
}

func NewTokenStore(capHint uint) *TokenStore {
	return &TokenStore{toks: make([]token.Token, 0, capHint)}
}

func (s *TokenStore) Add(tok token.Token) TokenID {
	s.toks = append(s.toks, tok)
	id, err := safecast.Conv[uint32](len(s.toks))
	if err != nil {
		panic(fmt.Errorf("token store overflow: %w", err))
	}
	return TokenID(id)
}

// Get returns nil for NoTokenID and for ids this store never issued.
func (s *TokenStore) Get(id TokenID) *token.Token {
	if !id.IsValid() || int(id) > len(s.toks) {
		return nil
	}
	return &s.toks[id-1]
}
