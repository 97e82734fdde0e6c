// Package codec turns selection state into signed, URL-safe tokens so stateless
// clients can carry it between requests.
package codec

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/alexisbeaulieu97/calgrid/internal/calendar"
	calerrors "github.com/alexisbeaulieu97/calgrid/pkg/errors"
)

const (
	payloadVersion = 1
	signatureSize  = 16
	keySize        = 32
)

// Token is the state a client hands back on its next request.
type Token struct {
	Selection calendar.Selection
	Month     calendar.Month
}

// payload is the msgpack layout; short keys keep tokens small.
type payload struct {
	Version int      `msgpack:"v"`
	Mode    string   `msgpack:"m"`
	Date    string   `msgpack:"d,omitempty"`
	Dates   []string `msgpack:"ds,omitempty"`
	From    string   `msgpack:"f,omitempty"`
	To      string   `msgpack:"t,omitempty"`
	Month   string   `msgpack:"mo,omitempty"`
}

// Codec signs and verifies tokens with HMAC-SHA256.
type Codec struct {
	key []byte
}

// New creates a Codec. Secrets shorter than 32 bytes are stretched with SHA-256.
func New(secret []byte) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret is empty")
	}
	key := secret
	if len(key) < keySize {
		h := sha256.Sum256(secret)
		key = h[:]
	}
	return &Codec{key: key}, nil
}

// NewRandom creates a Codec with a fresh random key. Its tokens do not survive a restart.
func NewRandom() (*Codec, error) {
	key := make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return &Codec{key: key}, nil
}

// Encode packs tok and returns "<data>.<signature>".
func (c *Codec) Encode(tok Token) (string, error) {
	packed, err := msgpack.Marshal(toPayload(tok))
	if err != nil {
		return "", calerrors.NewTokenError("encode", err)
	}
	return c.sign(packed), nil
}

// Decode verifies the signature and unpacks the token.
func (c *Codec) Decode(encoded string) (Token, error) {
	packed, err := c.verify(strings.TrimSpace(encoded))
	if err != nil {
		return Token{}, err
	}

	var p payload
	if err := msgpack.Unmarshal(packed, &p); err != nil {
		return Token{}, calerrors.NewTokenError("malformed payload", err)
	}
	if p.Version != payloadVersion {
		return Token{}, calerrors.NewTokenError(fmt.Sprintf("unsupported version %d", p.Version), nil)
	}

	tok, err := fromPayload(p)
	if err != nil {
		return Token{}, calerrors.NewTokenError("malformed payload", err)
	}
	return tok, nil
}

func (c *Codec) mac(data []byte) []byte {
	m := hmac.New(sha256.New, c.key)
	m.Write(data)
	return m.Sum(nil)[:signatureSize]
}

func (c *Codec) sign(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data) + "." + base64.RawURLEncoding.EncodeToString(c.mac(data))
}

func (c *Codec) verify(encoded string) ([]byte, error) {
	parts := strings.SplitN(encoded, ".", 2)
	if len(parts) != 2 {
		return nil, calerrors.NewTokenError("missing signature", nil)
	}

	data, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, calerrors.NewTokenError("bad encoding", err)
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, calerrors.NewTokenError("bad encoding", err)
	}

	if !hmac.Equal(sig, c.mac(data)) {
		return nil, calerrors.NewTokenError("signature verification failed", nil)
	}
	return data, nil
}

func toPayload(tok Token) payload {
	sel := tok.Selection
	p := payload{Version: payloadVersion, Mode: sel.Mode().String()}
	if tok.Month != (calendar.Month{}) {
		p.Month = tok.Month.String()
	}
	if d, ok := sel.Date(); ok {
		p.Date = d.String()
	}
	for _, d := range sel.Dates() {
		p.Dates = append(p.Dates, d.String())
	}
	if d, ok := sel.From(); ok {
		p.From = d.String()
	}
	if d, ok := sel.To(); ok {
		p.To = d.String()
	}
	return p
}

func fromPayload(p payload) (Token, error) {
	mode, err := calendar.ParseMode(p.Mode)
	if err != nil {
		return Token{}, err
	}

	var tok Token
	if p.Month != "" {
		if tok.Month, err = calendar.ParseMonth(p.Month); err != nil {
			return Token{}, err
		}
	}

	switch mode {
	case calendar.ModeSingle:
		tok.Selection = calendar.EmptySelection(mode)
		if p.Date != "" {
			d, err := calendar.ParseDate(p.Date)
			if err != nil {
				return Token{}, err
			}
			tok.Selection = calendar.Single(d)
		}
	case calendar.ModeMultiple:
		dates := make([]calendar.Date, 0, len(p.Dates))
		for _, value := range p.Dates {
			d, err := calendar.ParseDate(value)
			if err != nil {
				return Token{}, err
			}
			dates = append(dates, d)
		}
		tok.Selection = calendar.Multiple(dates...)
	case calendar.ModeRange:
		tok.Selection, err = rangeFromPayload(p.From, p.To)
		if err != nil {
			return Token{}, err
		}
	}
	return tok, nil
}

func rangeFromPayload(from, to string) (calendar.Selection, error) {
	if from == "" {
		if to != "" {
			return calendar.Selection{}, errors.New("range end without start")
		}
		return calendar.EmptySelection(calendar.ModeRange), nil
	}
	start, err := calendar.ParseDate(from)
	if err != nil {
		return calendar.Selection{}, err
	}
	if to == "" {
		return calendar.Range(start), nil
	}
	end, err := calendar.ParseDate(to)
	if err != nil {
		return calendar.Selection{}, err
	}
	return calendar.CompletedRange(start, end), nil
}
