package trails

import (
	"fmt"

	"github.com/agentstation/ledgerlink/pkg/errors"
)

// MatchType is how a site's money evidence was found.
type MatchType uint8

// Match types, weakest first.
const (
	// MatchNone means no money record could be tied to the site
	MatchNone MatchType = iota
	// MatchProvider means an asylum support record named the site's prime provider
	MatchProvider
	// MatchDirect means a money record listed the site id
	MatchDirect
)

var matchNames = map[MatchType]string{
	MatchNone:     "none",
	MatchProvider: "provider",
	MatchDirect:   "direct",
}

// String returns the wire name of the match type.
func (m MatchType) String() string {
	if name, ok := matchNames[m]; ok {
		return name
	}
	return fmt.Sprintf("MatchType(%d)", m)
}

// MarshalText implements encoding.TextMarshaler.
func (m MatchType) MarshalText() ([]byte, error) {
	if _, ok := matchNames[m]; !ok {
		return nil, &errors.ValidationError{Field: "matchType", Value: uint8(m), Message: "unknown match type"}
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *MatchType) UnmarshalText(text []byte) error {
	mt, err := ParseMatchType(string(text))
	if err != nil {
		return err
	}
	*m = mt
	return nil
}

// ParseMatchType parses a wire name.
func ParseMatchType(s string) (MatchType, error) {
	for mt, name := range matchNames {
		if name == s {
			return mt, nil
		}
	}
	return MatchNone, &errors.ValidationError{Field: "matchType", Value: s, Message: "unknown match type"}
}
