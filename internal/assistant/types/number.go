package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Number is a numeric form value that may arrive as a JSON number or as a
// numeric string ("2.0"). It keeps the raw text until Float is called.
type Number string

// NumberOf formats f as a Number
func NumberOf(f float64) Number {
	return Number(strconv.FormatFloat(f, 'f', -1, 64))
}

// IsZero reports whether no value was supplied
func (n Number) IsZero() bool {
	return strings.TrimSpace(string(n)) == ""
}

// Float parses the value
func (n Number) Float() (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Number(s)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("number expected: %w", err)
	}
	*n = Number(num.String())
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if n.IsZero() {
		return []byte("null"), nil
	}
	if f, err := n.Float(); err == nil {
		return json.Marshal(f)
	}
	return json.Marshal(string(n))
}
