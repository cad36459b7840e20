package dtos

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrMalformedList = errors.New("must be a list of strings")

// StringList accepts either a JSON array of strings or a string holding a
// JSON-encoded array, which is what multipart clients tend to send.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*l = clean(list)
		return nil
	}
	var encoded string
	if err := json.Unmarshal(b, &encoded); err != nil {
		return ErrMalformedList
	}
	parsed, err := ParseStringList([]string{encoded})
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseStringList normalizes form values into a list. A single value that
// looks like a JSON array is decoded; anything else is taken item by item.
// No values at all yields nil so callers can tell "absent" from "empty".
func ParseStringList(values []string) ([]string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	if len(values) == 1 {
		v := strings.TrimSpace(values[0])
		if strings.HasPrefix(v, "[") {
			var list []string
			if err := json.Unmarshal([]byte(v), &list); err != nil {
				return nil, ErrMalformedList
			}
			return clean(list), nil
		}
	}
	return clean(values), nil
}

func clean(list []string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
