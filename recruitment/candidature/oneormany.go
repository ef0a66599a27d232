package candidature

import (
	"bytes"
	"encoding/json"
)

// OneOrMany decodes either a single JSON value or an array of them.
// It always encodes as an array, never null.
type OneOrMany[T any] []T

func (o *OneOrMany[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*o = nil
		return nil
	case data[0] == '[':
		var many []T
		if err := json.Unmarshal(data, &many); err != nil {
			return err
		}
		*o = many
		return nil
	default:
		var one T
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*o = OneOrMany[T]{one}
		return nil
	}
}

func (o OneOrMany[T]) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]T(o))
}
