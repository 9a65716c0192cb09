package event

import "encoding/json"

// DecodePayload turns an event payload into T. Events from the in-process
// bus already carry the struct (or a pointer to it); payloads read back from
// JSON, such as dead letters, arrive as maps or raw bytes and are re-encoded.
func DecodePayload[T any](input interface{}) (T, error) {
	var out T
	switch v := input.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
		return out, nil
	case json.RawMessage:
		return out, json.Unmarshal(v, &out)
	case []byte:
		return out, json.Unmarshal(v, &out)
	}

	data, err := json.Marshal(input)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(data, &out)
	return out, err
}
