package score

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var errNotArray = errors.New("stored table is not a JSON array")

// Decode reads a stored table, skipping rows that lack initials or a numeric score
func Decode(data []byte) (Table, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON in stored table")
	}
	res := gjson.ParseBytes(data)
	if !res.IsArray() {
		return nil, errNotArray
	}

	out := make(Table, 0, int(res.Get("#").Int()))
	res.ForEach(func(_, v gjson.Result) bool {
		if !v.IsObject() {
			return true
		}
		initials := v.Get("initials")
		score := v.Get("score")
		if initials.Type != gjson.String || score.Type != gjson.Number {
			return true
		}
		out = append(out, Entry{Initials: initials.Str, Score: int(score.Int())})
		return true
	})
	return out, nil
}

// Encode writes t as a JSON array of {"initials","score"} objects
func Encode(t Table) ([]byte, error) {
	data := []byte(`[]`)
	for _, e := range t {
		row := []byte(`{}`)
		row, err := sjson.SetBytes(row, "initials", e.Initials)
		if err != nil {
			return nil, fmt.Errorf("encode initials: %w", err)
		}
		row, err = sjson.SetBytes(row, "score", e.Score)
		if err != nil {
			return nil, fmt.Errorf("encode score: %w", err)
		}
		data, err = sjson.SetRawBytes(data, "-1", row)
		if err != nil {
			return nil, fmt.Errorf("append row: %w", err)
		}
	}
	return data, nil
}
