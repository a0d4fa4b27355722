package impl

import (
	"errors"
	"maps"
	"slices"

	"github.com/mattn/go-sqlite3"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// encodeMetadata renders a string map as a JSON object with sorted keys. Empty keys are skipped.
func encodeMetadata(m map[string]string) (string, error) {
	json := "{}"
	var err error
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if k == "" {
			continue
		}
		json, err = sjson.Set(json, gjson.Escape(k), m[k])
		if err != nil {
			return "", err
		}
	}
	return json, nil
}

// decodeMetadata reads a JSON object column. Non string values are kept in their raw JSON form.
func decodeMetadata(json string) map[string]string {
	m := map[string]string{}
	if !gjson.Valid(json) {
		return m
	}
	gjson.Parse(json).ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.String {
			m[key.String()] = value.String()
		} else {
			m[key.String()] = value.Raw
		}
		return true
	})
	return m
}

func isConstraint(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.Code == sqlite3.ErrConstraint
}
