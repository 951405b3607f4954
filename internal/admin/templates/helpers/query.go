package helpers

import (
	"net/url"
	"strings"
)

// SetRawQuery returns rawQuery with key set to value.
func SetRawQuery(rawQuery, key, value string) string {
	values, _ := url.ParseQuery(rawQuery)
	values.Set(key, value)
	return values.Encode()
}

// DelRawQuery returns rawQuery without key.
func DelRawQuery(rawQuery string, keys ...string) string {
	values, _ := url.ParseQuery(rawQuery)
	for _, key := range keys {
		values.Del(key)
	}
	return values.Encode()
}

// BuildURL replaces any query on path with rawQuery. Empty queries leave no "?".
func BuildURL(path, rawQuery string) string {
	if idx := strings.IndexByte(path, '?'); idx >= 0 {
		path = path[:idx]
	}
	if rawQuery == "" {
		return path
	}
	return path + "?" + rawQuery
}

// BuildQueryURL encodes params onto path, skipping empty values and "all".
func BuildQueryURL(path string, params map[string]string) string {
	values := url.Values{}
	for k, v := range params {
		v = strings.TrimSpace(v)
		if v == "" || v == "all" {
			continue
		}
		values.Set(k, v)
	}
	return BuildURL(path, values.Encode())
}
