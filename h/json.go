package h

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

type JsonValue struct {
	value string
}

func NewJsonValue(value string) JsonValue {
	return JsonValue{value: value}
}

func (j JsonValue) Get(path string) any {
	value := gjson.Get(j.value, path)
	if value.Exists() {
		return value.Value()
	}
	return nil
}

func (j JsonValue) Exists(path string) bool {
	return gjson.Get(j.value, path).Exists()
}

// Text returns a string field as-is and any other JSON value (object, array,
// number) as its raw JSON text. Missing fields yield ok=false.
func (j JsonValue) Text(path string) (string, bool) {
	value := gjson.Get(j.value, path)
	if !value.Exists() {
		return "", false
	}
	if value.Type == gjson.String {
		return value.String(), true
	}
	return value.Raw, true
}

func IsJson(value []byte) bool {
	return gjson.ValidBytes(value)
}

func ToJsonString(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func ToPrettyJson(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func FromJsonString(source string, target any) error {
	return json.Unmarshal([]byte(source), target)
}
