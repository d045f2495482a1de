package h

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// NonEmptyValues drops nil and empty-string entries and stringifies the rest,
// which is what form-encoded Brood endpoints expect.
func NonEmptyValues(input map[string]any) map[string]string {
	values := map[string]string{}
	for key, value := range input {
		switch v := value.(type) {
		case nil:
			continue
		case string:
			if v == "" {
				continue
			}
			values[key] = v
		case *string:
			if v == nil || *v == "" {
				continue
			}
			values[key] = *v
		case fmt.Stringer:
			values[key] = v.String()
		default:
			values[key] = fmt.Sprintf("%v", v)
		}
	}
	return values
}

// DecodeMap decodes a loosely typed map into output, honouring json tags.
func DecodeMap(input any, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}
