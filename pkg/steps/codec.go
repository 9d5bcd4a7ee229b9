package steps

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/go-viper/mapstructure/v2"

	"github.com/arthur-debert/importsteps/pkg/errors"
)

// EncodeParams flattens params into field name to value pairs, keyed by the
// mapstructure tag of each field
func EncodeParams(p Params) (map[string]string, error) {
	raw := map[string]interface{}{}
	if err := mapstructure.Decode(p, &raw); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "encode %s params", p.Kind())
	}

	out := make(map[string]string, len(raw))
	for k, v := range raw {
		out[k] = formatValue(v)
	}
	return out, nil
}

// DecodeParams builds params of kind from stored fields. Unknown fields are
// ignored and missing fields keep their defaults.
func DecodeParams(kind Kind, fields map[string]string) (Params, error) {
	p, err := NewParams(kind)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return p, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           p,
		WeaklyTypedInput: true,
		ErrorUnused:      false,
		ZeroFields:       false,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "create params decoder")
	}

	if err := decoder.Decode(fields); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "decode %s params", kind).
			WithDetail("kind", string(kind))
	}
	return p, nil
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	case int:
		return strconv.Itoa(val)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr && !rv.IsNil() {
		return formatValue(rv.Elem().Interface())
	}
	return fmt.Sprint(v)
}
