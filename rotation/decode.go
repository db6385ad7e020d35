package rotation

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// Decode builds a Trigger from the two shapes the configuration surface
// accepts: a bare string shorthand ("never", "size", "time", "both") that
// picks defaults, or a map with "type", "period", "max_size" and "max_files"
// keys. A nil value decodes to Never.
func Decode(raw any) (Trigger, error) {
	switch val := raw.(type) {
	case nil:
		return Never(), nil
	case string:
		return decodeShorthand(val)
	case map[string]any:
		return decodeMap(val)
	case map[any]any:
		// Some YAML decoders hand back untyped keys.
		strMap := make(map[string]any, len(val))
		for k, v := range val {
			strMap[fmt.Sprint(k)] = v
		}

		return decodeMap(strMap)
	default:
		return Trigger{}, fmt.Errorf("%w: rotation must be a string or a map, got %T", ErrInvalidTrigger, raw)
	}
}

// DecodeHook adapts Decode for mapstructure, so koanf unmarshalling can fill
// a Trigger field straight from the mixed-shape configuration value.
func DecodeHook() mapstructure.DecodeHookFunc {
	triggerType := reflect.TypeOf(Trigger{})

	return func(_ reflect.Type, to reflect.Type, data any) (any, error) {
		if to != triggerType {
			return data, nil
		}

		return Decode(data)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler for the mixed string-or-map shape.
func (t *Trigger) UnmarshalYAML(value *yaml.Node) error {
	var raw any
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("decoding rotation trigger: %w", err)
	}

	trig, err := Decode(raw)
	if err != nil {
		return err
	}

	*t = trig

	return nil
}

// UnmarshalJSON implements json.Unmarshaler for the mixed string-or-map shape.
func (t *Trigger) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding rotation trigger: %w", err)
	}

	trig, err := Decode(raw)
	if err != nil {
		return err
	}

	*t = trig

	return nil
}

// decodeShorthand maps the string shorthands onto triggers with defaults.
func decodeShorthand(s string) (Trigger, error) {
	switch s {
	case "", "never":
		return Never(), nil
	case "size":
		return Size(DefaultMaxBytes, DefaultMaxFiles), nil
	case "time":
		return Time(Daily), nil
	case "both":
		return Both(Daily, DefaultMaxBytes, DefaultMaxFiles), nil
	default:
		return Trigger{}, fmt.Errorf("%w: unknown rotation type %q", ErrInvalidTrigger, s)
	}
}

func decodeMap(m map[string]any) (Trigger, error) {
	kind, ok := m["type"].(string)
	if v, present := m["type"]; present && !ok {
		return Trigger{}, fmt.Errorf("%w: rotation type must be a string, got %T", ErrInvalidTrigger, v)
	}

	switch kind {
	case "", "never":
		return Never(), nil
	case "time":
		period, err := periodField(m)
		if err != nil {
			return Trigger{}, err
		}

		return Time(period), nil
	case "size":
		maxBytes, maxFiles, err := sizeFields(m)
		if err != nil {
			return Trigger{}, err
		}

		trig := Size(maxBytes, maxFiles)

		return trig, trig.Validate()
	case "both":
		period, err := periodField(m)
		if err != nil {
			return Trigger{}, err
		}

		maxBytes, maxFiles, err := sizeFields(m)
		if err != nil {
			return Trigger{}, err
		}

		trig := Both(period, maxBytes, maxFiles)

		return trig, trig.Validate()
	default:
		return Trigger{}, fmt.Errorf("%w: unknown rotation type %q", ErrInvalidTrigger, kind)
	}
}

func periodField(m map[string]any) (Period, error) {
	raw, ok := m["period"]
	if !ok {
		return PeriodNever, fmt.Errorf("%w: period is required for time-based rotation", ErrInvalidTrigger)
	}

	s, ok := raw.(string)
	if !ok {
		return PeriodNever, fmt.Errorf("%w: period must be a string, got %T", ErrInvalidTrigger, raw)
	}

	return ParsePeriod(s)
}

func sizeFields(m map[string]any) (int64, int, error) {
	raw, ok := m["max_size"]
	if !ok {
		return 0, 0, fmt.Errorf("%w: max_size is required for size-based rotation", ErrInvalidTrigger)
	}

	maxBytes, err := sizeValue(raw)
	if err != nil {
		return 0, 0, err
	}

	maxFiles := DefaultMaxFiles

	if raw, ok := m["max_files"]; ok {
		maxFiles, err = intValue(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: bad max_files: %v", ErrInvalidTrigger, err)
		}
	}

	return maxBytes, maxFiles, nil
}

// sizeValue accepts the two max_size shapes: a bare integer (kilobytes) or a
// unit-suffixed string (bytes). Both funnel through ParseSize.
func sizeValue(raw any) (int64, error) {
	switch val := raw.(type) {
	case string:
		return ParseSize(val)
	case int:
		return ParseSize(strconv.Itoa(val))
	case int64:
		return ParseSize(strconv.FormatInt(val, 10))
	case uint64:
		if val > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d overflows", ErrSizeParse, val)
		}

		return ParseSize(strconv.FormatUint(val, 10))
	case float64:
		if val != math.Trunc(val) {
			return 0, fmt.Errorf("%w: max_size must be an integer, got %v", ErrSizeParse, val)
		}

		return ParseSize(strconv.FormatInt(int64(val), 10))
	default:
		return 0, fmt.Errorf("%w: max_size must be a number or string, got %T", ErrSizeParse, raw)
	}
}

func intValue(raw any) (int, error) {
	switch val := raw.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case uint64:
		return int(val), nil
	case float64:
		if val != math.Trunc(val) {
			return 0, fmt.Errorf("must be an integer, got %v", val)
		}

		return int(val), nil
	default:
		return 0, fmt.Errorf("must be a number, got %T", raw)
	}
}
