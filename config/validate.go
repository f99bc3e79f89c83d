package config

import (
	"fmt"
	"math"
)

type valueCache struct {
	stringVal string
	intVal    int64
	boolVal   bool
}

func (vc *valueCache) getData(opt *Option) interface{} {
	switch opt.OptType {
	case OptTypeBool:
		return vc.boolVal
	case OptTypeInt:
		return vc.intVal
	case OptTypeString:
		return vc.stringVal
	default:
		return nil
	}
}

func validateValue(option *Option, value interface{}) (*valueCache, error) {
	switch v := value.(type) {
	case string:
		if option.OptType != OptTypeString {
			return nil, newInvalidValueError(option.Key, fmt.Sprintf("%T", v), "expected type "+option.TypeName())
		}
		if option.compiledRegex != nil && !option.compiledRegex.MatchString(v) {
			return nil, newInvalidValueError(option.Key, v, "validation regex failed")
		}
		return &valueCache{stringVal: v}, nil

	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, float32, float64:
		// uint64 is omitted, as it does not fit in a int64
		if option.OptType != OptTypeInt {
			return nil, newInvalidValueError(option.Key, fmt.Sprintf("%T", v), "expected type "+option.TypeName())
		}
		intVal, err := toInt64(option.Key, v)
		if err != nil {
			return nil, err
		}
		if option.compiledRegex != nil && !option.compiledRegex.MatchString(fmt.Sprintf("%d", intVal)) {
			return nil, newInvalidValueError(option.Key, v, "validation regex failed")
		}
		return &valueCache{intVal: intVal}, nil

	case bool:
		if option.OptType != OptTypeBool {
			return nil, newInvalidValueError(option.Key, fmt.Sprintf("%T", v), "expected type "+option.TypeName())
		}
		return &valueCache{boolVal: v}, nil

	default:
		return nil, newInvalidValueError(option.Key, fmt.Sprintf("%T", v), "invalid value")
	}
}

func toInt64(key string, value interface{}) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case float32:
		// convert if float has no decimals
		if math.Remainder(float64(v), 1) == 0 {
			return int64(v), nil
		}
		return 0, newInvalidValueError(key, v, "failed to convert float32 to int64")
	case float64:
		if math.Remainder(v, 1) == 0 {
			return int64(v), nil
		}
		return 0, newInvalidValueError(key, v, "failed to convert float64 to int64")
	default:
		return 0, ErrUnsupportedType
	}
}
