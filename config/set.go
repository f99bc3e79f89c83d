package config

import (
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/tevino/abool"
)

var (
	validityFlag     = abool.NewBool(true)
	validityFlagLock sync.RWMutex
)

// getValidityFlag returns a flag that signifies if the configuration has been changed. This flag must not be changed, only read.
func getValidityFlag() *abool.AtomicBool {
	validityFlagLock.RLock()
	defer validityFlagLock.RUnlock()
	return validityFlag
}

// signalChanges marks the configs validtityFlag as dirty.
func signalChanges() {
	validityFlagLock.Lock()
	validityFlag.SetTo(false)
	validityFlag = abool.NewBool(true)
	validityFlagLock.Unlock()
}

// SetConfig sets the (prioritized) user defined values of all given
// options. Values that fail to validate are skipped; all failures are
// returned together.
func SetConfig(newValues map[string]interface{}) error {
	var errs *multierror.Error

	for key, value := range newValues {
		option, err := GetOption(key)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}

		option.Lock()
		valueCache, err := validateValue(option, value)
		if err == nil {
			option.activeValue = valueCache
		} else {
			errs = multierror.Append(errs, err)
		}
		option.Unlock()
	}

	signalChanges()
	return errs.ErrorOrNil()
}

// SetConfigOption sets a single value in the (prioritized) user defined
// config. A nil value resets the option.
func SetConfigOption(key string, value interface{}) error {
	return setOption(key, value, false)
}

// SetDefaultConfigOption sets a single value in the (fallback) default
// config. A nil value resets the option.
func SetDefaultConfigOption(key string, value interface{}) error {
	return setOption(key, value, true)
}

func setOption(key string, value interface{}, asDefault bool) error {
	option, err := GetOption(key)
	if err != nil {
		return err
	}

	option.Lock()
	var vc *valueCache
	if value != nil {
		vc, err = validateValue(option, value)
	}
	if err == nil {
		if asDefault {
			option.activeDefaultValue = vc
		} else {
			option.activeValue = vc
		}
	}
	option.Unlock()

	if err != nil {
		return err
	}

	signalChanges()
	return nil
}
