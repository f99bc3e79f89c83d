package config

import (
	"regexp"
	"sync"
)

// Variable Type IDs.
const (
	OptTypeString uint8 = 1
	OptTypeInt    uint8 = 3
	OptTypeBool   uint8 = 4
)

// Expertise Level constants. They describe who is expected to change an
// option and are only informational.
const (
	ExpertiseLevelUser      uint8 = 1
	ExpertiseLevelExpert    uint8 = 2
	ExpertiseLevelDeveloper uint8 = 3
)

func getTypeName(t uint8) string {
	switch t {
	case OptTypeString:
		return "string"
	case OptTypeInt:
		return "int"
	case OptTypeBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Option describes a configuration option.
type Option struct {
	sync.Mutex

	Name            string
	Key             string // category/sub/key
	Description     string
	ExpertiseLevel  uint8
	OptType         uint8
	DefaultValue    interface{}
	ValidationRegex string
	// RequiresRestart is set for options that are only read once, for
	// example when the generator is created.
	RequiresRestart bool

	compiledRegex      *regexp.Regexp
	activeValue        *valueCache // runtime value (loaded from config file or set by user)
	activeDefaultValue *valueCache // runtime default value (set by SetDefaultConfigOption)
}

// TypeName returns the name of the option type.
func (option *Option) TypeName() string {
	return getTypeName(option.OptType)
}
