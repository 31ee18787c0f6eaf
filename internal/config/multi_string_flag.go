package config

import (
	"errors"
	"strings"
)

var errMultiStringSetEmptyValue = errors.New("value cannot be empty")

const defaultSeparator = ","

// MultiStringFlag implements the flag.Value interface and allows a string flag
// to be specified multiple times on the command line.
//
// e.g.: -mount /static/=./public -mount /docs/=/srv/docs
type MultiStringFlag struct {
	value     []string
	separator string
}

// String returns the list of parameters joined with the separator
func (s *MultiStringFlag) String() string {
	return strings.Join(s.value, s.sep())
}

// Set appends the value to the list of parameters
func (s *MultiStringFlag) Set(value string) error {
	if value == "" {
		return errMultiStringSetEmptyValue
	}

	s.value = append(s.value, value)
	return nil
}

// Split each flag on the separator. Surrounding whitespace is trimmed and
// empty items are dropped, so "a, ,b" yields [a b].
func (s *MultiStringFlag) Split() (result []string) {
	for _, str := range s.value {
		for _, item := range strings.Split(str, s.sep()) {
			if item = strings.TrimSpace(item); item != "" {
				result = append(result, item)
			}
		}
	}

	return
}

func (s *MultiStringFlag) sep() string {
	if s.separator == "" {
		return defaultSeparator
	}

	return s.separator
}
