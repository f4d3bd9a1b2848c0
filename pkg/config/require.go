package config

import "fmt"

// Require reports the first empty value among the named settings.
func Require(values map[string]string) error {
	for name, v := range values {
		if v == "" {
			return fmt.Errorf("missing required env %s", name)
		}
	}
	return nil
}
