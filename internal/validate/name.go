package validate

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	endpointNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	camelTokenRegex   = regexp.MustCompile(`^[a-z][A-Za-z0-9]*$`)
)

// EndpointNameFormat validates endpoint names as they appear on the command line
// (`saf emasser get workflow_instances`): lowercase snake_case, no trailing underscore.
func EndpointNameFormat(name string) error {
	if name == "" {
		return fmt.Errorf("endpoint name cannot be empty")
	}
	if !endpointNameRegex.MatchString(name) {
		return fmt.Errorf("endpoint name '%s' must be lowercase snake_case [a-z0-9_] starting with a letter", name)
	}
	if strings.HasSuffix(name, "_") {
		return fmt.Errorf("endpoint name '%s' cannot end with an underscore", name)
	}
	return nil
}

// ActionTokenFormat validates variant action tokens such as `all` or `byInstanceId`.
func ActionTokenFormat(token string) error {
	if token == "" {
		return fmt.Errorf("action token cannot be empty")
	}
	if !camelTokenRegex.MatchString(token) {
		return fmt.Errorf("action token '%s' must be lowerCamelCase [A-Za-z0-9] starting with a lowercase letter", token)
	}
	return nil
}

// FlagNameFormat validates parameter flag names such as `systemId`.
func FlagNameFormat(flag string) error {
	if flag == "" {
		return fmt.Errorf("flag name cannot be empty")
	}
	if !camelTokenRegex.MatchString(flag) {
		return fmt.Errorf("flag name '%s' must be lowerCamelCase [A-Za-z0-9] starting with a lowercase letter", flag)
	}
	return nil
}
