package environment

import "strings"

// ParseEnvVariable parses an environment entry in "KEY=VALUE" form.
//
// Edge cases:
//   - "=VALUE" (empty key): ok=false
//   - "KEY=" (empty value): key="KEY", value="", ok=true
//   - "KEY" (no equals): ok=false
func ParseEnvVariable(env string) (key, value string, ok bool) {
	key, value, found := strings.Cut(env, "=")
	if !found || key == "" {
		return "", "", false
	}
	return key, value, true
}

// Lookup returns the value of the first entry named name in environ.
func Lookup(environ []string, name string) (string, bool) {
	for _, entry := range environ {
		key, value, ok := ParseEnvVariable(entry)
		if ok && key == name {
			return value, true
		}
	}
	return "", false
}

// Overlay returns a copy of environ with every variable in set assigned and
// every name in unset removed. Existing entries keep their position, new ones
// are appended in the order given. Malformed entries are passed through.
func Overlay(environ []string, set []Variable, unset ...string) []string {
	drop := make(map[string]struct{}, len(unset)+len(set))
	for _, name := range unset {
		drop[name] = struct{}{}
	}

	values := make(map[string]string, len(set))
	var order []string
	for _, v := range set {
		if _, dup := values[v.Name]; !dup {
			order = append(order, v.Name)
		}
		values[v.Name] = v.Value
		delete(drop, v.Name)
	}

	result := make([]string, 0, len(environ)+len(order))
	written := make(map[string]struct{}, len(order))
	for _, entry := range environ {
		name, _, ok := ParseEnvVariable(entry)
		if !ok {
			result = append(result, entry)
			continue
		}
		if _, removed := drop[name]; removed {
			continue
		}
		if value, replaced := values[name]; replaced {
			if _, done := written[name]; done {
				continue
			}
			written[name] = struct{}{}
			result = append(result, name+"="+value)
			continue
		}
		result = append(result, entry)
	}

	for _, name := range order {
		if _, done := written[name]; !done {
			result = append(result, name+"="+values[name])
		}
	}
	return result
}
