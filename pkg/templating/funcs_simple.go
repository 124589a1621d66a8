package templating

import "reflect"

func add(a, b int) int {
	return a + b
}

func sub(a, b int) int {
	return a - b
}

// mod returns a % b, or 0 when b is 0.
func mod(a, b int) int {
	if b == 0 {
		return 0
	}
	return a % b
}

func inc(i int) int {
	return i + 1
}

func dec(i int) int {
	return i - 1
}

// isSet reports whether val is present and not its zero value.
func isSet(val any) bool {
	v := reflect.ValueOf(val)
	if !v.IsValid() {
		return false
	}
	return !v.IsZero()
}
