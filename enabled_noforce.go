//go:build noforce

package forcetypes

func Disable() {
	// No op
}

func Enable() {
	// No op
}

func Enabled() bool {
	return false
}
