package utils

// MakePath returns a string based on whether a Go package path was provided or not.
// The first non-flag argument is the target package.
// If no path is provided, it defaults to "hello-world".
func MakePath(args []string) string {
	if len(args) >= 1 {
		return args[0]
	}
	return "hello-world"
}
