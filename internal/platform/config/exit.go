package config

import (
	"fmt"
	"io"
	"os"
)

// exit is swapped in tests.
var exit = os.Exit

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	exitf(os.Stderr, 1, format, args...)
}

func exitf(w io.Writer, code int, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
	exit(code)
}
