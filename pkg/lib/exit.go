package lib

import (
	"errors"
	"fmt"
	"os"
)

// ExitCoder is an error that carries its own process exit status.
type ExitCoder interface {
	error
	ExitCode() int
}

// Exit prints the error and exits the program with the error's exit code,
// or 1 when it has none.
func Exit(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(Code(err))
}

// Code returns the exit status for err: 0 for nil, the code of the first
// ExitCoder in its chain, or 1.
func Code(err error) int {
	if err == nil {
		return 0
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return 1
}
