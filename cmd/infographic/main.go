package main

import (
	"fmt"
	"os"

	"github.com/dgallion1/infographic/internal/apperr"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", userMessage(err))
		os.Exit(1)
	}
}

// userMessage prefers the classified message; the cause is only shown with -v.
func userMessage(err error) string {
	e, ok := apperr.As(err)
	if !ok {
		return err.Error()
	}
	if verbosity > 0 && e.Err != nil {
		return fmt.Sprintf("%s (%v)", e.Message, e.Err)
	}
	return e.Message
}
