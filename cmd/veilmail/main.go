package main

import (
	"fmt"
	"os"

	veilmail "github.com/Resonia-Health/veilmail-go"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps API failures to distinct exit statuses for scripts.
func exitCode(err error) int {
	switch veilmail.KindOf(err) {
	case veilmail.KindAuthentication, veilmail.KindForbidden:
		return 3
	case veilmail.KindValidation, veilmail.KindPIIDetected:
		return 4
	case veilmail.KindRateLimited:
		return 5
	case veilmail.KindNotFound:
		return 6
	case "":
		return 1
	}
	return 2
}
