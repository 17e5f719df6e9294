package main

import (
	"os"

	"github.com/prerak-proof/holiday-calendar/cmd"
	"github.com/prerak-proof/holiday-calendar/utils/log"
)

func main() {
	log.SetLevel(log.WARNING)
	code := cmd.Execute(os.Args[1:], os.Stdout, os.Stderr)
	log.Sync()
	os.Exit(code)
}
