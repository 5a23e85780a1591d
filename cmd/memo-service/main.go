package main

import (
	"os"

	"github.com/memoflow/memoflow/memoservice"
)

func main() {
	if err := memoservice.Run(); err != nil {
		os.Exit(1)
	}
}
