package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/javi11/msbackup"
)

func main() {
	if len(os.Args) < 3 {
		log.Fatalf("usage: %s <backup-dir> <output-dir>", os.Args[0])
	}

	// restore run report as JSON
	rep, err := msbackup.Restore(os.Args[1], os.Args[2])
	if err != nil {
		log.Fatalf("error restoring volumes: %v", err)
	}
	b, _ := json.MarshalIndent(rep, "", "  ")
	fmt.Println(string(b))
}
