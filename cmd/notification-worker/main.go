package main

import (
	"log"

	"github.com/amggit2025/amg-realestate-sub000/internal"
)

func main() {
	worker, err := internal.NewWorker()
	if err != nil {
		log.Fatalf("Failed to initialize notification worker: %v", err)
	}

	if err := worker.Run(); err != nil {
		log.Fatalf("Notification worker failed: %v", err)
	}
}
