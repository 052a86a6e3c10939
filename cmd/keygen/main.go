package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
)

func main() {
	size := 32
	if len(os.Args) > 1 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || (n != 16 && n != 24 && n != 32) {
			fmt.Println("Usage: go run cmd/keygen/main.go [16|24|32]")
			os.Exit(1)
		}
		size = n
	}

	key := make([]byte, size)
	if _, err := rand.Read(key); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Add to your .env file:\n")
	fmt.Printf("SECRET_KEY=%s\n", hex.EncodeToString(key))
}
