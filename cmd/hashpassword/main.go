// Command hashpassword prints the bcrypt hash to put in admin.password_hash.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"carrental-backend/internal/security"
)

func main() {
	fmt.Fprint(os.Stderr, "Password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		log.Fatalf("Failed to read password: %v", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		log.Fatal("Empty password")
	}
	hash, err := security.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	fmt.Println(hash)
}
