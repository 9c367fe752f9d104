package util

import (
	"fmt"
	"syscall"

	"golang.org/x/term"
)

// GetPasswd reads a passphrase from the terminal without echo.
func GetPasswd(prompt string) ([]byte, error) {
	fmt.Print(prompt)
	bytepw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	return bytepw, err
}
