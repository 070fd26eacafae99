// Command authctl is a small operator tool for the authentication
// service. It currently supports registering a user against a running
// instance, prompting for the password without echoing it.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

func main() {
	addr := flag.String("addr", "http://localhost:8080", "service base URL")
	email := flag.String("email", "", "email of the account to create")
	flag.Parse()

	if err := run(os.Stdout, *addr, *email); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func run(out io.Writer, addr, email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}

	fmt.Fprintln(out, "Enter password")
	password, err := readPassword(int(os.Stdin.Fd()))
	if err != nil {
		return err
	}

	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": string(password),
	})
	if err != nil {
		return err
	}

	resp, err := http.Post(addr+"/register", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("registration failed: %s: %s", resp.Status, msg)
	}

	fmt.Fprintln(out, "Success!")
	return nil
}
