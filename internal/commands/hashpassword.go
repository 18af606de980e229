package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/mitropolia-targovistei/calendar-site/internal/app"
)

// HashPassword creates the credential file guarding the admin endpoints.
func HashPassword() *cli.Command {
	return &cli.Command{
		Name:  "hash-password",
		Usage: "Create an auth.secret file with an Argon2id password hash.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Optional YAML config file"},
			&cli.StringFlag{Name: "auth-file", Usage: "Path to the auth file (default: <data-dir>/auth.secret)"},
			&cli.BoolFlag{Name: "overwrite", Usage: "Overwrite existing auth file without asking"},
			&cli.BoolFlag{Name: "insecure-unmask-password", Usage: "Show password as plain text (INSECURE!)"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := app.LoadConfig(c.String("config"))
			if err != nil {
				return err
			}
			path := cfg.AuthFile
			if c.IsSet("auth-file") {
				path = c.String("auth-file")
			}

			in := bufio.NewReader(os.Stdin)
			username, password, err := promptCredentials(in, os.Stdout, c.Bool("insecure-unmask-password"))
			if err != nil {
				return err
			}

			err = app.CreateAuthFile(path, username, password, c.Bool("overwrite"), in, os.Stdout)
			if errors.Is(err, app.ErrAborted) {
				fmt.Println("Aborted.")
				return nil
			}
			return err
		},
	}
}

// promptCredentials asks for a username and a confirmed password.
func promptCredentials(in *bufio.Reader, out io.Writer, unmasked bool) (string, string, error) {
	fmt.Fprint(out, "Enter username: ")
	username, err := readLine(in)
	if err != nil {
		return "", "", fmt.Errorf("error reading username: %w", err)
	}
	if username == "" {
		return "", "", errors.New("username cannot be empty")
	}

	var password, confirm string
	if unmasked {
		fmt.Fprintln(os.Stderr, "WARNING: Password will be visible on screen!")
		fmt.Fprint(out, "Enter password:   ")
		if password, err = readLine(in); err != nil {
			return "", "", fmt.Errorf("error reading password: %w", err)
		}
		fmt.Fprint(out, "Confirm password: ")
		if confirm, err = readLine(in); err != nil {
			return "", "", fmt.Errorf("error reading password confirmation: %w", err)
		}
	} else {
		password = readPasswordWithMask(out, "Enter password:   ")
		confirm = readPasswordWithMask(out, "Confirm password: ")
	}

	if password == "" {
		return "", "", errors.New("password cannot be empty")
	}
	if password != confirm {
		return "", "", errors.New("passwords do not match")
	}
	return username, password, nil
}

func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPasswordWithMask reads password input and displays asterisks
func readPasswordWithMask(out io.Writer, prompt string) string {
	fmt.Fprint(out, prompt)

	fd := int(syscall.Stdin)
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		// Not a terminal: fall back to hidden input
		password, _ := term.ReadPassword(fd)
		fmt.Fprintln(out)
		return string(password)
	}
	defer func() { _ = term.Restore(fd, oldState) }()

	var password []byte
	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			break
		}

		switch ch := buf[0]; ch {
		case '\n', '\r': // Enter key
			fmt.Fprint(out, "\r\n")
			return string(password)
		case 127, 8: // Backspace or Delete
			if len(password) > 0 {
				password = password[:len(password)-1]
				fmt.Fprint(out, "\b \b")
			}
		case 3: // Ctrl+C
			_ = term.Restore(fd, oldState)
			fmt.Fprintln(out)
			os.Exit(1)
		default:
			if ch >= 32 && ch <= 126 {
				password = append(password, ch)
				fmt.Fprint(out, "*")
			}
		}
	}

	fmt.Fprint(out, "\r\n")
	return string(password)
}
