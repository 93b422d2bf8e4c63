// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command consolectl is an operator CLI for the admin console API. It
// keeps the bearer token in ~/.intravvel/token so a login survives
// between invocations.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/intravvel/console-go/internal/client"
	"github.com/intravvel/console-go/internal/model"
)

func usage() {
	_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [-url <base>] <command> [args]\n\n", os.Args[0])
	_, _ = fmt.Fprint(os.Stderr, `Commands:
  login <email>                      Sign in and store the token
  logout                             Revoke and forget the token
  whoami                             Show the current session
  services list                      List travel services
  services create                    Create a service from flags (see -h)
  services delete <id>               Delete a service
  messages list                      List contact messages
  messages open <id>                 Read a message (marks new ones read)
  messages archive <id>              Archive a message
  messages delete <id>               Delete a message
  content get <section>              Show a content section
  content set <section> k=v [k=v]    Replace a content section
  generate <prompt>                  Generate website copy with AI
`)
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080/api/v1", "API base URL")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	c := client.New(*baseURL, tokenStore())

	if err := dispatch(ctx, c, flag.Args()); err != nil {
		if errors.Is(err, client.ErrUnauthenticated) {
			_, _ = fmt.Fprintln(os.Stderr, "not signed in; run: consolectl login <email>")
			os.Exit(1)
		}
		_, _ = fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func tokenStore() client.TokenStore {
	home, err := os.UserHomeDir()
	if err != nil {
		return client.NewMemoryTokenStore()
	}
	dir := filepath.Join(home, ".intravvel")
	_ = os.MkdirAll(dir, 0o700)
	return client.NewFileTokenStore(filepath.Join(dir, "token"))
}

func dispatch(ctx context.Context, c *client.Client, args []string) error {
	switch args[0] {
	case "login":
		return cmdLogin(ctx, c, args[1:])
	case "logout":
		return c.SignOut(ctx)
	case "whoami":
		return cmdWhoami(ctx, c)
	case "services":
		return cmdServices(ctx, c, args[1:])
	case "messages":
		return cmdMessages(ctx, c, args[1:])
	case "content":
		return cmdContent(ctx, c, args[1:])
	case "generate":
		if len(args) < 2 {
			return errors.New("usage: generate <prompt>")
		}
		return cmdGenerate(ctx, c, strings.Join(args[1:], " "))
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func cmdLogin(ctx context.Context, c *client.Client, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: login <email>")
	}

	password, err := readPassword()
	if err != nil {
		return err
	}

	session, err := c.SignIn(ctx, args[0], password)
	if err != nil {
		return err
	}

	fmt.Printf("signed in as %s (%s), token expires %s\n",
		session.User.Name, session.User.Email,
		session.ExpiresAt.Local().Format(time.RFC1123))
	return nil
}

func readPassword() (string, error) {
	fmt.Print("Password: ")
	if term.IsTerminal(int(syscall.Stdin)) {
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(raw), nil
	}

	// Piped input (tests, scripts)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func cmdWhoami(ctx context.Context, c *client.Client) error {
	user, err := c.CurrentSession(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	return nil
}

func cmdServices(ctx context.Context, c *client.Client, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: services list|create|delete")
	}

	m := client.NewServiceManager(c)

	switch args[0] {
	case "list":
		if err := m.Refresh(ctx); err != nil {
			return err
		}
		for _, s := range m.Services() {
			marker := " "
			if s.Featured {
				marker = "*"
			}
			fmt.Printf("%s %s  %-30s  %8.2f  %s\n", marker, s.ID, s.Title, s.Price, s.Duration)
		}
		return nil

	case "create":
		fs := flag.NewFlagSet("services create", flag.ContinueOnError)
		title := fs.String("title", "", "Service title")
		description := fs.String("description", "", "Service description")
		price := fs.String("price", "", "Price, e.g. 1299.99")
		duration := fs.String("duration", "", "Duration, e.g. '5 Days / 4 Nights'")
		imageURL := fs.String("image", "", "Image URL")
		featured := fs.Bool("featured", false, "Feature on the landing page")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		created, err := m.Create(ctx, model.ServiceDraft{
			Title:       *title,
			Description: *description,
			Price:       *price,
			Duration:    *duration,
			ImageURL:    *imageURL,
			Featured:    *featured,
		})
		if err != nil {
			return err
		}
		fmt.Println("created", created.ID)
		return nil

	case "delete":
		if len(args) != 2 {
			return errors.New("usage: services delete <id>")
		}
		if err := m.Delete(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("deleted", args[1])
		return nil
	}
	return fmt.Errorf("unknown services command %q", args[0])
}

func cmdMessages(ctx context.Context, c *client.Client, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: messages list|open|archive|delete")
	}

	m := client.NewMessageManager(c)

	switch args[0] {
	case "list":
		if err := m.Refresh(ctx); err != nil {
			return err
		}
		for _, msg := range m.Messages() {
			fmt.Printf("%-8s  %s  %-25s  %s\n", msg.Status, msg.ID, msg.Name, msg.Subject)
		}
		fmt.Printf("%d unread\n", m.UnreadCount())
		return nil

	case "open":
		if len(args) != 2 {
			return errors.New("usage: messages open <id>")
		}
		msg, err := m.Open(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("From: %s <%s>\nSubject: %s\nReceived: %s\n\n%s\n",
			msg.Name, msg.Email, msg.Subject,
			msg.CreatedAt.Local().Format(time.RFC1123), msg.Body)
		return nil

	case "archive":
		if len(args) != 2 {
			return errors.New("usage: messages archive <id>")
		}
		if err := m.Archive(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("archived", args[1])
		return nil

	case "delete":
		if len(args) != 2 {
			return errors.New("usage: messages delete <id>")
		}
		if err := m.Delete(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("deleted", args[1])
		return nil
	}
	return fmt.Errorf("unknown messages command %q", args[0])
}

func cmdContent(ctx context.Context, c *client.Client, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: content get|set <section>")
	}

	m := client.NewContentManager(c)

	switch args[0] {
	case "get":
		if err := m.Refresh(ctx); err != nil {
			return err
		}
		section, ok := m.Section(args[1])
		if !ok {
			return fmt.Errorf("section %q has no stored content", args[1])
		}
		out, err := json.MarshalIndent(section.Data, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil

	case "set":
		data := make(map[string]string)
		for _, pair := range args[2:] {
			key, value, found := strings.Cut(pair, "=")
			if !found {
				return fmt.Errorf("expected key=value, got %q", pair)
			}
			data[key] = value
		}
		updated, err := m.Upsert(ctx, args[1], data)
		if err != nil {
			return err
		}
		fmt.Printf("updated %s (%d fields)\n", updated.Section, len(updated.Data))
		return nil
	}
	return fmt.Errorf("unknown content command %q", args[0])
}

func cmdGenerate(ctx context.Context, c *client.Client, prompt string) error {
	out, err := c.GenerateContent(ctx, prompt, "", 0)
	if err != nil {
		return err
	}
	fmt.Printf("%s\n\n(model: %s)\n", out.Content, out.Model)
	return nil
}
