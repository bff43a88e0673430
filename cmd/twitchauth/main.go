// Command twitchauth issues, validates and revokes Twitch app access tokens
// from the shell.
//
//	twitchauth [flags] token|validate|revoke
//
// Flags fall back to TWITCH_* environment variables, which may also come from
// a .env file in the working directory.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aussiebroadwan/twitchauth/pkg/httpx"
	"github.com/aussiebroadwan/twitchauth/pkg/slogx"
	"github.com/aussiebroadwan/twitchauth/pkg/twitchauth"
	"github.com/joho/godotenv"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Getenv, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	clientID     string
	clientSecret string
	scopes       string
	token        string
	baseURL      string
	timeout      time.Duration
	logLevel     string
}

func parseFlags(args []string, getenv func(string) string, stderr io.Writer) (*flag.FlagSet, options, error) {
	var o options

	fs := flag.NewFlagSet("twitchauth", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: twitchauth [flags] token|validate|revoke")
		fs.PrintDefaults()
	}

	fs.StringVar(&o.clientID, "client-id", getenv("TWITCH_CLIENT_ID"), "application client id")
	fs.StringVar(&o.clientSecret, "client-secret", getenv("TWITCH_CLIENT_SECRET"), "application client secret")
	fs.StringVar(&o.scopes, "scopes", getenv("TWITCH_SCOPES"), "space or comma separated scopes to request")
	fs.StringVar(&o.token, "token", getenv("TWITCH_ACCESS_TOKEN"), "access token for validate and revoke")
	fs.StringVar(&o.baseURL, "base-url", envOr(getenv, "TWITCH_OAUTH_BASE_URL", twitchauth.DefaultBaseURL), "oauth2 base url")
	fs.DurationVar(&o.timeout, "timeout", 0, "overall request timeout, 0 for none")
	fs.StringVar(&o.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	err := fs.Parse(args)
	return fs, o, err
}

func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	fs, o, err := parseFlags(args, getenv, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitUsage
	}

	logger := slogx.New(slogx.Config{
		Service: "twitchauth",
		Level:   o.logLevel,
		Format:  "text",
		Output:  stderr,
	})

	client := twitchauth.NewClient(
		twitchauth.WithBaseURL(o.baseURL),
		twitchauth.WithTimeout(o.timeout),
		twitchauth.WithLogger(logger),
	)

	var result any
	switch cmd := fs.Arg(0); cmd {
	case "token":
		if o.clientID == "" || o.clientSecret == "" {
			fmt.Fprintln(stderr, "twitchauth: token needs -client-id and -client-secret")
			return exitUsage
		}
		issuedAt := time.Now()
		tok, err := client.GetAppAccessToken(ctx, o.clientID, o.clientSecret, splitScopes(o.scopes))
		if err != nil {
			return fail(stderr, err)
		}
		result = issuedToken{AppAccessToken: *tok, ExpiresAt: tok.ExpiresAt(issuedAt).UTC()}

	case "validate":
		if o.token == "" {
			fmt.Fprintln(stderr, "twitchauth: validate needs -token")
			return exitUsage
		}
		v, err := client.ValidateAccessToken(ctx, o.token)
		if err != nil {
			return fail(stderr, err)
		}
		result = v

	case "revoke":
		if o.token == "" || o.clientID == "" {
			fmt.Fprintln(stderr, "twitchauth: revoke needs -token and -client-id")
			return exitUsage
		}
		if err := client.RevokeAccessToken(ctx, o.token, o.clientID); err != nil {
			return fail(stderr, err)
		}
		result = map[string]bool{"revoked": true}

	default:
		fmt.Fprintf(stderr, "twitchauth: unknown command %q\n", cmd)
		fs.Usage()
		return exitUsage
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(stderr, "twitchauth: %v\n", err)
		return exitError
	}
	return exitOK
}

type issuedToken struct {
	twitchauth.AppAccessToken
	ExpiresAt time.Time `json:"expires_at"`
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "twitchauth: %v\n", err)

	var apiErr *twitchauth.Error
	if errors.As(err, &apiErr) {
		fmt.Fprintf(stderr, "kind: %s\n", apiErr.Kind)
		if apiErr.StatusCode != 0 {
			fmt.Fprintf(stderr, "status: %d\n", apiErr.StatusCode)
		}
	}
	return exitError
}

// splitScopes accepts "a b", "a,b" or a mix of both.
func splitScopes(s string) []string {
	return httpx.ParseSpaceDelimitedFields(strings.ReplaceAll(s, ",", " "))
}

func envOr(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}
