package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

// DefaultCallbackAddr is where the browser is sent back after consent.
const DefaultCallbackAddr = "localhost:8080"

// OAuth2Config holds OAuth2 client configuration.
type OAuth2Config struct {
	ClientID     string
	ClientSecret string
	TokenFile    string
	CallbackAddr string
	Timeout      time.Duration
}

func (c OAuth2Config) oauth() *oauth2.Config {
	addr := c.CallbackAddr
	if addr == "" {
		addr = DefaultCallbackAddr
	}
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  "http://" + addr + "/callback",
		Scopes:       []string{sheets.SpreadsheetsScope},
	}
}

// Authorize runs the browser consent flow and returns a token carrying a
// refresh token. announce receives the URL the user must visit.
func Authorize(ctx context.Context, config OAuth2Config, announce func(url string)) (*oauth2.Token, error) {
	oauthConfig := config.oauth()
	state := uuid.NewString()

	addr := config.CallbackAddr
	if addr == "" {
		addr = DefaultCallbackAddr
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to start callback server: %w", err)
	}

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /callback", func(w http.ResponseWriter, r *http.Request) {
		code, err := callbackCode(r, state)
		if err != nil {
			select {
			case errCh <- err:
			default:
			}
			http.Error(w, "Authentication failed. Return to the terminal and try again.", http.StatusBadRequest)
			return
		}
		select {
		case codeCh <- code:
		default:
		}
		_, _ = fmt.Fprint(w, "Authentication successful. You can close this window.")
	})

	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if serveErr := server.Serve(listener); !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- fmt.Errorf("callback server failed: %w", serveErr)
		}
	}()
	defer func() {
		if shutdownErr := server.Shutdown(context.Background()); shutdownErr != nil {
			slog.Warn("Error shutting down callback server", "error", shutdownErr)
		}
	}()

	announce(oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce))

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(timeout):
		return nil, fmt.Errorf("authentication timeout: no response within %s", timeout)
	}

	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	if config.TokenFile != "" {
		if err := SaveToken(config.TokenFile, token); err != nil {
			slog.Warn("Failed to save token to file", "error", err, "file", config.TokenFile)
		} else {
			slog.Info("Token saved", "file", config.TokenFile)
		}
	}
	return token, nil
}

func callbackCode(r *http.Request, state string) (string, error) {
	q := r.URL.Query()
	if q.Get("state") != state {
		return "", errors.New("authorization state mismatch")
	}
	if e := q.Get("error"); e != "" {
		return "", fmt.Errorf("authorization denied: %s", e)
	}
	code := q.Get("code")
	if code == "" {
		return "", errors.New("no authorization code received")
	}
	return code, nil
}

// LoadToken loads a token from file.
func LoadToken(tokenFile string) (*oauth2.Token, error) {
	f, err := os.Open(tokenFile) // #nosec G304
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	return token, nil
}

// SaveToken writes token to path with owner-only permissions.
func SaveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create token file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	return nil
}
