// Command client is a terminal companion for the TaskTrack API. It logs in,
// keeps a realtime connection alive, and surfaces task notifications as
// terminal output with an optional bell.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"tasktrack-api/config"
	"tasktrack-api/internal/notify"
	"tasktrack-api/internal/realtime"
	"tasktrack-api/internal/rtclient"
	"tasktrack-api/pkg/locale"
	"tasktrack-api/pkg/log"
)

func main() {
	var (
		email    = flag.String("email", "", "account email")
		password = flag.String("password", "", "account password")
		apiURL   = flag.String("api", "http://localhost:8080", "API base URL")
		wsURL    = flag.String("ws", "", "WebSocket URL (defaults to the configured client.url)")
		lang     = flag.String("lang", "en", "notification language (en or ru)")
	)
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: client -email <email> -password <password> [-api URL] [-ws URL]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load config: ", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         "development",
		Encoding:     "console",
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx := context.Background()

	tokens := newLoginTokenSource(*apiURL, *email, *password)

	// Log in eagerly so the viewer identity is known before connecting.
	viewer, err := tokens.login(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Login failed: ", err)
		os.Exit(1)
	}
	fmt.Printf("Logged in as %s (%s)\n", viewer.ID, viewer.Role)

	home, _ := os.UserHomeDir()
	store := notify.NewStore(filepath.Join(home, ".tasktrack", "notify.json"))

	sounds, err := newWAVSound()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to prepare notification sounds: ", err)
		os.Exit(1)
	}

	surface, err := notify.NewSurface(viewer, locale.ParseLang(*lang), store, sounds, terminalDesktop{}, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize notifications: ", err)
		os.Exit(1)
	}
	if _, err := surface.RequestPermission(ctx); err != nil {
		logger.Warnf(ctx, "cmd.client.permission: %v", err)
	}

	url := *wsURL
	if url == "" {
		url = cfg.Client.URL
	}

	// A nil dialer lets the controller derive transport deadlines from the
	// heartbeat interval.
	controller := rtclient.New(logger, nil, tokens, rtclient.NewClock(), rtclient.Config{
		URL:               url,
		HeartbeatInterval: cfg.Client.HeartbeatInterval,
		BaseDelay:         cfg.Client.ReconnectBaseDelay,
		MaxDelay:          cfg.Client.ReconnectMaxDelay,
		MaxAttempts:       cfg.Client.MaxReconnectAttempts,
	}, rtclient.Handlers{
		OnTaskCreated: func(task realtime.TaskPayload) {
			surface.HandleTaskCreated(ctx, task)
		},
		OnTaskUpdated: func(task realtime.TaskPayload) {
			surface.HandleTaskUpdated(ctx, task)
		},
		OnTaskDeleted: func(taskID string) {
			surface.HandleTaskDeleted(ctx, taskID)
		},
		OnUsersStatusUpdated: func(users []realtime.UserStatusPayload) {
			online := 0
			for _, u := range users {
				if u.IsOnline {
					online++
				}
			}
			fmt.Printf("· presence: %d/%d online\n", online, len(users))
		},
		OnStateChange: func(state rtclient.State) {
			fmt.Printf("· connection: %s\n", state)
		},
		OnAuthError: func(err error) {
			fmt.Printf("· %v; check your credentials\n", err)
		},
	})

	controller.Connect()
	defer controller.Disconnect()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	fmt.Println("bye")
}

// loginTokenSource fetches a JWT from the auth endpoint. Token() re-logs in
// on every reconnect attempt so an expired token never wedges the client.
type loginTokenSource struct {
	baseURL  string
	email    string
	password string
	client   *http.Client

	mu    sync.Mutex
	token string
}

func newLoginTokenSource(baseURL, email, password string) *loginTokenSource {
	return &loginTokenSource{
		baseURL:  strings.TrimRight(baseURL, "/"),
		email:    email,
		password: password,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *loginTokenSource) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Use the token from the most recent login once, then refresh. The
	// first connection attempt reuses the eager login from startup.
	if s.token != "" {
		token := s.token
		s.token = ""
		return token, nil
	}

	if _, err := s.login(context.Background()); err != nil {
		return "", err
	}

	token := s.token
	s.token = ""
	return token, nil
}

func (s *loginTokenSource) login(ctx context.Context) (notify.Viewer, error) {
	body, err := json.Marshal(map[string]string{
		"email":    s.email,
		"password": s.password,
	})
	if err != nil {
		return notify.Viewer{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/v1/auth/login", bytes.NewReader(body))
	if err != nil {
		return notify.Viewer{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return notify.Viewer{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return notify.Viewer{}, fmt.Errorf("login failed with status %d", resp.StatusCode)
	}

	var envelope struct {
		Data struct {
			Token string `json:"token"`
			User  struct {
				ID   string `json:"id"`
				Role string `json:"role"`
			} `json:"user"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return notify.Viewer{}, err
	}
	if envelope.Data.Token == "" {
		return notify.Viewer{}, fmt.Errorf("login response carried no token")
	}

	s.token = envelope.Data.Token
	return notify.Viewer{ID: envelope.Data.User.ID, Role: envelope.Data.User.Role}, nil
}

// wavSound plays the synthesized notification sounds through the first
// command-line audio player found on the system, falling back to the
// terminal bell when there is none.
type wavSound struct {
	player string
	files  map[notify.SoundKind]string
}

func newWAVSound() (*wavSound, error) {
	dir, err := os.MkdirTemp("", "tasktrack-sounds")
	if err != nil {
		return nil, err
	}

	s := &wavSound{files: make(map[notify.SoundKind]string)}
	wavs := map[notify.SoundKind][]byte{
		notify.SoundNewTask: notify.NewTaskSound(),
		notify.SoundSuccess: notify.SuccessSound(),
		notify.SoundError:   notify.ErrorSound(),
	}
	for kind, data := range wavs {
		path := filepath.Join(dir, string(kind)+".wav")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, err
		}
		s.files[kind] = path
	}

	for _, candidate := range []string{"afplay", "paplay", "aplay", "ffplay"} {
		if _, err := exec.LookPath(candidate); err == nil {
			s.player = candidate
			break
		}
	}
	return s, nil
}

func (s *wavSound) Play(sound notify.SoundKind) error {
	if sound == notify.SoundNone {
		return nil
	}

	path, ok := s.files[sound]
	if !ok || s.player == "" {
		_, err := fmt.Print("\a")
		return err
	}

	args := []string{path}
	if s.player == "ffplay" {
		args = []string{"-nodisp", "-autoexit", "-loglevel", "quiet", path}
	}
	return exec.Command(s.player, args...).Start()
}

// terminalDesktop renders desktop notifications as framed terminal lines.
type terminalDesktop struct{}

func (terminalDesktop) RequestPermission(ctx context.Context) (notify.Permission, error) {
	return notify.PermissionGranted, nil
}

func (terminalDesktop) Show(title, body string) error {
	_, err := fmt.Printf("┃ %s\n┃ %s\n", title, body)
	return err
}
