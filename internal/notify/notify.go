package notify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/bloom-app/bloom/internal/config"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// Notifier posts desktop notifications to the local tray companion app.
type Notifier struct{}

// WebhookPayload is the notification body the tray app renders. Kind lets
// the tray pick a sound and grouping per event type.
type WebhookPayload struct {
	Kind       string `json:"kind,omitempty"`
	Icon       string `json:"icon,omitempty"`
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

func New() *Notifier {
	return &Notifier{}
}

// Notify sends a notification through the tray webhook. It fails when the
// tray app is not running or its lockfile cannot be validated.
func (n *Notifier) Notify(payload WebhookPayload) error {
	trayConfigDir, err := GetTrayConfigDir()
	if err != nil {
		return err
	}

	port, secret, err := findAndValidateTrayProcess(filepath.Join(trayConfigDir, config.NotifierLockfileName))
	if err != nil {
		return err
	}

	if payload.DurationMs == 0 {
		payload.DurationMs = config.NotificationDurationMs
	}

	return sendNotification(port, secret, payload)
}

// GetTrayConfigDir returns the configuration directory used by the tray app,
// honoring a custom lockfile dir from its settings file.
func GetTrayConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayConfigDir := filepath.Join(configDir, config.TrayAppIdentifier)

	settingsPath := filepath.Join(trayConfigDir, "settings.json")
	if _, err := os.Stat(settingsPath); err == nil {
		data, err := os.ReadFile(settingsPath)
		if err == nil {
			var store struct {
				Settings struct {
					LockfileDir *string `json:"lockfile_dir"`
				} `json:"settings"`
			}
			if err := json.Unmarshal(data, &store); err == nil {
				if store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
					return *store.Settings.LockfileDir, nil
				}
			}
		}
	}

	return trayConfigDir, nil
}

// trayEndpoint is the parsed contents of the tray lockfile.
type trayEndpoint struct {
	port   string
	pid    int
	secret string
}

// parseLockfile reads the "port|pid|secret" line the tray app writes on
// startup.
func parseLockfile(content string) (trayEndpoint, error) {
	parts := strings.Split(strings.TrimSpace(content), "|")
	if len(parts) != 3 {
		return trayEndpoint{}, errors.New("lockfile is malformed, want port|pid|secret")
	}

	port := strings.TrimSpace(parts[0])
	if port == "" {
		return trayEndpoint{}, errors.New("port in lockfile is empty")
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return trayEndpoint{}, errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return trayEndpoint{}, fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return trayEndpoint{}, errors.New("invalid process ID in lockfile")
	}

	secret := parts[2]
	if strings.TrimSpace(secret) == "" {
		return trayEndpoint{}, errors.New("secret in lockfile is empty")
	}

	return trayEndpoint{port: port, pid: pid, secret: secret}, nil
}

// findAndValidateTrayProcess checks that the lockfile points at a live
// bloom-tray process before trusting its port and secret. A stale lockfile
// whose PID was recycled by another program is rejected.
func findAndValidateTrayProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", errors.New("bloom-tray is not running")
	}

	endpoint, err := parseLockfile(string(content))
	if err != nil {
		return "", "", err
	}

	process, err := findProcessFunc(endpoint.pid)
	if err != nil || process == nil {
		return "", "", errors.New("bloom-tray process not running")
	}
	if !strings.HasPrefix(process.Executable(), config.TrayAppIdentifier) {
		return "", "", fmt.Errorf("process with PID %d is not %s (is %s)", endpoint.pid, config.TrayAppIdentifier, process.Executable())
	}

	return endpoint.port, endpoint.secret, nil
}

func sendNotification(port string, secret string, payload WebhookPayload) error {
	url := fmt.Sprintf("http://127.0.0.1:%s", port)

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Bloom-Secret", secret)

	client := &http.Client{Timeout: 5 * time.Second}
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	respBody, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(respBody))
}
