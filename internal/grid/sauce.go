package grid

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// SauceConfig is the on-disk Sauce Labs configuration.
type SauceConfig struct {
	AuthenticationKey string `json:"authenticationKey"`
	SauceURL          string `json:"sauceURL"`
}

func NewSauceConfig(username, accessKey, sauceURL string) (SauceConfig, error) {
	username = strings.TrimSpace(username)
	accessKey = strings.TrimSpace(accessKey)
	sauceURL = strings.TrimSpace(sauceURL)
	var errs []error
	if username == "" {
		errs = append(errs, errors.New("username is required"))
	}
	if strings.Contains(username, ":") {
		errs = append(errs, errors.New("username must not contain ':'"))
	}
	if accessKey == "" {
		errs = append(errs, errors.New("access key is required"))
	}
	if u, err := url.Parse(sauceURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("sauce URL %q must be an absolute http or https URL", sauceURL))
	}
	if err := errors.Join(errs...); err != nil {
		return SauceConfig{}, err
	}
	return SauceConfig{
		AuthenticationKey: base64.StdEncoding.EncodeToString([]byte(username + ":" + accessKey)),
		SauceURL:          sauceURL,
	}, nil
}

// UserName decodes the user name from the authentication key.
func (c SauceConfig) UserName() (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(c.AuthenticationKey)
	if err != nil {
		return "", fmt.Errorf("decode authentication key: %w", err)
	}
	user, _, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return "", errors.New("authentication key is not user:key")
	}
	return user, nil
}

// UserURL is the account URL, sauceURL/username.
func (c SauceConfig) UserURL() (string, error) {
	user, err := c.UserName()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(c.SauceURL, "/") + "/" + user, nil
}

// WriteSauceConfig writes cfg as indented JSON, replacing path atomically.
func WriteSauceConfig(path string, cfg SauceConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode sauce config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create sauce config dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".sauce-config-*")
	if err != nil {
		return fmt.Errorf("create temp sauce config: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write sauce config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close sauce config: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace sauce config: %w", err)
	}
	return nil
}

func ReadSauceConfig(path string) (SauceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SauceConfig{}, fmt.Errorf("read sauce config %q: %w", path, err)
	}
	var cfg SauceConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return SauceConfig{}, fmt.Errorf("parse sauce config %q: %w", path, err)
	}
	return cfg, nil
}
