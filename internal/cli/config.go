package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcoot/scoreboard/internal/config"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string `env:"SCORECTL_SERVER"`
	Board     string `env:"SCORECTL_BOARD"`
	BoardFile string `env:"SCORECTL_BOARD_FILE"`
	Output    string
	Verbose   bool
}

// errNoBoard is returned by commands that need a board when none is selected
var errNoBoard = errors.New("no board selected: pass --board or run 'scorectl board use CODE'")

// DefaultConfig returns a Config with default values, overridden by SCORECTL_* env vars
func DefaultConfig() (*Config, error) {
	c := &Config{
		ServerURL: "http://localhost:8080",
		BoardFile: defaultBoardFile(),
		Output:    "text",
	}
	if err := config.ParseEnv(c); err != nil {
		return c, err
	}
	return c, nil
}

// LoadBoard loads the board code from file if not already set
func (c *Config) LoadBoard() error {
	if c.Board != "" {
		return nil
	}

	data, err := os.ReadFile(c.BoardFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No board file is fine
		}
		return err
	}

	c.Board = strings.TrimSpace(string(data))
	return nil
}

// SaveBoard remembers the board code in the board file
func (c *Config) SaveBoard(code string) error {
	c.Board = code

	dir := filepath.Dir(c.BoardFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.BoardFile, []byte(code+"\n"), 0600)
}

// RequireBoard returns the selected board code
func (c *Config) RequireBoard() (string, error) {
	if c.Board == "" {
		return "", errNoBoard
	}
	return strings.ToUpper(c.Board), nil
}

func defaultBoardFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".scorectl/board"
	}
	return filepath.Join(home, ".scorectl", "board")
}
