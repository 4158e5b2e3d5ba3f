package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode decides whether the rewrite command renders the interactive
// progress view or falls back to plain line output.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	normalized := strings.TrimSpace(strings.ToLower(value))
	switch normalized {
	case "":
		return uiModeAuto, nil
	case string(uiModeAuto), string(uiModeOn), string(uiModeOff):
		return uiMode(normalized), nil
	}
	return "", fmt.Errorf("--ui must be auto, on or off, got %q", value)
}

// shouldUseTUI resolves auto mode against stdout. A pipe or CI log gets
// plain output even when the UI was not explicitly disabled.
func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	}
	return isTerminal(os.Stdout)
}
