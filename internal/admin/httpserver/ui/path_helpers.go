package ui

import (
	"strconv"
	"strings"

	"finitefield.org/roster-admin/internal/admin/httpserver/middleware"
)

func joinBasePath(basePath, suffix string) string {
	return middleware.JoinBasePath(basePath, suffix)
}

func parsePositiveIntDefault(value string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func parseBool(value string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "on":
		return true, true
	case "false", "0", "no", "off":
		return false, true
	default:
		return false, false
	}
}
