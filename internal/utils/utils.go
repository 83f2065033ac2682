// Package utils carries small reusable helpers consumed by callers of the
// services. Nothing here holds state.
package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// DeepMerge merges b into a copy of a. Nested maps merge recursively; any
// other value in b replaces the one in a.
func DeepMerge(a, b map[string]any) map[string]any {
	out := make(map[string]any, len(a))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		if existing, ok := out[k].(map[string]any); ok {
			if nested, ok := v.(map[string]any); ok {
				out[k] = DeepMerge(existing, nested)
				continue
			}
		}
		out[k] = v
	}
	return out
}

// Flatten collapses nested maps into a single level with sep-joined keys.
func Flatten(m map[string]any, sep string) map[string]any {
	out := make(map[string]any)
	flattenInto(out, m, "", sep)
	return out
}

func flattenInto(out map[string]any, m map[string]any, prefix, sep string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + sep + k
		}
		if nested, ok := v.(map[string]any); ok {
			flattenInto(out, nested, key, sep)
			continue
		}
		out[key] = v
	}
}

// SafeGet walks a nested map by a sep-joined key path, returning fallback
// when any step is missing or not a map.
func SafeGet(m map[string]any, keyPath string, fallback any, sep string) any {
	current := any(m)
	for _, key := range strings.Split(keyPath, sep) {
		node, ok := current.(map[string]any)
		if !ok {
			return fallback
		}
		current, ok = node[key]
		if !ok {
			return fallback
		}
	}
	return current
}

// Chunk splits a slice into consecutive pieces of at most size elements.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		return nil
	}
	var out [][]T
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		out = append(out, items[start:end:end])
	}
	return out
}

var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeFilename replaces characters that are invalid on common
// filesystems, trims stray dots and spaces, and caps the length at 255.
func SanitizeFilename(name string) string {
	sanitized := invalidFilenameChars.ReplaceAllString(name, "_")
	sanitized = strings.Trim(sanitized, " .")
	if len(sanitized) > 255 {
		sanitized = sanitized[:255]
	}
	return sanitized
}

// HumanSize renders a byte count with binary-scaled units.
func HumanSize(sizeBytes int64) string {
	if sizeBytes == 0 {
		return "0 B"
	}
	units := []string{"B", "KB", "MB", "GB", "TB"}
	size := float64(sizeBytes)
	i := 0
	for size >= 1024.0 && i < len(units)-1 {
		size /= 1024.0
		i++
	}
	return fmt.Sprintf("%.2f %s", size, units[i])
}

// FormatSection renders a titled block with the data pretty-printed as JSON,
// for terminal display.
func FormatSection(title string, data any) string {
	separator := strings.Repeat("=", 50)
	var body string
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		body = fmt.Sprint(data)
	} else {
		body = string(raw)
	}
	return fmt.Sprintf("\n%s\n%s\n%s\n%s\n%s\n", separator, title, separator, body, separator)
}

// EnsureDir creates the directory path if it does not already exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
