package saver

import (
	"path/filepath"
	"strings"
)

const (
	artifactSuffix = "_daily_ohlc"
	sidecarSuffix  = "_info.json"
)

// SanitizeSymbol replaces characters that can break file names. Colon is
// intentionally kept unescaped (legal on Linux); forward slash is not.
func SanitizeSymbol(symbol string) string {
	return strings.TrimSpace(strings.ReplaceAll(symbol, "/", "-"))
}

// ArtifactPath returns the artifact file path for a symbol,
// dir/{sanitized}_daily_ohlc.{ext}.
func ArtifactPath(dir, symbol, ext string) string {
	return filepath.Join(dir, SanitizeSymbol(symbol)+artifactSuffix+"."+ext)
}

// ArtifactGlob returns the pattern matching every artifact of one format.
func ArtifactGlob(dir, ext string) string {
	return filepath.Join(dir, "*"+artifactSuffix+"."+ext)
}

// BaseSymbol derives the symbol identity from an artifact path by
// stripping the directory, the artifact suffix and the extension.
func BaseSymbol(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimSuffix(base, artifactSuffix)
}

// SidecarPath returns the metadata file associated with an artifact,
// named by replacing the artifact's suffix with the metadata suffix.
func SidecarPath(artifactPath string) string {
	ext := filepath.Ext(artifactPath)
	return strings.TrimSuffix(artifactPath, artifactSuffix+ext) + sidecarSuffix
}
