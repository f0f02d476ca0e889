package utils

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// TitleHash returns a short, stable hex digest of a content title.
func TitleHash(title string) string {
	sum := blake2b.Sum256([]byte(title))
	return hex.EncodeToString(sum[:8])
}

// UniqueName builds an object name that never repeats across runs:
// <prefix>_<unix seconds>_<random><ext>. An empty prefix is omitted.
func UniqueName(prefix, ext string) string {
	return uniqueName(prefix, ext, time.Now())
}

func uniqueName(prefix, ext string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	if prefix == "" {
		return fmt.Sprintf("%d_%s%s", now.Unix(), suffix, ext)
	}
	return fmt.Sprintf("%s_%d_%s%s", prefix, now.Unix(), suffix, ext)
}
