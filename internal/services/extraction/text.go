package extraction

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var newlineNormalizer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// extractText returns the file contents as UTF-8 with \n line endings; bytes that are not valid UTF-8 are decoded as ISO-8859-1
func (e *Extractor) extractText(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", failure("TXT", err)
	}

	if utf8.Valid(data) {
		return newlineNormalizer.Replace(string(data)), nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", failure("TXT", fmt.Errorf("latin-1 decode: %w", err))
	}

	e.logger.Debug().Str("path", path).Msg("Text file is not UTF-8, decoded as ISO-8859-1")
	return newlineNormalizer.Replace(string(decoded)), nil
}
