package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/skuforge/skuforge/internal/tabular"
)

// WriteChunked writes rows under the header to path, splitting into
// numbered sibling files of at most chunkSize data rows when the limit is
// exceeded ("products.csv", "products_2.csv", ...). Every chunk repeats the
// header. chunkSize <= 0 disables splitting. Returns the written paths.
func WriteChunked(path string, header []string, rows []tabular.Row, chunkSize int) ([]string, error) {
	if chunkSize <= 0 || len(rows) <= chunkSize {
		if err := tabular.WriteFile(path, header, rows); err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	var paths []string
	for i, n := 0, 1; i < len(rows); i, n = i+chunkSize, n+1 {
		end := i + chunkSize
		if end > len(rows) {
			end = len(rows)
		}
		chunkPath := numberedPath(path, n)
		if err := tabular.WriteFile(chunkPath, header, rows[i:end]); err != nil {
			return nil, err
		}
		paths = append(paths, chunkPath)
	}
	return paths, nil
}

// numberedPath appends "_{n}" before the extension for chunks after the
// first: numberedPath("out/products.csv", 2) == "out/products_2.csv".
func numberedPath(path string, n int) string {
	if n <= 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(path, ext), n, ext)
}
