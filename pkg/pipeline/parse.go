package pipeline

import (
	"io"
	"strings"

	"github.com/matzehuels/boxsize/pkg/document"
	"github.com/matzehuels/boxsize/pkg/errors"
)

// StdinPath is the path argument that selects standard input.
const StdinPath = "-"

// ReadDocument loads a document from path, or from stdin when path is "-".
//
// A non-empty format overrides detection. Otherwise files are decoded by
// extension and stdin is read as TOML.
func ReadDocument(path string, stdin io.Reader, format string) (*document.Document, error) {
	f, err := resolveFormat(path, format)
	if err != nil {
		return nil, err
	}
	if path != StdinPath {
		return document.LoadAs(path, f)
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
	}
	return document.Parse(data, f)
}

func resolveFormat(path, format string) (document.Format, error) {
	if format != "" {
		if err := errors.ValidateFormat(format, document.Formats...); err != nil {
			return "", err
		}
		return document.Format(strings.ToLower(format)), nil
	}
	if path == StdinPath {
		return document.FormatTOML, nil
	}
	return document.FormatFromPath(path)
}
