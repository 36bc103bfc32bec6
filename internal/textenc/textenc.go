// Package textenc resolves IANA text encoding names and reads and writes
// files through the resolved codec. The editor session uses it so the temp
// file handed to the external editor is written, and read back, in the
// encoding the user configured.
package textenc

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"extedit/internal/errors"
)

// Lookup resolves an IANA encoding name (e.g. "utf-8", "iso-8859-1",
// "shift_jis") to a codec. An empty name resolves to UTF-8.
func Lookup(name string) (encoding.Encoding, error) {
	if name == "" || isUTF8(name) {
		// UTF-8 needs no transformation; nil signals the fast path.
		return nil, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, errors.NewConfigError("editor.encoding",
			fmt.Sprintf("cannot resolve %q", name), errors.ErrUnknownEncoding)
	}
	return enc, nil
}

// isUTF8 reports whether the name is an alias for UTF-8.
func isUTF8(name string) bool {
	switch strings.ToLower(name) {
	case "utf-8", "utf8":
		return true
	}
	return false
}

// WriteString writes s to w encoded with enc. A nil enc writes UTF-8
// directly.
func WriteString(w io.Writer, s string, enc encoding.Encoding) error {
	if enc == nil {
		_, err := io.WriteString(w, s)
		return err
	}

	tw := transform.NewWriter(w, enc.NewEncoder())
	if _, err := io.WriteString(tw, s); err != nil {
		return err
	}
	return tw.Close()
}

// ReadFile reads the named file and decodes it with enc. A nil enc reads
// UTF-8 directly.
func ReadFile(filename string, enc encoding.Encoding) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var r io.Reader = f
	if enc != nil {
		r = transform.NewReader(f, enc.NewDecoder())
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
