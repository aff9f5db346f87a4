package nessus

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// RootTag is the root element every .nessus v2 export starts with.
const RootTag = "NessusClientData_v2"

// Extension is the file extension scanner exports carry.
const Extension = ".nessus"

// Load reads the report at path and parses it.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	slog.Debug("read report", "path", path, "bytes", len(data))
	return Parse(data)
}

// Parse builds a Document from raw report content. The only structural check
// is the root element name.
func Parse(data []byte) (*Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	if err := checkTopLevel(doc); err != nil {
		return nil, err
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrParse)
	}
	if root.Tag != RootTag {
		return nil, fmt.Errorf("%w: root element is <%s>, expected <%s>", ErrInvalidFormat, root.Tag, RootTag)
	}
	return &Document{root: root}, nil
}

// checkTopLevel enforces a single root element with nothing but whitespace,
// comments and processing instructions around it.
func checkTopLevel(doc *etree.Document) error {
	elements := 0
	for _, tok := range doc.Child {
		switch t := tok.(type) {
		case *etree.Element:
			elements++
			if elements > 1 {
				return fmt.Errorf("%w: more than one root element", ErrParse)
			}
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				return fmt.Errorf("%w: text outside the root element", ErrParse)
			}
		}
	}
	return nil
}
