// This file is responsible for reading the package metadata of EPUB files.
// An EPUB is a zip container; META-INF/container.xml points at the OPF
// package document whose <metadata> holds the Dublin Core title and creator.

package library

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/mholt/archives"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	containerPath    = "META-INF/container.xml"
	packageMediaType = "application/oebps-package+xml"
)

// epubMetadata is the subset of package metadata the library uses.
// Empty fields mean the document did not provide them.
type epubMetadata struct {
	Title   string
	Creator string
}

type epubContainer struct {
	Rootfiles []struct {
		FullPath  string `xml:"full-path,attr"`
		MediaType string `xml:"media-type,attr"`
	} `xml:"rootfiles>rootfile"`
}

// opfPackage matches elements by local name, so both dc:title and a
// default-namespaced title decode.
type opfPackage struct {
	Version  string `xml:"version,attr"`
	Metadata struct {
		Titles   []string `xml:"title"`
		Creators []string `xml:"creator"`
	} `xml:"metadata"`
}

// readEPUBMetadata opens filePath as a zip container and reads its package
// metadata.
func readEPUBMetadata(ctx context.Context, filePath string) (epubMetadata, error) {
	fsys, err := archives.FileSystem(ctx, filePath, nil)
	if err != nil {
		return epubMetadata{}, fmt.Errorf("failed to open %s: %w", filePath, err)
	}
	// Files that are not recognized as an archive come back as a plain
	// file system wrapping the file itself.
	if _, ok := fsys.(*archives.ArchiveFS); !ok {
		return epubMetadata{}, errNotAnArchive
	}
	return parsePackageMetadata(fsys)
}

// parsePackageMetadata reads container.xml and the package document it
// references from an already opened container.
func parsePackageMetadata(fsys fs.FS) (epubMetadata, error) {
	data, err := fs.ReadFile(fsys, containerPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return epubMetadata{}, errMissingContainer
		}
		return epubMetadata{}, fmt.Errorf("failed to read %s: %w", containerPath, err)
	}

	var c epubContainer
	if err := decodeXML(data, &c); err != nil {
		return epubMetadata{}, fmt.Errorf("%w: %s: %v", errInvalidXML, containerPath, err)
	}

	opfPath := packagePath(c)
	if opfPath == "" {
		return epubMetadata{}, errMissingPackage
	}

	data, err = fs.ReadFile(fsys, opfPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			return epubMetadata{}, fmt.Errorf("%w: %s", errMissingPackage, opfPath)
		}
		return epubMetadata{}, fmt.Errorf("failed to read %s: %w", opfPath, err)
	}

	var pkg opfPackage
	if err := decodeXML(data, &pkg); err != nil {
		return epubMetadata{}, fmt.Errorf("%w: %s: %v", errInvalidXML, opfPath, err)
	}

	return epubMetadata{
		Title:   firstNonEmpty(pkg.Metadata.Titles),
		Creator: firstNonEmpty(pkg.Metadata.Creators),
	}, nil
}

// packagePath picks the OEBPS package rootfile, or the first rootfile when
// none declares the media type.
func packagePath(c epubContainer) string {
	var fallback string
	for _, rf := range c.Rootfiles {
		p := strings.TrimPrefix(path.Clean(strings.TrimSpace(rf.FullPath)), "/")
		if p == "" || p == "." {
			continue
		}
		if rf.MediaType == packageMediaType {
			return p
		}
		if fallback == "" {
			fallback = p
		}
	}
	return fallback
}

// firstNonEmpty returns the first value with content, with runs of
// whitespace collapsed to single spaces.
func firstNonEmpty(values []string) string {
	for _, v := range values {
		if v = strings.Join(strings.Fields(v), " "); v != "" {
			return v
		}
	}
	return ""
}

// decodeXML decodes a metadata document in any encoding the package format
// allows. UTF-16 needs a byte order mark and is transcoded up front; other
// non UTF-8 documents must declare their encoding.
func decodeXML(data []byte, v any) error {
	r := transform.NewReader(bytes.NewReader(data), unicode.BOMOverride(transform.Nop))
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader
	return dec.Decode(v)
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	// Already UTF-8 once the byte order mark was handled.
	if strings.HasPrefix(strings.ToLower(label), "utf-16") {
		return input, nil
	}
	return charset.NewReaderLabel(label, input)
}
