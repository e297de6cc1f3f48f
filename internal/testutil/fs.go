package testutil

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

const testContainerXML = `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`

// EPUBMetadata describes the package metadata written by CreateTestEPUB.
// Empty fields are left out of the document.
type EPUBMetadata struct {
	Title   string
	Creator string
}

// CreateTestEPUB is a helper function that creates a minimal EPUB container
// with the given metadata. It returns the path to the created file.
func CreateTestEPUB(t *testing.T, dir, name string, md EPUBMetadata) string {
	t.Helper()
	return CreateTestZip(t, dir, name, map[string]string{
		"mimetype":               "application/epub+zip",
		"META-INF/container.xml": testContainerXML,
		"OEBPS/content.opf":      packageDocument(md),
	})
}

// CreateTestZip writes a zip archive holding the given entries.
func CreateTestZip(t *testing.T, dir, name string, entries map[string]string) string {
	t.Helper()
	filePath := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", name, err)
	}
	file, err := os.Create(filePath)
	if err != nil {
		t.Fatalf("Failed to create temp zip file: %v", err)
	}
	defer file.Close()

	zipWriter := zip.NewWriter(file)
	for entryName, content := range entries {
		w, err := zipWriter.Create(entryName)
		if err != nil {
			t.Fatalf("Failed to create entry '%s' in zip: %v", entryName, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write zip entry '%s': %v", entryName, err)
		}
	}
	if err := zipWriter.Close(); err != nil {
		t.Fatalf("Failed to finish zip file: %v", err)
	}
	return filePath
}

// CreateTestFile writes a plain file, creating parent directories.
func CreateTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	filePath := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file %s: %v", name, err)
	}
	return filePath
}

func packageDocument(md EPUBMetadata) string {
	var meta string
	if md.Title != "" {
		meta += fmt.Sprintf("    <dc:title>%s</dc:title>\n", md.Title)
	}
	if md.Creator != "" {
		meta += fmt.Sprintf("    <dc:creator opf:role=\"aut\">%s</dc:creator>\n", md.Creator)
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="2.0" unique-identifier="id">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:opf="http://www.idpf.org/2007/opf">
%s    <dc:language>en</dc:language>
  </metadata>
  <manifest/>
  <spine/>
</package>`, meta)
}
