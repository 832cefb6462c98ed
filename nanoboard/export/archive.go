package export

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// WriteArchive writes the export as a zip stream to w.
func WriteArchive(w io.Writer, data *ExportData) (err error) {
	zw := zip.NewWriter(w)
	defer func() {
		if cerr := zw.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close zip writer: %w", cerr)
		}
	}()

	db := data.Contents.DB
	if err := addFile(zw, db.Filename, db.Modified, db.Contents); err != nil {
		return fmt.Errorf("failed to add database to zip: %w", err)
	}
	for _, card := range data.Contents.Cards {
		if err := addFile(zw, card.Filename, card.Modified, []byte(card.Content)); err != nil {
			return fmt.Errorf("failed to add card %s to zip: %w", card.Filename, err)
		}
	}
	return nil
}

// CreateExportArchive writes the export to a zip file at outputPath.
func CreateExportArchive(data *ExportData, outputPath string) (err error) {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close archive file: %w", cerr)
		}
	}()
	return WriteArchive(file, data)
}

func addFile(zw *zip.Writer, name string, modified time.Time, content []byte) error {
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modified,
	})
	if err != nil {
		return err
	}
	_, err = w.Write(content)
	return err
}

// ExtractExportArchive reads an archive written by CreateExportArchive.
func ExtractExportArchive(archivePath string) (*ExportData, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() { _ = reader.Close() }()

	data := &ExportData{
		ArchiveFilename: filepath.Base(archivePath),
		Contents:        ExportContent{Cards: make([]CardFile, 0, len(reader.File))},
	}
	for _, file := range reader.File {
		content, err := readFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to extract %s: %w", file.Name, err)
		}
		if file.Name == DatabaseFilename {
			data.Contents.DB = DatabaseFile{Filename: file.Name, Modified: file.Modified, Contents: content}
			continue
		}
		data.Contents.Cards = append(data.Contents.Cards, CardFile{
			Filename: file.Name,
			Modified: file.Modified,
			Content:  string(content),
		})
	}
	if data.Contents.DB.Filename == "" {
		return nil, errors.New("archive has no " + DatabaseFilename)
	}
	return data, nil
}

func readFile(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}
