package export

import "time"

// ExportData describes a complete board export: the database file and one
// Markdown file per card.
type ExportData struct {
	ArchiveFilename string        `json:"archive-filename"`
	Contents        ExportContent `json:"contents"`
}

// ExportContent contains the database and card files to be exported
type ExportContent struct {
	DB    DatabaseFile `json:"db"`
	Cards []CardFile   `json:"cards"`
}

// DatabaseFile is the slot document holding only the exported board.
// It can be loaded back as a board-storage slot.
type DatabaseFile struct {
	Filename string    `json:"filename"`
	Modified time.Time `json:"modified"`
	Contents []byte    `json:"contents"`
}

// CardFile is the Markdown rendering of one card.
type CardFile struct {
	Filename string    `json:"filename"`
	Modified time.Time `json:"modified"`
	Created  time.Time `json:"created"`
	Content  string    `json:"content"`
}
