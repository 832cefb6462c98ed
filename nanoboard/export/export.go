// Package export turns a board into a portable archive: a db.json slot
// document holding just that board, and a Markdown file per card.
package export

import (
	"errors"
	"fmt"
	"time"

	"github.com/arthur-debert/nanoboard/nanoboard/storage"
	"github.com/arthur-debert/nanoboard/types"
)

// DatabaseFilename is the name of the slot document inside an archive.
const DatabaseFilename = "db.json"

// GenerateExportData builds the export structure for a board.
func GenerateExportData(board *types.Board, now time.Time) (*ExportData, error) {
	if board == nil {
		return nil, errors.New("no board to export")
	}

	db, err := storage.Encode(&types.State{Boards: []*types.Board{board}})
	if err != nil {
		return nil, fmt.Errorf("failed to encode board: %w", err)
	}

	cards := make([]CardFile, 0, board.CardCount())
	for li, list := range board.Lists {
		for ci, card := range list.Cards {
			cards = append(cards, CardFile{
				Filename: cardFilename(li, list.Title, ci, card.Title),
				Modified: lastModified(card).Time(),
				Created:  card.CreatedAt.Time(),
				Content:  RenderCard(card, list.Title),
			})
		}
	}

	return &ExportData{
		ArchiveFilename: archiveFilename(board.Title, now),
		Contents: ExportContent{
			DB: DatabaseFile{
				Filename: DatabaseFilename,
				Modified: now,
				Contents: db,
			},
			Cards: cards,
		},
	}, nil
}
