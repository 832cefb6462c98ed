package storage

import "github.com/arthur-debert/nanoboard/types"

// migration upgrades an envelope from version `from` to `from+1`.
type migration struct {
	from  int
	apply func(state *types.State)
}

// migrations are applied in order to envelopes older than CurrentVersion.
var migrations = []migration{
	// Version 0 is what the browser app wrote. Early cards carried neither
	// activities nor comments, and lists could be stored without cards.
	{from: 0, apply: fillCollections},
}

func migrate(env *Envelope) {
	for _, m := range migrations {
		if env.Version == m.from {
			m.apply(&env.State)
			env.Version = m.from + 1
		}
	}
}

func fillCollections(state *types.State) {
	if state.Boards == nil {
		state.Boards = []*types.Board{}
	}
	for _, board := range state.Boards {
		if board == nil {
			continue
		}
		if board.Lists == nil {
			board.Lists = []*types.List{}
		}
		for _, list := range board.Lists {
			if list == nil {
				continue
			}
			if list.Cards == nil {
				list.Cards = []*types.Card{}
			}
			for _, card := range list.Cards {
				if card == nil {
					continue
				}
				if card.Activities == nil {
					card.Activities = []types.Activity{}
				}
				if card.Comments == nil {
					card.Comments = []types.Comment{}
				}
			}
		}
	}
}
