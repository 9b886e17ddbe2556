package usecase

import (
	"context"
	"encoding/json"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

// Bounds for shared music-lab patterns. The lab itself is a client-side
// diversion; the server only relays a sanitized pattern to the lobby.
const (
	musicMaxRows     = 16
	musicMaxSteps    = 32
	musicMinTempo    = 120
	musicMaxTempo    = 1000
	musicMaxLabelLen = 12
	musicMaxShareID  = 42
)

func (that *GameManager) handleMusicLabShare(_ context.Context, player *entity.Player, raw json.RawMessage) {
	if player.InGame() {
		that.send(player, newErrorMsg(apperror.ErrMusicOnlyInLobby.Error()))
		return
	}

	var payload musicSharePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		that.send(player, newErrorMsg(apperror.ErrInvalidMusic.Error()))
		return
	}

	state, err := sanitizeMusicShare(&payload)
	if err != nil {
		that.send(player, newErrorMsg(err.Error()))
		return
	}

	state.Author = player.Name
	state.Timestamp = nowMillis()

	that.lobbyMusic = state

	for recipient := range that.players {
		if !recipient.InGame() {
			that.send(recipient, lobbyMusicMsg{Type: "lobbyMusicUpdate", musicState: state})
		}
	}
}

// sendLobbyMusicSnapshot - replays the current shared pattern, if any, to a
// fresh connection.
func (that *GameManager) sendLobbyMusicSnapshot(player *entity.Player) {
	that.send(player, lobbyMusicMsg{Type: "lobbyMusic", musicState: that.lobbyMusic})
}

// sanitizeMusicShare - clamps every dimension of the pattern to its bound.
func sanitizeMusicShare(payload *musicSharePayload) (*musicState, error) {
	if len(payload.Pattern) == 0 {
		return nil, apperror.ErrInvalidMusic
	}

	steps := payload.Steps
	if steps <= 0 {
		steps = len(payload.Pattern[0])
	}
	if steps <= 0 {
		return nil, apperror.ErrInvalidMusic
	}
	if steps > musicMaxSteps {
		steps = musicMaxSteps
	}

	rowCount := len(payload.Pattern)
	if rowCount > musicMaxRows {
		rowCount = musicMaxRows
	}

	pattern := make([][]bool, rowCount)
	activeCount := 0
	for rowIdx := range pattern {
		row := make([]bool, steps)
		source := payload.Pattern[rowIdx]
		for stepIdx := 0; stepIdx < steps && stepIdx < len(source); stepIdx++ {
			row[stepIdx] = source[stepIdx]
			if row[stepIdx] {
				activeCount++
			}
		}
		pattern[rowIdx] = row
	}

	notes := make([]musicNote, rowCount)
	for idx := range notes {
		note := musicNote{Semitone: float64(idx * 2)}
		if idx < len(payload.Notes) {
			note = payload.Notes[idx]
			if len(note.Label) > musicMaxLabelLen {
				note.Label = note.Label[:musicMaxLabelLen]
			}
			if note.Semitone < -48 {
				note.Semitone = -48
			}
			if note.Semitone > 72 {
				note.Semitone = 72
			}
		}
		notes[idx] = note
	}

	tempo := payload.Tempo
	if tempo < musicMinTempo {
		tempo = musicMinTempo
	}
	if tempo > musicMaxTempo {
		tempo = musicMaxTempo
	}

	shareID := payload.ShareID
	if len(shareID) > musicMaxShareID {
		shareID = shareID[:musicMaxShareID]
	}

	return &musicState{
		Pattern:     pattern,
		Steps:       steps,
		Notes:       notes,
		Tempo:       tempo,
		ShareID:     shareID,
		ActiveCount: activeCount,
	}, nil
}
