package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/vibetune/internal/models"
)

var (
	_ models.Repository[*models.LibrarySong] = (*SongRepository)(nil)
	_ models.Repository[*models.Playlist]    = (*PlaylistRepository)(nil)
)

// scanner is satisfied by both [sql.Row] and [sql.Rows].
type scanner interface {
	Scan(dest ...any) error
}

// sequenced lists the tables that own a "<table>_sequence" counter row.
var sequenced = map[string]bool{"songs": true, "playlists": true}

// NextSequence increments the counter of table and returns the new value in one statement.
//
// Sequence numbers give songs their library order and playlists a stable creation order.
// They never appear in CLI output.
func NextSequence(db *sql.DB, table string) (int, error) {
	if !sequenced[table] {
		return 0, fmt.Errorf("no sequence for table %q", table)
	}

	var next int
	query := fmt.Sprintf("UPDATE %s_sequence SET value = value + 1 WHERE id = 1 RETURNING value", table)
	if err := db.QueryRow(query).Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to advance %s sequence: %w", table, err)
	}
	return next, nil
}

// requireRow turns a statement that touched nothing into notFound.
func requireRow(result sql.Result, notFound error, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", notFound, id)
	}
	return nil
}
