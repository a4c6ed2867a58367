// Package repositories implements SQLite persistence for the music library and playlists.
//
// Each repository handles CRUD operations with atomic sequence generation for stable ordering.
// All repositories support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
//
// Key Implementations:
//   - [SongRepository] : library songs, unique by (title, artist), filterable by mood
//   - [PlaylistRepository] : named playlists with ordered, duplicate-free membership
//
// The default library is embedded as TOML and loaded with [Seed].
// [NextSequence] advances the per-table counters that order songs and playlists.
package repositories
