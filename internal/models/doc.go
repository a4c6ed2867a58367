// Package models defines the domain entities for the vibetune music browser.
//
// The package contains two categories of types:
//
// 1. Values: lightweight records passed between the library, the visualizers and the UI
//   - [Song] : one catalog entry (title, artist, mood, energy, valence, duration)
//   - [SongKey] : the (title, artist) identity of a song
//   - [Mood] : the small fixed vocabulary used as the category tag
//
// 2. Persistent Entities: database-backed models with full lifecycle management
//   - [LibrarySong] : a song stored in the library
//   - [Playlist] : a named, ordered, duplicate-free list of songs
//
// All persistent entities implement the [Model] interface providing ID, timestamps, validation and soft delete support.
// The [Repository] interface defines standard CRUD operations for database access.
package models
