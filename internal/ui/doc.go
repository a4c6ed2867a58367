// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI is the observer of the visualizer:
//  1. [LibraryView] : Browse the library, filter by mood, play songs and start runs
//  2. [SortView] : Watch a sort run, with the compared and swapped rows highlighted
//  3. [GraphView] : Watch a recommend or path-find traversal visit the similarity graph
//  4. [PlaylistListView] : Create, open and delete playlists
//  5. [PlaylistSongsView] : Play or remove the songs of one playlist
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Step, progress and result events flow from the visualizer through a channel that is drained one receive per command,
// so Update applies them one at a time in emission order and is the only goroutine that touches view state.
// Library edits that would rebuild the graph are refused while a run is in flight.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
