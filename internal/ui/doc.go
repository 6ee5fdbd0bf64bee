// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow over the album backend:
//  1. [HomeView] : Recent photos and albums at a glance
//  2. [PhotosView] : Browse the photo library with multi-select and bulk delete
//  3. [AlbumsView] : Browse albums with multi-select and bulk delete
//  4. [AlbumDetailView] : One album's photos plus video generation and download
//  5. [GenerateView] : Create an album from a theme or a seed image
//  6. [UploadView] : Upload a photo from a local path
//  7. [ConfirmView] : Confirm destructive operations
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View
// pattern. Every backend call runs as a tea.Cmd and reports back through a
// message; list state lives in [view.Collection] controllers so stale fetches
// and double-fired mutations are discarded before they touch the screen.
//
// Keyboard navigation uses vim-style bindings (j/k, space, enter, esc, y/n, q)
// with contextual help displayed via charmbracelet/bubbles/help.
package ui
