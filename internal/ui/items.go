package ui

import (
	"fmt"

	"github.com/albumstudio/album-web/internal/domain/album"
	"github.com/albumstudio/album-web/internal/domain/photo"
)

// photoItem wraps [photo.Photo] to implement list.Item.
type photoItem struct {
	photo    photo.Photo
	selected bool
}

func (i photoItem) FilterValue() string { return i.photo.ID }

func (i photoItem) Title() string {
	title := i.photo.ID
	if !i.photo.HasMedia() {
		title = fmt.Sprintf("%s (no media)", title)
	}
	if i.selected {
		return styles.marker.Render("◉ ") + title
	}
	return "○ " + title
}

func (i photoItem) Description() string {
	if i.photo.CreatedAt != "" {
		return i.photo.CreatedAt
	}
	return i.photo.URL
}

// albumItem wraps [album.Album] to implement list.Item.
type albumItem struct {
	album    album.Album
	selected bool
}

func (i albumItem) FilterValue() string { return i.album.Name }

func (i albumItem) Title() string {
	title := i.album.Name
	if title == "" {
		title = i.album.ID
	}
	if i.selected {
		return styles.marker.Render("◉ ") + title
	}
	return "○ " + title
}

func (i albumItem) Description() string {
	desc := fmt.Sprintf("%d photos", i.album.PhotoCount())
	if i.album.HasVideo() {
		desc = fmt.Sprintf("%s • video ready", desc)
	}
	if i.album.Description != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.album.Description)
	}
	return desc
}

// detailItem renders one photo inside the album detail view.
type detailItem struct {
	photo photo.Photo
	cover bool
}

func (i detailItem) FilterValue() string { return i.photo.ID }

func (i detailItem) Title() string {
	if i.cover {
		return styles.ok.Render("★ ") + i.photo.ID
	}
	return i.photo.ID
}

func (i detailItem) Description() string {
	if i.photo.URL == "" {
		return "no media"
	}
	return i.photo.URL
}
