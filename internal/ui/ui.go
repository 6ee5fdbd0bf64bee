package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/albumstudio/album-web/internal/domain/album"
	"github.com/albumstudio/album-web/internal/domain/photo"
	"github.com/albumstudio/album-web/internal/domain/video"
	"github.com/albumstudio/album-web/internal/view"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	HomeView ViewState = iota
	PhotosView
	AlbumsView
	AlbumDetailView
	GenerateView
	UploadView
	ConfirmView
)

// confirmKind names the destructive operation awaiting a y/n answer.
type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmDeletePhotos
	confirmDeleteAlbums
)

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	view   ViewState
	prev   ViewState
	photos *photo.Service
	albums *album.Service
	videos *video.Service

	photoCtl *view.Collection[photo.Photo]
	albumCtl *view.Collection[album.Album]

	recentPhotos []photo.Photo
	recentAlbums []album.Album
	homeLoaded   bool
	homeErr      string

	photoList  list.Model
	albumList  list.Model
	detailList list.Model
	detail     *album.Album

	input   textinput.Model
	spin    spinner.Model
	confirm confirmKind

	notice    string
	noticeErr bool

	width  int
	height int
	help   help.Model
	keys   keyMap
}

type recentsLoadedMsg struct {
	photos []photo.Photo
	albums []album.Album
	err    error
}

type photosLoadedMsg struct {
	token  uint64
	photos []photo.Photo
	err    error
}

type albumsLoadedMsg struct {
	token  uint64
	albums []album.Album
	err    error
}

type albumOpenedMsg struct {
	album *album.Album
	err   error
}

type uploadDoneMsg struct {
	result *photo.UploadResult
	err    error
}

type generateDoneMsg struct {
	album *album.Album
	err   error
}

type photosDeletedMsg struct {
	result *photo.BulkDeleteResult
	err    error
}

type albumsDeletedMsg struct {
	result *album.BulkDeleteResult
	err    error
}

type videoStartedMsg struct {
	ack *video.GenerateAck
	err error
}

type videoLinkMsg struct {
	url string
	err error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, photos *photo.Service, albums *album.Service, videos *video.Service) *Model {
	input := textinput.New()
	input.CharLimit = 512

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	photoList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	photoList.Title = "Photos"
	photoList.SetShowHelp(false)

	albumList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	albumList.Title = "Albums"
	albumList.SetShowHelp(false)

	detailList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	detailList.SetShowHelp(false)

	return &Model{
		ctx:        ctx,
		view:       HomeView,
		photos:     photos,
		albums:     albums,
		videos:     videos,
		photoCtl:   view.NewCollection(func(p photo.Photo) string { return p.ID }),
		albumCtl:   view.NewCollection(func(a album.Album) string { return a.ID }),
		photoList:  photoList,
		albumList:  albumList,
		detailList: detailList,
		input:      input,
		spin:       spin,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init loads the home screen.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.fetchRecents())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.photoList.SetSize(msg.Width-4, msg.Height-8)
		m.albumList.SetSize(msg.Width-4, msg.Height-8)
		m.detailList.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch m.view {
		case HomeView:
			return m.handleHomeKeys(msg)
		case PhotosView:
			return m.handlePhotosKeys(msg)
		case AlbumsView:
			return m.handleAlbumsKeys(msg)
		case AlbumDetailView:
			return m.handleDetailKeys(msg)
		case GenerateView, UploadView:
			return m.handleFormKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		}

	case recentsLoadedMsg:
		m.homeLoaded = true
		m.homeErr = errString(msg.err)
		if msg.err == nil {
			m.recentPhotos = msg.photos
			m.recentAlbums = msg.albums
		}
		return m, nil

	case photosLoadedMsg:
		if !m.photoCtl.CompleteFetch(msg.token, msg.photos, errString(msg.err)) {
			return m, nil
		}
		m.syncPhotoList()
		return m, nil

	case albumsLoadedMsg:
		if !m.albumCtl.CompleteFetch(msg.token, msg.albums, errString(msg.err)) {
			return m, nil
		}
		m.syncAlbumList()
		return m, nil

	case albumOpenedMsg:
		if msg.err != nil {
			m.setNotice(errString(msg.err), true)
			m.view = AlbumsView
			return m, nil
		}
		m.detail = msg.album
		m.detailList.Title = m.detail.Name
		items := make([]list.Item, len(m.detail.Images))
		for i, p := range m.detail.Images {
			cover := m.detail.CoverImage != nil && m.detail.CoverImage.ID == p.ID
			items[i] = detailItem{photo: p, cover: cover}
		}
		m.detailList.SetItems(items)
		m.view = AlbumDetailView
		return m, nil

	case uploadDoneMsg:
		m.photoCtl.EndMutation()
		if msg.err != nil {
			m.setNotice("Upload failed: "+errString(msg.err), true)
			return m, nil
		}
		m.setNotice("Uploaded "+msg.result.ImageID, false)
		m.view = PhotosView
		return m, m.fetchPhotos()

	case generateDoneMsg:
		m.albumCtl.EndMutation()
		if msg.err != nil {
			m.setNotice("Generation failed: "+errString(msg.err), true)
			return m, nil
		}
		m.setNotice(fmt.Sprintf("Album %q created", msg.album.Name), false)
		m.view = AlbumsView
		return m, m.fetchAlbums()

	case photosDeletedMsg:
		m.photoCtl.EndMutation()
		if msg.err != nil {
			m.setNotice("Delete failed: "+errString(msg.err), true)
			return m, nil
		}
		if len(msg.result.Failed) > 0 {
			m.photoCtl.SetWarning(fmt.Sprintf("Could not delete %d photos: %s",
				len(msg.result.Failed), strings.Join(msg.result.Failed, ", ")))
		}
		m.photoCtl.ClearSelection()
		m.setNotice(msg.result.Message, false)
		return m, m.fetchPhotos()

	case albumsDeletedMsg:
		m.albumCtl.EndMutation()
		if msg.err != nil {
			m.setNotice("Delete failed: "+errString(msg.err), true)
			return m, nil
		}
		if len(msg.result.Failed) > 0 {
			m.albumCtl.SetWarning(fmt.Sprintf("Could not delete %d albums: %s",
				len(msg.result.Failed), strings.Join(msg.result.Failed, ", ")))
		}
		m.albumCtl.ClearSelection()
		m.setNotice(msg.result.Message, false)
		return m, m.fetchAlbums()

	case videoStartedMsg:
		m.albumCtl.EndMutation()
		if msg.err != nil {
			m.setNotice("Video generation failed: "+errString(msg.err), true)
			return m, nil
		}
		m.setNotice(msg.ack.Message, false)
		return m, nil

	case videoLinkMsg:
		if msg.err != nil {
			m.setNotice("No download link: "+errString(msg.err), true)
			return m, nil
		}
		m.setNotice("Download: "+msg.url, false)
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case HomeView:
		return m.renderHome()
	case PhotosView:
		return m.renderPhotos()
	case AlbumsView:
		return m.renderAlbums()
	case AlbumDetailView:
		return m.renderDetail()
	case GenerateView:
		return m.renderForm("Generate Album", "Theme, or @/path/to/image.jpg")
	case UploadView:
		return m.renderForm("Upload Photo", "/path/to/photo.jpg")
	case ConfirmView:
		return m.renderConfirm()
	default:
		return ""
	}
}

func (m *Model) handleHomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "p":
		return m.gotoPhotos()
	case "a":
		return m.gotoAlbums()
	case "u":
		return m.openForm(UploadView)
	case "g":
		return m.openForm(GenerateView)
	case "r":
		m.homeLoaded = false
		return m, m.fetchRecents()
	}
	return m, nil
}

func (m *Model) handlePhotosKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.photoList.FilterState() == list.Filtering {
		return m.updateLists(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = HomeView
		return m, nil
	case "tab":
		return m.gotoAlbums()
	case " ":
		if item, ok := m.photoList.SelectedItem().(photoItem); ok {
			m.photoCtl.Toggle(item.photo.ID)
			m.syncPhotoList()
		}
		return m, nil
	case "d":
		return m.askDelete(confirmDeletePhotos, m.photoCtl.SelectionCount())
	case "u":
		return m.openForm(UploadView)
	case "r":
		return m, m.fetchPhotos()
	}

	return m.updateLists(msg)
}

func (m *Model) handleAlbumsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.albumList.FilterState() == list.Filtering {
		return m.updateLists(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = HomeView
		return m, nil
	case "tab":
		return m.gotoPhotos()
	case "enter":
		if item, ok := m.albumList.SelectedItem().(albumItem); ok {
			return m, m.openAlbum(item.album.ID)
		}
		return m, nil
	case " ":
		if item, ok := m.albumList.SelectedItem().(albumItem); ok {
			m.albumCtl.Toggle(item.album.ID)
			m.syncAlbumList()
		}
		return m, nil
	case "d":
		return m.askDelete(confirmDeleteAlbums, m.albumCtl.SelectionCount())
	case "g":
		return m.openForm(GenerateView)
	case "r":
		return m, m.fetchAlbums()
	}

	return m.updateLists(msg)
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.detail = nil
		m.view = AlbumsView
		return m, nil
	case "v":
		if !m.albumCtl.BeginMutation(view.BusyGenerating) {
			return m, nil
		}
		return m, m.startVideo(m.detail.ID)
	case "o":
		if !m.detail.HasVideo() {
			m.setNotice("No video for this album yet", true)
			return m, nil
		}
		return m, m.fetchVideoLink(m.detail.ID)
	}

	var cmd tea.Cmd
	m.detailList, cmd = m.detailList.Update(msg)
	return m, cmd
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = m.prev
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		if value == "" {
			m.setNotice("Nothing entered", true)
			return m, nil
		}
		if m.view == UploadView {
			if !m.photoCtl.BeginMutation(view.BusyUploading) {
				return m, nil
			}
			return m, m.uploadPhoto(value)
		}
		if !m.albumCtl.BeginMutation(view.BusyGenerating) {
			return m, nil
		}
		return m, m.generateAlbum(value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "n", "esc":
		m.confirm = confirmNone
		m.view = m.prev
		return m, nil
	case "y":
		kind := m.confirm
		m.confirm = confirmNone
		m.view = m.prev
		switch kind {
		case confirmDeletePhotos:
			if !m.photoCtl.BeginMutation(view.BusyDeleting) {
				return m, nil
			}
			return m, m.deletePhotos(m.photoCtl.Selected())
		case confirmDeleteAlbums:
			if !m.albumCtl.BeginMutation(view.BusyDeleting) {
				return m, nil
			}
			return m, m.deleteAlbums(m.albumCtl.Selected())
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case PhotosView:
		m.photoList, cmd = m.photoList.Update(msg)
	case AlbumsView:
		m.albumList, cmd = m.albumList.Update(msg)
	case AlbumDetailView:
		m.detailList, cmd = m.detailList.Update(msg)
	}
	return m, cmd
}

func (m *Model) gotoPhotos() (tea.Model, tea.Cmd) {
	m.view = PhotosView
	if !m.photoCtl.HasLoaded() && m.photoCtl.Phase() != view.PhaseLoading {
		return m, m.fetchPhotos()
	}
	return m, nil
}

func (m *Model) gotoAlbums() (tea.Model, tea.Cmd) {
	m.view = AlbumsView
	if !m.albumCtl.HasLoaded() && m.albumCtl.Phase() != view.PhaseLoading {
		return m, m.fetchAlbums()
	}
	return m, nil
}

func (m *Model) openForm(v ViewState) (tea.Model, tea.Cmd) {
	m.prev = m.view
	m.view = v
	m.input.Reset()
	m.input.Focus()
	return m, textinput.Blink
}

// askDelete moves to the confirmation view, or stays put when nothing is
// selected.
func (m *Model) askDelete(kind confirmKind, count int) (tea.Model, tea.Cmd) {
	if count == 0 {
		m.setNotice("Nothing selected", true)
		return m, nil
	}
	m.prev = m.view
	m.confirm = kind
	m.view = ConfirmView
	return m, nil
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

func (m *Model) syncPhotoList() {
	photos := m.photoCtl.Items()
	items := make([]list.Item, len(photos))
	for i, p := range photos {
		items[i] = photoItem{photo: p, selected: m.photoCtl.IsSelected(p.ID)}
	}
	m.photoList.SetItems(items)
}

func (m *Model) syncAlbumList() {
	albums := m.albumCtl.Items()
	items := make([]list.Item, len(albums))
	for i, a := range albums {
		items[i] = albumItem{album: a, selected: m.albumCtl.IsSelected(a.ID)}
	}
	m.albumList.SetItems(items)
}

func (m *Model) fetchRecents() tea.Cmd {
	return func() tea.Msg {
		photos, err := m.photos.Recent(m.ctx, 0)
		if err != nil {
			return recentsLoadedMsg{err: err}
		}
		albums, err := m.albums.Recent(m.ctx, 0)
		if err != nil {
			return recentsLoadedMsg{err: err}
		}
		return recentsLoadedMsg{photos: photos, albums: albums}
	}
}

func (m *Model) fetchPhotos() tea.Cmd {
	token := m.photoCtl.BeginFetch()
	return func() tea.Msg {
		photos, err := m.photos.List(m.ctx, -1, -1)
		return photosLoadedMsg{token: token, photos: photos, err: err}
	}
}

func (m *Model) fetchAlbums() tea.Cmd {
	token := m.albumCtl.BeginFetch()
	return func() tea.Msg {
		albums, err := m.albums.List(m.ctx, -1, -1)
		return albumsLoadedMsg{token: token, albums: albums, err: err}
	}
}

func (m *Model) openAlbum(id string) tea.Cmd {
	return func() tea.Msg {
		a, err := m.albums.Get(m.ctx, id)
		return albumOpenedMsg{album: a, err: err}
	}
}

func (m *Model) uploadPhoto(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return uploadDoneMsg{err: err}
		}
		defer f.Close()

		result, err := m.photos.Upload(m.ctx, filepath.Base(path), f)
		return uploadDoneMsg{result: result, err: err}
	}
}

// generateAlbum treats input starting with "@" as a seed image path and
// anything else as a theme.
func (m *Model) generateAlbum(value string) tea.Cmd {
	return func() tea.Msg {
		in := album.GenerateInput{}
		if path, ok := strings.CutPrefix(value, "@"); ok {
			f, err := os.Open(path)
			if err != nil {
				return generateDoneMsg{err: err}
			}
			defer f.Close()
			in.Image = f
			in.ImageName = filepath.Base(path)
		} else {
			in.Theme = value
		}

		a, err := m.albums.Generate(m.ctx, in)
		return generateDoneMsg{album: a, err: err}
	}
}

func (m *Model) deletePhotos(ids []string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.photos.BulkDelete(m.ctx, ids)
		return photosDeletedMsg{result: result, err: err}
	}
}

func (m *Model) deleteAlbums(ids []string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.albums.BulkDelete(m.ctx, ids)
		return albumsDeletedMsg{result: result, err: err}
	}
}

func (m *Model) startVideo(albumID string) tea.Cmd {
	return func() tea.Msg {
		ack, err := m.videos.Generate(m.ctx, albumID)
		return videoStartedMsg{ack: ack, err: err}
	}
}

func (m *Model) fetchVideoLink(albumID string) tea.Cmd {
	return func() tea.Msg {
		url, err := m.videos.DownloadURL(m.ctx, albumID)
		return videoLinkMsg{url: url, err: err}
	}
}

func (m *Model) renderHome() string {
	title := styles.title.Render("Album Studio")

	if !m.homeLoaded {
		return fmt.Sprintf("%s\n%s Loading...\n", title, m.spin.View())
	}
	if m.homeErr != "" {
		return fmt.Sprintf("%s\n%s\n\n%s", title,
			styles.err.Render("Error: "+m.homeErr),
			styles.help.Render("r refresh • q quit"))
	}

	var b strings.Builder
	b.WriteString(title + "\n")

	b.WriteString(styles.ok.Render("Recent photos") + "\n")
	if len(m.recentPhotos) == 0 {
		b.WriteString("  none yet\n")
	}
	for _, p := range m.recentPhotos {
		b.WriteString("  • " + p.ID + "\n")
	}

	b.WriteString("\n" + styles.ok.Render("Recent albums") + "\n")
	if len(m.recentAlbums) == 0 {
		b.WriteString("  none yet\n")
	}
	for _, a := range m.recentAlbums {
		line := fmt.Sprintf("  • %s (%d photos)", a.Name, a.PhotoCount())
		if a.HasVideo() {
			line += " ▶"
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + m.noticeLine())
	b.WriteString(styles.help.Render("p photos • a albums • u upload • g generate • r refresh • q quit"))
	return b.String()
}

func (m *Model) renderPhotos() string {
	status := m.collectionStatus(m.photoCtl.Phase(), m.photoCtl.Busy(), m.photoCtl.Err(), m.photoCtl.Warning())
	helpKeys := []key.Binding{m.keys.toggle, m.keys.del, m.keys.upload, m.keys.refresh, m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s\n%s%s%s", m.photoList.View(), status, m.noticeLine(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderAlbums() string {
	status := m.collectionStatus(m.albumCtl.Phase(), m.albumCtl.Busy(), m.albumCtl.Err(), m.albumCtl.Warning())
	helpKeys := []key.Binding{m.keys.enter, m.keys.toggle, m.keys.del, m.keys.generate, m.keys.refresh, m.keys.quit}
	return fmt.Sprintf("%s\n%s%s%s", m.albumList.View(), status, m.noticeLine(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderDetail() string {
	if m.detail == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.title.Render(m.detail.Name) + "\n")
	if m.detail.Description != "" {
		b.WriteString(m.detail.Description + "\n")
	}
	b.WriteString(fmt.Sprintf("%d photos", m.detail.PhotoCount()))
	if m.detail.HasVideo() {
		b.WriteString(" • " + styles.ok.Render("video ready"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.detailList.View())
	b.WriteString("\n")
	if m.albumCtl.Busy() != view.BusyNone {
		b.WriteString(fmt.Sprintf("%s %s...\n", m.spin.View(), m.albumCtl.Busy()))
	}
	b.WriteString(m.noticeLine())

	helpKeys := []key.Binding{m.keys.video, m.keys.download, m.keys.back, m.keys.quit}
	b.WriteString(m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) renderForm(title, placeholder string) string {
	m.input.Placeholder = placeholder

	busy := m.photoCtl.Busy()
	if m.view == GenerateView {
		busy = m.albumCtl.Busy()
	}

	var working string
	if busy != view.BusyNone {
		working = fmt.Sprintf("\n%s %s...\n", m.spin.View(), busy)
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s\n%s\n%s%s%s",
		styles.title.Render(title), m.input.View(), working, m.noticeLine(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderConfirm() string {
	var question string
	switch m.confirm {
	case confirmDeletePhotos:
		question = fmt.Sprintf("Delete %d selected photos?", m.photoCtl.SelectionCount())
	case confirmDeleteAlbums:
		question = fmt.Sprintf("Delete %d selected albums?", m.albumCtl.SelectionCount())
	}

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	return fmt.Sprintf("%s\n%s\n\n%s",
		styles.title.Render("Confirm"),
		styles.warn.Render(question),
		m.help.ShortHelpView(helpKeys))
}

func (m *Model) collectionStatus(phase view.Phase, busy view.Busy, errMsg, warnMsg string) string {
	var b strings.Builder
	if phase == view.PhaseLoading {
		b.WriteString(m.spin.View() + " loading...\n")
	}
	if busy != view.BusyNone {
		b.WriteString(fmt.Sprintf("%s %s...\n", m.spin.View(), busy))
	}
	if errMsg != "" {
		b.WriteString(styles.err.Render("Error: "+errMsg) + "\n")
	}
	if warnMsg != "" {
		b.WriteString(styles.warn.Render(warnMsg) + "\n")
	}
	return b.String()
}

func (m *Model) noticeLine() string {
	if m.notice == "" {
		return ""
	}
	if m.noticeErr {
		return styles.err.Render(m.notice) + "\n"
	}
	return styles.ok.Render(m.notice) + "\n"
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
