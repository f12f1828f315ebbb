// Command tunedeck is a terminal music player: a local library stored in
// SQLite, playback through libmpv, and track search against the Spotify
// catalog once a bearer token is supplied.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"tunedeck/internal/adapter/catalog/spotify"
	"tunedeck/internal/app"
	"tunedeck/internal/config"
	"tunedeck/internal/logger"
)

func main() {
	// A .env file is optional; the environment wins either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logger.NewLogger(logger.Config{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: cfg.LogFormat,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "startup:", err)
		os.Exit(1)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
		_ = a.Shutdown()
		os.Exit(0)
	}()

	runREPL(ctx, a)

	_ = a.Shutdown()
}

func runREPL(ctx context.Context, a *app.App) {
	fmt.Println("tunedeck. Type 'help' for commands, 'quit' to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "quit", "exit":
			return
		case "help":
			printHelp()
		case "songs":
			listSongs(a)
		case "favorites":
			listFavorites(ctx, a)
		case "play":
			playIndex(a, arg)
		case "toggle", "p":
			report(a.Player.TogglePlayPause())
		case "next", "n":
			report(a.Player.Next())
		case "prev":
			report(a.Player.Previous())
		case "seek":
			seek(a, arg)
		case "status":
			printStatus(a)
		case "import":
			importSong(ctx, a, arg)
		case "fav":
			toggleFavorite(ctx, a, arg)
		case "del":
			deleteSong(ctx, a, arg)
		case "playlists":
			listPlaylists(a)
		case "mkpl":
			makePlaylist(ctx, a, arg)
		case "addpl":
			addToPlaylist(ctx, a, arg)
		case "pl":
			showPlaylist(a, arg)
		case "search":
			searchCatalog(ctx, a, arg)
		case "add":
			addSearchResult(ctx, a, arg)
		case "preview":
			previewSearchResult(a, arg)
		case "auth":
			fmt.Println("Open in a browser, then paste the redirect URL with 'token':")
			fmt.Println(a.AuthorizeURL())
		case "token":
			installToken(a, arg)
		default:
			fmt.Println("unknown command; try 'help'")
		}
	}
}

func printHelp() {
	fmt.Print(`  songs              list the library
  favorites          list favorite songs
  play <n>           play song number n
  toggle | p         play/pause
  next | n, prev     move through the library
  seek <seconds>     jump to a position
  status             show what is playing
  import <path>      add a local file to the library
  fav <n>            toggle favorite on song n
  del <n>            delete song n
  playlists          list playlists
  mkpl <name>        create a playlist
  addpl <pl> <n>     add song n to playlist number pl
  pl <n>             show playlist n
  search <text>      search the catalog
  add <n>            import search result n into the library
  preview <n>        play search result n without saving it
  auth               print the authorization URL
  token <url|token>  install a bearer token
  quit
`)
}

func report(err error) {
	if err != nil {
		fmt.Println("error:", err)
	}
}

func listSongs(a *app.App) {
	songs := a.Library.Songs()
	if len(songs) == 0 {
		fmt.Println("library is empty; try 'import <path>'")
		return
	}
	for i, s := range songs {
		marker := " "
		if s.IsFavorite {
			marker = "*"
		}
		fmt.Printf("%3d %s %s - %s\n", i+1, marker, s.Title, s.Artist)
	}
}

func listFavorites(ctx context.Context, a *app.App) {
	songs, err := a.Library.Favorites(ctx)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, s := range songs {
		fmt.Printf("  * %s - %s\n", s.Title, s.Artist)
	}
}

func playIndex(a *app.App, arg string) {
	songs := a.Library.Songs()
	i, ok := parseIndex(arg, len(songs))
	if !ok {
		return
	}
	report(a.Player.Play(songs[i]))
}

func seek(a *app.App, arg string) {
	secs, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Println("usage: seek <seconds>")
		return
	}
	report(a.Player.Seek(time.Duration(secs) * time.Second))
}

func printStatus(a *app.App) {
	state := a.Player.State()
	if state.CurrentSong == nil {
		fmt.Println("nothing loaded")
		return
	}
	verb := "paused"
	if state.Playing {
		verb = "playing"
	}
	fmt.Printf("%s: %s - %s [%s / %s]\n", verb,
		state.CurrentSong.Title, state.CurrentSong.Artist,
		formatDuration(state.Position), formatDuration(state.Duration))
}

func importSong(ctx context.Context, a *app.App, path string) {
	if path == "" {
		fmt.Println("usage: import <path>")
		return
	}
	song, err := a.Library.Import(ctx, path)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("imported %s - %s\n", song.Title, song.Artist)
}

func toggleFavorite(ctx context.Context, a *app.App, arg string) {
	songs := a.Library.Songs()
	i, ok := parseIndex(arg, len(songs))
	if !ok {
		return
	}
	report(a.Library.ToggleFavorite(ctx, songs[i].ID))
}

func deleteSong(ctx context.Context, a *app.App, arg string) {
	songs := a.Library.Songs()
	i, ok := parseIndex(arg, len(songs))
	if !ok {
		return
	}
	report(a.Library.DeleteSong(ctx, songs[i].ID))
}

func listPlaylists(a *app.App) {
	playlists := a.Library.Playlists()
	if len(playlists) == 0 {
		fmt.Println("no playlists; try 'mkpl <name>'")
		return
	}
	for i, p := range playlists {
		fmt.Printf("%3d  %s (%d songs)\n", i+1, p.Name, len(p.SongIDs))
	}
}

func makePlaylist(ctx context.Context, a *app.App, name string) {
	playlist, err := a.Library.CreatePlaylist(ctx, name)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("created playlist %q\n", playlist.Name)
}

func addToPlaylist(ctx context.Context, a *app.App, arg string) {
	plArg, songArg, _ := strings.Cut(arg, " ")
	playlists := a.Library.Playlists()
	pi, ok := parseIndex(plArg, len(playlists))
	if !ok {
		return
	}
	songs := a.Library.Songs()
	si, ok := parseIndex(strings.TrimSpace(songArg), len(songs))
	if !ok {
		return
	}
	report(a.Library.AddSongToPlaylist(ctx, playlists[pi].ID, songs[si].ID))
}

func showPlaylist(a *app.App, arg string) {
	playlists := a.Library.Playlists()
	i, ok := parseIndex(arg, len(playlists))
	if !ok {
		return
	}
	songs, err := a.Library.PlaylistSongs(playlists[i].ID)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%s:\n", playlists[i].Name)
	for j, s := range songs {
		fmt.Printf("%3d  %s - %s\n", j+1, s.Title, s.Artist)
	}
}

func searchCatalog(ctx context.Context, a *app.App, query string) {
	if !a.Search.HasToken() {
		fmt.Println("no token installed; run 'auth' first")
	}
	results := a.Search.Search(ctx, query)
	if len(results) == 0 {
		fmt.Println("no results")
		return
	}
	for i, track := range results {
		preview := ""
		if !track.Playable() {
			preview = " (no preview)"
		}
		fmt.Printf("%3d  %s - %s%s\n", i+1, track.Name, strings.Join(track.Artists, ", "), preview)
	}
}

func addSearchResult(ctx context.Context, a *app.App, arg string) {
	results := a.Search.Results()
	i, ok := parseIndex(arg, len(results))
	if !ok {
		return
	}
	song, err := a.Library.ImportRemote(ctx, results[i])
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("added %s - %s\n", song.Title, song.Artist)
}

// previewSearchResult plays a catalog result's preview clip directly. The
// track never enters the library, so next/prev from it are no-ops.
func previewSearchResult(a *app.App, arg string) {
	results := a.Search.Results()
	i, ok := parseIndex(arg, len(results))
	if !ok {
		return
	}
	song, ok := results[i].ToSong(uuid.NewString())
	if !ok {
		fmt.Println("track has no preview clip")
		return
	}
	report(a.Player.Play(song))
}

func installToken(a *app.App, arg string) {
	if arg == "" {
		fmt.Println("usage: token <redirect-url|token>")
		return
	}
	token := arg
	if strings.Contains(arg, "://") {
		parsed, err := spotify.ParseCallback(arg)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		token = parsed
	}
	a.Search.SetAccessToken(token)
	fmt.Println("token installed")
}

// parseIndex converts a 1-based list argument, reporting usage problems.
func parseIndex(arg string, length int) (int, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > length {
		fmt.Printf("expected a number between 1 and %d\n", length)
		return 0, false
	}
	return n - 1, true
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
