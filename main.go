package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/codifyhq/termcodify/forum"
	"github.com/codifyhq/termcodify/infra/auth"
	"github.com/codifyhq/termcodify/infra/codify"
	"github.com/codifyhq/termcodify/infra/config"
	"github.com/codifyhq/termcodify/infra/editor"
	"github.com/codifyhq/termcodify/infra/logging"
	"github.com/codifyhq/termcodify/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cliMode int

const (
	cliRun cliMode = iota
	cliVersion
	cliHelp
	cliInvalid
)

func parseCLIArgs(args []string) (cliMode, string) {
	if len(args) == 0 {
		return cliRun, ""
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliVersion, ""
	case "--help", "-h", "help":
		return cliHelp, ""
	default:
		return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))
	}
}

func usage() string {
	return "Usage: termcodify [--version|-version|-v] [--help|-h]"
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

func main() {
	mode, msg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("termcodify %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", msg, usage())
	}

	// 1. Load config: optional .env, then env > config file > defaults.
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, closeLog, err := logging.Open(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = closeLog() }()

	// 2. Build infrastructure.
	tokenProvider := auth.NewFileTokenProvider(cfg.TokenPath)
	token, err := tokenProvider.AccessToken()
	if err != nil {
		fmt.Fprintf(os.Stderr, "auth: %v\n", err)
		os.Exit(1)
	}
	userID, err := auth.UserIDFromToken(token)
	if err != nil {
		// A malformed token still authenticates at the gateway; we just
		// cannot mark own replies or normalize bookmarks without the ID.
		log.Warn("could not derive user id from token", "err", err)
	}

	httpClient := codify.NewClient(cfg.ServerURL, tokenProvider, log)

	// 3. Build services (concrete types satisfy app.* interfaces).
	questionSvc := codify.NewQuestionService(httpClient, userID)
	replySvc := codify.NewReplyService(httpClient)
	editorSvc := editor.NewEnvEditor()

	store := forum.NewStore(questionSvc, replySvc, log)

	uiState, _ := config.LoadUIState(cfg.UIStatePath)

	// 4. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Store:         store,
		Editor:        editorSvc,
		UserID:        userID,
		InitialSearch: uiState.Search,
		InitialSort:   uiState.Sort,
		SaveUIState: func(search, sort string) error {
			return config.SaveUIState(cfg.UIStatePath, config.UIState{Search: search, Sort: sort})
		},
	})

	// 5. Run.
	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "termcodify: %v\n", err)
		os.Exit(1)
	}
}
