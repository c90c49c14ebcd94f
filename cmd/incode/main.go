// Package main provides the CLI entrypoint for incode.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/incode/internal/battle"
	"github.com/verte-zerg/incode/internal/catalog"
	"github.com/verte-zerg/incode/internal/config"
	"github.com/verte-zerg/incode/internal/menu"
	"github.com/verte-zerg/incode/internal/model"
	"github.com/verte-zerg/incode/internal/stats"
	"github.com/verte-zerg/incode/internal/store"
	"github.com/verte-zerg/incode/internal/tui"
)

var (
	practiceGame string

	battleGame      string
	battleQuestions int
	battleCountdown int
)

func main() {
	config.LoadEnv()
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "incode",
		Short:         "Learn command-line syntax by typing it",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runMenuCmd,
	}

	rootCmd.AddCommand(newPracticeCmd())
	rootCmd.AddCommand(newBattleCmd())
	rootCmd.AddCommand(newGamesCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// session is the outcome of one full-screen program.
type session interface {
	tea.Model
	Back() bool
	Exit() bool
}

func runMenuCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := model.Config{
		BattleQuestions: valueOr(fileCfg.Battle.Questions, battle.DefaultQuestions),
		BattleCountdown: valueOr(fileCfg.Battle.Countdown, battle.DefaultCountdown),
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore(st)

	for {
		games, err := st.ListGames(ctx)
		if err != nil {
			return fmt.Errorf("failed to list games: %w", err)
		}
		picker := menu.New(games, func(gameID string) ([]model.Lesson, error) {
			_, lessons, err := st.LoadGame(ctx, gameID)
			return lessons, err
		})
		if _, err := tea.NewProgram(picker, tea.WithAltScreen()).Run(); err != nil {
			return fmt.Errorf("failed to run menu: %w", err)
		}
		choice := picker.Choice()
		if choice.Action == menu.ActionNone {
			return nil
		}
		cfg.GameID = choice.GameID

		var view session
		switch choice.Action {
		case menu.ActionBattle:
			view, err = newBattleSession(ctx, st, cfg)
		default:
			view, err = newBoardSession(ctx, st, cfg)
		}
		if err != nil {
			return err
		}
		if err := runSession(view); err != nil {
			return err
		}
		if view.Exit() {
			return nil
		}
	}
}

func newPracticeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "practice",
		Short: "Type through the lessons of a game",
		Args:  cobra.NoArgs,
		RunE:  runPracticeCmd,
	}
	cmd.Flags().StringVar(&practiceGame, "game", "", "game id (default: first game)")
	return cmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "game", &practiceGame, fileCfg.Practice.Game)

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore(st)

	gameID, err := resolveGameID(ctx, st, practiceGame)
	if err != nil {
		return err
	}
	view, err := newBoardSession(ctx, st, model.Config{GameID: gameID})
	if err != nil {
		return err
	}
	return runSession(view)
}

func newBattleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "battle",
		Short: "Answer random commands against the clock",
		Args:  cobra.NoArgs,
		RunE:  runBattleCmd,
	}
	cmd.Flags().StringVar(&battleGame, "game", "", "game id (default: first game)")
	cmd.Flags().IntVar(&battleQuestions, "questions", battle.DefaultQuestions, "number of questions")
	cmd.Flags().IntVar(&battleCountdown, "countdown", battle.DefaultCountdown, "countdown seconds before the first question")
	return cmd
}

func runBattleCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "game", &battleGame, fileCfg.Battle.Game)
	applyIntConfig(cmd, "questions", &battleQuestions, fileCfg.Battle.Questions)
	applyIntConfig(cmd, "countdown", &battleCountdown, fileCfg.Battle.Countdown)

	cfg := model.Config{
		BattleQuestions: battleQuestions,
		BattleCountdown: battleCountdown,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore(st)

	cfg.GameID, err = resolveGameID(ctx, st, battleGame)
	if err != nil {
		return err
	}
	view, err := newBattleSession(ctx, st, cfg)
	if err != nil {
		return err
	}
	return runSession(view)
}

func newGamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "games",
		Short: "List available games",
		Args:  cobra.NoArgs,
		RunE:  runGamesCmd,
	}
}

func runGamesCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore(st)

	games, err := st.ListGames(ctx)
	if err != nil {
		return fmt.Errorf("failed to list games: %w", err)
	}
	if err := stats.RenderGames(cmd.OutOrStdout(), games, 0); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import games and lessons from a .toml or .xlsx file",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cat, err := catalog.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore(st)

	res, err := st.ImportCatalog(ctx, cat)
	if err != nil {
		return fmt.Errorf("failed to import catalog: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Imported %d games, %d lessons, %d arguments\n",
		res.Games, res.Lessons, res.Arguments); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func openStore(ctx context.Context) (*store.Store, error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	seedDefaultCatalog(ctx, st)
	return st, nil
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		logErrf("failed to close db: %v\n", err)
	}
}

// seedDefaultCatalog imports the built-in catalog into an empty database.
// Failures are reported but not fatal.
func seedDefaultCatalog(ctx context.Context, st *store.Store) {
	n, err := st.CountGames(ctx)
	if err != nil {
		logErrf("failed to count games: %v\n", err)
		return
	}
	if n > 0 {
		return
	}
	cat, err := catalog.Default()
	if err != nil {
		logErrf("failed to load default catalog: %v\n", err)
		return
	}
	res, err := st.ImportCatalog(ctx, cat)
	if err != nil {
		logErrf("failed to seed default catalog: %v\n", err)
		return
	}
	logErrln(fmt.Sprintf("Seeded default catalog (%d games, %d lessons)", res.Games, res.Lessons))
}

func resolveGameID(ctx context.Context, st *store.Store, gameID string) (string, error) {
	if gameID != "" {
		return gameID, nil
	}
	games, err := st.ListGames(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list games: %w", err)
	}
	if len(games) == 0 {
		return "", fmt.Errorf("no games available; import a catalog with: incode import FILE")
	}
	return games[0].ID, nil
}

func loadLessons(ctx context.Context, st *store.Store, gameID string) (model.Game, []model.Lesson, error) {
	game, lessons, err := st.LoadGame(ctx, gameID)
	if err != nil {
		if errors.Is(err, store.ErrGameNotFound) {
			return model.Game{}, nil, fmt.Errorf("game %q not found (see: incode games)", gameID)
		}
		return model.Game{}, nil, fmt.Errorf("failed to load game: %w", err)
	}
	if err := catalog.Prepare(lessons); err != nil {
		return model.Game{}, nil, fmt.Errorf("failed to load game %q: %w", gameID, err)
	}
	return game, lessons, nil
}

func newBoardSession(ctx context.Context, st *store.Store, cfg model.Config) (session, error) {
	game, lessons, err := loadLessons(ctx, st, cfg.GameID)
	if err != nil {
		return nil, err
	}
	return tui.NewBoard(game, lessons), nil
}

func newBattleSession(ctx context.Context, st *store.Store, cfg model.Config) (session, error) {
	game, lessons, err := loadLessons(ctx, st, cfg.GameID)
	if err != nil {
		return nil, err
	}
	return tui.NewBattleView(game, lessons, battle.Options{
		Questions: cfg.BattleQuestions,
		Countdown: cfg.BattleCountdown,
	}), nil
}

func runSession(view session) error {
	if _, err := tea.NewProgram(view, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func valueOr(value *int, fallback int) int {
	if value == nil {
		return fallback
	}
	return *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# incode configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# game = "git"          # Game id opened by 'incode practice'

[battle]
# game = "git"          # Game id opened by 'incode battle'
# questions = %d         # Questions per battle
# countdown = %d         # Countdown seconds before the first question
`,
		battle.DefaultQuestions,
		battle.DefaultCountdown,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.BattleQuestions <= 0 {
		return fmt.Errorf("--questions must be > 0")
	}
	if cfg.BattleCountdown <= 0 {
		return fmt.Errorf("--countdown must be > 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
