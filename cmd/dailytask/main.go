package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kolisa/Daily-task-manager/internal/app"
	"github.com/kolisa/Daily-task-manager/internal/config"
	"github.com/kolisa/Daily-task-manager/internal/db"
	"github.com/kolisa/Daily-task-manager/internal/model"
	"github.com/kolisa/Daily-task-manager/internal/quickadd"
	"github.com/kolisa/Daily-task-manager/internal/ui"
	"github.com/kolisa/Daily-task-manager/internal/ui/theme"
)

const version = "0.1.0"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "add":
			handleAdd(os.Args[2:])
			return
		case "version", "--version", "-v":
			fmt.Printf("dailytask v%s\n", version)
			return
		case "help", "--help", "-h":
			printHelp()
			return
		}
	}

	runTUI()
}

// handleAdd inserts a task from the command line without starting the
// TUI. No instance lock is taken for a quick insert; SQLite serializes
// the write against a running instance.
func handleAdd(args []string) {
	line := strings.TrimSpace(strings.Join(args, " "))
	if line == "" {
		fmt.Fprintln(os.Stderr, "Usage: dailytask add <title> [@org] [!priority] [#type] [~size] [+HH:MM] [every:pattern] [for:30m]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	orgs, err := database.GetOrganizations()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading organizations: %v\n", err)
		os.Exit(1)
	}

	parsed := quickadd.Parse(line, orgs, time.Now())
	for _, name := range parsed.TagNames {
		tag, err := database.GetOrCreateTag(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating tag %q: %v\n", name, err)
			os.Exit(1)
		}
		parsed.Task.TagIDs = append(parsed.Task.TagIDs, tag.ID)
	}

	if err := database.SaveTask(parsed.Task); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving task: %v\n", err)
		os.Exit(1)
	}

	t := parsed.Task
	fmt.Printf("Added: %s\n", t.Title)
	fmt.Printf("  type %s, size %s, priority %s\n", t.Type, t.Size, t.Priority)
	if org, ok := model.OrgByID(orgs, t.OrgID); ok {
		fmt.Printf("  org: %s\n", org.Label)
	}
	if t.ScheduledTime != "" {
		fmt.Printf("  scheduled: %s\n", t.ScheduledTime)
	}
	if t.Recurrence != model.RecurNone {
		fmt.Printf("  repeats: %s\n", t.Recurrence)
	}
	if t.DurationMinutes > 0 {
		fmt.Printf("  auto-completes after %dm\n", t.DurationMinutes)
	}
}

func runTUI() {
	viewFlag := flag.String("view", "", "Initial view: tasks, dashboard, or focus")
	themeFlag := flag.String("theme", "", "Color theme: nord, dracula, or gruvbox")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	themeName := cfg.Theme
	if *themeFlag != "" {
		themeName = *themeFlag
	}
	if t, ok := theme.ByName(themeName); ok {
		theme.SetTheme(t)
	}

	application, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	root := ui.NewRootModel(application).WithInitialView(*viewFlag)

	p := tea.NewProgram(root, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		application.Close()
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Printf(`dailytask v%s - terminal task timer and productivity tracker

Usage:
  dailytask                Start the TUI
  dailytask add <line>     Add a task without opening the TUI
  dailytask version        Print version
  dailytask help           Show this help

Flags:
  --view <name>            Initial view: tasks, dashboard, focus
  --theme <name>           Color theme: nord, dracula, gruvbox

Quick-add syntax (any order, unknown tokens join the title):
  @org                     Assign organization (by id or label)
  !high !medium !low       Priority
  #feature #bug #meeting   Task type; unknown #tokens become tags
  ~xs ~s ~m ~l ~xl ~xxl    Size estimate
  +HH:MM                   Scheduled start time (auto-starts daily)
  every:daily              Recurrence: daily, weekdays, weekly,
                           biweekly, monthly, or mon,wed,fri
  for:30m                  Fixed duration; timer stops itself

Examples:
  dailytask add "fix login flow @webafrica !high #bug ~l"
  dailytask add "standup @lexisnexis #meeting +09:00 every:weekdays for:15m"

Keys (TUI):
  1 / 2 / 3                Tasks, Dashboard, Focus views
  space                    Start or pause the selected timer
  s                        Stop timer (prompts for a quality rating)
  tab                      Toggle completion
  a                        Quick-add prompt
  ?                        Full key reference
`, version)
}
