package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/mytodo/internal/model"
	"github.com/idilsaglam/mytodo/internal/ui"
)

// Store is the task store the loop drives.
type Store interface {
	Add(title string, due *model.Date) model.Task
	List() []model.Task
	TryGet(id int) (model.Task, bool)
	Complete(id int) bool
	Toggle(id int) bool
	Delete(id int) bool
	Seed()
	Stats() (done, pending int)
}

// Options tune output behavior from root flags.
type Options struct {
	Group     bool // list grouped by pending/done
	AssumeYes bool // skip the rm confirmation
	Logger    *log.Logger

	// Interactive opens the full-screen list. Nil disables the tui command.
	Interactive func(Store) error
}

// maxLineBytes bounds one input line; longer lines are dropped and reported.
const maxLineBytes = 1 << 20

var errLineTooLong = errors.New("line too long")

// Runner reads commands line by line and applies them to a Store.
type Runner struct {
	store  Store
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
	opt    Options
	logger *log.Logger
}

func NewRunner(in io.Reader, out, errOut io.Writer, store Store, opt Options) *Runner {
	logger := opt.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		store:  store,
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
		opt:    opt,
		logger: logger,
	}
}

// Run starts the loop and returns an exit code (0 ok, 1 error).
// An empty line, EOF, quit or exit ends the loop.
func Run(in io.Reader, out, errOut io.Writer, store Store, opt Options) int {
	return NewRunner(in, out, errOut, store, opt).Loop()
}

func (r *Runner) Loop() int {
	fmt.Fprintln(r.out, ui.Current().Title.Render("== MyTodo Console =="))
	fmt.Fprintln(r.out, ui.Current().Muted.Render("Type `help` for commands, an empty line to exit."))
	for {
		line, err := r.prompt("> ")
		if errors.Is(err, errLineTooLong) {
			ui.Fail(r.errOut, fmt.Sprintf("input line too long (max %d bytes), ignored", maxLineBytes))
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			ui.Fail(r.errOut, "read input: "+err.Error())
			return 1
		}
		args := strings.Fields(line)
		if len(args) == 0 || args[0] == "quit" || args[0] == "exit" {
			break
		}
		code := r.Exec(args)
		r.logger.Debug("command finished", "cmd", args[0], "code", code)
	}
	fmt.Fprintln(r.out, "Bye!")
	return 0
}

func (r *Runner) prompt(p string) (string, error) {
	fmt.Fprint(r.out, p)
	line, err := r.readLine()
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(r.out)
	}
	return strings.TrimSpace(line), err
}

// readLine returns the next line without its line ending. A line over
// maxLineBytes is consumed entirely and reported as errLineTooLong.
func (r *Runner) readLine() (string, error) {
	var (
		buf     []byte
		tooLong bool
	)
	for {
		chunk, more, err := r.in.ReadLine()
		if err != nil {
			return "", err
		}
		if !tooLong {
			if len(buf)+len(chunk) > maxLineBytes {
				tooLong, buf = true, nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !more {
			break
		}
	}
	if tooLong {
		return "", errLineTooLong
	}
	return string(buf), nil
}

// Exec dispatches one command and returns its status (0 ok, 1 error, 2 usage).
func (r *Runner) Exec(args []string) int {
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help", "?":
		r.PrintHelp()
		return 0

	case "ls":
		return r.doList()

	case "add":
		title, due, err := parseAdd(a)
		if err != nil {
			ui.Fail(r.errOut, "add: "+err.Error())
			return 2
		}
		return r.doAdd(title, due)

	case "done", "toggle", "rm":
		if len(a) != 1 {
			ui.Fail(r.errOut, fmt.Sprintf("usage: %s <id>", cmd))
			return 2
		}
		id, err := parseID(a[0])
		if err != nil {
			ui.Fail(r.errOut, cmd+": "+err.Error())
			return 2
		}
		switch cmd {
		case "done":
			return r.doComplete(id)
		case "toggle":
			return r.doToggle(id)
		default:
			return r.doRemove(id)
		}

	case "seed":
		r.store.Seed()
		ui.OK(r.out, "added sample tasks")
		return 0

	case "export":
		return r.doExport()

	case "tui":
		if r.opt.Interactive == nil {
			ui.Fail(r.errOut, "tui: not available")
			return 1
		}
		if err := r.opt.Interactive(r.store); err != nil {
			ui.Fail(r.errOut, "tui: "+err.Error())
			return 1
		}
		return 0
	}

	ui.Fail(r.errOut, "unknown command: "+cmd)
	ui.Hint(r.errOut, "type `help` to see the commands")
	return 2
}

func (r *Runner) PrintHelp() {
	fmt.Fprint(r.out, `Commands:
  add <title...> [--due yyyy-mm-dd]   Add a task
  ls                                  List tasks
  done <id>                           Mark a task as done
  toggle <id>                         Flip a task between done and pending
  rm <id>                             Delete a task (asks first)
  seed                                Add sample tasks
  export                              Print tasks as JSON
  tui                                 Open the interactive list
  help                                Show this help
  quit                                Exit (an empty line works too)

Examples:
  add Buy milk --due 2024-06-02
  done 1
  rm 2
`)
}

// -------------- argument parsing ----------------

// parseAdd splits add arguments into a title and an optional --due date.
func parseAdd(args []string) (string, *model.Date, error) {
	var (
		words []string
		due   *model.Date
	)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		var raw string
		switch {
		case arg == "--due" || arg == "-due":
			if i+1 >= len(args) {
				return "", nil, fmt.Errorf("--due needs a date (yyyy-mm-dd)")
			}
			i++
			raw = args[i]
		case strings.HasPrefix(arg, "--due="):
			raw = strings.TrimPrefix(arg, "--due=")
		default:
			words = append(words, arg)
			continue
		}
		d, err := model.ParseDate(raw)
		if err != nil {
			return "", nil, err
		}
		due = &d
	}

	title := strings.TrimSpace(strings.Join(words, " "))
	if len(title) >= 2 && title[0] == '"' && title[len(title)-1] == '"' {
		title = strings.TrimSpace(title[1 : len(title)-1])
	}
	if title == "" {
		return "", nil, fmt.Errorf("empty title")
	}
	return title, due, nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(s, "#"))
	if err != nil {
		return 0, fmt.Errorf("not a number: %s", s)
	}
	if id < 1 {
		return 0, fmt.Errorf("id must be positive: %d", id)
	}
	return id, nil
}

// -------------- command impls ----------------

func (r *Runner) doList() int {
	tasks := r.store.List()
	d, p := r.store.Stats()

	var lines []string
	lines = append(lines, ui.Header(d, p))
	lines = append(lines, ui.Current().Muted.Render(ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")
	if r.opt.Group {
		lines = append(lines, groupLines(tasks)...)
	} else {
		lines = append(lines, flatLines(tasks)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.Current().Muted.Render("Tip: add with `add Buy milk --due 2024-06-02`"))
	ui.Panel(r.out, lines)
	return 0
}

func (r *Runner) doAdd(title string, due *model.Date) int {
	t := r.store.Add(title, due)
	ui.OK(r.out, fmt.Sprintf("Created: [%d] %s", t.ID, t.Title))
	return 0
}

func (r *Runner) doComplete(id int) int {
	if !r.store.Complete(id) {
		return r.notFound(id)
	}
	ui.OK(r.out, fmt.Sprintf("completed [%d]", id))
	return 0
}

func (r *Runner) doToggle(id int) int {
	if !r.store.Toggle(id) {
		return r.notFound(id)
	}
	ui.OK(r.out, fmt.Sprintf("toggled [%d]", id))
	return 0
}

func (r *Runner) doRemove(id int) int {
	t, found := r.store.TryGet(id)
	if !found {
		return r.notFound(id)
	}
	if !r.opt.AssumeYes && !r.confirm(fmt.Sprintf("Delete [%d] %s? [y/N] ", t.ID, t.Title)) {
		fmt.Fprintln(r.out, ui.Current().Muted.Render("kept"))
		return 0
	}
	if !r.store.Delete(id) {
		return r.notFound(id)
	}
	ui.OK(r.out, fmt.Sprintf("removed [%d]", id))
	return 0
}

func (r *Runner) doExport() int {
	b, err := json.MarshalIndent(r.store.List(), "", "  ")
	if err != nil {
		ui.Fail(r.errOut, "export: "+err.Error())
		return 1
	}
	fmt.Fprintln(r.out, string(b))
	return 0
}

func (r *Runner) confirm(question string) bool {
	answer, err := r.prompt(question)
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}

func (r *Runner) notFound(id int) int {
	ui.Fail(r.errOut, fmt.Sprintf("no task with id %d", id))
	ui.Hint(r.errOut, "run `ls` to see valid ids")
	return 1
}

// -------------- rendering helpers --------------

func flatLines(tasks []model.Task) []string {
	if len(tasks) == 0 {
		return []string{ui.Current().Muted.Render("no tasks")}
	}
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, ui.TaskLine(t))
	}
	return out
}

func groupLines(tasks []model.Task) []string {
	var pend, done []model.Task
	for _, t := range tasks {
		if t.Done {
			done = append(done, t)
		} else {
			pend = append(pend, t)
		}
	}
	var lines []string
	lines = append(lines, ui.Current().Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, ui.Current().Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.Current().Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, ui.Current().Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}
