package host

import (
	"io"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/supafloof/backpacks/internal/config"
	"github.com/supafloof/backpacks/internal/item"
	"github.com/supafloof/backpacks/internal/ops"
	"github.com/supafloof/backpacks/internal/storage"
)

type fakeSender struct {
	name     string
	perms    map[string]bool
	messages []string
}

func (f *fakeSender) Name() string                   { return f.name }
func (f *fakeSender) HasPermission(node string) bool { return f.perms[node] }
func (f *fakeSender) SendMessage(msg string)         { f.messages = append(f.messages, msg) }

type fakeDirectory struct {
	online   map[string]bool
	given    map[string][]*item.Stack
	messages map[string][]string
}

func newFakeDirectory(players ...string) *fakeDirectory {
	d := &fakeDirectory{
		online:   make(map[string]bool),
		given:    make(map[string][]*item.Stack),
		messages: make(map[string][]string),
	}
	for _, p := range players {
		d.online[p] = true
	}
	return d
}

func (d *fakeDirectory) IsOnline(player string) bool { return d.online[player] }

func (d *fakeDirectory) GiveItem(player string, stack *item.Stack) bool {
	if !d.online[player] {
		return false
	}
	d.given[player] = append(d.given[player], stack)
	return true
}

func (d *fakeDirectory) SendMessage(player, msg string) {
	d.messages[player] = append(d.messages[player], msg)
}

func (d *fakeDirectory) OnlinePlayers() []string {
	names := make([]string, 0, len(d.online))
	for name := range d.online {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func newCommandsForTest(t *testing.T, dir *fakeDirectory, reload func() (*config.Config, error)) (*Commands, *ops.Service) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.DefaultConfig(t.TempDir())
	svc := ops.NewService(cfg, log, storage.NewStore(cfg.DataDir, log))
	if err := svc.Startup(); err != nil {
		t.Fatalf("Startup() error = %v", err)
	}
	return NewCommands(svc, log, dir, reload), svc
}

func TestExecute_HelpShowsPermittedCommands(t *testing.T) {
	dir := newFakeDirectory()
	cmds, _ := newCommandsForTest(t, dir, nil)

	plain := &fakeSender{name: "steve", perms: map[string]bool{}}
	cmds.Execute(plain, nil)

	joined := strings.Join(plain.messages, "\n")
	if !strings.Contains(joined, "Backpacks Commands") {
		t.Errorf("help missing title:\n%s", joined)
	}
	if !strings.Contains(joined, "/backpack help") {
		t.Errorf("help missing help line:\n%s", joined)
	}
	if strings.Contains(joined, "give") || strings.Contains(joined, "reload") {
		t.Errorf("help shows commands the sender cannot run:\n%s", joined)
	}

	admin := &fakeSender{name: "ops", perms: map[string]bool{PermGive: true, PermAdmin: true}}
	cmds.Execute(admin, []string{"help"})

	joined = strings.Join(admin.messages, "\n")
	for _, want := range []string{
		"/backpack give backpack <player> - Give a backpack",
		"/backpack give doubler <player> - Give a capacity doubler",
		"/backpack reload - Reload configuration",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("admin help missing %q:\n%s", want, joined)
		}
	}
}

func TestExecute_UnknownSubcommandShowsHelp(t *testing.T) {
	cmds, _ := newCommandsForTest(t, newFakeDirectory(), nil)
	sender := &fakeSender{name: "steve", perms: map[string]bool{}}

	cmds.Execute(sender, []string{"frobnicate"})

	if len(sender.messages) == 0 || !strings.Contains(strings.Join(sender.messages, "\n"), "Backpacks Commands") {
		t.Errorf("messages = %v, want the help menu", sender.messages)
	}
}

func TestExecute_GiveBackpack(t *testing.T) {
	dir := newFakeDirectory("Alex")
	cmds, svc := newCommandsForTest(t, dir, nil)
	sender := &fakeSender{name: "steve", perms: map[string]bool{PermGive: true}}

	cmds.Execute(sender, []string{"give", "backpack", "Alex"})

	if len(dir.given["Alex"]) != 1 || !item.IsContainer(dir.given["Alex"][0]) {
		t.Fatalf("given = %v, want one backpack", dir.given["Alex"])
	}
	if !slices.Contains(sender.messages, "Gave backpack to Alex") {
		t.Errorf("sender messages = %v", sender.messages)
	}
	if !slices.Contains(dir.messages["Alex"], "You received a backpack!") {
		t.Errorf("target messages = %v", dir.messages["Alex"])
	}

	// The minted backpack is registered before anyone opens it.
	id, _ := item.IdentifierOf(dir.given["Alex"][0])
	if _, err := svc.Inspect(ops.InspectInput{Query: id}); err != nil {
		t.Errorf("Inspect(minted) error = %v", err)
	}
}

func TestExecute_GiveDoubler(t *testing.T) {
	dir := newFakeDirectory("Alex")
	cmds, _ := newCommandsForTest(t, dir, nil)
	sender := &fakeSender{name: "steve", perms: map[string]bool{PermGive: true}}

	cmds.Execute(sender, []string{"give", "doubler", "Alex"})

	if len(dir.given["Alex"]) != 1 || !item.IsUpgradeToken(dir.given["Alex"][0]) {
		t.Fatalf("given = %v, want one doubler", dir.given["Alex"])
	}
	if !slices.Contains(sender.messages, "Gave capacity doubler to Alex") {
		t.Errorf("sender messages = %v", sender.messages)
	}
	if !slices.Contains(dir.messages["Alex"], "You received a backpack capacity doubler!") {
		t.Errorf("target messages = %v", dir.messages["Alex"])
	}
}

func TestExecute_GiveErrors(t *testing.T) {
	dir := newFakeDirectory("Alex")
	cmds, _ := newCommandsForTest(t, dir, nil)

	denied := &fakeSender{name: "steve", perms: map[string]bool{}}
	cmds.Execute(denied, []string{"give", "backpack", "Alex"})
	if !slices.Contains(denied.messages, "You don't have permission to give backpack items!") {
		t.Errorf("denied messages = %v", denied.messages)
	}

	sender := &fakeSender{name: "steve", perms: map[string]bool{PermGive: true}}
	cmds.Execute(sender, []string{"give"})
	if !slices.Contains(sender.messages, "Usage: /backpack give <backpack|doubler> <player>") {
		t.Errorf("usage messages = %v", sender.messages)
	}

	sender.messages = nil
	cmds.Execute(sender, []string{"give", "backpack", "Nobody"})
	if !slices.Contains(sender.messages, "Player not found!") {
		t.Errorf("offline messages = %v", sender.messages)
	}

	sender.messages = nil
	cmds.Execute(sender, []string{"give", "sword", "Alex"})
	if !slices.Contains(sender.messages, "Invalid item type! Use 'backpack' or 'doubler'") {
		t.Errorf("bad type messages = %v", sender.messages)
	}
	if len(dir.given["Alex"]) != 0 {
		t.Errorf("given = %v, want nothing after rejected gives", dir.given["Alex"])
	}
}

func TestExecute_Reload(t *testing.T) {
	dir := newFakeDirectory()
	next := (*config.Config)(nil)
	reload := func() (*config.Config, error) {
		return next, nil
	}
	cmds, svc := newCommandsForTest(t, dir, reload)

	denied := &fakeSender{name: "steve", perms: map[string]bool{}}
	cmds.Execute(denied, []string{"reload"})
	if !slices.Contains(denied.messages, "You don't have permission to reload configuration!") {
		t.Errorf("denied messages = %v", denied.messages)
	}

	next = config.DefaultConfig(t.TempDir())
	next.BackpackItem = "chest"
	next.AllowNestedBackpacks = true

	admin := &fakeSender{name: "ops", perms: map[string]bool{PermAdmin: true}}
	cmds.Execute(admin, []string{"reload"})
	if !slices.Contains(admin.messages, "Backpacks configuration reloaded!") {
		t.Errorf("admin messages = %v", admin.messages)
	}
	if !svc.NestingAllowed() {
		t.Error("NestingAllowed = false after reload set it")
	}

	minted, err := svc.Mint(ops.MintInput{})
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}
	if minted.Item.Material != "chest" {
		t.Errorf("minted material = %q, want the reloaded %q", minted.Item.Material, "chest")
	}
}

func TestComplete(t *testing.T) {
	dir := newFakeDirectory("Steve", "Steve2", "Alex")
	cmds, _ := newCommandsForTest(t, dir, nil)

	plain := &fakeSender{name: "p", perms: map[string]bool{}}
	admin := &fakeSender{name: "a", perms: map[string]bool{PermGive: true, PermAdmin: true}}

	if got := cmds.Complete(plain, []string{""}); !slices.Equal(got, []string{"help"}) {
		t.Errorf("plain completions = %v, want [help]", got)
	}
	if got := cmds.Complete(admin, []string{""}); !slices.Equal(got, []string{"help", "give", "reload"}) {
		t.Errorf("admin completions = %v", got)
	}

	// Prefix filtering is case-insensitive.
	if got := cmds.Complete(admin, []string{"G"}); !slices.Equal(got, []string{"give"}) {
		t.Errorf("Complete(G) = %v, want [give]", got)
	}

	if got := cmds.Complete(admin, []string{"give", "d"}); !slices.Equal(got, []string{"doubler"}) {
		t.Errorf("Complete(give d) = %v, want [doubler]", got)
	}

	// Player names come back unfiltered.
	if got := cmds.Complete(admin, []string{"give", "backpack", "St"}); !slices.Equal(got, []string{"Alex", "Steve", "Steve2"}) {
		t.Errorf("Complete(give backpack St) = %v, want all online players", got)
	}

	if got := cmds.Complete(admin, nil); got != nil {
		t.Errorf("Complete(nil) = %v, want nil", got)
	}
}
