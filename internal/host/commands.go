package host

import (
	"log/slog"
	"strings"

	"github.com/supafloof/backpacks/internal/config"
	"github.com/supafloof/backpacks/internal/item"
	"github.com/supafloof/backpacks/internal/ops"
)

// Permission nodes checked on command senders.
const (
	PermGive  = "backpacks.give"
	PermAdmin = "backpacks.admin"
)

// Command and message text for the /backpack command tree.
const (
	helpBorder = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
	helpTitle  = "Backpacks Commands"

	msgNoGivePermission   = "You don't have permission to give backpack items!"
	msgNoReloadPermission = "You don't have permission to reload configuration!"
	msgGiveUsage          = "Usage: /backpack give <backpack|doubler> <player>"
	msgPlayerNotFound     = "Player not found!"
	msgInvalidItemType    = "Invalid item type! Use 'backpack' or 'doubler'"
	msgReloaded           = "Backpacks configuration reloaded!"
	msgReloadFailed       = "Failed to reload configuration!"
	msgGotBackpack        = "You received a backpack!"
	msgGotDoubler         = "You received a backpack capacity doubler!"
)

// Sender is the command-issuing side of a player or console.
type Sender interface {
	Name() string
	HasPermission(node string) bool
	SendMessage(msg string)
}

// PlayerDirectory is the embedding server's view of who is online. It
// hands items to players and carries the messages the give flow sends
// them.
type PlayerDirectory interface {
	IsOnline(player string) bool
	GiveItem(player string, stack *item.Stack) bool
	SendMessage(player, msg string)
	OnlinePlayers() []string
}

// Commands implements the /backpack command tree.
type Commands struct {
	svc     *ops.Service
	log     *slog.Logger
	players PlayerDirectory
	reload  func() (*config.Config, error)
}

// NewCommands wires the command tree. reload re-reads configuration from
// disk; pass nil to disable the reload subcommand's effect.
func NewCommands(svc *ops.Service, log *slog.Logger, players PlayerDirectory, reload func() (*config.Config, error)) *Commands {
	return &Commands{svc: svc, log: log, players: players, reload: reload}
}

// Execute runs one /backpack invocation. Unknown subcommands fall back to
// the help menu.
func (c *Commands) Execute(sender Sender, args []string) {
	if len(args) == 0 {
		c.sendHelp(sender)
		return
	}

	switch strings.ToLower(args[0]) {
	case "give":
		c.handleGive(sender, args)
	case "reload":
		c.handleReload(sender)
	default:
		c.sendHelp(sender)
	}
}

func (c *Commands) handleGive(sender Sender, args []string) {
	if !sender.HasPermission(PermGive) {
		sender.SendMessage(msgNoGivePermission)
		return
	}
	if len(args) < 3 {
		sender.SendMessage(msgGiveUsage)
		return
	}

	itemType := strings.ToLower(args[1])
	target := args[2]

	if !c.players.IsOnline(target) {
		sender.SendMessage(msgPlayerNotFound)
		return
	}

	var input ops.MintInput
	var senderMsg, targetMsg string
	switch itemType {
	case "backpack":
		input = ops.MintInput{Kind: ops.KindBackpack}
		senderMsg = "Gave backpack to " + target
		targetMsg = msgGotBackpack
	case "doubler":
		input = ops.MintInput{Kind: ops.KindDoubler}
		senderMsg = "Gave capacity doubler to " + target
		targetMsg = msgGotDoubler
	default:
		sender.SendMessage(msgInvalidItemType)
		return
	}

	minted, err := c.svc.Mint(input)
	if err != nil {
		c.log.Error("give failed to mint", "sender", sender.Name(), "target", target, "error", err)
		sender.SendMessage(msgInvalidItemType)
		return
	}

	if !c.players.GiveItem(target, minted.Item) {
		sender.SendMessage(msgPlayerNotFound)
		return
	}

	sender.SendMessage(senderMsg)
	c.players.SendMessage(target, targetMsg)
	c.log.Info("gave backpack item",
		"sender", sender.Name(), "target", target, "kind", itemType, "container", minted.ID)
}

func (c *Commands) handleReload(sender Sender) {
	if !sender.HasPermission(PermAdmin) {
		sender.SendMessage(msgNoReloadPermission)
		return
	}
	if c.reload == nil {
		sender.SendMessage(msgReloaded)
		return
	}

	cfg, err := c.reload()
	if err != nil {
		c.log.Error("config reload failed", "error", err)
		sender.SendMessage(msgReloadFailed)
		return
	}
	for _, warning := range cfg.Normalize() {
		c.log.Warn("config", "warning", warning)
	}

	c.svc.ApplyConfig(cfg)
	sender.SendMessage(msgReloaded)
}

// sendHelp prints the help menu, trimmed to what the sender may use.
func (c *Commands) sendHelp(sender Sender) {
	sender.SendMessage(helpBorder)
	sender.SendMessage(helpTitle)
	sender.SendMessage(helpBorder)
	sender.SendMessage("/backpack help - Show this help menu")
	if sender.HasPermission(PermGive) {
		sender.SendMessage("/backpack give backpack <player> - Give a backpack")
		sender.SendMessage("/backpack give doubler <player> - Give a capacity doubler")
	}
	if sender.HasPermission(PermAdmin) {
		sender.SendMessage("/backpack reload - Reload configuration")
	}
	sender.SendMessage(helpBorder)
}

// Complete returns tab-completion candidates for the current argument.
// The last element of args is the partial word being typed, possibly "".
func (c *Commands) Complete(sender Sender, args []string) []string {
	if len(args) == 0 {
		return nil
	}

	var completions []string
	switch {
	case len(args) == 1:
		completions = append(completions, "help")
		if sender.HasPermission(PermGive) {
			completions = append(completions, "give")
		}
		if sender.HasPermission(PermAdmin) {
			completions = append(completions, "reload")
		}
	case len(args) == 2 && strings.EqualFold(args[0], "give"):
		completions = append(completions, "backpack", "doubler")
	case len(args) == 3 && strings.EqualFold(args[0], "give"):
		// Player names go back unfiltered; clients narrow them as the
		// sender keeps typing.
		return c.players.OnlinePlayers()
	}

	prefix := strings.ToLower(args[len(args)-1])
	filtered := completions[:0]
	for _, s := range completions {
		if strings.HasPrefix(strings.ToLower(s), prefix) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
