package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// listToolDef defines the backpack_list tool schema.
var listToolDef = mcp.NewTool(
	"backpack_list",
	mcp.WithDescription("List known backpacks sorted by identifier. Returns identifiers, kind, occupancy, and open state; never contents."),
	mcp.WithNumber("limit",
		mcp.Description("Maximum items to return (default 20, max 100)"),
	),
	mcp.WithNumber("offset",
		mcp.Description("Items to skip for pagination (default 0)"),
	),
)

// inspectToolDef defines the backpack_inspect tool schema.
var inspectToolDef = mcp.NewTool(
	"backpack_inspect",
	mcp.WithDescription("Inspect one backpack: occupied slots, kind, on-disk state, and who has it open. The identifier may be a unique fragment; ambiguous fragments fail with the candidate list."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Full backpack identifier or a fragment of one"),
	),
)

// statsToolDef defines the backpack_stats tool schema.
var statsToolDef = mcp.NewTool(
	"backpack_stats",
	mcp.WithDescription("Report totals: backpack count, open sessions, occupied slots, record files, and disk usage."),
)

// purgeToolDef defines the backpack_purge tool schema.
var purgeToolDef = mcp.NewTool(
	"backpack_purge",
	mcp.WithDescription("Remove backpack records. With an id, removes that backpack outright (refused while it is open). Without an id, sweeps empty backpacks, optionally only those untouched for older_than_days. Requires confirm unless dry_run is set."),
	mcp.WithString("id",
		mcp.Description("Purge exactly this backpack instead of sweeping empties"),
	),
	mcp.WithNumber("older_than_days",
		mcp.Description("Only sweep records untouched for more than this many days"),
	),
	mcp.WithBoolean("dry_run",
		mcp.Description("Report what would be purged without removing anything"),
	),
	mcp.WithBoolean("confirm",
		mcp.Description("Must be true to actually remove records"),
	),
)
