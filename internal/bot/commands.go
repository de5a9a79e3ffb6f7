// Package bot implements the text command surface of the bridge. One
// handler set serves both platforms; everything platform-specific
// arrives through the Request and the side-agnostic link service API.
package bot

import (
	"fmt"
	"strings"

	"github.com/KartoffelChipss/bifrost/internal/links"
)

// Command names.
const (
	CmdHelp          = "help"
	CmdPing          = "ping"
	CmdLinkGuild     = "linkguild"
	CmdUnlinkGuild   = "unlinkguild"
	CmdLinkChannel   = "linkchannel"
	CmdListChannels  = "listchannels"
	CmdUnlinkChannel = "unlinkchannel"
)

type commandInfo struct {
	name        string
	usageArgs   []string
	description map[links.Side]string
}

func both(text string) map[links.Side]string {
	return map[links.Side]string{links.SideDiscord: text, links.SideFluxer: text}
}

var commandList = []commandInfo{
	{
		name:        CmdHelp,
		description: both("Displays a list of available commands and their descriptions."),
	},
	{
		name:        CmdPing,
		description: both("Checks whether the bridge is alive."),
	},
	{
		name:      CmdLinkGuild,
		usageArgs: []string{"<otherGuildId>"},
		description: map[links.Side]string{
			links.SideDiscord: "Creates a link between this Discord guild and a Fluxer guild.",
			links.SideFluxer:  "Creates a link between this Fluxer guild and a Discord guild.",
		},
	},
	{
		name: CmdUnlinkGuild,
		description: map[links.Side]string{
			links.SideDiscord: "Unlinks this Discord guild from its linked Fluxer guild.",
			links.SideFluxer:  "Unlinks this Fluxer guild from its linked Discord guild.",
		},
	},
	{
		name:      CmdLinkChannel,
		usageArgs: []string{"<otherChannelId>"},
		description: map[links.Side]string{
			links.SideDiscord: "Links the current Discord channel to a Fluxer channel.",
			links.SideFluxer:  "Links the current Fluxer channel to a Discord channel.",
		},
	},
	{
		name: CmdListChannels,
		description: map[links.Side]string{
			links.SideDiscord: "Lists all channels linked in the current Discord guild.",
			links.SideFluxer:  "Lists all channels linked in the current Fluxer guild.",
		},
	},
	{
		name:        CmdUnlinkChannel,
		usageArgs:   []string{"<link-id>"},
		description: both("Unlinks a channel link. Get the link ID from the listchannels command."),
	},
}

func commandUsage(prefix, name string, side links.Side) string {
	for _, cmd := range commandList {
		if cmd.name != name {
			continue
		}

		usage := prefix + cmd.name
		if len(cmd.usageArgs) > 0 {
			usage += " " + strings.Join(cmd.usageArgs, " ")
		}

		return fmt.Sprintf("Usage: `%s`\n> %s", usage, cmd.description[side])
	}

	return fmt.Sprintf("Command `%s` not found.", name)
}

func helpMessage(prefix string, side links.Side) string {
	var b strings.Builder

	b.WriteString("**Available Commands:**\n")

	for _, cmd := range commandList {
		usage := prefix + cmd.name
		if len(cmd.usageArgs) > 0 {
			usage += " " + strings.Join(cmd.usageArgs, " ")
		}

		fmt.Fprintf(&b, "- `%s`: %s\n", usage, cmd.description[side])
	}

	fmt.Fprintf(&b, "\nUse `%s<command>` to execute a command. For example, `%sping`.", prefix, prefix)

	return b.String()
}
