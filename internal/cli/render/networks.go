package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/ssv-deploy/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out   io.Writer
	color bool
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer, color bool) *NetworksRenderer {
	return &NetworksRenderer{
		out:   out,
		color: color,
	}
}

// Render renders the configured networks as a table
func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in foundry.toml [rpc_endpoints] or ssv-deploy.toml")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box.PaddingRight = "   "
	t.AppendHeader(table.Row{"NETWORK", "CHAIN ID", "SSV TOKEN", "STATUS"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})

	for _, network := range result.Networks {
		if network.Error != nil {
			t.AppendRow(table.Row{network.Name, "-", "-", r.paint(color.FgRed, network.Error.Error())})
			continue
		}

		token := "deploy"
		if network.SSVToken != (common.Address{}) {
			token = network.SSVToken.Hex()
		}
		t.AppendRow(table.Row{network.Name, strconv.FormatUint(network.ChainID, 10), token, r.paint(color.FgGreen, "ok")})
	}

	t.Render()
	return nil
}

func (r *NetworksRenderer) paint(attr color.Attribute, s string) string {
	if !r.color {
		return s
	}
	return color.New(attr).Sprint(s)
}

var _ Renderer[*usecase.ListNetworksResult] = (*NetworksRenderer)(nil)
