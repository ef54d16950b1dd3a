package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/menpente/aclarador-clean/internal/agent"
	"github.com/menpente/aclarador-clean/internal/pipeline"
)

// agentsCmd represents the agents command
var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "Lista los agentes disponibles y sus capacidades",
	RunE: func(cmd *cobra.Command, args []string) error {
		coordinator := pipeline.NewCoordinator(nil)
		descriptions := coordinator.AvailableAgents()

		capabilities := map[string][]string{}
		for _, a := range []agent.Agent{
			agent.NewGrammar(),
			agent.NewStyle(),
			agent.NewSEO(),
			agent.NewValidator(),
		} {
			capabilities[a.Name()] = a.Capabilities()
		}

		names := make([]string, 0, len(descriptions))
		for name := range descriptions {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			fmt.Printf("%-10s %s\n", name, descriptions[name])
			if caps := capabilities[name]; len(caps) > 0 {
				fmt.Printf("           capacidades: %s\n", strings.Join(caps, ", "))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(agentsCmd)
}
