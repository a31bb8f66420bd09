package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spigell/resume-analyzer/internal/reference"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the target roles and the skills they expect",
	Run: func(cmd *cobra.Command, _ []string) {
		if err := listRoles(cmd); err != nil {
			log.Fatalf("listing roles: %s", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(rolesCmd)
}

func listRoles(cmd *cobra.Command) error {
	config, err := getConfig()
	if err != nil {
		return fmt.Errorf("getting a config: %w", err)
	}

	data, err := reference.Load(config.ReferenceFile)
	if err != nil {
		return err
	}

	registry, err := reference.NewRegistry(data)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, name := range registry.Roles() {
		role, _ := registry.Lookup(name)
		marker := ""
		if name == registry.Default().Name {
			marker = " (default)"
		}
		fmt.Fprintf(out, "%s%s\n", role.Name, marker)
		fmt.Fprintf(out, "  required:  %s\n", strings.Join(role.RequiredSkills, ", "))
		fmt.Fprintf(out, "  preferred: %s\n", strings.Join(role.PreferredSkills, ", "))
	}

	return nil
}
