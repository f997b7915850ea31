package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emberforge/rpgcore/internal/config"
	"github.com/emberforge/rpgcore/internal/rulebook"
)

var validateDir string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load the definition catalog and report dangling references",
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateDir, "dir", "", "definitions directory (default from RPGCORE_DEFINITIONS_DIR)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	dir := validateDir
	if dir == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		dir = cfg.Definitions.Dir
	}

	registry := rulebook.NewRegistry()
	registry.Load(dir)

	fmt.Printf("Loaded from %s:\n", dir)
	fmt.Printf("  races:   %d\n", len(registry.Races()))
	fmt.Printf("  classes: %d\n", len(registry.Classes()))
	fmt.Printf("  skills:  %d\n", registry.SkillCount())
	fmt.Printf("  talents: %d\n", len(registry.Talents()))
	fmt.Printf("  auras:   %d\n", registry.AuraCount())

	dangling := danglingRefs(registry)
	if len(dangling) > 0 {
		for _, ref := range dangling {
			fmt.Printf("  dangling: %s\n", ref)
		}
		return fmt.Errorf("%d dangling reference(s)", len(dangling))
	}

	fmt.Println("OK")
	return nil
}

// danglingRefs collects every definition reference that does not resolve
func danglingRefs(registry *rulebook.Registry) []string {
	var out []string

	for _, race := range registry.Races() {
		if race.AuraID != "" && registry.Aura(race.AuraID) == nil {
			out = append(out, fmt.Sprintf("race %s -> aura %s", race.ID, race.AuraID))
		}
	}
	for _, class := range registry.Classes() {
		for _, sid := range class.SkillIDs {
			if registry.Skill(sid) == nil {
				out = append(out, fmt.Sprintf("class %s -> skill %s", class.ID, sid))
			}
		}
		for _, tid := range class.TalentIDs {
			if registry.Talent(tid) == nil {
				out = append(out, fmt.Sprintf("class %s -> talent %s", class.ID, tid))
			}
		}
	}
	return out
}
