package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/emberforge/rpgcore/internal/config"
	"github.com/emberforge/rpgcore/internal/repositories/profiles"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect and administer stored player profiles",
}

var profileShowCmd = &cobra.Command{
	Use:   "show <player-id>",
	Short: "Print a stored profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileShow,
}

var profileGiveXPCmd = &cobra.Command{
	Use:   "givexp <player-id> <amount>",
	Short: "Add experience to a stored profile",
	Args:  cobra.ExactArgs(2),
	RunE:  runProfileGiveXP,
}

var profileSetLevelCmd = &cobra.Command{
	Use:   "setlevel <player-id> <level>",
	Short: "Set a stored profile's level and recompute its talent points",
	Args:  cobra.ExactArgs(2),
	RunE:  runProfileSetLevel,
}

var profileRespecCmd = &cobra.Command{
	Use:   "respec <player-id>",
	Short: "Clear a stored profile's talents and refund its points",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileRespec,
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileGiveXPCmd)
	profileCmd.AddCommand(profileSetLevelCmd)
	profileCmd.AddCommand(profileRespecCmd)
}

// openRepository connects to the Redis profile store named by REDIS_URL
func openRepository(ctx context.Context) (profiles.Repository, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Redis.URL == "" {
		return nil, nil, fmt.Errorf("REDIS_URL is required for profile commands")
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	repo := profiles.NewRedisRepository(&profiles.RedisRepoConfig{Client: client})
	cleanup := func() { _ = client.Close() }
	return repo, cleanup, nil
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	repo, cleanup, err := openRepository(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	prof, err := repo.Get(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Player:    %s (%s)\n", prof.Name, prof.PlayerID)
	fmt.Printf("Race:      %s\n", prof.RaceID)
	fmt.Printf("Class:     %s\n", prof.ClassID)
	fmt.Printf("Level:     %d (xp %d, talent points %d)\n", prof.Level, prof.XP, prof.TalentPoints)
	fmt.Printf("Primary:   %.1f/%d\n", prof.Primary, prof.MaxPrimary)
	fmt.Printf("Secondary: %.1f/%d\n", prof.Secondary, prof.MaxSecondary)

	if len(prof.TalentRanks) > 0 {
		ids := make([]string, 0, len(prof.TalentRanks))
		for id := range prof.TalentRanks {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		fmt.Println("Talents:")
		for _, id := range ids {
			fmt.Printf("  %s: %d\n", id, prof.TalentRanks[id])
		}
	}
	if len(prof.UnlockedBranches) > 0 {
		ids := make([]string, 0, len(prof.UnlockedBranches))
		for id := range prof.UnlockedBranches {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		fmt.Printf("Branches:  %v\n", ids)
	}
	fmt.Printf("Updated:   %s\n", prof.UpdatedAt.Format(time.RFC3339))
	return nil
}

func runProfileGiveXP(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	amount, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[1], err)
	}

	repo, cleanup, err := openRepository(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	prof, err := repo.Get(ctx, args[0])
	if err != nil {
		return err
	}
	if amount > 0 {
		prof.SetXP(prof.XP + amount)
	}
	if err := repo.Save(ctx, prof); err != nil {
		return err
	}
	fmt.Printf("XP now %d\n", prof.XP)
	return nil
}

func runProfileSetLevel(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	level, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid level %q: %w", args[1], err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	repo, cleanup, err := openRepository(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	prof, err := repo.Get(ctx, args[0])
	if err != nil {
		return err
	}
	prof.SetLevel(level)
	prof.SetTalentPoints((prof.Level - 1) * cfg.XP.TalentPointsPerLevel)
	if err := repo.Save(ctx, prof); err != nil {
		return err
	}
	fmt.Printf("Level now %d (talent points %d)\n", prof.Level, prof.TalentPoints)
	return nil
}

func runProfileRespec(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	repo, cleanup, err := openRepository(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	prof, err := repo.Get(ctx, args[0])
	if err != nil {
		return err
	}
	prof.ClearTalents()
	prof.SetTalentPoints((prof.Level - 1) * cfg.XP.TalentPointsPerLevel)
	if err := repo.Save(ctx, prof); err != nil {
		return err
	}
	fmt.Printf("Talents cleared (talent points %d)\n", prof.TalentPoints)
	return nil
}
