package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mumu_delivery/internal/apperr"
	"mumu_delivery/internal/repository"
	"mumu_delivery/internal/services"
	"mumu_delivery/internal/session"
)

// DefaultAccounts are the accounts a fresh install starts with.
var DefaultAccounts = []services.SignupInput{
	{Email: "admin@mumu.com", Password: "password0000", Name: "관리자", Role: "admin"},
	{Email: "driver-a@mumu.com", Password: "password1234", Name: "홍기사", Role: "driver"},
	{Email: "driver-b@mumu.com", Password: "password5678", Name: "김기사", Role: "driver"},
}

// SeedResult counts what Seed did.
type SeedResult struct {
	Created int
	Skipped int
}

// Seed signs up each account, skipping emails that already exist.
func Seed(ctx context.Context, auth *services.AuthService, accounts []services.SignupInput, out io.Writer) (SeedResult, error) {
	var res SeedResult
	for _, a := range accounts {
		u, err := auth.Signup(ctx, a)
		switch {
		case apperr.Is(err, apperr.KindConflict):
			res.Skipped++
			fmt.Fprintf(out, "  %s %s (%s) already exists\n", color.New(color.FgYellow).Sprint("!"), a.Name, a.Email)
		case err != nil:
			fmt.Fprintf(out, "  %s %s (%s): %v\n", color.New(color.FgRed).Sprint("✗"), a.Name, a.Email, err)
			return res, fmt.Errorf("seed %s: %w", a.Email, err)
		default:
			res.Created++
			fmt.Fprintf(out, "  %s %s (%s) id=%d role=%s\n", color.New(color.FgGreen).Sprint("✓"), u.Name, u.Email, u.ID, u.Role)
		}
	}
	return res, nil
}

func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the default admin and driver accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDB()
			if err != nil {
				return err
			}
			auth := services.NewAuthService(repository.NewStore(db), session.NewManager(cfg.JWTSecret, cfg.JWTTTL))

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Seeding accounts...")
			res, err := Seed(cmd.Context(), auth, DefaultAccounts, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Done: %d created, %d skipped\n", res.Created, res.Skipped)
			return nil
		},
	}
}
