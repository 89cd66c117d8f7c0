package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/finloom/cashflow-copilot/internal/cli"
	"github.com/finloom/cashflow-copilot/internal/common"
)

func registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Register a new user",
		Long: `Register a new user profile. Each user gets their own transactions,
portfolio, and risk history. Usernames must be unique.`,
		Args: cobra.ExactArgs(1),
		RunE: runRegister,
	}

	cmd.Flags().Float64P("income", "i", 0, "Monthly income in dollars")

	return cmd
}

func runRegister(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	username := args[0]

	income, err := cmd.Flags().GetFloat64("income")
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	user, err := store.CreateUser(ctx, username, income)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEntry) {
			return common.NewUserError(fmt.Sprintf("username %q is already taken", username), err)
		}
		return fmt.Errorf("failed to register user: %w", err)
	}

	slog.Info(cli.FormatSuccess(fmt.Sprintf("Registered %s (monthly income %s)",
		user.Username, cli.FormatMoney(user.MonthlyIncome))))

	return nil
}
