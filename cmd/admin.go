package cmd

import (
	"context"
	"fmt"
	"time"

	"grambazaar/database"
	"grambazaar/services/user"
	"grambazaar/utils"

	"github.com/spf13/cobra"
)

func makeAdminCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "make-admin",
		Short: "Grant the admin role to an existing user",
		Example: `  grambazaar make-admin --email owner@example.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			repos, err := mongoRepositories()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			defer database.Disconnect(ctx)

			if err := utils.InitCache(); err != nil {
				utils.GetLogger().Warn("Redis unavailable; cached role not cleared")
			}
			defer utils.CloseCache()

			svc := &user.DefaultUserService{
				Repo:     repos.Users,
				Sessions: utils.NewAuthSessionStore(utils.GetAuthCacheClient()),
			}
			u, err := svc.PromoteByEmail(ctx, email)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) is now an admin\n", u.Email, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email of the user to promote")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
