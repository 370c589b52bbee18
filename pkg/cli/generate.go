package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "为单个用户生成今天的 wrapped",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				return errors.New("必须指定 --user")
			}

			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Close()

			outcome, err := a.Service().GenerateForUser(cmd.Context(), userID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", userID, outcome)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "用户ID")

	return cmd
}

func newGenerateAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate-all",
		Short: "清理过期记录并为所有活跃用户生成 wrapped",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := a.Service().GenerateAll(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "日期: %s\n", report.Date)
			fmt.Fprintf(out, "清理: %d\n", report.Expired)
			fmt.Fprintf(out, "用户: %d, 生成: %d, 跳过: %d, 失败: %d\n",
				report.Users, report.Generated, report.Skipped, len(report.Failures))
			for _, f := range report.Failures {
				fmt.Fprintf(out, "  %s: %v\n", f.UserID, f.Err)
			}
			return nil
		},
	}
}

func newCleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "删除超过保留期的 wrapped 记录",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Close()

			deleted, err := a.Service().DeleteExpired(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已删除 %d 条记录\n", deleted)
			return nil
		},
	}
}
