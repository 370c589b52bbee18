package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"DailyWrapped/pkg/model"
	"DailyWrapped/pkg/render"
)

func newRenderCmd() *cobra.Command {
	var (
		design   int
		tokens   int64
		messages int64
		cost     float64
		topModel string
		date     string
		out      string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "离线渲染模板 HTML",
		Long:  "使用给定的统计数据渲染某个设计的 HTML，不设置 --tokens 时使用示例数据。",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats := render.SampleStats()
			if cmd.Flags().Changed("tokens") {
				stats = model.WrappedStats{
					TotalTokens:   tokens,
					TotalMessages: messages,
					Cost:          cost,
				}
				if topModel != "" {
					stats.TopModels = []model.ModelUsage{{Model: topModel, Tokens: tokens}}
				}
			}
			if date == "" {
				date = time.Now().Format("2006-01-02")
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("创建输出文件失败: %w", err)
				}
				defer f.Close()
				w = f
			}

			return render.Render(w, design, stats, date)
		},
	}

	cmd.Flags().IntVar(&design, "design", 0, "设计编号，任意整数按 10 取模")
	cmd.Flags().Int64Var(&tokens, "tokens", 0, "总 token 数")
	cmd.Flags().Int64Var(&messages, "messages", 0, "消息数")
	cmd.Flags().Float64Var(&cost, "cost", 0, "花费（美元）")
	cmd.Flags().StringVar(&topModel, "model", "", "最常用模型")
	cmd.Flags().StringVar(&date, "date", "", "日期 YYYY-MM-DD，默认今天")
	cmd.Flags().StringVar(&out, "out", "", "输出文件，默认标准输出")

	return cmd
}
