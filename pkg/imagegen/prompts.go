package imagegen

import (
	"fmt"

	"DailyWrapped/pkg/model"
	"DailyWrapped/pkg/render"
)

// designPrompts 与 render 包的十种模板一一对应
var designPrompts = [model.DesignCount]string{
	// 0: Minimal Dark
	"Create a minimalist vertical poster (9:16 ratio) with pure black background, white monospace typography displaying coding statistics. Bold header 'DAILY SYNC WRAPPED' at top. Clean data layout with numbers prominently displayed. No decorations, just typography.",

	// 1: Gradient Noise
	"Create a vertical poster (9:16 ratio) with magenta to dark purple gradient background with subtle grain/noise texture. White sans-serif text showing coding metrics. Modern, editorial design aesthetic. Rounded corners.",

	// 2: Geometric Beige
	"Create a vertical poster (9:16 ratio) with warm beige/cream background. Orange geometric squares arranged in a pyramid pattern on left side. Serif typography on right showing analytics data. Minimal, sophisticated.",

	// 3: Tech Cards
	"Create a vertical poster (9:16 ratio) with dark background featuring three white rounded rectangle cards displaying icons and statistics. Clean tech aesthetic. Monospace font for numbers.",

	// 4: Bold Typography
	"Create a vertical poster (9:16 ratio) with dark navy blue background. Large elegant serif headline 'WRAPPED' at top. Blue accent color for numbers. Statistics displayed in clean list format.",

	// 5: Vinyl Record
	"Create a vertical poster (9:16 ratio) with dark textured background featuring a large cream/beige circle in center like a vinyl record. Bold warped typography inside circle. Statistics arranged around the circle.",

	// 6: Orange Gradient
	"Create a vertical poster (9:16 ratio) with warm orange to peach gradient. White rounded pill-shaped buttons. Modern fintech aesthetic. Clean sans-serif typography for metrics.",

	// 7: Dark Minimal
	"Create a vertical poster (9:16 ratio) with pure black background. Sparse white uppercase text. Date prominently displayed. Extremely minimal with lots of negative space. Monospace font.",

	// 8: Blue Landscape
	"Create a vertical poster (9:16 ratio) with deep blue and cream color split design. Abstract artistic element. Statistics overlaid in clean white typography. Contemplative mood.",

	// 9: Color Shapes
	"Create a vertical poster (9:16 ratio) with dark background and colorful geometric shapes (triangles, squares, circles) as accents. Clean white typography. Modern data visualization aesthetic.",
}

// BuildPrompt 拼接设计描述、统计数据块和品牌说明
func BuildPrompt(designIndex int, stats model.WrappedStats, date string) string {
	base := designPrompts[render.Normalize(designIndex)]

	topModel := stats.TopModel()
	if topModel == "" {
		topModel = render.NotAvailable
	}

	data := fmt.Sprintf(`
Include these exact statistics in the design:
- Total Tokens: %s
- Prompt Tokens: %s
- Completion Tokens: %s
- Messages: %s
- Cost: %s
- Date: %s
- Top Model: %s
Include "OpenSync" branding at bottom.
`,
		render.FormatInt(stats.TotalTokens),
		render.FormatInt(stats.PromptTokens),
		render.FormatInt(stats.CompletionTokens),
		render.FormatInt(stats.TotalMessages),
		render.FormatCost(stats.Cost),
		date,
		topModel,
	)

	return base + "\n\n" + data
}
