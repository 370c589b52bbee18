// Package render 把 wrapped 统计渲染为十种固定的视觉模板
package render

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatNumber 大数缩写：>=1e6 显示为 M，>=1e3 显示为 K，其余按千位分组
func FormatNumber(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", roundHalfUp(float64(n)/1_000_000, 1))
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", roundHalfUp(float64(n)/1_000, 1))
	default:
		return FormatInt(n)
	}
}

// FormatInt 按千位分组输出整数，例如 125000 -> "125,000"
func FormatInt(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatCost 金额固定两位小数并带 $ 前缀
func FormatCost(c float64) string {
	return fmt.Sprintf("$%.2f", roundHalfUp(c, 2))
}

func roundHalfUp(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
