package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"DailyWrapped/pkg/model"
)

// NotAvailable 没有模型数据时的占位
const NotAvailable = "N/A"

// Layout 一种 9:16 竖版模板
type Layout interface {
	Name() string
	Render(w io.Writer, v View) error
}

// View 所有模板共享的数据契约
type View struct {
	DesignIndex     int
	Date            string
	DateUnderscored string
	DateUpper       string
	Year            string
	Tokens          string
	Messages        string
	MessageCount    string
	Cost            string
	TopModel        string
	TopModelShort   string
	Providers       string
}

// NewView 由统计数据和日期构造模板数据
func NewView(designIndex int, stats model.WrappedStats, date string) View {
	topModel := stats.TopModel()
	if topModel == "" {
		topModel = NotAvailable
	}

	providers := make([]string, 0, len(stats.TopProviders))
	for _, p := range stats.TopProviders {
		providers = append(providers, p.Provider)
	}

	year := date
	if len(date) >= 4 {
		year = date[:4]
	}

	return View{
		DesignIndex:     Normalize(designIndex),
		Date:            date,
		DateUnderscored: strings.ReplaceAll(date, "-", "_"),
		DateUpper:       strings.ToUpper(date),
		Year:            year,
		Tokens:          FormatNumber(stats.TotalTokens),
		Messages:        FormatNumber(stats.TotalMessages),
		MessageCount:    strconv.FormatInt(stats.TotalMessages, 10),
		Cost:            FormatCost(stats.Cost),
		TopModel:        topModel,
		TopModelShort:   truncateRunes(topModel, 20),
		Providers:       strings.Join(providers, " | "),
	}
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// htmlLayout 基于 html/template 的模板实现
type htmlLayout struct {
	name string
	tmpl *template.Template
}

func newHTMLLayout(name, style, body string) *htmlLayout {
	frame := `<div class="wrapped wrapped-` + name + `" data-design="{{.DesignIndex}}" data-layout="` + name + `" ` +
		`style="width:675px;height:1200px;position:relative;overflow:hidden;box-sizing:border-box;` + style + `">` +
		body + `</div>`

	return &htmlLayout{name: name, tmpl: template.Must(template.New(name).Parse(frame))}
}

func (l *htmlLayout) Name() string {
	return l.name
}

func (l *htmlLayout) Render(w io.Writer, v View) error {
	if err := l.tmpl.Execute(w, v); err != nil {
		return fmt.Errorf("渲染模板 %s 失败: %w", l.name, err)
	}
	return nil
}

// layouts 按 designIndex 排列的模板注册表
var layouts = []Layout{
	newHTMLLayout("minimal-dark", minimalDarkStyle, minimalDarkBody),
	newHTMLLayout("gradient-noise", gradientNoiseStyle, gradientNoiseBody),
	newHTMLLayout("geometric-beige", geometricBeigeStyle, geometricBeigeBody),
	newHTMLLayout("tech-cards", techCardsStyle, techCardsBody),
	newHTMLLayout("bold-typography", boldTypographyStyle, boldTypographyBody),
	newHTMLLayout("vinyl-record", vinylRecordStyle, vinylRecordBody),
	newHTMLLayout("orange-gradient", orangeGradientStyle, orangeGradientBody),
	newHTMLLayout("dark-minimal", darkMinimalStyle, darkMinimalBody),
	newHTMLLayout("blue-landscape", blueLandscapeStyle, blueLandscapeBody),
	newHTMLLayout("color-shapes", colorShapesStyle, colorShapesBody),
}

// Count 模板数量
func Count() int {
	return len(layouts)
}

// Normalize 把任意整数映射到 [0, Count())，负数同样回绕
func Normalize(designIndex int) int {
	n := len(layouts)
	return ((designIndex % n) + n) % n
}

// Select 按 designIndex 选择模板
func Select(designIndex int) Layout {
	return layouts[Normalize(designIndex)]
}

// Render 渲染 wrapped 模板
func Render(w io.Writer, designIndex int, stats model.WrappedStats, date string) error {
	return Select(designIndex).Render(w, NewView(designIndex, stats, date))
}

// RenderHTML 渲染为字符串
func RenderHTML(designIndex int, stats model.WrappedStats, date string) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, designIndex, stats, date); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SampleStats 模板预览用的示例数据
func SampleStats() model.WrappedStats {
	return model.WrappedStats{
		TotalTokens:      125000,
		PromptTokens:     80000,
		CompletionTokens: 45000,
		TotalMessages:    340,
		Cost:             4.56,
		TopModels: []model.ModelUsage{
			{Model: "gpt-4o", Tokens: 90000},
			{Model: "claude-sonnet-4", Tokens: 35000},
		},
		TopProviders: []model.ProviderUsage{
			{Provider: "openai", Tokens: 90000},
			{Provider: "anthropic", Tokens: 35000},
		},
	}
}
