// validate_stages 检查关卡脚本、敌人属性和战役配置
//
// 用法：
//
//	go run ./cmd/validate_stages                      # 检查 data/stages 下所有关卡
//	go run ./cmd/validate_stages data/stages/park.yaml
//
// 任意关卡无法加载时以状态码 1 退出；警告不影响退出码。
package main

import (
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/embedded"
)

var (
	root         = flag.String("root", ".", "包含 data/ 的项目根目录")
	statsPath    = flag.String("stats", "data/enemy_stats.yaml", "敌人属性文件")
	campaignPath = flag.String("campaign", "data/campaign.yaml", "战役配置文件，为空时跳过")
	verbose      = flag.Bool("verbose", false, "打印加载日志")
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#9BBC0F"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)
)

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	rootFS := os.DirFS(*root)
	embedded.Init(rootFS)

	stats, err := config.LoadEnemyStats(*statsPath)
	if err != nil {
		fmt.Println(errStyle.Render("✗ " + err.Error()))
		os.Exit(1)
	}

	paths := flag.Args()
	if len(paths) == 0 {
		paths, err = fs.Glob(rootFS, "data/stages/*.yaml")
		if err != nil || len(paths) == 0 {
			fmt.Println(errStyle.Render("✗ no stage files found under data/stages"))
			os.Exit(1)
		}
	}

	reports := make([]stageReport, 0, len(paths))
	for _, p := range paths {
		reports = append(reports, checkStage(p, stats))
	}
	fmt.Println(renderReports(reports))

	failed := 0
	for _, r := range reports {
		if !r.OK() {
			failed++
		}
	}

	if *campaignPath != "" {
		campaign, err := config.LoadCampaign(*campaignPath)
		if err != nil {
			fmt.Println(errStyle.Render("✗ " + err.Error()))
			failed++
		} else {
			for _, problem := range checkCampaign(campaign, reports) {
				fmt.Println(errStyle.Render("✗ " + problem))
				failed++
			}
		}
	}

	if failed > 0 {
		fmt.Println(errStyle.Render(fmt.Sprintf("%d problem(s) found", failed)))
		os.Exit(1)
	}
	fmt.Println(okStyle.Render(fmt.Sprintf("✓ %d stage(s) valid", len(reports))))
}

// renderReports 以表格形式输出检查结果
func renderReports(reports []stageReport) string {
	columns := []string{"", "STAGE", "FILE", "STEPS", "SPAWNS", "ENEMIES", "BOSSES", "MIN TIME"}
	rows := [][]string{columns}
	for _, r := range reports {
		mark := okStyle.Render("✓")
		if !r.OK() {
			mark = errStyle.Render("✗")
		}
		rows = append(rows, []string{
			mark,
			r.Name,
			r.Path,
			fmt.Sprint(r.Steps),
			fmt.Sprint(r.Spawns),
			fmt.Sprint(r.Enemies),
			fmt.Sprint(r.Bosses),
			fmt.Sprintf("%.1fs", r.MinTime),
		})
	}

	widths := make([]int, len(columns))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	for ri, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = cellStyle.Width(widths[i] + 2).Render(cell)
		}
		line := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
		if ri == 0 {
			line = headerStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	for _, r := range reports {
		if r.Err != nil {
			b.WriteString(errStyle.Render(fmt.Sprintf("✗ %s: %v", r.Path, r.Err)))
			b.WriteString("\n")
		}
		for _, w := range r.Warnings {
			b.WriteString(warnStyle.Render(fmt.Sprintf("! %s: %s", r.Path, w)))
			b.WriteString("\n")
		}
	}
	b.WriteString(dimStyle.Render("min time ignores kill conditions"))
	return b.String()
}
