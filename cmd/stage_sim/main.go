// stage_sim 在终端中无窗口地运行一个关卡
//
// 用法：
//
//	go run ./cmd/stage_sim --stage data/stages/park.yaml --autokill --god
//	go run ./cmd/stage_sim --stage data/stages/debug.yaml --headless
//
// 没有玩家输入：--autokill 让敌人在存活一段时间后自动死亡，
// --god 让玩家不会死亡，用来检查关卡脚本能否走完。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/embedded"
	"github.com/marcotoniut/carcenisation/pkg/game"
)

var (
	stagePath = flag.String("stage", "data/stages/park.yaml", "关卡文件")
	statsPath = flag.String("stats", "data/enemy_stats.yaml", "敌人属性文件")
	root      = flag.String("root", ".", "包含 data/ 的项目根目录")
	autoKill  = flag.Bool("autokill", false, "敌人存活 --kill-delay 秒后自动击杀")
	killDelay = flag.Float64("kill-delay", 2, "自动击杀延迟（秒）")
	god       = flag.Bool("god", false, "玩家不会受到伤害")
	limit     = flag.Float64("limit", 600, "模拟时长上限（秒）")
	speed     = flag.Int("speed", 4, "每个显示帧模拟的逻辑帧数")
	headless  = flag.Bool("headless", false, "不显示界面，直接运行到结束并打印结果")
	verbose   = flag.Bool("verbose", false, "打印系统日志")
)

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	embedded.Init(os.DirFS(*root))

	stats, err := config.LoadEnemyStats(*statsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sim, err := newSimulator(*stagePath, stats, simOptions{
		AutoKill:  *autoKill,
		KillDelay: *killDelay,
		God:       *god,
		Limit:     *limit,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *headless {
		sim.runToEnd()
		for _, e := range sim.events {
			fmt.Println(eventStyle.Render(e))
		}
		snap := sim.snapshot()
		fmt.Println(resultLine(snap))
		if snap.Progress != game.StageCleared {
			os.Exit(1)
		}
		return
	}

	p := tea.NewProgram(newSimModel(sim, *speed), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
