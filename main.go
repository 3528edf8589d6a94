package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/marcotoniut/carcenisation/pkg/app"
	"github.com/marcotoniut/carcenisation/pkg/config"
	"github.com/marcotoniut/carcenisation/pkg/embedded"
)

var (
	verbose    = flag.Bool("verbose", false, "启用详细日志")
	stage      = flag.String("stage", "", "直接进入指定关卡（路径或名称，如 park）")
	skipTitle  = flag.Bool("skip-title", false, "跳过标题画面，从战役第一关开始")
	debugSteps = flag.Bool("debug-steps", false, "打印关卡步骤切换")
)

func main() {
	flag.Parse()

	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		Stage:      *stage,
		SkipTitle:  *skipTitle,
		DebugSteps: *debugSteps,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}
	defer gameApp.GetSceneManager().Close()

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Carcinisation")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
