package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 根据关卡文件和战役序号创建关卡场景，避免循环依赖
type SceneFactory func(stagePath string, index int) Scene

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
	titleFactory func() Scene
	pending      Scene // 下一帧切换的场景
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置关卡场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SetTitleFactory 设置标题场景工厂函数
func (sm *SceneManager) SetTitleFactory(factory func() Scene) {
	sm.titleFactory = factory
}

// SwitchTo changes the active scene immediately.
// The previous scene is closed if it implements Closer.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if c, ok := sm.currentScene.(Closer); ok && sm.currentScene != scene {
		c.Close()
	}
	sm.currentScene = scene
}

// Defer 在下一次 Update 开始时切换场景
// 场景在自己的 Update 中请求切换时使用，避免在更新途中替换自身
func (sm *SceneManager) Defer(scene Scene) {
	sm.pending = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// LoadStage 加载指定关卡场景（下一帧生效）
//
// 参数：
//   - stagePath: 关卡 YAML 路径，如 "data/stages/park.yaml"
//   - index: 战役中的序号，-1 表示独立关卡
func (sm *SceneManager) LoadStage(stagePath string, index int) {
	log.Printf("[SceneManager] 加载关卡: %s", stagePath)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return
	}

	newScene := sm.sceneFactory(stagePath, index)
	if newScene == nil {
		log.Printf("[SceneManager] 错误: 无法创建关卡场景: %s", stagePath)
		return
	}
	sm.Defer(newScene)
}

// LoadTitle 返回标题画面（下一帧生效）
func (sm *SceneManager) LoadTitle() {
	if sm.titleFactory == nil {
		log.Printf("[SceneManager] 错误: TitleFactory 未设置")
		return
	}
	sm.Defer(sm.titleFactory())
}

// Update applies a pending switch, then updates the active scene.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.pending != nil {
		sm.SwitchTo(sm.pending)
		sm.pending = nil
	}
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

// Close 关闭当前场景，程序退出时调用
func (sm *SceneManager) Close() {
	if c, ok := sm.currentScene.(Closer); ok {
		c.Close()
	}
}
