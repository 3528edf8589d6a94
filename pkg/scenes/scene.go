package scenes

import (
	"github.com/marcotoniut/carcenisation/pkg/game"
)

// Scene is a type alias for game.Scene.
// Both TitleScene and StageScene implement it and game.Closer.
type Scene = game.Scene

var (
	_ Scene       = (*TitleScene)(nil)
	_ Scene       = (*StageScene)(nil)
	_ game.Closer = (*StageScene)(nil)
)
