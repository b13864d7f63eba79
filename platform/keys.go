package platform

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gekko3d/scenedit"
)

var glfwToKey = map[glfw.Key]int{
	glfw.KeyA:            scenedit.KeyA,
	glfw.KeyB:            scenedit.KeyB,
	glfw.KeyC:            scenedit.KeyC,
	glfw.KeyD:            scenedit.KeyD,
	glfw.KeyE:            scenedit.KeyE,
	glfw.KeyF:            scenedit.KeyF,
	glfw.KeyG:            scenedit.KeyG,
	glfw.KeyH:            scenedit.KeyH,
	glfw.KeyI:            scenedit.KeyI,
	glfw.KeyJ:            scenedit.KeyJ,
	glfw.KeyK:            scenedit.KeyK,
	glfw.KeyL:            scenedit.KeyL,
	glfw.KeyM:            scenedit.KeyM,
	glfw.KeyN:            scenedit.KeyN,
	glfw.KeyO:            scenedit.KeyO,
	glfw.KeyP:            scenedit.KeyP,
	glfw.KeyQ:            scenedit.KeyQ,
	glfw.KeyR:            scenedit.KeyR,
	glfw.KeyS:            scenedit.KeyS,
	glfw.KeyT:            scenedit.KeyT,
	glfw.KeyU:            scenedit.KeyU,
	glfw.KeyV:            scenedit.KeyV,
	glfw.KeyW:            scenedit.KeyW,
	glfw.KeyX:            scenedit.KeyX,
	glfw.KeyY:            scenedit.KeyY,
	glfw.KeyZ:            scenedit.KeyZ,
	glfw.Key0:            scenedit.Key0,
	glfw.Key1:            scenedit.Key1,
	glfw.Key2:            scenedit.Key2,
	glfw.Key3:            scenedit.Key3,
	glfw.Key4:            scenedit.Key4,
	glfw.Key5:            scenedit.Key5,
	glfw.Key6:            scenedit.Key6,
	glfw.Key7:            scenedit.Key7,
	glfw.Key8:            scenedit.Key8,
	glfw.Key9:            scenedit.Key9,
	glfw.KeySpace:        scenedit.KeySpace,
	glfw.KeyEnter:        scenedit.KeyEnter,
	glfw.KeyEscape:       scenedit.KeyEscape,
	glfw.KeyTab:          scenedit.KeyTab,
	glfw.KeyBackspace:    scenedit.KeyBackspace,
	glfw.KeyInsert:       scenedit.KeyInsert,
	glfw.KeyDelete:       scenedit.KeyDelete,
	glfw.KeyRight:        scenedit.KeyRight,
	glfw.KeyLeft:         scenedit.KeyLeft,
	glfw.KeyDown:         scenedit.KeyDown,
	glfw.KeyUp:           scenedit.KeyUp,
	glfw.KeyF1:           scenedit.KeyF1,
	glfw.KeyF2:           scenedit.KeyF2,
	glfw.KeyF3:           scenedit.KeyF3,
	glfw.KeyF4:           scenedit.KeyF4,
	glfw.KeyF5:           scenedit.KeyF5,
	glfw.KeyF6:           scenedit.KeyF6,
	glfw.KeyF7:           scenedit.KeyF7,
	glfw.KeyF8:           scenedit.KeyF8,
	glfw.KeyF9:           scenedit.KeyF9,
	glfw.KeyF10:          scenedit.KeyF10,
	glfw.KeyF11:          scenedit.KeyF11,
	glfw.KeyF12:          scenedit.KeyF12,
	glfw.KeyMinus:        scenedit.KeyMinus,
	glfw.KeyEqual:        scenedit.KeyEqual,
	glfw.KeyKPAdd:        scenedit.KeyKPPlus,
	glfw.KeyKPSubtract:   scenedit.KeyKPMinus,
	glfw.KeyLeftShift:    scenedit.KeyShift,
	glfw.KeyRightShift:   scenedit.KeyShift,
	glfw.KeyLeftControl:  scenedit.KeyControl,
	glfw.KeyRightControl: scenedit.KeyControl,
	glfw.KeyLeftAlt:      scenedit.KeyLeftAlt,
}

var glfwToButton = map[glfw.MouseButton]int{
	glfw.MouseButtonLeft:   scenedit.MouseButtonLeft,
	glfw.MouseButtonRight:  scenedit.MouseButtonRight,
	glfw.MouseButtonMiddle: scenedit.MouseButtonMiddle,
}
