package main

import (
	"errors"
	"flag"
	"io/fs"
	"log"

	"golang.design/x/clipboard"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	screenWidth  = 900
	screenHeight = 620
)

// EditorGame hosts the graph-editor UI. The widget tree is rebuilt after
// every model change instead of mutated in place.
type EditorGame struct {
	model       *Model
	ui          *ebitenui.UI
	status      string
	stale       bool
	clipboardOK bool
}

func (e *EditorGame) refresh() { e.stale = true }

func (e *EditorGame) addState(name string) {
	if e.model.AddState(name) {
		e.status = "added " + name
	} else {
		e.status = "state name empty or taken"
	}
	e.refresh()
}

func (e *EditorGame) copyYAML() {
	raw, err := e.model.YAML()
	if err != nil {
		e.status = err.Error()
		return
	}
	if !e.clipboardOK {
		e.status = "clipboard unavailable"
		return
	}
	clipboard.Write(clipboard.FmtText, raw)
	e.status = "copied to clipboard"
}

func (e *EditorGame) Update() error {
	if e.stale {
		e.stale = false
		e.ui = buildUI(e)
	}
	e.ui.Update()
	return nil
}

func (e *EditorGame) Draw(screen *ebiten.Image) {
	e.ui.Draw(screen)
}

func (e *EditorGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	graphPath := flag.String("graph", "prefabs/graphs/ghoul.yaml", "graph YAML to edit")
	flag.Parse()

	model, err := LoadModel(*graphPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("%s not found, starting a new graph", *graphPath)
			model = NewModel(*graphPath)
		} else {
			log.Fatal(err)
		}
	}

	clipboardOK := clipboard.Init() == nil

	game := &EditorGame{model: model, clipboardOK: clipboardOK, stale: true}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("cryptling graph editor")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
