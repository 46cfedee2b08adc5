package main

import (
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	editorFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

	panelBG  = imageui.NewNineSliceColor(color.NRGBA{R: 0x22, G: 0x22, B: 0x2a, A: 0xff})
	buttonBG = imageui.NewNineSliceColor(color.NRGBA{R: 0x3a, G: 0x3a, B: 0x46, A: 0xff})
	activeBG = imageui.NewNineSliceColor(color.NRGBA{R: 0x2f, G: 0x55, B: 0x2f, A: 0xff})
	inputBG  = imageui.NewNineSliceColor(color.NRGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff})

	white     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	warnColor = color.NRGBA{R: 0xe0, G: 0x90, B: 0x40, A: 0xff}
)

func textLabel(s string, clr color.Color) *widget.Text {
	return widget.NewText(widget.TextOpts.Text(s, &editorFace, clr))
}

func actionButton(label string, bg *imageui.NineSlice, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: bg, Pressed: bg}),
		widget.ButtonOpts.Text(label, &editorFace, &widget.ButtonTextColor{Idle: white}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func column(spacing int) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(spacing),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 10, Right: 10}),
		)),
	)
}

// buildUI lays the whole editor out from scratch. It runs again after any
// model mutation; the widget tree is small enough that rebuilding beats
// keeping widgets in sync piecemeal.
func buildUI(e *EditorGame) *ebitenui.UI {
	m := e.model

	// Left column: declared states. Click selects, [x] removes, [I] marks
	// the initial state.
	states := column(6)
	states.AddChild(textLabel(fmt.Sprintf("states (%s)", m.Spec.Name), white))
	for _, name := range m.StateNames() {
		name := name
		bg := buttonBG
		if name == m.Selected {
			bg = activeBG
		}
		label := name
		if name == m.Spec.Graph.Initial {
			label = name + " *"
		}

		row := widget.NewContainer(
			widget.ContainerOpts.Layout(widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(4),
			)),
		)
		row.AddChild(actionButton(label, bg, func() {
			m.Selected = name
			e.refresh()
		}))
		row.AddChild(actionButton("I", buttonBG, func() {
			if m.SetInitial(name) {
				e.status = "initial = " + name
			}
			e.refresh()
		}))
		row.AddChild(actionButton("x", buttonBG, func() {
			if !m.RemoveState(name) {
				e.status = "cannot remove the initial state"
			}
			e.refresh()
		}))
		states.AddChild(row)
	}

	// Middle column: allowed transitions out of the selected state. Every
	// other declared state shows as a toggle.
	transitions := column(6)
	transitions.AddChild(textLabel("allowed from "+m.Selected, white))
	for _, target := range m.StateNames() {
		target := target
		if target == m.Selected {
			continue
		}
		label := "-> " + target
		bg := buttonBG
		if m.HasTransition(m.Selected, target) {
			bg = activeBG
			label += " [on]"
		}
		transitions.AddChild(actionButton(label, bg, func() {
			m.ToggleTransition(m.Selected, target)
			e.refresh()
		}))
	}
	if len(m.Spec.Graph.States[m.Selected].AllowedTransitions) == 0 {
		transitions.AddChild(textLabel("(empty list = unrestricted)", warnColor))
	}

	// Right column: toolbar and diagnostics.
	tools := column(6)
	tools.AddChild(textLabel("file: "+m.Path, white))

	nameInput := widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(160, 24)),
		widget.TextInputOpts.Image(&widget.TextInputImage{Idle: inputBG, Disabled: inputBG}),
		widget.TextInputOpts.Color(&widget.TextInputColor{Idle: color.Black, Disabled: color.Gray{Y: 120}, Caret: color.Black}),
		widget.TextInputOpts.Face(&editorFace),
		widget.TextInputOpts.Placeholder("new state name"),
		widget.TextInputOpts.SubmitOnEnter(true),
		widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
			e.addState(args.InputText)
		}),
	)
	tools.AddChild(nameInput)
	tools.AddChild(actionButton("Add state", buttonBG, func() {
		e.addState(nameInput.GetText())
	}))
	tools.AddChild(actionButton("Save", buttonBG, func() {
		if err := m.Save(); err != nil {
			e.status = err.Error()
		} else {
			e.status = "saved " + m.Path
		}
		e.refresh()
	}))
	tools.AddChild(actionButton("Copy YAML", buttonBG, func() {
		e.copyYAML()
		e.refresh()
	}))

	if problems := m.Problems(); len(problems) > 0 {
		tools.AddChild(textLabel("dangling targets:", warnColor))
		tools.AddChild(textLabel(strings.Join(problems, ", "), warnColor))
	}
	if m.Dirty {
		tools.AddChild(textLabel("unsaved changes", warnColor))
	}
	if e.status != "" {
		tools.AddChild(textLabel(e.status, white))
	}

	body := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelBG),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(24),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 10, Right: 10}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
				StretchHorizontal:  true,
				StretchVertical:    true,
			}),
		),
	)
	body.AddChild(states)
	body.AddChild(transitions)
	body.AddChild(tools)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(body)

	return &ebitenui.UI{Container: root}
}
