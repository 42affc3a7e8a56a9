package panel

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// Panel is the ebitenui surface around a Controller.
type Panel struct {
	ui      *ebitenui.UI
	ctl     *Controller
	sliders [controlCount]*widget.Slider
	labels  [controlCount]*widget.Text
}

// Height is the vertical space the panel occupies at the bottom of the window.
const Height = 260

// New builds the panel for target. The bell view is expected above it; the
// panel anchors itself to the bottom of the window.
func New(target Target, ranges Ranges) *Panel {
	p := &Panel{ctl: NewController(target, ranges)}

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	textColor := color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}

	trackImg := &widget.SliderTrackImage{
		Idle:  imageui.NewNineSliceColor(color.NRGBA{R: 0xc8, G: 0xc8, B: 0xc8, A: 0xff}),
		Hover: imageui.NewNineSliceColor(color.NRGBA{R: 0xd8, G: 0xd8, B: 0xd8, A: 0xff}),
	}
	handleImg := &widget.ButtonImage{
		Idle:    imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x7a, B: 0xff, A: 0xff}),
		Hover:   imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x95, B: 0xff, A: 0xff}),
		Pressed: imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x5a, B: 0xc0, A: 0xff}),
	}

	column := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(color.NRGBA{R: 0xf2, G: 0xf2, B: 0xf7, A: 0xff})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 16, Bottom: 16, Left: 24, Right: 24}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(0, Height),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
				StretchHorizontal:  true,
			}),
		),
	)

	labels := p.ctl.Labels()
	for i := range p.sliders {
		ctl := Control(i)
		p.labels[i] = widget.NewText(
			widget.TextOpts.Text(labels[i], &face, textColor),
			widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})),
		)
		p.sliders[i] = widget.NewSlider(
			widget.SliderOpts.Direction(widget.DirectionHorizontal),
			widget.SliderOpts.MinMax(0, Steps),
			widget.SliderOpts.Images(trackImg, handleImg),
			widget.SliderOpts.FixedHandleSize(12),
			widget.SliderOpts.InitialCurrent(p.ctl.Position(ctl)),
			widget.SliderOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(0, 20),
				widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}),
			),
			widget.SliderOpts.ChangedHandler(func(args *widget.SliderChangedEventArgs) {
				if p.ctl.Changed(ctl, args.Current) {
					p.refreshLabels()
				}
			}),
		)
		column.AddChild(p.labels[i])
		column.AddChild(p.sliders[i])
	}

	reset := widget.NewButton(
		widget.ButtonOpts.Image(handleImg),
		widget.ButtonOpts.Text("Reset", &face, &widget.ButtonTextColor{Idle: color.White}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			p.Reset()
		}),
	)
	column.AddChild(reset)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(column)
	p.ui = &ebitenui.UI{Container: root}
	return p
}

// Controller returns the panel's slider logic.
func (p *Panel) Controller() *Controller { return p.ctl }

// Reset restores the target's defaults and moves every slider to the middle.
func (p *Panel) Reset() {
	pos := p.ctl.Reset()
	for i, s := range p.sliders {
		s.Current = pos[i]
	}
	p.refreshLabels()
}

// SetRanges changes the slider mapping.
func (p *Panel) SetRanges(r Ranges) {
	p.ctl.SetRanges(r)
}

// Refresh re-reads the target's parameters into the labels.
func (p *Panel) Refresh() {
	p.refreshLabels()
}

func (p *Panel) refreshLabels() {
	for i, s := range p.ctl.Labels() {
		p.labels[i].Label = s
	}
}

// Update runs the UI's input handling. Call once per tick.
func (p *Panel) Update() {
	p.ui.Update()
}

// Draw renders the panel.
func (p *Panel) Draw(screen *ebiten.Image) {
	p.ui.Draw(screen)
}
