package bykebiten

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/oliverbestmann/glowmenu/byke"
	"github.com/oliverbestmann/glowmenu/bykebiten/color"
	"github.com/oliverbestmann/glowmenu/gm"
)

var _ = byke.ValidateComponent[Node]()
var _ = byke.ValidateComponent[ComputedNode]()
var _ = byke.ValidateComponent[BackgroundColor]()
var _ = byke.ValidateComponent[BorderColor]()

type valKind uint8

const (
	valAuto valKind = iota
	valPx
	valPercent
)

// Val is a length in the ui layout.
type Val struct {
	kind  valKind
	value float64
}

// Auto sizes a node to fit its content.
var Auto = Val{}

func Px(value float64) Val {
	return Val{kind: valPx, value: value}
}

// Percent is relative to the content size of the parent node.
func Percent(value float64) Val {
	return Val{kind: valPercent, value: value}
}

func (v Val) IsAuto() bool {
	return v.kind == valAuto
}

// resolve returns the length in pixels. It returns false for Auto.
func (v Val) resolve(parent float64) (float64, bool) {
	switch v.kind {
	case valPx:
		return v.value, true
	case valPercent:
		return parent * v.value / 100, true
	default:
		return 0, false
	}
}

func (v Val) String() string {
	switch v.kind {
	case valPx:
		return fmt.Sprintf("%gpx", v.value)
	case valPercent:
		return fmt.Sprintf("%g%%", v.value)
	default:
		return "auto"
	}
}

// UiRect holds one Val per side of a node, e.g. for margins or borders.
type UiRect struct {
	Left, Right, Top, Bottom Val
}

func UiRectAll(value Val) UiRect {
	return UiRect{Left: value, Right: value, Top: value, Bottom: value}
}

// resolve computes the insets in pixel. Percentages are relative to the width of the
// parent, auto resolves to zero.
func (r UiRect) resolve(parentWidth float64) Insets {
	side := func(v Val) float64 {
		value, _ := v.resolve(parentWidth)
		return value
	}

	return Insets{
		Left:   side(r.Left),
		Top:    side(r.Top),
		Right:  side(r.Right),
		Bottom: side(r.Bottom),
	}
}

type Insets struct {
	Left, Top, Right, Bottom float64
}

func (i Insets) Add(other Insets) Insets {
	return Insets{
		Left:   i.Left + other.Left,
		Top:    i.Top + other.Top,
		Right:  i.Right + other.Right,
		Bottom: i.Bottom + other.Bottom,
	}
}

// Size returns the total horizontal and vertical inset.
func (i Insets) Size() gm.Vec {
	return gm.Vec{X: i.Left + i.Right, Y: i.Top + i.Bottom}
}

func (i Insets) Shrink(rect gm.Rect) gm.Rect {
	return rect.Inset(i.Left, i.Top, i.Right, i.Bottom)
}

type FlexDirection uint8

const (
	FlexDirectionRow FlexDirection = iota
	FlexDirectionColumn
)

type JustifyContent uint8

const (
	JustifyContentStart JustifyContent = iota
	JustifyContentCenter
	JustifyContentEnd
	JustifyContentSpaceBetween
)

type AlignItems uint8

const (
	AlignItemsStretch AlignItems = iota
	AlignItemsStart
	AlignItemsCenter
	AlignItemsEnd
)

type Style struct {
	Width, Height Val

	FlexDirection  FlexDirection
	JustifyContent JustifyContent
	AlignItems     AlignItems

	Margin  UiRect
	Border  UiRect
	Padding UiRect
}

// Node is an element of the ui. Nodes are laid out in screen space
// using a subset of flexbox, independent of any camera.
type Node struct {
	byke.ComparableComponent[Node]
	Style
}

func (Node) RequireComponents() []byke.ErasedComponent {
	return []byke.ErasedComponent{
		ComputedNode{},
		BackgroundColor{Color: color.Transparent},
		BorderColor{Color: color.Transparent},
		Inherited,
	}
}

// ComputedNode is the result of the layout in screen pixels.
type ComputedNode struct {
	byke.ComparableComponent[ComputedNode]

	// The border box of the node
	Rect gm.Rect

	Border Insets

	// Nodes are drawn in order of their stack index, children after their parent.
	Stack int
}

type BackgroundColor struct {
	byke.ComparableComponent[BackgroundColor]
	color.Color
}

type BorderColor struct {
	byke.ComparableComponent[BorderColor]
	color.Color
}

type layoutNode struct {
	Node     Node
	Computed *ComputedNode
	Text     byke.Option[Text]
	Font     byke.Option[TextFont]
	Children byke.Option[byke.Children]
}

type rootNodeItem struct {
	_ byke.With[Node]
	_ byke.Without[byke.ChildOf]

	EntityId byke.EntityId
}

type uiLayout struct {
	nodes byke.Query[layoutNode]
	stack int
}

func layoutSystem(
	screenSize ScreenSize,
	roots byke.Query[rootNodeItem],
	nodes byke.Query[layoutNode],
) {
	layout := uiLayout{nodes: nodes}

	for root := range roots.Items() {
		node, ok := nodes.Get(root.EntityId)
		if !ok {
			continue
		}

		layout.layoutRoot(node, screenSize.Vec)
	}
}

// layoutRoot places a root node into the window. The window behaves like a row
// with stretched items: a root without a height fills the window vertically.
func (l *uiLayout) layoutRoot(node layoutNode, screen gm.Vec) {
	style := node.Node.Style
	margin := style.Margin.resolve(screen.X)

	size := l.size(node, screen)

	if style.Height.IsAuto() {
		size.Y = max(0, screen.Y-margin.Top-margin.Bottom)
	}

	origin := gm.Vec{X: margin.Left, Y: margin.Top}
	l.arrange(node, gm.RectWithOriginAndSize(origin, size), screen)
}

func (l *uiLayout) children(node layoutNode) []layoutNode {
	children, ok := node.Children.Get()
	if !ok {
		return nil
	}

	var result []layoutNode
	for _, childId := range children.Children() {
		if child, ok := l.nodes.Get(childId); ok {
			result = append(result, child)
		}
	}

	return result
}

// frame returns the combined border and padding of a node.
func frameOf(style Style, parentWidth float64) Insets {
	return style.Border.resolve(parentWidth).Add(style.Padding.resolve(parentWidth))
}

// size returns the size of the border box of a node. Auto sizes fit the content.
func (l *uiLayout) size(node layoutNode, parentContent gm.Vec) gm.Vec {
	style := node.Node.Style

	width, hasWidth := style.Width.resolve(parentContent.X)
	height, hasHeight := style.Height.resolve(parentContent.Y)

	if hasWidth && hasHeight {
		return gm.Vec{X: width, Y: height}
	}

	frame := frameOf(style, parentContent.X).Size()

	available := gm.Vec{X: width, Y: height}.Sub(frame).Max(gm.VecZero)
	content := l.contentSize(node, available)

	if !hasWidth {
		width = content.X + frame.X
	}

	if !hasHeight {
		height = content.Y + frame.Y
	}

	return gm.Vec{X: width, Y: height}
}

func (l *uiLayout) contentSize(node layoutNode, available gm.Vec) gm.Vec {
	if value, ok := node.Text.Get(); ok {
		return measureText(value, node.Font.OrZero())
	}

	column := node.Node.FlexDirection == FlexDirectionColumn

	var mainSize, crossSize float64
	for _, child := range l.children(node) {
		childSize := l.size(child, available).Add(child.Node.Margin.resolve(available.X).Size())

		main, cross := axes(column, childSize)
		mainSize += main
		crossSize = max(crossSize, cross)
	}

	return fromAxes(column, mainSize, crossSize)
}

// arrange assigns the given border box to the node and lays out its children.
func (l *uiLayout) arrange(node layoutNode, rect gm.Rect, parentContent gm.Vec) {
	style := node.Node.Style

	l.stack++

	*node.Computed = ComputedNode{
		Rect:   rect,
		Border: style.Border.resolve(parentContent.X),
		Stack:  l.stack,
	}

	children := l.children(node)
	if len(children) == 0 {
		return
	}

	content := frameOf(style, parentContent.X).Shrink(rect)
	contentSize := content.Size()

	column := style.FlexDirection == FlexDirectionColumn
	contentMain, contentCross := axes(column, contentSize)

	sizes := make([]gm.Vec, len(children))
	margins := make([]Insets, len(children))

	var usedMain float64
	for idx, child := range children {
		margins[idx] = child.Node.Margin.resolve(contentSize.X)
		sizes[idx] = l.size(child, contentSize)

		main, _ := axes(column, sizes[idx].Add(margins[idx].Size()))
		usedMain += main
	}

	offset, gap := justify(style.JustifyContent, contentMain-usedMain, len(children))

	cursor := offset
	for idx, child := range children {
		mainStart, mainEnd, crossStart, crossEnd := marginAxes(column, margins[idx])

		main, cross := axes(column, sizes[idx])

		crossVal := child.Node.Height
		if column {
			crossVal = child.Node.Width
		}

		if style.AlignItems == AlignItemsStretch && crossVal.IsAuto() {
			cross = max(0, contentCross-crossStart-crossEnd)
		}

		var crossPos float64
		switch style.AlignItems {
		case AlignItemsCenter:
			crossPos = crossStart + (contentCross-cross-crossStart-crossEnd)/2
		case AlignItemsEnd:
			crossPos = contentCross - cross - crossEnd
		default:
			crossPos = crossStart
		}

		mainPos := cursor + mainStart
		cursor = mainPos + main + mainEnd + gap

		origin := content.Min.Add(fromAxes(column, mainPos, crossPos))
		l.arrange(child, gm.RectWithOriginAndSize(origin, fromAxes(column, main, cross)), contentSize)
	}
}

// justify returns the offset of the first child and the gap between children
// on the main axis.
func justify(justify JustifyContent, free float64, count int) (offset, gap float64) {
	switch justify {
	case JustifyContentCenter:
		return free / 2, 0
	case JustifyContentEnd:
		return free, 0
	case JustifyContentSpaceBetween:
		if count > 1 && free > 0 {
			return 0, free / float64(count-1)
		}

		return 0, 0
	default:
		return 0, 0
	}
}

func axes(column bool, v gm.Vec) (main, cross float64) {
	if column {
		return v.Y, v.X
	}

	return v.X, v.Y
}

func fromAxes(column bool, main, cross float64) gm.Vec {
	if column {
		return gm.Vec{X: cross, Y: main}
	}

	return gm.Vec{X: main, Y: cross}
}

func marginAxes(column bool, margin Insets) (mainStart, mainEnd, crossStart, crossEnd float64) {
	if column {
		return margin.Top, margin.Bottom, margin.Left, margin.Right
	}

	return margin.Left, margin.Right, margin.Top, margin.Bottom
}

type renderNodeValue struct {
	Computed   ComputedNode
	Background BackgroundColor
	Border     BorderColor
	Visibility InheritedVisibility
	Text       byke.Option[Text]
	Font       byke.Option[TextFont]
	TextColor  byke.Option[TextColor]
}

func renderUiSystem(
	screen screenRenderTarget,
	nodes byke.Query[renderNodeValue],
	cache *byke.Local[[]renderNodeValue],
) {
	cache.Value = nodes.AppendTo(cache.Value[:0])
	defer clear(cache.Value)

	items := cache.Value

	slices.SortFunc(items, func(a, b renderNodeValue) int {
		return cmp.Compare(a.Computed.Stack, b.Computed.Stack)
	})

	for _, item := range items {
		if !item.Visibility.Visible {
			continue
		}

		rect := item.Computed.Rect
		fillRect(screen.Image, rect, item.Background.Color)

		if item.Border.A > 0 {
			border := item.Computed.Border
			inner := border.Shrink(rect)

			fillRect(screen.Image, gm.Rect{Min: rect.Min, Max: gm.Vec{X: rect.Max.X, Y: inner.Min.Y}}, item.Border.Color)
			fillRect(screen.Image, gm.Rect{Min: gm.Vec{X: rect.Min.X, Y: inner.Max.Y}, Max: rect.Max}, item.Border.Color)
			fillRect(screen.Image, gm.Rect{Min: gm.Vec{X: rect.Min.X, Y: inner.Min.Y}, Max: gm.Vec{X: inner.Min.X, Y: inner.Max.Y}}, item.Border.Color)
			fillRect(screen.Image, gm.Rect{Min: gm.Vec{X: inner.Max.X, Y: inner.Min.Y}, Max: gm.Vec{X: rect.Max.X, Y: inner.Max.Y}}, item.Border.Color)
		}

		if value, ok := item.Text.Get(); ok {
			face := item.Font.OrZero().face()

			var op text.DrawOptions
			op.GeoM.Translate(rect.Min.X, rect.Min.Y)
			op.ColorScale.Scale(item.TextColor.OrZero().PremultipliedValues())
			op.LineSpacing = lineSpacingOf(face)

			text.Draw(screen.Image, value.Text, face, &op)
		}
	}
}

func fillRect(target *ebiten.Image, rect gm.Rect, c color.Color) {
	if c.A <= 0 || rect.IsEmpty() {
		return
	}

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(rect.Width(), rect.Height())
	op.GeoM.Translate(rect.Min.X, rect.Min.Y)
	op.ColorScale.Scale(c.PremultipliedValues())

	target.DrawImage(whiteImage(), &op)
}
