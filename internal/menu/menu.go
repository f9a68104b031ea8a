package menu

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/oliverbestmann/glowmenu/byke"
	. "github.com/oliverbestmann/glowmenu/bykebiten"
	"github.com/oliverbestmann/glowmenu/bykebiten/color"
	"github.com/oliverbestmann/glowmenu/internal/appstate"
)

var _ = byke.ValidateComponent[MenuCamera]()

// Texts of the menu buttons. They double as the ids of the buttons.
const (
	ButtonStart    = "Start"
	ButtonContinue = "Continue"
	ButtonOptions  = "Options"
	ButtonQuit     = "Quit"
)

var ButtonTexts = []string{ButtonStart, ButtonContinue, ButtonOptions, ButtonQuit}

var (
	StaticInner = color.RGB(0.5, 0.5, 0.5)
	StaticOuter = color.RGB(0.2, 0.2, 0.2)

	HoverInner = color.RGB(0.5, 0.5, 1.0)
	HoverOuter = color.RGB(0.4, 0.4, 0.2)

	PressedInner = color.RGB(0.3, 0.3, 0.5)
	PressedOuter = color.RGB(0.6, 0.6, 0.2)

	RootBackground = color.RGB(0.5, 0.2, 0.2)
)

// MenuCamera tags the camera that renders the main menu.
type MenuCamera struct {
	byke.ComparableComponent[MenuCamera]
}

// Plugin shows the main menu while the app is in appstate.MainMenu.
func Plugin(app *byke.App) {
	app.AddMessage(byke.MessageType[AppExit]())

	inMenu := byke.InState(appstate.MainMenu)

	app.AddSystems(byke.Startup, byke.System(SetupMenu).RunIf(inMenu))
	app.AddSystems(byke.Update, byke.System(UpdateMenu).RunIf(inMenu))

	app.AddSystems(byke.OnExit(appstate.MainMenu), Cleanup[Node], Cleanup[MenuCamera])
}

func buttonStyle() Style {
	return Style{
		Width:          Px(150),
		Height:         Px(50),
		JustifyContent: JustifyContentCenter,
		AlignItems:     AlignItemsCenter,
		Border:         UiRectAll(Px(5)),
		Margin:         UiRectAll(Px(5)),
	}
}

func rootStyle() Style {
	return Style{
		Width:          Percent(100),
		FlexDirection:  FlexDirectionColumn,
		AlignItems:     AlignItemsCenter,
		JustifyContent: JustifyContentCenter,
	}
}

func menuButton(label string) byke.ErasedComponent {
	return byke.SpawnChild(
		byke.Named(label+" Button"),
		Button{},
		Node{Style: buttonStyle()},
		BackgroundColor{Color: StaticInner},
		BorderColor{Color: StaticOuter},
		byke.SpawnChild(Text{Text: label}),
	)
}

func SetupMenu(commands *byke.Commands) {
	slog.Info("setting up main menu")

	commands.Spawn(byke.Named("Menu Camera"), Camera{}, MenuCamera{})

	root := []byke.ErasedComponent{
		byke.Named("Main Menu"),
		Node{Style: rootStyle()},
		BackgroundColor{Color: RootBackground},
	}

	for _, label := range ButtonTexts {
		root = append(root, menuButton(label))
	}

	commands.Spawn(root...)
}

type menuButtonItem struct {
	_ byke.Changed[Interaction]
	_ byke.With[Button]

	Interaction     Interaction
	BackgroundColor *BackgroundColor
	BorderColor     *BorderColor
	Children        byke.Children
}

// UpdateMenu recolors the buttons whose interaction changed and reacts to clicks.
// A click is a release of the left mouse button while the button is hovered.
func UpdateMenu(
	mouse MouseButtons,
	buttons byke.Query[menuButtonItem],
	texts byke.Query[Text],
	nextState *byke.NextState[appstate.AppState],
	appExit *byke.MessageWriter[AppExit],
) {
	justReleased := mouse.IsJustReleased(ebiten.MouseButtonLeft)

	for button := range buttons.Items() {
		child, _ := button.Children.First()
		label, _ := texts.Get(child)

		slog.Debug("menu button interaction",
			slog.Bool("justReleased", justReleased),
			slog.String("interaction", button.Interaction.String()),
			slog.String("child", child.String()),
			slog.String("text", label.Text),
		)

		switch button.Interaction {
		case InteractionHovered:
			button.BackgroundColor.Color = HoverInner
			button.BorderColor.Color = HoverOuter

			if !justReleased {
				continue
			}

			switch label.Text {
			case ButtonStart:
				nextState.Set(appstate.InGame)

			case ButtonContinue, ButtonOptions:

			case ButtonQuit:
				appExit.Write(AppExit{})

			default:
				panic("unreachable UI state")
			}

		case InteractionPressed:
			button.BackgroundColor.Color = PressedInner
			button.BorderColor.Color = PressedOuter

		case InteractionNone:
			button.BackgroundColor.Color = StaticInner
			button.BorderColor.Color = StaticOuter
		}
	}
}

type cleanupItem[C byke.IsComponent[C]] struct {
	_        byke.With[C]
	EntityId byke.EntityId
}

// Cleanup despawns every entity with a component of type C, including its children.
func Cleanup[C byke.IsComponent[C]](commands *byke.Commands, query byke.Query[cleanupItem[C]]) {
	for item := range query.Items() {
		commands.Entity(item.EntityId).Despawn()
	}
}
