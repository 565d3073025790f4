package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageTemplate  = "page"
	boardTemplate = "board"
)

// Renderer turns a GameView into HTML.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	templates, err := template.New("").Funcs(template.FuncMap{
		"stylesheet":    stylesheet,
		"restartLabel":  func() string { return RestartLabel },
		"restartTestID": func() string { return RestartTestID },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{templates: templates}, nil
}

// MustNewRenderer - panics if the embedded templates do not parse.
func MustNewRenderer() *Renderer {
	renderer, err := NewRenderer()
	if err != nil {
		panic(err)
	}

	return renderer
}

// Templates exposes the parsed set for engines that render by name.
func (that *Renderer) Templates() *template.Template {
	return that.templates
}

func (that *Renderer) Page(w io.Writer, gameView GameView) error {
	if err := that.templates.ExecuteTemplate(w, pageTemplate, gameView); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	return nil
}

// Board renders the fragment swapped in after every action.
func (that *Renderer) Board(gameView GameView) (string, error) {
	var buf bytes.Buffer
	if err := that.templates.ExecuteTemplate(&buf, boardTemplate, gameView); err != nil {
		return "", fmt.Errorf("failed to render board: %w", err)
	}

	return buf.String(), nil
}

func stylesheet() template.CSS {
	return template.CSS(fmt.Sprintf(`
body { margin: 0; min-height: 100vh; background: %[4]s; font-family: sans-serif; display: flex; flex-direction: column; align-items: center; }
.navbar { position: fixed; top: 0; left: 0; width: 100%%; z-index: 99; background: #fff; border-bottom: 1px solid #eee; color: %[2]s; display: flex; justify-content: space-between; align-items: center; padding: 12px 24px; box-sizing: border-box; }
.logo { color: %[1]s; font-weight: 700; }
.logo-mark { font-weight: 900; font-size: 22px; margin-right: 8px; }
.built-with { color: #bbb; font-size: 16px; }
main { flex: 1; display: flex; flex-direction: column; align-items: center; justify-content: center; width: 100%%; min-height: 100vh; margin-top: 80px; padding-bottom: 40px; }
#game { display: flex; flex-direction: column; align-items: center; }
.status { font-size: 24px; font-weight: 500; margin-bottom: 32px; color: %[3]s; }
.status .winner { color: %[3]s; font-weight: 600; }
.status .turn { font-weight: bold; }
.board { display: grid; grid-template-columns: repeat(3, 70px); grid-template-rows: repeat(3, 70px); gap: 8px; background: #fff; border-radius: 16px; box-shadow: 0 2px 16px 0 rgba(35,35,35,.09); padding: 20px; margin-bottom: 28px; align-items: center; justify-items: center; }
.board form { margin: 0; }
.ttt-square { width: 65px; height: 65px; border-radius: 10px; border: 2.5px solid %[6]s; background: %[7]s; color: %[5]s; font-size: 34px; font-weight: 700; cursor: default; display: flex; align-items: center; justify-content: center; outline: none; transition: background 0.18s, border 0.18s; }
.ttt-square:disabled { opacity: 1; }
.ttt-square.playable { cursor: pointer; }
.ttt-square.win { border-color: %[3]s; background: %[3]s; }
.mark-x { color: %[1]s; }
.mark-o { color: %[2]s; }
.footer { min-height: 36px; display: flex; flex-direction: column; align-items: center; }
.celebration { font-size: 20px; font-weight: 600; color: %[3]s; margin-bottom: 8px; }
.btn { margin-top: 6px; background: %[1]s; color: #fff; padding: 9px 28px; border-radius: 6px; border: none; font-size: 17px; font-weight: 500; letter-spacing: 0.5px; box-shadow: 0 2px 8px 0 rgba(180, 0, 0, 0.07); cursor: pointer; }
`, ColorPrimary, ColorSecondary, ColorAccent, ColorBackground, colorEmptyLabel, colorCellBorder, colorCellIdle))
}
