package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/gogpu/gg"

	"github.com/ha1tch/deluxepaste/canvas"
	"github.com/ha1tch/deluxepaste/config"
)

const (
	fontSize  = 8
	leftPanel = 100
	topBar    = 50
)

// GUI Control types
type Button struct {
	rect  rl.Rectangle
	text  string
	hover bool
}

// viewport is the window region the canvas surface is laid out in.
type viewport struct {
	surface *canvas.Surface
}

func (v *viewport) Bounds() canvas.Rect {
	return canvas.Rect{
		X:      leftPanel,
		Y:      topBar,
		Width:  float64(rl.GetScreenWidth() - leftPanel),
		Height: float64(rl.GetScreenHeight() - topBar),
	}
}

func (v *viewport) Attach(s *canvas.Surface) { v.surface = s }

// Application state
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	// Canvas
	handler *canvas.Handler
	view    *viewport

	// Render target mirroring the canvas surface
	texture  rl.Texture2D
	textureW int
	textureH int
	dirty    bool

	// UI
	buttons      []Button
	lastMousePos rl.Vector2
	status       string
	statusUntil  time.Time
}

// Initialize application
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	app := &App{
		cfg:    cfg,
		logger: logger,
		view:   &viewport{},
	}

	interp := gg.InterpBilinear
	if cfg.Smooth {
		interp = gg.InterpBicubic
	}

	h, err := canvas.New(app.view, cfg.AspectX, cfg.AspectY,
		canvas.WithLogger(logger),
		canvas.WithInterpolation(interp),
		canvas.WithCacheSize(cfg.CacheSize),
		canvas.WithDrawHook(func(*canvas.Surface) { app.dirty = true }),
	)
	if err != nil {
		return nil, err
	}
	app.handler = h

	h.AddEventListener("mousedown", canvas.MoveLastMatch(h))

	app.buttons = []Button{
		{rect: rl.Rectangle{X: 10, Y: 60, Width: 80, Height: 30}, text: "PASTE"},
		{rect: rl.Rectangle{X: 10, Y: 100, Width: 80, Height: 30}, text: "EXPORT"},
	}

	return app, nil
}

// Screen to canvas coordinates
func (app *App) ScreenToCanvas(screenX, screenY float32) (float64, float64) {
	return float64(screenX - leftPanel), float64(screenY - topBar)
}

// Paste feeds the system clipboard to the canvas.
func (app *App) Paste() {
	text := rl.GetClipboardText()
	ev := &canvas.ClipboardEvent{
		ClipboardData: &canvas.DataTransfer{Items: canvas.ItemsFromText(text)},
	}
	app.handler.HandlePaste(ev)
	app.logger.Debug("paste", "items", len(ev.ClipboardData.Items))
}

// Drop feeds files dropped onto the window to the canvas.
func (app *App) Drop(paths []string) {
	items := make([]canvas.Item, 0, len(paths))
	for _, p := range paths {
		items = append(items, canvas.NewFileItem(p))
	}

	// Raylib only reports the drop; replay dragover first as a browser would.
	app.handler.HandleDragOver(&canvas.DragEvent{})

	ev := &canvas.DragEvent{DataTransfer: &canvas.DataTransfer{Items: items}}
	app.handler.HandleDrop(ev)
	app.logger.Debug("drop", "files", len(paths))
}

// Export writes the canvas data URI to the configured export path.
func (app *App) Export() error {
	data := app.handler.ToB64()
	if err := os.WriteFile(app.cfg.ExportPath, []byte(data), 0o644); err != nil {
		return fmt.Errorf("export %s: %w", app.cfg.ExportPath, err)
	}
	app.logger.Info("exported canvas", "path", app.cfg.ExportPath, "bytes", len(data))
	return nil
}

func (app *App) setStatus(msg string) {
	app.status = msg
	app.statusUntil = time.Now().Add(3 * time.Second)
}

func (app *App) runExport() {
	if err := app.Export(); err != nil {
		app.logger.Error("export failed", "err", err)
		app.setStatus("EXPORT FAILED")
		return
	}
	app.setStatus("EXPORTED TO " + app.cfg.ExportPath)
}

// Update application
func (app *App) Update() {
	mousePos := rl.GetMousePosition()

	// Finish pending image loads
	app.handler.Pump()

	if rl.IsWindowResized() {
		app.handler.HandleResize()
	}

	if rl.IsFileDropped() {
		files := rl.LoadDroppedFiles()
		app.Drop(files)
		rl.UnloadDroppedFiles()
	}

	// Handle keyboard shortcuts
	if rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) {
		if rl.IsKeyPressed(rl.KeyV) {
			app.Paste()
		}
		if rl.IsKeyPressed(rl.KeyE) {
			app.runExport()
		}
	}

	// Handle buttons
	overButton := false
	for i := range app.buttons {
		btn := &app.buttons[i]
		btn.hover = rl.CheckCollisionPointRec(mousePos, btn.rect)
		if !btn.hover {
			continue
		}
		overButton = true
		if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			switch i {
			case 0: // Paste
				app.Paste()
			case 1: // Export
				app.runExport()
			}
		}
	}

	// Pointer events go to the canvas unless a button took them
	if overButton {
		app.lastMousePos = mousePos
		return
	}

	x, y := app.ScreenToCanvas(mousePos.X, mousePos.Y)
	ev := canvas.PointerEvent{X: x, Y: y}

	if mousePos != app.lastMousePos {
		app.handler.HandlePointer(canvas.Move, ev)
	}
	for _, b := range []rl.MouseButton{rl.MouseLeftButton, rl.MouseRightButton, rl.MouseMiddleButton} {
		ev.Button = int(b)
		if rl.IsMouseButtonPressed(b) {
			app.handler.HandlePointer(canvas.Down, ev)
		}
		if rl.IsMouseButtonReleased(b) {
			app.handler.HandlePointer(canvas.Up, ev)
		}
	}
	app.lastMousePos = mousePos
}

// syncTexture uploads the canvas surface when it has been redrawn.
func (app *App) syncTexture() {
	if !app.dirty {
		return
	}
	app.dirty = false

	s := app.handler.Surface()
	w, h := s.Width(), s.Height()
	if w != app.textureW || h != app.textureH {
		if app.textureW > 0 && app.textureH > 0 {
			rl.UnloadTexture(app.texture)
		}
		app.textureW, app.textureH = w, h
		if w == 0 || h == 0 {
			return
		}
		blank := rl.GenImageColor(w, h, rl.Blank)
		app.texture = rl.LoadTextureFromImage(blank)
		rl.UnloadImage(blank)
	}
	if w == 0 || h == 0 {
		return
	}

	rl.UpdateTexture(app.texture, toColors(s.Image()))
}

func toColors(img *image.RGBA) []color.RGBA {
	pix := make([]color.RGBA, len(img.Pix)/4)
	for i := range pix {
		p := img.Pix[i*4 : i*4+4 : i*4+4]
		pix[i] = color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
	}
	return pix
}

// Draw application
func (app *App) Draw() {
	app.syncTexture()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{40, 40, 40, 255})

	screenWidth := rl.GetScreenWidth()
	screenHeight := rl.GetScreenHeight()

	// Draw canvas area
	rl.BeginScissorMode(leftPanel, topBar, int32(screenWidth-leftPanel), int32(screenHeight-topBar))

	// Draw checkerboard background
	tileSize := int32(16)
	w := int32(app.textureW)
	h := int32(app.textureH)
	for y := int32(0); y*tileSize < h; y++ {
		for x := int32(0); x*tileSize < w; x++ {
			c := rl.Color{150, 150, 150, 255}
			if (x+y)%2 == 0 {
				c = rl.Color{110, 110, 110, 255}
			}
			rl.DrawRectangle(leftPanel+x*tileSize, topBar+y*tileSize, tileSize, tileSize, c)
		}
	}

	if app.textureW > 0 && app.textureH > 0 {
		rl.DrawTexture(app.texture, leftPanel, topBar, rl.White)
		rl.DrawRectangleLines(leftPanel, topBar, w, h, rl.Color{100, 100, 100, 255})
	}

	rl.EndScissorMode()

	// Draw left toolbar
	rl.DrawRectangle(0, 0, leftPanel, int32(screenHeight), rl.Color{50, 50, 50, 255})
	rl.DrawText("DELUXE PASTE", 10, 10, fontSize, rl.White)
	rl.DrawText("ACTIONS", 10, 35, fontSize, rl.LightGray)

	for _, btn := range app.buttons {
		color := rl.Color{70, 70, 70, 255}
		if btn.hover {
			color = rl.Color{80, 80, 80, 255}
		}

		rl.DrawRectangleRec(btn.rect, color)
		rl.DrawRectangleLinesEx(btn.rect, 1, rl.Color{90, 90, 90, 255})

		textW := rl.MeasureText(btn.text, fontSize)
		textX := int32(btn.rect.X + btn.rect.Width/2 - float32(textW)/2)
		textY := int32(btn.rect.Y + btn.rect.Height/2 - 4)
		rl.DrawText(btn.text, textX, textY, fontSize, rl.White)
	}

	rl.DrawText("CTRL+V PASTE", 10, 150, fontSize, rl.Gray)
	rl.DrawText("CTRL+E EXPORT", 10, 165, fontSize, rl.Gray)
	rl.DrawText("DROP FILES", 10, 180, fontSize, rl.Gray)
	rl.DrawText("CLICK TO MOVE", 10, 195, fontSize, rl.Gray)

	// Draw top bar
	rl.DrawRectangle(leftPanel, 0, int32(screenWidth-leftPanel), topBar, rl.Color{60, 60, 60, 255})
	info := fmt.Sprintf("IMAGES: %d | LOADING: %d | SIZE: %dX%d | ASPECT: %d:%d",
		len(app.handler.Objects()), app.handler.Pending(),
		app.textureW, app.textureH, app.cfg.AspectX, app.cfg.AspectY)
	if app.status != "" && time.Now().Before(app.statusUntil) {
		info += " | " + app.status
	}
	rl.DrawText(info, leftPanel+10, 20, fontSize, rl.White)

	rl.EndDrawing()
}

// Close releases GPU resources and waits briefly for in-flight loads.
func (app *App) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := app.handler.Wait(ctx); err != nil {
		app.logger.Warn("abandoning image loads", "pending", app.handler.Pending())
	}
	if app.textureW > 0 && app.textureH > 0 {
		rl.UnloadTexture(app.texture)
	}
}

func main() {
	cfgPath := flag.String("config", config.DefaultPath(), "path to JSON config file")
	aspect := flag.String("aspect", "", "canvas aspect ratio, e.g. 4:3")
	export := flag.String("export", "", "file the data URI is exported to")
	level := flag.String("log-level", "", "log level (debug, info, warn, error)")
	width := flag.Int("width", 0, "initial window width")
	height := flag.Int("height", 0, "initial window height")
	smooth := flag.Bool("smooth", false, "use bicubic scaling")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v (using defaults)\n", err)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "aspect":
			x, y, perr := config.ParseAspect(*aspect)
			if perr != nil {
				fmt.Fprintf(os.Stderr, "%v\n", perr)
				os.Exit(2)
			}
			cfg.AspectX, cfg.AspectY = x, y
		case "export":
			cfg.ExportPath = *export
		case "log-level":
			cfg.LogLevel = *level
		case "width":
			cfg.WindowWidth = *width
		case "height":
			cfg.WindowHeight = *height
		case "smooth":
			cfg.Smooth = *smooth
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
	}

	logger := NewLogger(cfg.Level(), cfg.LogJSON)

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.WindowWidth), int32(cfg.WindowHeight), cfg.Title)
	rl.SetTargetFPS(int32(cfg.TargetFPS))

	app, err := NewApp(cfg, logger)
	if err != nil {
		logger.Error("create canvas", "err", err)
		rl.CloseWindow()
		os.Exit(1)
	}

	for !rl.WindowShouldClose() {
		app.Update()
		app.Draw()
	}

	// Clean up
	app.Close()
	rl.CloseWindow()
}
