package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/google/uuid"

	"github.com/ayusman/rigkit/internal/app"
	"github.com/ayusman/rigkit/internal/bake"
	"github.com/ayusman/rigkit/internal/landmark"
	"github.com/ayusman/rigkit/internal/rig"
	"github.com/ayusman/rigkit/internal/server"
	"github.com/ayusman/rigkit/internal/server/api"
	"github.com/ayusman/rigkit/internal/store"
)

const usage = `rigkit - landmark to avatar rig solver

Usage:
  rigkit serve  [flags]             run the HTTP API and the live pipeline
  rigkit bake   [flags] SESSION_ID  solve every frame of a stored session
  rigkit import [flags] FILE        store a recorded session from JSON

Run "rigkit COMMAND -h" for the flags of a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx, os.Args[2:])
	case "bake":
		err = runBake(ctx, os.Args[2:])
	case "import":
		err = runImport(os.Args[2:])
	case "-h", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":8080", "listen address")
	dbPath := fs.String("db", defaultDBPath(), "SQLite database path")
	webDir := fs.String("web", "", "static files directory (default: search web/ and ~/.rigkit/web)")
	live := fs.Bool("live", true, "run the camera pipeline")
	mock := fs.Bool("mock", false, "use the mock detector instead of MediaPipe")
	camID := fs.Int("camera", 0, "camera device ID")
	fps := fs.Int("fps", 30, "camera frame rate")
	fs.Parse(args)

	st, err := openStore(*dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	settings, err := api.NewSettings(st, rig.DefaultConfig())
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	cfg := app.DefaultConfig()
	cfg.Store = st
	cfg.Camera.DeviceID = *camID
	cfg.Camera.FPS = *fps
	cfg.MockDetector = *mock
	pipeline := app.New(cfg, settings)

	if *webDir == "" {
		*webDir = findWebDir()
	}
	if *webDir != "" {
		log.Printf("Serving static files from: %s", *webDir)
	}

	srv, err := server.New(server.Config{
		StaticDir: *webDir,
		Store:     st,
		Settings:  settings,
		Recorder:  pipeline.Recorder(),
	})
	if err != nil {
		return err
	}
	pipeline.Subscribe(srv.Feed().Publish)

	if *live {
		if err := pipeline.Start(); err != nil {
			log.Printf("Camera unavailable (%v), serving API only", err)
		}
	}
	defer func() {
		if err := pipeline.Stop(); err != nil {
			log.Printf("Error stopping pipeline: %v", err)
		}
	}()

	httpServer := &http.Server{Addr: *addr, Handler: srv}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", *addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		log.Println("Shutting down")
		srv.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}

func runBake(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("bake", flag.ExitOnError)
	dbPath := fs.String("db", defaultDBPath(), "SQLite database path")
	workers := fs.Int("workers", bake.DefaultOptions().Workers, "frames solved in parallel")
	batch := fs.Int("batch", bake.DefaultOptions().BatchSize, "frames read per batch")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return errors.New("bake needs exactly one SESSION_ID")
	}
	sessionID := fs.Arg(0)

	st, err := openStore(*dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	cfg, err := st.Settings().RigConfig(rig.DefaultConfig())
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	session, err := st.Sessions().GetByID(sessionID)
	if err != nil {
		return fmt.Errorf("session %s: %w", sessionID, err)
	}

	bar := pb.StartNew(session.Frames)
	report, err := bake.Session(ctx, st, rig.NewSolver(cfg), sessionID, bake.Options{
		BatchSize: *batch,
		Workers:   *workers,
		Progress: func(done, total int) {
			bar.SetCurrent(int64(done))
		},
	})
	bar.Finish()
	if err != nil {
		return fmt.Errorf("bake %s: %w", sessionID, err)
	}

	log.Printf("Baked %d frames of %q (%d rejected)", report.Frames, session.Name, report.Rejected)
	return nil
}

// recordedSession is the JSON layout accepted by import.
type recordedSession struct {
	Name   string           `json:"name"`
	FPS    float64          `json:"fps"`
	Frames []landmark.Frame `json:"frames"`
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	dbPath := fs.String("db", defaultDBPath(), "SQLite database path")
	name := fs.String("name", "", "session name (default: name in the file)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return errors.New("import needs exactly one FILE")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	var rec recordedSession
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("decode %s: %w", fs.Arg(0), err)
	}
	if *name != "" {
		rec.Name = *name
	}
	if rec.Name == "" {
		rec.Name = filepath.Base(fs.Arg(0))
	}

	st, err := openStore(*dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	session := &store.Session{ID: uuid.New().String(), Name: rec.Name, FPS: rec.FPS}
	if err := st.Sessions().Create(session); err != nil {
		return err
	}
	if _, err := st.Frames().Append(session.ID, rec.Frames); err != nil {
		return err
	}

	fmt.Println(session.ID)
	log.Printf("Imported %d frames into %q", len(rec.Frames), rec.Name)
	return nil
}

func defaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "rigkit.db"
	}
	return filepath.Join(homeDir, ".rigkit", "rigkit.db")
}

func openStore(path string) (*store.Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	st, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("initialize store: %w", err)
	}
	return st, nil
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.rigkit/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".rigkit", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
