package deps

import (
	"time"

	"github.com/linkdeck/linkdeck/internal/importer"
	"github.com/linkdeck/linkdeck/internal/logger"
	"github.com/linkdeck/linkdeck/internal/preview"
	"github.com/linkdeck/linkdeck/internal/repo"
	"github.com/linkdeck/linkdeck/internal/sources/browser"
)

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	TimeNow        func() time.Time   // for testing, defaults to time.Now
	Repo           *repo.Repository   // canonical bookmark/category/settings state
	Importer       *importer.Importer // native bookmark import pipeline
	Source         browser.Client     // native browser bookmark source
	Preview        *preview.Client    // preview image resolver
	PreviewTracker *preview.Tracker   // generation tokens for in-flight preview fetches
}
