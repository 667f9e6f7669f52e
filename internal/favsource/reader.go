package favsource

import (
	"encoding/xml"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"favsync/internal/config"
	"favsync/internal/logging"
	"favsync/internal/services"
)

// Entry is one raw favorite record as it appears in the source document.
type Entry struct {
	Name   string
	Target string
	Thumb  string
}

// Reader locates and parses the Kodi favourites document. The document is
// read-only from favsync's perspective and is never written.
type Reader struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewReader builds a source reader for the configured search locations.
func NewReader(cfg *config.Config, logger *slog.Logger) *Reader {
	return &Reader{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "favsource"),
	}
}

// Locate returns the first existing favourites document in search order.
func (r *Reader) Locate() (string, bool) {
	for _, candidate := range r.cfg.FavoritesCandidates() {
		info, err := os.Stat(candidate)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				r.logger.Warn("favorites candidate not readable",
					logging.String("path", candidate),
					logging.Error(err))
			}
			continue
		}
		if info.IsDir() {
			continue
		}
		return candidate, true
	}
	return "", false
}

// ModifiedTime returns the document's modification timestamp in UTC.
func (r *Reader) ModifiedTime(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime().UTC(), true
}

// Read parses the document at path into an ordered sequence of raw entries.
// Records missing a name or command are skipped with a warning. Markup
// corruption stops the parse and returns the records collected before the
// corruption point together with ErrMalformedDocument.
func (r *Reader) Read(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrSourceNotFound, "favsource", "open", path, err)
	}
	defer file.Close()
	return r.parse(file, path)
}

type favouriteNode struct {
	Name   string `xml:"name,attr"`
	Thumb  string `xml:"thumb,attr"`
	Target string `xml:",chardata"`
}

func (r *Reader) parse(reader io.Reader, path string) ([]Entry, error) {
	decoder := xml.NewDecoder(reader)
	var entries []Entry
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// The decoder cannot resume past syntax corruption; hand back
			// what parsed cleanly and let the caller decide.
			return entries, services.Wrap(services.ErrMalformedDocument, "favsource", "parse", path, err)
		}

		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		if local := strings.ToLower(start.Name.Local); local != "favourite" && local != "favorite" {
			continue
		}

		var node favouriteNode
		if err := decoder.DecodeElement(&node, &start); err != nil {
			return entries, services.Wrap(services.ErrMalformedDocument, "favsource", "decode record", path, err)
		}

		name := strings.TrimSpace(node.Name)
		target := strings.TrimSpace(node.Target)
		if name == "" || target == "" {
			r.logger.Warn("skipping malformed favorite record",
				logging.String("name", name),
				logging.String("path", path))
			continue
		}
		entries = append(entries, Entry{
			Name:   name,
			Target: target,
			Thumb:  strings.TrimSpace(node.Thumb),
		})
	}
	return entries, nil
}
