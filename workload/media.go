// ABOUTME: Scan workload reading audio metadata directly from files
// ABOUTME: Walks a directory and produces one tag-reading job per audio file

package workload

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"

	"task-runner/pool"
)

// TrackInfo holds the metadata a scan job reads from one audio file
type TrackInfo struct {
	Path   string
	Artist string
	Album  string
	Title  string
	Genre  string
}

// Formats tag.ReadFrom can parse
var audioExtensions = map[string]bool{
	".mp3":  true,
	".m4a":  true,
	".mp4":  true,
	".ogg":  true,
	".flac": true,
}

// IsAudioFile reports whether the path has a supported audio extension
func IsAudioFile(path string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(path))]
}

// FindAudioFiles walks dir and returns every file with a supported extension
func FindAudioFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && IsAudioFile(path) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}

	return files, nil
}

// ScanJobs builds one tag-reading job per audio file under dir
func ScanJobs(dir string, c *Collector) ([]pool.Job, error) {
	files, err := FindAudioFiles(dir)
	if err != nil {
		return nil, err
	}

	jobs := make([]pool.Job, len(files))
	for i, path := range files {
		jobs[i] = TagJob(path, c)
	}

	return jobs, nil
}

// TagJob reads one file's metadata. Corrupt or mis-labelled files record an
// error entry and count as a job failure, nothing more
func TagJob(path string, c *Collector) pool.Job {
	name := filepath.Base(path)

	return func() error {
		start := time.Now()

		info, err := readTags(path)
		if err != nil {
			err = fmt.Errorf("failed to read tags from %s: %w", name, err)
			c.Record(Entry{Job: name, Took: time.Since(start), Err: err})

			return err
		}

		c.Record(Entry{
			Job:    name,
			Detail: describeTrack(info),
			Took:   time.Since(start),
		})

		return nil
	}
}

// readTags opens the file and extracts the standard tag set
func readTags(path string) (TrackInfo, error) {
	file, err := os.Open(path)
	if err != nil {
		return TrackInfo{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	metadata, err := tag.ReadFrom(file)
	if err != nil {
		return TrackInfo{}, fmt.Errorf("failed to read metadata: %w", err)
	}

	title := metadata.Title()
	if title == "" {
		// Fall back to the filename like players do
		title = filepath.Base(path)
	}

	return TrackInfo{
		Path:   path,
		Artist: metadata.Artist(),
		Album:  metadata.Album(),
		Title:  title,
		Genre:  metadata.Genre(),
	}, nil
}

func describeTrack(info TrackInfo) string {
	artist := info.Artist
	if artist == "" {
		artist = "unknown artist"
	}

	return fmt.Sprintf("%s - %s", artist, info.Title)
}
