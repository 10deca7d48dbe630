package listing

import (
	"net/url"
	"os"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

// excludedExtensions is never modified after init.
var excludedExtensions = []string{
	".exe",
	".lock",
	".toml",
	".dll",
	".msi",
	".md",
	".png",
	".jpg",
	".jpeg",
	".gif",
	".webp",
	".csv",
	".xlsx",
	".xls",
	".docx",
	".doc",
	".pptx",
	".ppt",
	".pdf",
	".xml",
	".bat",
	".vbs",
	".git",
	".gitignore",
}

// Entry is a single visible item of a directory listing.
type Entry struct {
	Name  string
	IsDir bool
	Href  string
}

// ExcludedExtensions returns a copy of the suffixes hidden from listings.
func ExcludedExtensions() []string {
	return slices.Clone(excludedExtensions)
}

// Excluded reports whether name ends with one of the excluded suffixes,
// ignoring case.
func Excluded(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range excludedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}

	return false
}

// Read enumerates dir in the order the filesystem returns entries.
// It fails for anything that cannot be opened and read as a directory.
func Read(fs afero.Fs, dir string) ([]os.FileInfo, error) {
	f, err := fs.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.Readdir(-1)
}

// Build drops excluded entries and attaches a link to each remaining one.
func Build(requestPath string, infos []os.FileInfo) []Entry {
	entries := make([]Entry, 0, len(infos))

	for _, info := range infos {
		name := info.Name()
		if Excluded(name) {
			continue
		}

		entries = append(entries, Entry{
			Name:  name,
			IsDir: info.IsDir(),
			Href:  Href(requestPath, name, info.IsDir()),
		})
	}

	return entries
}

// Href builds the link for name as seen from the page at requestPath.
// Directory links end with a slash so that following them lists the directory.
func Href(requestPath, name string, isDir bool) string {
	prefix := strings.TrimLeft(strings.ReplaceAll(requestPath, "//", "/"), "/")
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	p := "/" + prefix + name
	if isDir {
		p += "/"
	}

	return (&url.URL{Path: p}).EscapedPath()
}
